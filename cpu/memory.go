package cpu

const (
	MEMORY_SIZE = 0x10000 // Full 16-bit address space.
	ZERO_PAGE   = 0x0000  // Zero page, reachable with one byte addresses.
	STACK_PAGE  = 0x0100  // Stack page, addressed by SP.
	RESET_SP    = 0xff    // Stack pointer after reset.
)

// Memory is a flat 64K byte store, with the address computations of each
// addressing mode.
//
// All index arithmetic is explicit: zero page indexing and zero page
// pointer fetches wrap modulo 256, absolute indexing wraps modulo 65536.
type Memory struct {
	Data [MEMORY_SIZE]uint8
}

// Read a byte.
func (mem *Memory) Read(addr uint16) uint8 {
	return mem.Data[addr]
}

// Write a byte.
func (mem *Memory) Write(addr uint16, value uint8) {
	mem.Data[addr] = value
}

// ReadWord reads a little-endian 16-bit word. The high byte address wraps at
// the end of memory.
func (mem *Memory) ReadWord(addr uint16) uint16 {
	return uint16(mem.Data[addr]) | uint16(mem.Data[addr+1])<<8
}

// WriteWord writes a little-endian 16-bit word.
func (mem *Memory) WriteWord(addr uint16, value uint16) {
	mem.Data[addr] = uint8(value)
	mem.Data[addr+1] = uint8(value >> 8)
}

// Load copies code into memory at addr. Code past the end of memory wraps to
// address zero.
func (mem *Memory) Load(addr uint16, code []byte) {
	for n, b := range code {
		mem.Data[addr+uint16(n)] = b
	}
}

// Clear zeros memory.
func (mem *Memory) Clear() {
	clear(mem.Data[:])
}

// ZeroPage is the effective address of a zero page operand.
func (mem *Memory) ZeroPage(base uint8) uint16 {
	return ZERO_PAGE + uint16(base)
}

// ZeroPageIndexed is the effective address of a zp,X or zp,Y operand.
// The sum wraps within the zero page.
func (mem *Memory) ZeroPageIndexed(base uint8, index uint8) uint16 {
	return ZERO_PAGE + uint16((base+index)&0xff)
}

// Absolute is the effective address of an absolute operand.
func (mem *Memory) Absolute(addr uint16) uint16 {
	return addr
}

// AbsoluteIndexed is the effective address of an abs,X or abs,Y operand.
func (mem *Memory) AbsoluteIndexed(addr uint16, index uint8) uint16 {
	return addr + uint16(index)
}

// zeroPageWord reads a pointer from the zero page. The high byte is fetched
// from (ptr+1) mod 256.
func (mem *Memory) zeroPageWord(ptr uint8) uint16 {
	lo := mem.Data[ZERO_PAGE+uint16(ptr)]
	hi := mem.Data[ZERO_PAGE+uint16(ptr+1)]
	return uint16(lo) | uint16(hi)<<8
}

// Indirect is the jump destination of a JMP (addr) operand.
//
// The pointer high byte is read from the same page as the low byte, so a
// pointer at $xxFF takes its high byte from $xx00.
func (mem *Memory) Indirect(addr uint16) uint16 {
	lo := mem.Data[addr]
	hi := mem.Data[(addr&0xff00)|((addr+1)&0x00ff)]
	return uint16(lo) | uint16(hi)<<8
}

// IndexedIndirect is the effective address of a (zp,X) operand: the pointer
// at zero page (base+X) mod 256.
func (mem *Memory) IndexedIndirect(base uint8, x uint8) uint16 {
	return mem.zeroPageWord(base + x)
}

// IndirectIndexed is the effective address of a (zp),Y operand: the
// pointer at zero page base, plus Y.
func (mem *Memory) IndirectIndexed(base uint8, y uint8) uint16 {
	return mem.zeroPageWord(base) + uint16(y)
}

// StackAddress is the address of a stack slot.
func (mem *Memory) StackAddress(sp uint8) uint16 {
	return STACK_PAGE | uint16(sp)
}
