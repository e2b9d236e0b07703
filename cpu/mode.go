package cpu

import (
	"fmt"
)

// AddrMode is an operand addressing mode.
type AddrMode int

//go:generate go tool stringer -linecomment -type=AddrMode
const (
	MODE_IMPLIED          = AddrMode(0)  // implied
	MODE_ACCUMULATOR      = AddrMode(1)  // accumulator
	MODE_IMMEDIATE        = AddrMode(2)  // immediate
	MODE_ZERO_PAGE        = AddrMode(3)  // zeropage
	MODE_ZERO_PAGE_X      = AddrMode(4)  // zeropage,x
	MODE_ZERO_PAGE_Y      = AddrMode(5)  // zeropage,y
	MODE_ABSOLUTE         = AddrMode(6)  // absolute
	MODE_ABSOLUTE_X       = AddrMode(7)  // absolute,x
	MODE_ABSOLUTE_Y       = AddrMode(8)  // absolute,y
	MODE_INDIRECT         = AddrMode(9)  // indirect
	MODE_INDEXED_INDIRECT = AddrMode(10) // (indirect,x)
	MODE_INDIRECT_INDEXED = AddrMode(11) // (indirect),y
	MODE_RELATIVE         = AddrMode(12) // relative
)

// modeCount is the number of defined addressing modes.
const modeCount = int(MODE_RELATIVE) + 1

// Length is the number of operand bytes following the opcode.
func (mode AddrMode) Length() uint16 {
	switch mode {
	case MODE_IMPLIED, MODE_ACCUMULATOR:
		return 0
	case MODE_ABSOLUTE, MODE_ABSOLUTE_X, MODE_ABSOLUTE_Y, MODE_INDIRECT:
		return 2
	default:
		return 1
	}
}

// Writable returns true if the mode can be the target of a store.
func (mode AddrMode) Writable() bool {
	switch mode {
	case MODE_IMPLIED, MODE_IMMEDIATE, MODE_INDIRECT, MODE_RELATIVE:
		return false
	}
	return true
}

// Operand is the operand of an instruction: an addressing mode and the
// operand bytes captured at decode time. Byte-sized operands use the low
// 8 bits of Value.
type Operand struct {
	Mode  AddrMode
	Value uint16
}

// Implied operand.
func Implied() Operand { return Operand{Mode: MODE_IMPLIED} }

// Accumulator operand: A.
func Accumulator() Operand { return Operand{Mode: MODE_ACCUMULATOR} }

// Immediate operand: #value.
func Immediate(value uint8) Operand { return Operand{MODE_IMMEDIATE, uint16(value)} }

// ZeroPage operand: addr.
func ZeroPage(addr uint8) Operand { return Operand{MODE_ZERO_PAGE, uint16(addr)} }

// ZeroPageX operand: addr,X.
func ZeroPageX(addr uint8) Operand { return Operand{MODE_ZERO_PAGE_X, uint16(addr)} }

// ZeroPageY operand: addr,Y.
func ZeroPageY(addr uint8) Operand { return Operand{MODE_ZERO_PAGE_Y, uint16(addr)} }

// Absolute operand: addr.
func Absolute(addr uint16) Operand { return Operand{MODE_ABSOLUTE, addr} }

// AbsoluteX operand: addr,X.
func AbsoluteX(addr uint16) Operand { return Operand{MODE_ABSOLUTE_X, addr} }

// AbsoluteY operand: addr,Y.
func AbsoluteY(addr uint16) Operand { return Operand{MODE_ABSOLUTE_Y, addr} }

// Indirect operand: (addr).
func Indirect(addr uint16) Operand { return Operand{MODE_INDIRECT, addr} }

// IndexedIndirect operand: (addr,X).
func IndexedIndirect(addr uint8) Operand { return Operand{MODE_INDEXED_INDIRECT, uint16(addr)} }

// IndirectIndexed operand: (addr),Y.
func IndirectIndexed(addr uint8) Operand { return Operand{MODE_INDIRECT_INDEXED, uint16(addr)} }

// Relative operand: a signed branch displacement.
func Relative(offset int8) Operand { return Operand{MODE_RELATIVE, uint16(uint8(offset))} }

// Length is the number of operand bytes.
func (op Operand) Length() uint16 {
	return op.Mode.Length()
}

// Byte is the operand as a single byte.
func (op Operand) Byte() uint8 {
	return uint8(op.Value)
}

// Offset is the operand as a signed branch displacement.
func (op Operand) Offset() int8 {
	return int8(uint8(op.Value))
}

// canonical masks off bits that are not encoded.
func (op Operand) canonical() Operand {
	switch op.Mode.Length() {
	case 0:
		op.Value = 0
	case 1:
		op.Value &= 0xff
	}
	return op
}

// Address resolves the effective address of a memory operand. ok is false
// for operands that are not in memory.
func (op Operand) Address(mem *Memory, reg *Registers) (addr uint16, ok bool) {
	ok = true
	switch op.Mode {
	case MODE_ZERO_PAGE:
		addr = mem.ZeroPage(op.Byte())
	case MODE_ZERO_PAGE_X:
		addr = mem.ZeroPageIndexed(op.Byte(), reg.X)
	case MODE_ZERO_PAGE_Y:
		addr = mem.ZeroPageIndexed(op.Byte(), reg.Y)
	case MODE_ABSOLUTE:
		addr = mem.Absolute(op.Value)
	case MODE_ABSOLUTE_X:
		addr = mem.AbsoluteIndexed(op.Value, reg.X)
	case MODE_ABSOLUTE_Y:
		addr = mem.AbsoluteIndexed(op.Value, reg.Y)
	case MODE_INDEXED_INDIRECT:
		addr = mem.IndexedIndirect(op.Byte(), reg.X)
	case MODE_INDIRECT_INDEXED:
		addr = mem.IndirectIndexed(op.Byte(), reg.Y)
	default:
		ok = false
	}
	return
}

// Read the operand value.
func (op Operand) Read(mem *Memory, reg *Registers) uint8 {
	switch op.Mode {
	case MODE_ACCUMULATOR:
		return reg.A
	case MODE_IMMEDIATE, MODE_RELATIVE:
		return op.Byte()
	}
	addr, ok := op.Address(mem, reg)
	if !ok {
		panic(fmt.Errorf("%w: read %v", ErrInvalidOperation, op.Mode))
	}
	return mem.Read(addr)
}

// Write the operand value. Immediate, implied, relative and indirect
// operands are not writable, and panic with ErrInvalidOperation.
func (op Operand) Write(mem *Memory, reg *Registers, value uint8) {
	if op.Mode == MODE_ACCUMULATOR {
		reg.A = value
		return
	}
	addr, ok := op.Address(mem, reg)
	if !ok {
		panic(fmt.Errorf("%w: write %v", ErrInvalidOperation, op.Mode))
	}
	mem.Write(addr, value)
}

// Destination is the jump target of an absolute or indirect operand.
func (op Operand) Destination(mem *Memory) uint16 {
	switch op.Mode {
	case MODE_ABSOLUTE:
		return op.Value
	case MODE_INDIRECT:
		return mem.Indirect(op.Value)
	}
	panic(fmt.Errorf("%w: jump %v", ErrInvalidOperation, op.Mode))
}

// Encode the operand bytes, little-endian.
func (op Operand) Encode() []byte {
	switch op.Mode.Length() {
	case 1:
		return []byte{uint8(op.Value)}
	case 2:
		return []byte{uint8(op.Value), uint8(op.Value >> 8)}
	}
	return nil
}

// String formats the operand in assembler syntax. Relative operands are
// shown as a displacement from the branch instruction.
func (op Operand) String() string {
	switch op.Mode {
	case MODE_ACCUMULATOR:
		return "A"
	case MODE_IMMEDIATE:
		return fmt.Sprintf("#$%02X", op.Byte())
	case MODE_ZERO_PAGE:
		return fmt.Sprintf("$%02X", op.Byte())
	case MODE_ZERO_PAGE_X:
		return fmt.Sprintf("$%02X,X", op.Byte())
	case MODE_ZERO_PAGE_Y:
		return fmt.Sprintf("$%02X,Y", op.Byte())
	case MODE_ABSOLUTE:
		return fmt.Sprintf("$%04X", op.Value)
	case MODE_ABSOLUTE_X:
		return fmt.Sprintf("$%04X,X", op.Value)
	case MODE_ABSOLUTE_Y:
		return fmt.Sprintf("$%04X,Y", op.Value)
	case MODE_INDIRECT:
		return fmt.Sprintf("($%04X)", op.Value)
	case MODE_INDEXED_INDIRECT:
		return fmt.Sprintf("($%02X,X)", op.Byte())
	case MODE_INDIRECT_INDEXED:
		return fmt.Sprintf("($%02X),Y", op.Byte())
	case MODE_RELATIVE:
		return fmt.Sprintf("*%+d", int(op.Offset())+2)
	}
	return ""
}
