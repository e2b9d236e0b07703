package cpu

const (
	STACK_LIMIT = 256 // Slots in the stack page.
)

// Stack is the hardware stack: the stack page of Memory, addressed by the
// SP register. Push stores at $0100|SP then decrements SP; Pop increments SP
// then loads. SP wraps modulo 256 in both directions.
type Stack struct {
	Memory    *Memory
	Registers *Registers
}

// Push a byte.
func (s Stack) Push(value uint8) {
	s.Memory.Write(s.Memory.StackAddress(s.Registers.SP), value)
	s.Registers.SP = uint8((int(s.Registers.SP) - 1) & 0xff)
}

// Pop a byte.
func (s Stack) Pop() (value uint8) {
	s.Registers.SP = uint8((int(s.Registers.SP) + 1) & 0xff)
	return s.Memory.Read(s.Memory.StackAddress(s.Registers.SP))
}

// Peek at the most recently pushed byte.
func (s Stack) Peek() (value uint8) {
	return s.Memory.Read(s.Memory.StackAddress(uint8((int(s.Registers.SP) + 1) & 0xff)))
}

// PushWord pushes a 16-bit value, high byte first.
func (s Stack) PushWord(value uint16) {
	s.Push(uint8(value >> 8))
	s.Push(uint8(value))
}

// PopWord pops a 16-bit value, low byte first.
func (s Stack) PopWord() (value uint16) {
	lo := s.Pop()
	hi := s.Pop()
	return uint16(lo) | uint16(hi)<<8
}

// Depth is the number of bytes pushed since SP was reset.
func (s Stack) Depth() int {
	return RESET_SP - int(s.Registers.SP)
}

// Empty is true when SP is at its reset value.
func (s Stack) Empty() bool {
	return s.Depth() == 0
}

// Full is true when the next push wraps SP.
func (s Stack) Full() bool {
	return s.Depth() == STACK_LIMIT-1
}

// Reset the stack pointer.
func (s Stack) Reset() {
	s.Registers.SP = RESET_SP
}
