package cpu

import (
	"fmt"
)

// Status flag bits, as pushed to the stack by PHP and BRK.
const (
	FLAG_CARRY     = uint8(1 << 0)
	FLAG_ZERO      = uint8(1 << 1)
	FLAG_INTERRUPT = uint8(1 << 2)
	FLAG_DECIMAL   = uint8(1 << 3)
	FLAG_BREAK     = uint8(1 << 4)
	FLAG_UNUSED    = uint8(1 << 5) // Always set when pushed.
	FLAG_OVERFLOW  = uint8(1 << 6)
	FLAG_NEGATIVE  = uint8(1 << 7)
)

// Flags are the seven independent processor status flags.
type Flags struct {
	Carry            bool
	Zero             bool
	InterruptDisable bool
	DecimalMode      bool
	BreakCommand     bool
	Overflow         bool
	Negative         bool
}

// Byte packs the flags into the processor status byte.
func (fl Flags) Byte() (ps uint8) {
	bits := []struct {
		set  bool
		mask uint8
	}{
		{fl.Carry, FLAG_CARRY},
		{fl.Zero, FLAG_ZERO},
		{fl.InterruptDisable, FLAG_INTERRUPT},
		{fl.DecimalMode, FLAG_DECIMAL},
		{fl.BreakCommand, FLAG_BREAK},
		{fl.Overflow, FLAG_OVERFLOW},
		{fl.Negative, FLAG_NEGATIVE},
	}
	for _, bit := range bits {
		if bit.set {
			ps |= bit.mask
		}
	}
	return
}

// SetByte unpacks a processor status byte into the flags.
func (fl *Flags) SetByte(ps uint8) {
	fl.Carry = (ps & FLAG_CARRY) != 0
	fl.Zero = (ps & FLAG_ZERO) != 0
	fl.InterruptDisable = (ps & FLAG_INTERRUPT) != 0
	fl.DecimalMode = (ps & FLAG_DECIMAL) != 0
	fl.BreakCommand = (ps & FLAG_BREAK) != 0
	fl.Overflow = (ps & FLAG_OVERFLOW) != 0
	fl.Negative = (ps & FLAG_NEGATIVE) != 0
}

// setZN sets zero and negative from a result.
func (fl *Flags) setZN(value uint8) {
	fl.Zero = value == 0
	fl.Negative = (value & 0x80) != 0
}

// Registers is the programmer visible register file.
type Registers struct {
	PC    uint16 // Program counter; address of the next opcode.
	SP    uint8  // Stack pointer; low byte of the next free stack slot.
	A     uint8  // Accumulator.
	X     uint8  // Index register X.
	Y     uint8  // Index register Y.
	Flags Flags  // Status flags.
}

// RegisterKind selects a register for display.
type RegisterKind int

//go:generate go tool stringer -linecomment -type=RegisterKind
const (
	REG_PC    = RegisterKind(0) // PC
	REG_SP    = RegisterKind(1) // SP
	REG_A     = RegisterKind(2) // ACC
	REG_X     = RegisterKind(3) // X
	REG_Y     = RegisterKind(4) // Y
	REG_FLAGS = RegisterKind(5) // Flags
)

// RegisterKinds lists the registers in display order.
var RegisterKinds = []RegisterKind{REG_PC, REG_SP, REG_A, REG_X, REG_Y, REG_FLAGS}

// Value returns the raw value of a register.
func (reg *Registers) Value(kind RegisterKind) (value uint16) {
	switch kind {
	case REG_PC:
		value = reg.PC
	case REG_SP:
		value = uint16(reg.SP)
	case REG_A:
		value = uint16(reg.A)
	case REG_X:
		value = uint16(reg.X)
	case REG_Y:
		value = uint16(reg.Y)
	case REG_FLAGS:
		value = uint16(reg.Flags.Byte())
	}
	return
}

// FormatRegister renders a register value in binary, followed by its
// decimal value, or for the flags, the set flag letters.
func FormatRegister(kind RegisterKind, value uint16) string {
	switch kind {
	case REG_PC:
		return fmt.Sprintf("%016b (%d)", value, value)
	case REG_FLAGS:
		letters := []byte("NV-BDIZC")
		for n := range letters {
			if (value>>(7-n))&1 == 0 {
				letters[n] = '.'
			}
		}
		return fmt.Sprintf("%08b (%s)", uint8(value), letters)
	default:
		return fmt.Sprintf("%08b (%d)", uint8(value), uint8(value))
	}
}

// String returns the register file as one line per register.
func (reg *Registers) String() (text string) {
	for _, kind := range RegisterKinds {
		text += fmt.Sprintf("% 5s: %v\n", kind.String(), FormatRegister(kind, reg.Value(kind)))
	}
	return
}
