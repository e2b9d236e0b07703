package cpu

// Evaluate executes the instruction against memory and registers.
//
// PC must address the instruction's opcode byte. It is advanced by the
// instruction length, unless the instruction transfers control.
//
// Evaluate panics with ErrInvalidOperation if an operand is used in a way
// its addressing mode does not allow; the legality table makes that
// unreachable for instructions built by this package.
func (ins Instruction) Evaluate(mem *Memory, reg *Registers) {
	op := ins.Operand()
	fl := &reg.Flags
	stack := Stack{Memory: mem, Registers: reg}
	next := reg.PC + ins.Length()

	switch mn := ins.Mnemonic(); mn {
	// Arithmetic
	case ADC:
		reg.A = addWithCarry(fl, reg.A, op.Read(mem, reg))
	case SBC:
		reg.A = addWithCarry(fl, reg.A, ^op.Read(mem, reg))

	// Logic
	case AND:
		reg.A &= op.Read(mem, reg)
		fl.setZN(reg.A)
	case ORA, EOR:
		value := op.Read(mem, reg)
		if mn == ORA {
			reg.A |= value
		} else {
			reg.A ^= value
		}
		fl.setZN(reg.A)
		if op.Mode.Writable() && op.Mode != MODE_ACCUMULATOR {
			op.Write(mem, reg, reg.A)
		}
	case BIT:
		value := op.Read(mem, reg)
		fl.Zero = (reg.A & value) == 0
		fl.Overflow = (value & 0x40) != 0
		fl.Negative = (value & 0x80) != 0

	// Shifts and rotates
	case ASL, LSR, ROL, ROR:
		value := op.Read(mem, reg)
		carry := fl.Carry
		switch mn {
		case ASL:
			fl.Carry = (value & 0x80) != 0
			value <<= 1
		case LSR:
			fl.Carry = (value & 0x01) != 0
			value >>= 1
		case ROL:
			fl.Carry = (value & 0x80) != 0
			value <<= 1
			if carry {
				value |= 0x01
			}
		case ROR:
			fl.Carry = (value & 0x01) != 0
			value >>= 1
			if carry {
				value |= 0x80
			}
		}
		fl.setZN(value)
		op.Write(mem, reg, value)

	// Compares
	case CMP:
		compare(fl, reg.A, op.Read(mem, reg))
	case CPX:
		compare(fl, reg.X, op.Read(mem, reg))
	case CPY:
		compare(fl, reg.Y, op.Read(mem, reg))

	// Increments and decrements
	case INC, DEC:
		value := op.Read(mem, reg)
		if mn == INC {
			value++
		} else {
			value--
		}
		fl.setZN(value)
		op.Write(mem, reg, value)
	case INX:
		reg.X++
		fl.setZN(reg.X)
	case INY:
		reg.Y++
		fl.setZN(reg.Y)
	case DEX:
		reg.X--
		fl.setZN(reg.X)
	case DEY:
		reg.Y--
		fl.setZN(reg.Y)

	// Loads and stores
	case LDA:
		reg.A = op.Read(mem, reg)
		fl.setZN(reg.A)
	case LDX:
		reg.X = op.Read(mem, reg)
		fl.setZN(reg.X)
	case LDY:
		reg.Y = op.Read(mem, reg)
		fl.setZN(reg.Y)
	case STA:
		op.Write(mem, reg, reg.A)
	case STX:
		op.Write(mem, reg, reg.X)
	case STY:
		op.Write(mem, reg, reg.Y)

	// Transfers
	case TAX:
		reg.X = reg.A
		fl.setZN(reg.X)
	case TAY:
		reg.Y = reg.A
		fl.setZN(reg.Y)
	case TXA:
		reg.A = reg.X
		fl.setZN(reg.A)
	case TYA:
		reg.A = reg.Y
		fl.setZN(reg.A)
	case TSX:
		reg.X = reg.SP
		fl.setZN(reg.X)
	case TXS:
		reg.SP = reg.X

	// Stack
	case PHA:
		stack.Push(reg.A)
	case PLA:
		reg.A = stack.Pop()
		fl.setZN(reg.A)
	case PHP:
		stack.Push(fl.Byte() | FLAG_BREAK | FLAG_UNUSED)
	case PLP:
		brk := fl.BreakCommand
		fl.SetByte(stack.Pop())
		fl.BreakCommand = brk

	// Control transfer
	case JMP:
		next = op.Destination(mem)
	case JSR:
		stack.PushWord(reg.PC + 2)
		next = op.Destination(mem)
	case RTS:
		next = stack.PopWord() + 1
	case RTI:
		fl.SetByte(stack.Pop())
		next = stack.PopWord()
	case BPL, BMI, BVC, BVS, BCC, BCS, BNE, BEQ:
		if branchTaken(mn, fl) {
			next = ins.Target(reg.PC)
		}

	// Flags
	case CLC:
		fl.Carry = false
	case SEC:
		fl.Carry = true
	case CLI:
		fl.InterruptDisable = false
	case SEI:
		fl.InterruptDisable = true
	case CLV:
		fl.Overflow = false
	case CLD:
		fl.DecimalMode = false
	case SED:
		fl.DecimalMode = true

	case NOP, BRK:
	}

	reg.PC = next
}

// addWithCarry adds value and carry to acc, setting C, V, Z and N.
// Subtraction is addition of the one's complement.
func addWithCarry(fl *Flags, acc uint8, value uint8) (result uint8) {
	sum := uint16(acc) + uint16(value)
	if fl.Carry {
		sum++
	}
	result = uint8(sum)
	fl.Carry = sum > 0xff
	fl.Overflow = ((acc ^ result) & (value ^ result) & 0x80) != 0
	fl.setZN(result)
	return
}

// compare sets C, Z and N from reg - value.
func compare(fl *Flags, reg uint8, value uint8) {
	fl.Carry = reg >= value
	fl.setZN(reg - value)
}

// branchTaken evaluates the condition of a relative branch.
func branchTaken(mn Mnemonic, fl *Flags) bool {
	switch mn {
	case BPL:
		return !fl.Negative
	case BMI:
		return fl.Negative
	case BVC:
		return !fl.Overflow
	case BVS:
		return fl.Overflow
	case BCC:
		return !fl.Carry
	case BCS:
		return fl.Carry
	case BNE:
		return !fl.Zero
	case BEQ:
		return fl.Zero
	}
	return false
}

// Access reports whether the instruction reads or writes memory through
// its operand. Stack and instruction fetch accesses are not included.
func (ins Instruction) Access() (read bool, write bool) {
	switch ins.Mode() {
	case MODE_IMPLIED, MODE_ACCUMULATOR, MODE_IMMEDIATE, MODE_RELATIVE, MODE_INDIRECT:
		return
	}

	switch ins.Mnemonic() {
	case JMP, JSR:
	case STA, STX, STY:
		write = true
	case ASL, LSR, ROL, ROR, INC, DEC, ORA, EOR:
		read = true
		write = true
	default:
		read = true
	}
	return
}
