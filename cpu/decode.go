package cpu

// Decode the instruction at pc. Operand bytes following the opcode are read
// little-endian; addresses past $FFFF wrap to $0000.
func Decode(mem *Memory, pc uint16) (ins Instruction, err error) {
	opcode := mem.Read(pc)
	info := decodeTable[opcode]
	if !info.Valid {
		err = ErrIllegalOpcode{Opcode: opcode, Pc: pc}
		return
	}

	ins.opcode = opcode
	switch info.Mode.Length() {
	case 1:
		ins.operand = uint16(mem.Read(pc + 1))
	case 2:
		ins.operand = mem.ReadWord(pc + 1)
	}

	return
}

// DecodeBytes decodes the instruction at the start of code, and returns the
// number of bytes it occupies.
func DecodeBytes(code []byte) (ins Instruction, size int, err error) {
	if len(code) == 0 {
		err = ErrTruncated
		return
	}

	opcode := code[0]
	info := decodeTable[opcode]
	if !info.Valid {
		err = ErrIllegalOpcode{Opcode: opcode}
		return
	}

	size = 1 + int(info.Mode.Length())
	if len(code) < size {
		size = 0
		err = ErrTruncated
		return
	}

	ins.opcode = opcode
	switch size {
	case 2:
		ins.operand = uint16(code[1])
	case 3:
		ins.operand = uint16(code[1]) | uint16(code[2])<<8
	}

	return
}
