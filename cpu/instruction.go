package cpu

import (
	"fmt"
)

// Instruction is a decoded instruction: an opcode from the legality table
// and its operand. Instructions are only built by NewInstruction,
// MustInstruction, or the decoder, so every Instruction is a legal
// (mnemonic, mode) pair. The zero Instruction is BRK.
type Instruction struct {
	opcode  uint8
	operand uint16
}

// NewInstruction builds an instruction, checking that the mnemonic
// supports the operand's addressing mode.
func NewInstruction(mn Mnemonic, operand Operand) (ins Instruction, err error) {
	opcode, ok := lookupOpcode(mn, operand.Mode)
	if !ok {
		err = ErrIllegalMode{Mnemonic: mn, Mode: operand.Mode}
		return
	}

	ins = Instruction{opcode: opcode, operand: operand.canonical().Value}
	return
}

// MustInstruction builds an instruction, and panics if the pair is not legal.
func MustInstruction(mn Mnemonic, operand Operand) Instruction {
	ins, err := NewInstruction(mn, operand)
	if err != nil {
		panic(err)
	}
	return ins
}

// Opcode is the opcode byte.
func (ins Instruction) Opcode() uint8 {
	return ins.opcode
}

// Mnemonic is the instruction name.
func (ins Instruction) Mnemonic() Mnemonic {
	return decodeTable[ins.opcode].Mnemonic
}

// Mode is the addressing mode.
func (ins Instruction) Mode() AddrMode {
	return decodeTable[ins.opcode].Mode
}

// Operand is the instruction operand.
func (ins Instruction) Operand() Operand {
	return Operand{Mode: ins.Mode(), Value: ins.operand}
}

// Length is the encoded length, opcode included.
func (ins Instruction) Length() uint16 {
	return 1 + ins.Mode().Length()
}

// Encode the instruction: the opcode, followed by the little-endian operand.
func (ins Instruction) Encode() []byte {
	return append([]byte{ins.opcode}, ins.Operand().Encode()...)
}

// AppendEncode appends the encoded instruction to code.
func (ins Instruction) AppendEncode(code []byte) []byte {
	return append(code, ins.Encode()...)
}

// Target is the destination of a relative branch located at pc.
func (ins Instruction) Target(pc uint16) uint16 {
	return pc + 2 + uint16(int16(ins.Operand().Offset()))
}

// String returns the assembly language representation of the instruction.
func (ins Instruction) String() string {
	if ins.Mode() == MODE_IMPLIED {
		return ins.Mnemonic().String()
	}
	return fmt.Sprintf("%v %v", ins.Mnemonic().String(), ins.Operand().String())
}
