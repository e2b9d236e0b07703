package cpu

import (
	"iter"
)

// Opcode is the assembled output of a single source statement.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      uint16   // Load address of the first byte.
	Words     []string // Source words, after equate expansion.
	Bytes     []byte   // Encoded bytes.
	LinkLabel string   // Label to patch into the operand at link time.
	Data      bool     // Set for .byte and .word output.
}

// End is the address following the last byte of the opcode.
func (op *Opcode) End() int {
	return int(op.Addr) + len(op.Bytes)
}

// Instruction decodes the opcode bytes. Data opcodes are not instructions.
func (op *Opcode) Instruction() (ins Instruction, err error) {
	if op.Data {
		err = ErrInstructionInvalid
		return
	}
	ins, _, err = DecodeBytes(op.Bytes)
	return
}

// Program is an assembled program listing, in ascending address order.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int // Offset of the address within the opcode bytes.
}

// Debug finds the opcode containing pc.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(pc) >= int(op.Addr) && int(pc) < op.End() {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(pc - op.Addr),
			}
			break
		}
	}

	return
}

// Contains is true if pc is inside the program image.
func (prog *Program) Contains(pc uint16) bool {
	return prog.Debug(pc).Opcode != nil
}

// Start is the address of the first instruction, or of the first byte if
// the program contains only data.
func (prog *Program) Start() (pc uint16) {
	for _, op := range prog.Opcodes {
		if !op.Data {
			return op.Addr
		}
	}
	if len(prog.Opcodes) > 0 {
		pc = prog.Opcodes[0].Addr
	}
	return
}

// Bytes iterates over every assembled byte and its address.
func (prog *Program) Bytes() iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, value byte) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Bytes {
				if !yield(op.Addr+uint16(n), value) {
					return
				}
			}
		}
	}
}

// Binary returns the program as a single image, starting at origin. Gaps
// between .org sections are zero filled.
func (prog *Program) Binary() (origin uint16, image []byte) {
	if len(prog.Opcodes) == 0 {
		return
	}

	origin = prog.Opcodes[0].Addr
	end := int(origin)
	for _, op := range prog.Opcodes {
		end = max(end, op.End())
	}

	image = make([]byte, end-int(origin))
	for addr, value := range prog.Bytes() {
		image[int(addr)-int(origin)] = value
	}

	return
}

// Load copies the program into memory.
func (prog *Program) Load(mem *Memory) {
	for addr, value := range prog.Bytes() {
		mem.Write(addr, value)
	}
}
