package cpu

import (
	"iter"
)

// opcodeDef is a row of the documented opcode table.
type opcodeDef struct {
	Opcode   uint8
	Mnemonic Mnemonic
	Mode     AddrMode
}

// opcodeDefs is the legality table: the only (mnemonic, mode) pairs that
// can be constructed, decoded, or encoded.
var opcodeDefs = []opcodeDef{
	{0x69, ADC, MODE_IMMEDIATE},
	{0x65, ADC, MODE_ZERO_PAGE},
	{0x75, ADC, MODE_ZERO_PAGE_X},
	{0x6D, ADC, MODE_ABSOLUTE},
	{0x7D, ADC, MODE_ABSOLUTE_X},
	{0x79, ADC, MODE_ABSOLUTE_Y},
	{0x61, ADC, MODE_INDEXED_INDIRECT},
	{0x71, ADC, MODE_INDIRECT_INDEXED},

	{0x29, AND, MODE_IMMEDIATE},
	{0x25, AND, MODE_ZERO_PAGE},
	{0x35, AND, MODE_ZERO_PAGE_X},
	{0x2D, AND, MODE_ABSOLUTE},
	{0x3D, AND, MODE_ABSOLUTE_X},
	{0x39, AND, MODE_ABSOLUTE_Y},
	{0x21, AND, MODE_INDEXED_INDIRECT},
	{0x31, AND, MODE_INDIRECT_INDEXED},

	{0x0A, ASL, MODE_ACCUMULATOR},
	{0x06, ASL, MODE_ZERO_PAGE},
	{0x16, ASL, MODE_ZERO_PAGE_X},
	{0x0E, ASL, MODE_ABSOLUTE},
	{0x1E, ASL, MODE_ABSOLUTE_X},

	{0x24, BIT, MODE_ZERO_PAGE},
	{0x2C, BIT, MODE_ABSOLUTE},

	{0x10, BPL, MODE_RELATIVE},
	{0x30, BMI, MODE_RELATIVE},
	{0x50, BVC, MODE_RELATIVE},
	{0x70, BVS, MODE_RELATIVE},
	{0x90, BCC, MODE_RELATIVE},
	{0xB0, BCS, MODE_RELATIVE},
	{0xD0, BNE, MODE_RELATIVE},
	{0xF0, BEQ, MODE_RELATIVE},

	{0x00, BRK, MODE_IMPLIED},

	{0xC9, CMP, MODE_IMMEDIATE},
	{0xC5, CMP, MODE_ZERO_PAGE},
	{0xD5, CMP, MODE_ZERO_PAGE_X},
	{0xCD, CMP, MODE_ABSOLUTE},
	{0xDD, CMP, MODE_ABSOLUTE_X},
	{0xD9, CMP, MODE_ABSOLUTE_Y},
	{0xC1, CMP, MODE_INDEXED_INDIRECT},
	{0xD1, CMP, MODE_INDIRECT_INDEXED},

	{0xE0, CPX, MODE_IMMEDIATE},
	{0xE4, CPX, MODE_ZERO_PAGE},
	{0xEC, CPX, MODE_ABSOLUTE},

	{0xC0, CPY, MODE_IMMEDIATE},
	{0xC4, CPY, MODE_ZERO_PAGE},
	{0xCC, CPY, MODE_ABSOLUTE},

	{0xC6, DEC, MODE_ZERO_PAGE},
	{0xD6, DEC, MODE_ZERO_PAGE_X},
	{0xCE, DEC, MODE_ABSOLUTE},
	{0xDE, DEC, MODE_ABSOLUTE_X},

	{0x49, EOR, MODE_IMMEDIATE},
	{0x45, EOR, MODE_ZERO_PAGE},
	{0x55, EOR, MODE_ZERO_PAGE_X},
	{0x4D, EOR, MODE_ABSOLUTE},
	{0x5D, EOR, MODE_ABSOLUTE_X},
	{0x59, EOR, MODE_ABSOLUTE_Y},
	{0x41, EOR, MODE_INDEXED_INDIRECT},
	{0x51, EOR, MODE_INDIRECT_INDEXED},

	{0x18, CLC, MODE_IMPLIED},
	{0x38, SEC, MODE_IMPLIED},
	{0x58, CLI, MODE_IMPLIED},
	{0x78, SEI, MODE_IMPLIED},
	{0xB8, CLV, MODE_IMPLIED},
	{0xD8, CLD, MODE_IMPLIED},
	{0xF8, SED, MODE_IMPLIED},

	{0xE6, INC, MODE_ZERO_PAGE},
	{0xF6, INC, MODE_ZERO_PAGE_X},
	{0xEE, INC, MODE_ABSOLUTE},
	{0xFE, INC, MODE_ABSOLUTE_X},

	{0x4C, JMP, MODE_ABSOLUTE},
	{0x6C, JMP, MODE_INDIRECT},

	{0x20, JSR, MODE_ABSOLUTE},

	{0xA9, LDA, MODE_IMMEDIATE},
	{0xA5, LDA, MODE_ZERO_PAGE},
	{0xB5, LDA, MODE_ZERO_PAGE_X},
	{0xAD, LDA, MODE_ABSOLUTE},
	{0xBD, LDA, MODE_ABSOLUTE_X},
	{0xB9, LDA, MODE_ABSOLUTE_Y},
	{0xA1, LDA, MODE_INDEXED_INDIRECT},
	{0xB1, LDA, MODE_INDIRECT_INDEXED},

	{0xA2, LDX, MODE_IMMEDIATE},
	{0xA6, LDX, MODE_ZERO_PAGE},
	{0xB6, LDX, MODE_ZERO_PAGE_Y},
	{0xAE, LDX, MODE_ABSOLUTE},
	{0xBE, LDX, MODE_ABSOLUTE_Y},

	{0xA0, LDY, MODE_IMMEDIATE},
	{0xA4, LDY, MODE_ZERO_PAGE},
	{0xB4, LDY, MODE_ZERO_PAGE_X},
	{0xAC, LDY, MODE_ABSOLUTE},
	{0xBC, LDY, MODE_ABSOLUTE_X},

	{0x4A, LSR, MODE_ACCUMULATOR},
	{0x46, LSR, MODE_ZERO_PAGE},
	{0x56, LSR, MODE_ZERO_PAGE_X},
	{0x4E, LSR, MODE_ABSOLUTE},
	{0x5E, LSR, MODE_ABSOLUTE_X},

	{0xEA, NOP, MODE_IMPLIED},

	{0x09, ORA, MODE_IMMEDIATE},
	{0x05, ORA, MODE_ZERO_PAGE},
	{0x15, ORA, MODE_ZERO_PAGE_X},
	{0x0D, ORA, MODE_ABSOLUTE},
	{0x1D, ORA, MODE_ABSOLUTE_X},
	{0x19, ORA, MODE_ABSOLUTE_Y},
	{0x01, ORA, MODE_INDEXED_INDIRECT},
	{0x11, ORA, MODE_INDIRECT_INDEXED},

	{0xAA, TAX, MODE_IMPLIED},
	{0x8A, TXA, MODE_IMPLIED},
	{0xCA, DEX, MODE_IMPLIED},
	{0xE8, INX, MODE_IMPLIED},
	{0xA8, TAY, MODE_IMPLIED},
	{0x98, TYA, MODE_IMPLIED},
	{0x88, DEY, MODE_IMPLIED},
	{0xC8, INY, MODE_IMPLIED},

	{0x2A, ROL, MODE_ACCUMULATOR},
	{0x26, ROL, MODE_ZERO_PAGE},
	{0x36, ROL, MODE_ZERO_PAGE_X},
	{0x2E, ROL, MODE_ABSOLUTE},
	{0x3E, ROL, MODE_ABSOLUTE_X},

	{0x6A, ROR, MODE_ACCUMULATOR},
	{0x66, ROR, MODE_ZERO_PAGE},
	{0x76, ROR, MODE_ZERO_PAGE_X},
	{0x6E, ROR, MODE_ABSOLUTE},
	{0x7E, ROR, MODE_ABSOLUTE_X},

	{0x40, RTI, MODE_IMPLIED},
	{0x60, RTS, MODE_IMPLIED},

	{0xE9, SBC, MODE_IMMEDIATE},
	{0xE5, SBC, MODE_ZERO_PAGE},
	{0xF5, SBC, MODE_ZERO_PAGE_X},
	{0xED, SBC, MODE_ABSOLUTE},
	{0xFD, SBC, MODE_ABSOLUTE_X},
	{0xF9, SBC, MODE_ABSOLUTE_Y},
	{0xE1, SBC, MODE_INDEXED_INDIRECT},
	{0xF1, SBC, MODE_INDIRECT_INDEXED},

	{0x85, STA, MODE_ZERO_PAGE},
	{0x95, STA, MODE_ZERO_PAGE_X},
	{0x8D, STA, MODE_ABSOLUTE},
	{0x9D, STA, MODE_ABSOLUTE_X},
	{0x99, STA, MODE_ABSOLUTE_Y},
	{0x81, STA, MODE_INDEXED_INDIRECT},
	{0x91, STA, MODE_INDIRECT_INDEXED},

	{0x9A, TXS, MODE_IMPLIED},
	{0xBA, TSX, MODE_IMPLIED},
	{0x48, PHA, MODE_IMPLIED},
	{0x68, PLA, MODE_IMPLIED},
	{0x08, PHP, MODE_IMPLIED},
	{0x28, PLP, MODE_IMPLIED},

	{0x86, STX, MODE_ZERO_PAGE},
	{0x96, STX, MODE_ZERO_PAGE_Y},
	{0x8E, STX, MODE_ABSOLUTE},

	{0x84, STY, MODE_ZERO_PAGE},
	{0x94, STY, MODE_ZERO_PAGE_X},
	{0x8C, STY, MODE_ABSOLUTE},
}

// opcodeInfo is the decode table entry for an opcode byte.
type opcodeInfo struct {
	Mnemonic Mnemonic
	Mode     AddrMode
	Valid    bool
}

var (
	// decodeTable maps opcode bytes to (mnemonic, mode).
	decodeTable [256]opcodeInfo
	// encodeTable maps (mnemonic, mode) to opcode bytes.
	encodeTable [mnemonicCount][modeCount]struct {
		Opcode uint8
		Valid  bool
	}
)

func init() {
	for _, def := range opcodeDefs {
		if decodeTable[def.Opcode].Valid {
			panic(f("opcode $%02x defined twice", def.Opcode))
		}
		decodeTable[def.Opcode] = opcodeInfo{Mnemonic: def.Mnemonic, Mode: def.Mode, Valid: true}
		enc := &encodeTable[def.Mnemonic][def.Mode]
		enc.Opcode = def.Opcode
		enc.Valid = true
	}
}

// Legal returns true if the mnemonic supports the addressing mode.
func Legal(mn Mnemonic, mode AddrMode) bool {
	_, ok := lookupOpcode(mn, mode)
	return ok
}

// lookupOpcode finds the opcode byte of a (mnemonic, mode) pair.
func lookupOpcode(mn Mnemonic, mode AddrMode) (opcode uint8, ok bool) {
	if int(mn) < 0 || int(mn) >= mnemonicCount || int(mode) < 0 || int(mode) >= modeCount {
		return
	}
	enc := encodeTable[mn][mode]
	return enc.Opcode, enc.Valid
}

// Modes lists the addressing modes a mnemonic supports.
func (mn Mnemonic) Modes() (modes []AddrMode) {
	for mode := range modeCount {
		if Legal(mn, AddrMode(mode)) {
			modes = append(modes, AddrMode(mode))
		}
	}
	return
}

// Opcodes iterates over every legal opcode byte, with an instruction of
// that opcode and a zero operand.
func Opcodes() iter.Seq2[uint8, Instruction] {
	return func(yield func(opcode uint8, ins Instruction) bool) {
		for n := range decodeTable {
			if !decodeTable[n].Valid {
				continue
			}
			if !yield(uint8(n), Instruction{opcode: uint8(n)}) {
				return
			}
		}
	}
}
