package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodes(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for opcode, ins := range Opcodes() {
		count++
		assert.Equal(opcode, ins.Opcode())
		assert.True(Legal(ins.Mnemonic(), ins.Mode()))
	}
	assert.Equal(151, count)
	assert.Equal(len(opcodeDefs), count)

	// Every mnemonic has at least one mode.
	for n := range mnemonicCount {
		assert.NotEmpty(Mnemonic(n).Modes(), Mnemonic(n).String())
	}
}

func TestInstructionRoundTrip(t *testing.T) {
	assert := assert.New(t)

	values := []uint16{0x0000, 0x0001, 0x007f, 0x0080, 0x00ff, 0x1234, 0xff00, 0xffff}

	for _, template := range Opcodes() {
		for _, value := range values {
			op := Operand{Mode: template.Mode(), Value: value}
			ins, err := NewInstruction(template.Mnemonic(), op)
			assert.NoError(err)

			code := ins.Encode()
			assert.Equal(int(1+ins.Mode().Length()), len(code), ins.String())
			assert.Equal(int(ins.Length()), len(code), ins.String())

			decoded, size, err := DecodeBytes(code)
			assert.NoError(err, ins.String())
			assert.Equal(len(code), size)
			assert.Equal(ins, decoded, ins.String())

			mem := &Memory{}
			mem.Load(0x0400, code)
			decoded, err = Decode(mem, 0x0400)
			assert.NoError(err, ins.String())
			assert.Equal(ins, decoded, ins.String())
		}
	}
}

func TestInstructionIllegalMode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		mn Mnemonic
		op Operand
	}{
		{ADC, Accumulator()},
		{ADC, ZeroPageY(0x10)},
		{STA, Immediate(1)},
		{JMP, ZeroPage(0x10)},
		{LDX, ZeroPageX(0x10)},
		{NOP, Immediate(0)},
		{BNE, Absolute(0x1234)},
		{Mnemonic(-1), Implied()},
		{LDA, Operand{Mode: AddrMode(99)}},
	}

	for _, entry := range table {
		_, err := NewInstruction(entry.mn, entry.op)
		assert.True(errors.Is(err, ErrIllegalMode{}), entry.op.String())
		assert.Panics(func() { MustInstruction(entry.mn, entry.op) })
	}
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		ins  Instruction
		text string
	}{
		{Instruction{}, "BRK"},
		{MustInstruction(LDA, Immediate(5)), "LDA #$05"},
		{MustInstruction(STA, IndirectIndexed(0x10)), "STA ($10),Y"},
		{MustInstruction(JMP, Indirect(0x1234)), "JMP ($1234)"},
		{MustInstruction(BNE, Relative(2)), "BNE *+4"},
		{MustInstruction(ASL, Accumulator()), "ASL A"},
		{MustInstruction(LDX, ZeroPageY(0x80)), "LDX $80,Y"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.ins.String())
	}
}

func TestInstructionCanonical(t *testing.T) {
	assert := assert.New(t)

	// Bits beyond the encoded width are dropped.
	a := MustInstruction(LDA, Operand{Mode: MODE_ZERO_PAGE, Value: 0x1234})
	b := MustInstruction(LDA, ZeroPage(0x34))
	assert.Equal(a, b)

	c := MustInstruction(NOP, Operand{Mode: MODE_IMPLIED, Value: 0x55})
	assert.Equal(Instruction{opcode: 0xea}, c)
}

func TestDecodeErrors(t *testing.T) {
	assert := assert.New(t)

	_, _, err := DecodeBytes(nil)
	assert.True(errors.Is(err, ErrTruncated))

	_, _, err = DecodeBytes([]byte{0xad, 0x34})
	assert.True(errors.Is(err, ErrTruncated))

	_, _, err = DecodeBytes([]byte{0x02})
	assert.True(errors.Is(err, ErrIllegalOpcode{}))

	mem := &Memory{}
	mem.Write(0x0300, 0xff)
	_, err = Decode(mem, 0x0300)
	var illegal ErrIllegalOpcode
	assert.True(errors.As(err, &illegal))
	assert.Equal(uint8(0xff), illegal.Opcode)
	assert.Equal(uint16(0x0300), illegal.Pc)

	// STA (zp),Y is a legal opcode.
	ins, size, err := DecodeBytes([]byte{0x91, 0x10})
	assert.NoError(err)
	assert.Equal(2, size)
	assert.Equal(STA, ins.Mnemonic())
	assert.Equal(MODE_INDIRECT_INDEXED, ins.Mode())
}

func TestInstructionTarget(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint16(0x0206), MustInstruction(BEQ, Relative(4)).Target(0x0200))
	assert.Equal(uint16(0x01f2), MustInstruction(BEQ, Relative(-16)).Target(0x0200))
	assert.Equal(uint16(0x0001), MustInstruction(BEQ, Relative(1)).Target(0xfffe))
}
