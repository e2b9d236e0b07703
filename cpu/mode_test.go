package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddrModeLength(t *testing.T) {
	assert := assert.New(t)

	table := map[AddrMode]uint16{
		MODE_IMPLIED:          0,
		MODE_ACCUMULATOR:      0,
		MODE_IMMEDIATE:        1,
		MODE_ZERO_PAGE:        1,
		MODE_ZERO_PAGE_X:      1,
		MODE_ZERO_PAGE_Y:      1,
		MODE_ABSOLUTE:         2,
		MODE_ABSOLUTE_X:       2,
		MODE_ABSOLUTE_Y:       2,
		MODE_INDIRECT:         2,
		MODE_INDEXED_INDIRECT: 1,
		MODE_INDIRECT_INDEXED: 1,
		MODE_RELATIVE:         1,
	}

	assert.Equal(modeCount, len(table))
	for mode, length := range table {
		assert.Equal(length, mode.Length(), mode.String())
	}
}

func TestOperandString(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		op   Operand
		text string
	}{
		{Implied(), ""},
		{Accumulator(), "A"},
		{Immediate(5), "#$05"},
		{ZeroPage(0x10), "$10"},
		{ZeroPageX(0x10), "$10,X"},
		{ZeroPageY(0x10), "$10,Y"},
		{Absolute(0x1234), "$1234"},
		{AbsoluteX(0x0010), "$0010,X"},
		{AbsoluteY(0x1234), "$1234,Y"},
		{Indirect(0x1234), "($1234)"},
		{IndexedIndirect(0x10), "($10,X)"},
		{IndirectIndexed(0x10), "($10),Y"},
		{Relative(2), "*+4"},
		{Relative(-2), "*+0"},
		{Relative(-10), "*-8"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.op.String())
		assert.Equal(int(entry.op.Length()), len(entry.op.Encode()), entry.text)
	}
}

func TestOperandReadWrite(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	reg := &Registers{X: 2, Y: 3}

	mem.WriteWord(0x20, 0x3000)
	mem.WriteWord(0x42, 0x4000)

	table := []struct {
		op   Operand
		addr uint16
	}{
		{ZeroPage(0x10), 0x0010},
		{ZeroPageX(0xff), 0x0001},
		{ZeroPageY(0x10), 0x0013},
		{Absolute(0x1234), 0x1234},
		{AbsoluteX(0x1234), 0x1236},
		{AbsoluteY(0x1234), 0x1237},
		{IndexedIndirect(0x40), 0x4000},
		{IndirectIndexed(0x20), 0x3003},
	}

	for n, entry := range table {
		addr, ok := entry.op.Address(mem, reg)
		assert.True(ok, entry.op.String())
		assert.Equal(entry.addr, addr, entry.op.String())

		entry.op.Write(mem, reg, uint8(0x80+n))
		assert.Equal(uint8(0x80+n), mem.Read(entry.addr), entry.op.String())
		assert.Equal(uint8(0x80+n), entry.op.Read(mem, reg), entry.op.String())
	}

	reg.A = 0x55
	assert.Equal(uint8(0x55), Accumulator().Read(mem, reg))
	Accumulator().Write(mem, reg, 0xaa)
	assert.Equal(uint8(0xaa), reg.A)

	assert.Equal(uint8(0x42), Immediate(0x42).Read(mem, reg))
}

func TestOperandInvalid(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	reg := &Registers{}

	for _, op := range []Operand{Immediate(1), Implied(), Relative(4), Indirect(0x1234)} {
		_, ok := op.Address(mem, reg)
		assert.False(ok)

		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				assert.True(ok, op.Mode.String())
				assert.True(errors.Is(err, ErrInvalidOperation), op.Mode.String())
			}()
			op.Write(mem, reg, 0)
		}()
	}

	assert.Panics(func() { Implied().Read(mem, reg) })
	assert.Panics(func() { ZeroPage(0).Destination(mem) })
}

func TestOperandDestination(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.WriteWord(0x0300, 0xc000)

	assert.Equal(uint16(0x1234), Absolute(0x1234).Destination(mem))
	assert.Equal(uint16(0xc000), Indirect(0x0300).Destination(mem))
}
