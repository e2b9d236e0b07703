package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0x0200, Words: []string{"LDA", "#$05"}, Bytes: []byte{0xa9, 0x05}},
			{LineNo: 2, Addr: 0x0202, Words: []string{"STA", "$1234"}, Bytes: []byte{0x8d, 0x34, 0x12}},
			{LineNo: 3, Addr: 0x0205, Words: []string{"BRK"}, Bytes: []byte{0x00}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x0200)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0x0204)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(0x0205)
	assert.NotNil(dbg.Opcode)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	for _, pc := range []uint16{0x0000, 0x01ff, 0x0206, 0xffff} {
		dbg := prog.Debug(pc)
		assert.Nil(dbg.Opcode)
		assert.Equal(0, dbg.Index)
		assert.False(prog.Contains(pc))
	}

	assert.True(prog.Contains(0x0203))
}

func TestProgram_Start(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	assert.Equal(uint16(0), prog.Start())

	prog = &Program{
		Opcodes: []Opcode{
			{Addr: 0x0300, Bytes: []byte{1, 2}, Data: true},
			{Addr: 0x0302, Bytes: []byte{0xea}},
		},
	}
	assert.Equal(uint16(0x0302), prog.Start())

	prog.Opcodes = prog.Opcodes[:1]
	assert.Equal(uint16(0x0300), prog.Start())
}

func TestProgram_Bytes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var addrs []uint16
	var values []byte
	for addr, value := range prog.Bytes() {
		addrs = append(addrs, addr)
		values = append(values, value)
	}
	assert.Equal([]uint16{0x0200, 0x0201, 0x0202, 0x0203, 0x0204, 0x0205}, addrs)
	assert.Equal([]byte{0xa9, 0x05, 0x8d, 0x34, 0x12, 0x00}, values)

	// Early exit
	count := 0
	for range prog.Bytes() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(3, count)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	origin, image := (&Program{}).Binary()
	assert.Equal(uint16(0), origin)
	assert.Empty(image)

	prog := &Program{
		Opcodes: []Opcode{
			{Addr: 0x1000, Bytes: []byte{0xa9, 0x01}},
			{Addr: 0x1004, Bytes: []byte{0x00}},
		},
	}
	origin, image = prog.Binary()
	assert.Equal(uint16(0x1000), origin)
	assert.Equal([]byte{0xa9, 0x01, 0x00, 0x00, 0x00}, image)
}

func TestProgram_Load(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Write(0x0206, 0x77)
	testProgram().Load(mem)

	assert.Equal(uint8(0xa9), mem.Read(0x0200))
	assert.Equal(uint8(0x12), mem.Read(0x0204))
	assert.Equal(uint8(0x00), mem.Read(0x0205))
	assert.Equal(uint8(0x77), mem.Read(0x0206))
}

func TestOpcode_Instruction(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	ins, err := prog.Opcodes[1].Instruction()
	assert.NoError(err)
	assert.Equal(MustInstruction(STA, Absolute(0x1234)), ins)
	assert.Equal(0x0205, prog.Opcodes[1].End())

	data := Opcode{Bytes: []byte{0xa9, 0x00}, Data: true}
	_, err = data.Instruction()
	assert.True(errors.Is(err, ErrInstructionInvalid))
}

func TestProgram_Assembled(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"start: LDX #0",
		"loop:  INX",
		"       BNE loop",
		"       .org $0280",
		"msg:   .byte 'H' 'i'",
	}

	asm := &Assembler{Origin: 0x0200}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(uint16(0x0200), prog.Start())

	dbg := prog.Debug(0x0203)
	assert.NotNil(dbg.Opcode)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	origin, image := prog.Binary()
	assert.Equal(uint16(0x0200), origin)
	assert.Equal(0x82, len(image))
	assert.Equal([]byte{0xa2, 0x00, 0xe8, 0xd0, 0xfd}, image[:5])
	assert.Equal([]byte{'H', 'i'}, image[0x80:])
}
