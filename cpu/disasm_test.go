package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// listingText returns the source column of a listing.
func listingText(listing string) (lines []string) {
	for _, line := range strings.Split(strings.TrimSuffix(listing, "\n"), "\n") {
		lines = append(lines, line[len("$0000: ")+8+2:])
	}
	return
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	code := []byte{
		0xa9, 0x05,       // LDA #$05
		0x8d, 0x34, 0x12, // STA $1234
		0xd0, 0xfb,       // BNE $0202
		0x02,             // illegal
		0x0a,             // ASL A
		0xad, 0x34,       // truncated
	}

	var sb strings.Builder
	err := Disassemble(&sb, code, 0x0200)
	assert.NoError(err)

	expected := []string{
		"$0200: A9 05     LDA #$05",
		"$0202: 8D 34 12  STA $1234",
		"$0205: D0 FB     BNE $0202",
		"$0207: 02        .byte $02",
		"$0208: 0A        ASL A",
		"$0209: AD        .byte $AD",
		"$020A: 34        .byte $34",
	}
	assert.Equal(strings.Join(expected, "\n")+"\n", sb.String())
}

func TestDisassembleRoundTrip(t *testing.T) {
	assert := assert.New(t)

	const origin = 0x0400

	var code []byte
	for _, template := range Opcodes() {
		for _, value := range []uint16{0x0010, 0x00f0, 0x1234} {
			ins := MustInstruction(template.Mnemonic(), Operand{Mode: template.Mode(), Value: value})
			code = ins.AppendEncode(code)
		}
	}
	code = append(code, 0x02, 0xff)

	var sb strings.Builder
	err := Disassemble(&sb, code, origin)
	if err != nil {
		t.Fatal(err)
	}

	asm := &Assembler{Origin: origin}
	prog, err := asm.Parse(strings.NewReader(strings.Join(listingText(sb.String()), "\n")))
	if err != nil {
		t.Fatal(err)
	}

	start, image := prog.Binary()
	assert.Equal(uint16(origin), start)
	assert.Equal(code, image)
}

func TestInstructionStringAt(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("BEQ $0206", MustInstruction(BEQ, Relative(4)).StringAt(0x0200))
	assert.Equal("BMI $01F2", MustInstruction(BMI, Relative(-16)).StringAt(0x0200))
	assert.Equal("LDA #$05", MustInstruction(LDA, Immediate(5)).StringAt(0x0200))
}
