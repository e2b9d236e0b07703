package cpu

import (
	"fmt"
	"io"
	"strings"
)

// StringAt returns the assembly language representation of the
// instruction located at pc. Branches are shown with their absolute target.
func (ins Instruction) StringAt(pc uint16) string {
	if ins.Mode() == MODE_RELATIVE {
		return fmt.Sprintf("%v $%04X", ins.Mnemonic().String(), ins.Target(pc))
	}
	return ins.String()
}

// hexBytes formats bytes as space separated hex pairs.
func hexBytes(code []byte) string {
	var sb strings.Builder
	for n, b := range code {
		if n > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// Disassemble writes a listing of code loaded at origin, one line per
// instruction:
//
//	$0200: A9 05     LDA #$05
//
// Bytes that do not start a complete instruction are listed as .byte
// directives. The text column assembles back to the same bytes when
// assembled at origin.
func Disassemble(w io.Writer, code []byte, origin uint16) (err error) {
	for offset := 0; offset < len(code); {
		addr := origin + uint16(offset)

		var text string
		ins, size, decode_err := DecodeBytes(code[offset:])
		if decode_err != nil {
			size = 1
			text = fmt.Sprintf(".byte $%02X", code[offset])
		} else {
			text = ins.StringAt(addr)
		}

		_, err = fmt.Fprintf(w, "$%04X: %-8s  %s\n", addr, hexBytes(code[offset:offset+size]), text)
		if err != nil {
			return
		}

		offset += size
	}

	return
}
