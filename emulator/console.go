package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/ezrec/m6502/cpu"
)

// Console port addresses.
const (
	CONSOLE_OUT = 0xf001 // Stores write a byte to the console output.
	CONSOLE_IN  = 0xf004 // Loads read a byte from the console input, or 0 at end of input.
)

// Console is a memory mapped byte stream device. It wraps an io.Reader for
// input and an io.Writer for output.
type Console struct {
	Input  io.Reader
	Output io.Writer
}

// Defines returns an iter of defines for the console.
func (con *Console) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"CONSOLE_OUT": fmt.Sprintf("0x%x", CONSOLE_OUT),
		"CONSOLE_IN":  fmt.Sprintf("0x%x", CONSOLE_IN),
	})
}

// Load prepares the input port for a read at addr.
func (con *Console) Load(mem *cpu.Memory, addr uint16) (err error) {
	if addr != CONSOLE_IN {
		return
	}

	var value uint8
	if con.Input != nil {
		var one [1]byte
		_, err = io.ReadFull(con.Input, one[:])
		switch {
		case err == nil:
			value = one[0]
		case errors.Is(err, io.EOF):
			err = nil
		default:
			return
		}
	}

	mem.Write(CONSOLE_IN, value)
	return
}

// Store sends the output port after a write to addr.
func (con *Console) Store(mem *cpu.Memory, addr uint16) (err error) {
	if addr != CONSOLE_OUT || con.Output == nil {
		return
	}

	_, err = con.Output.Write([]byte{mem.Read(CONSOLE_OUT)})
	return
}
