package cpu

import (
	"errors"
	"testing"
)

func FuzzDecode(f *testing.F) {
	f.Add([]byte{0xa9, 0x05})
	f.Add([]byte{0x6c, 0xff, 0x10})
	f.Add([]byte{0x02})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, code []byte) {
		ins, size, err := DecodeBytes(code)
		if err != nil {
			if !errors.Is(err, ErrTruncated) && !errors.Is(err, ErrIllegalOpcode{}) {
				t.Fatalf("unexpected error %v", err)
			}
			return
		}
		if size != int(ins.Length()) {
			t.Fatalf("%v: size %d, length %d", ins, size, ins.Length())
		}
		encoded := ins.Encode()
		for n := range encoded {
			if encoded[n] != code[n] {
				t.Fatalf("%v: encoded % x, code % x", ins, encoded, code[:size])
			}
		}
	})
}

func FuzzExecute(f *testing.F) {
	f.Add([]byte{0xa9, 0x05, 0x69, 0x03, 0x00}, uint8(0))
	f.Add([]byte{0x20, 0x00, 0x80, 0x60}, uint8(0xff))
	f.Add([]byte{0x68, 0x68, 0x40}, uint8(0x80))

	f.Fuzz(func(t *testing.T, code []byte, sp uint8) {
		cpu := NewCpu()
		cpu.LoadCode(0x0200, code)
		cpu.Registers.SP = sp

		for range 64 {
			err := cpu.Tick()
			if err != nil {
				if !errors.Is(err, ErrIllegalOpcode{}) {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
		}
	})
}
