package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/ezrec/m6502/cpu"
	"github.com/ezrec/m6502/emulator"
)

// registerReport lists the registers, highlighting those that differ from
// the reset state.
func registerReport(w io.Writer, reg *cpu.Registers) {
	changed := color.New(color.FgYellow, color.Bold).SprintFunc()
	reset := cpu.Registers{SP: cpu.RESET_SP}

	for _, kind := range cpu.RegisterKinds {
		text := cpu.FormatRegister(kind, reg.Value(kind))
		if reg.Value(kind) != reset.Value(kind) {
			text = changed(text)
		}
		fmt.Fprintf(w, "% 5s: %v\n", kind.String(), text)
	}
}

func main() {
	var compile string
	var binary string
	var origin uint
	var save string
	var disasm bool
	var input string
	var output string
	var maxTicks int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&binary, "b", "", "Raw binary file to load")
	flag.UintVar(&origin, "org", 0x0200, "Load address of the program")
	flag.StringVar(&save, "s", "", "Save assembled binary to file, do not execute")
	flag.BoolVar(&disasm, "d", false, "Disassemble the program, do not execute")
	flag.StringVar(&input, "i", "-", "Console input")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.IntVar(&maxTicks, "n", emulator.TICK_LIMIT, "Maximum instructions to execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if origin > 0xffff {
		log.Fatalf("-org: $%x is outside of memory", origin)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxTicks = maxTicks

	prog := &cpu.Program{}

	switch {
	case len(compile) != 0 && len(binary) != 0:
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose, Origin: uint16(origin)}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(binary) != 0:
		data, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		if int(origin)+len(data) > cpu.MEMORY_SIZE {
			log.Fatalf("%v: %d bytes do not fit at $%04x", binary, len(data), origin)
		}
		prog.Opcodes = append(prog.Opcodes, cpu.Opcode{
			Addr:  uint16(origin),
			Bytes: data,
			Data:  true,
		})
	}

	if len(save) != 0 {
		_, image := prog.Binary()
		err := os.WriteFile(save, image, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	if disasm {
		start, image := prog.Binary()
		err := cpu.Disassemble(os.Stdout, image, start)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	if input == "-" {
		emu.Console.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Console.Input = inf
	}

	if output == "-" {
		emu.Console.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Console.Output = ouf
	}

	emu.Program = prog
	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if verbose || err != nil {
		registerReport(os.Stderr, &emu.Cpu.Registers)
	}
	if err != nil {
		log.Fatal(err)
	}
}
