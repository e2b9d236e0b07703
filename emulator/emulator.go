package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/m6502/cpu"
)

const (
	TICK_LIMIT = 1_000_000 // Default limit of ticks for Run.
)

var _emulator_defines = map[string]string{
	"TICK_LIMIT": fmt.Sprintf("%v", TICK_LIMIT),
}

// Emulator state. CPU + memory + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Console Console // Memory mapped console.

	MaxTicks int // Tick limit for Run. Zero selects TICK_LIMIT.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := maps.Clone(_emulator_defines)
	maps.Insert(defines, emu.Cpu.Defines())
	maps.Insert(defines, emu.Console.Defines())
	return maps.All(defines)
}

// Reset the CPU, load the program, and point PC at its start.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()
	emu.Program.Load(emu.Cpu.Memory)
	emu.Cpu.Registers.PC = emu.Program.Start()

	if emu.Verbose {
		log.Printf("emulator: start at $%04x", emu.Cpu.Registers.PC)
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() uint16 {
	return emu.Cpu.Registers.PC
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Pc())
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator. done is set once BRK has
// executed, or PC has left the program image.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Pc()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	if !emu.Program.Contains(pc) {
		done = true
		return
	}

	ins, err := emu.Cpu.FetchCode()
	if err != nil {
		return
	}

	mem := emu.Cpu.Memory
	read, write := ins.Access()
	addr, _ := ins.Operand().Address(mem, &emu.Cpu.Registers)

	if read {
		err = emu.Console.Load(mem, addr)
		if err != nil {
			return
		}
	}

	err = emu.Cpu.Execute(ins)
	if err != nil {
		return
	}

	if write {
		err = emu.Console.Store(mem, addr)
		if err != nil {
			return
		}
	}

	if ins.Mnemonic() == cpu.BRK || !emu.Program.Contains(emu.Pc()) {
		done = true
	}

	return
}

// Run ticks the emulator until done, or until the tick limit.
func (emu *Emulator) Run() (err error) {
	limit := emu.MaxTicks
	if limit == 0 {
		limit = TICK_LIMIT
	}

	for done := false; !done; {
		if emu.Ticks() >= limit {
			err = &ErrRuntime{LineNo: emu.LineNo(), Pc: emu.Pc(), Err: ErrTickLimit}
			return
		}
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
