package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

// Interrupt vector locations.
const (
	VECTOR_NMI   = 0xfffa // Non-maskable interrupt vector.
	VECTOR_RESET = 0xfffc // Reset vector.
	VECTOR_IRQ   = 0xfffe // IRQ and BRK vector.
)

var _cpu_defines = map[string]string{
	"ZERO_PAGE":    fmt.Sprintf("0x%x", ZERO_PAGE),
	"STACK_PAGE":   fmt.Sprintf("0x%x", STACK_PAGE),
	"MEMORY_SIZE":  fmt.Sprintf("0x%x", MEMORY_SIZE),
	"RESET_SP":     fmt.Sprintf("0x%x", RESET_SP),
	"VECTOR_NMI":   fmt.Sprintf("0x%x", VECTOR_NMI),
	"VECTOR_RESET": fmt.Sprintf("0x%x", VECTOR_RESET),
	"VECTOR_IRQ":   fmt.Sprintf("0x%x", VECTOR_IRQ),
}

// ErrExecute is returned when an instruction could not be executed.
type ErrExecute struct {
	Instruction Instruction
	Pc          uint16
	Err         error
}

func (err ErrExecute) Error() string {
	return f("$%04x: %v: %v", err.Pc, err.Instruction.String(), err.Err)
}

func (err ErrExecute) Unwrap() error {
	return err.Err
}

// Cpu is the simulation context of a single processor: its registers and
// its memory. Independent Cpu values share no state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers Registers // Register file.
	Memory    *Memory   // Attached memory.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU with 64K of memory, in the reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: &Memory{},
	}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Stack returns the hardware stack of the CPU.
func (cpu *Cpu) Stack() Stack {
	return Stack{Memory: cpu.Memory, Registers: &cpu.Registers}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = cpu.Registers.String()

	stack := cpu.Stack()
	strval := "--"
	if !stack.Empty() {
		strval = fmt.Sprintf("%02X (depth %d)", stack.Peek(), stack.Depth())
	}
	text += fmt.Sprintf("% 5s: %v\n", "stack", strval)

	return
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Sets the stack pointer to its reset value.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers = Registers{}
	cpu.Stack().Reset()
	cpu.Memory.Clear()
	cpu.Ticks = 0
}

// LoadCode copies code into memory at addr, and points PC at it.
func (cpu *Cpu) LoadCode(addr uint16, code []byte) {
	if cpu.Verbose {
		log.Printf("cpu: load %d bytes at $%04x", len(code), addr)
	}

	cpu.Memory.Load(addr, code)
	cpu.Registers.PC = addr
}

// FetchCode decodes the instruction at PC.
func (cpu *Cpu) FetchCode() (ins Instruction, err error) {
	return Decode(cpu.Memory, cpu.Registers.PC)
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	ins, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(ins)
	return
}

// Execute executes a single decoded instruction at PC.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	pc := cpu.Registers.PC
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		rerr, ok := r.(error)
		if !ok || !errors.Is(rerr, ErrInvalidOperation) {
			panic(r)
		}
		cpu.Registers.PC = pc
		err = ErrExecute{Instruction: ins, Pc: pc, Err: rerr}
	}()

	if cpu.Verbose {
		log.Printf("%04x: %v", pc, ins)
	}

	stack := cpu.Stack()
	depth := stack.Depth()

	ins.Evaluate(cpu.Memory, &cpu.Registers)

	if cpu.Verbose {
		switch {
		case ins.Mnemonic() == PHA || ins.Mnemonic() == PHP || ins.Mnemonic() == JSR:
			if stack.Depth() < depth {
				log.Printf("cpu: stack wrapped on push")
			}
		case ins.Mnemonic() == PLA || ins.Mnemonic() == PLP || ins.Mnemonic() == RTS || ins.Mnemonic() == RTI:
			if stack.Depth() > depth {
				log.Printf("cpu: stack wrapped on pop")
			}
		}
	}

	cpu.Ticks += 1

	return
}
