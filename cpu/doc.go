// Package cpu implements the microprocessor and assembler for an 8-bit
// MOS 6502 class system.
//
// The CPU consists of a 16-bit program counter (PC), an 8-bit stack pointer
// (SP) into the stack page at $0100-$01FF, an accumulator (A), two index
// registers (X and Y), and seven status flags. Instructions are decoded from
// a flat 64K memory into an Instruction value, which is a (mnemonic,
// addressing mode) pair from the documented opcode table plus the operand
// captured at decode time. Every Instruction encodes back to exactly the
// bytes it was decoded from.
//
// The assembler provides a line oriented assembly language for the
// instruction set, supporting macros, labels, equates, and compile-time
// expression evaluation. The disassembler produces text the assembler
// accepts.
package cpu
