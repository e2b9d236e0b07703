package cpu

import (
	"errors"

	"github.com/ezrec/m6502/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrInvalidOperation = errors.New(f("invalid operation"))
	ErrTruncated        = errors.New(f("instruction truncated"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrDirectiveSyntax    = errors.New(f("directive syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOriginOverlap      = errors.New(f(".org moves backwards"))
)

// ErrIllegalOpcode is returned when an opcode byte is not in the opcode table.
type ErrIllegalOpcode struct {
	Opcode uint8
	Pc     uint16
}

func (err ErrIllegalOpcode) Error() string {
	return f("illegal opcode $%02x at $%04x", err.Opcode, err.Pc)
}

// Is matches any ErrIllegalOpcode.
func (err ErrIllegalOpcode) Is(target error) (ok bool) {
	_, ok = target.(ErrIllegalOpcode)
	return
}

// ErrIllegalMode is returned when a mnemonic does not support an addressing mode.
type ErrIllegalMode struct {
	Mnemonic Mnemonic
	Mode     AddrMode
}

func (err ErrIllegalMode) Error() string {
	return f("%v does not support %v addressing", err.Mnemonic.String(), err.Mode.String())
}

// Is matches any ErrIllegalMode.
func (err ErrIllegalMode) Is(target error) (ok bool) {
	_, ok = target.(ErrIllegalMode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrBranchRange is returned when a branch target is not reachable with a
// signed 8-bit displacement.
type ErrBranchRange struct {
	From uint16
	To   uint16
}

func (err ErrBranchRange) Error() string {
	return f("branch from $%04x to $%04x out of range", err.From, err.To)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
