package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// equateDepth limits the chain of equates referring to equates.
const equateDepth = 16

// Assembler is a single pass macro assembler for the 6502.
//
// Forward label references are always assembled in their two byte form,
// and patched when the whole source has been read.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Origin  uint16   // Address of the first assembled byte, unless moved by .org.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	addr      int // Current assembly address.
	expansion int // Macro expansion count, for @ label mangling.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// isIdentifier is true for words that can name an equate or label.
func isIdentifier(word string) bool {
	return identifierRe.MatchString(word)
}

// parseNumber parses $hex, %binary, and Go integer literals.
func parseNumber(word string) (value int, err error) {
	digits := word
	negative := false
	switch {
	case strings.HasPrefix(digits, "-"):
		negative = true
		digits = digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}

	var v64 int64
	switch {
	case strings.HasPrefix(digits, "$"):
		v64, err = strconv.ParseInt(digits[1:], 16, 32)
	case strings.HasPrefix(digits, "%"):
		v64, err = strconv.ParseInt(digits[1:], 2, 32)
	default:
		v64, err = strconv.ParseInt(digits, 0, 32)
	}
	if err != nil || len(digits) == 0 || digits[0] == '-' || digits[0] == '+' {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	if negative {
		value = -value
	}
	return
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	return asm.resolve(word, 0)
}

func (asm *Assembler) resolve(word string, depth int) (value int, err error) {
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	if depth > equateDepth {
		err = ErrParseNumber(word)
		return
	}

	switch word[0] {
	case '~':
		value, err = asm.resolve(word[1:], depth+1)
		value = ^value & 0xffff
		return
	case '<':
		value, err = asm.resolve(word[1:], depth+1)
		value &= 0xff
		return
	case '>':
		value, err = asm.resolve(word[1:], depth+1)
		value = (value >> 8) & 0xff
		return
	case '\'':
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	case '*':
		value = asm.addr
		if len(word) > 1 {
			var offset int
			offset, err = parseNumber(word[1:])
			value += offset
		}
		return
	}

	if !isIdentifier(word) {
		value, err = parseNumber(word)
		return
	}

	equate, ok := asm.Equate[word]
	if ok {
		value, err = asm.resolve(equate, depth+1)
		return
	}

	addr, ok := asm.Label[word]
	if ok {
		value = int(addr)
		return
	}

	err = ErrLabelMissing(word)
	return
}

// valueOrLink returns the value of a word, or the name of a label that
// has not been defined yet.
func (asm *Assembler) valueOrLink(word string) (value int, label string, err error) {
	value, err = asm.valueOf(word)
	var missing ErrLabelMissing
	if errors.As(err, &missing) && string(missing) == word {
		value = 0
		label = word
		err = nil
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		var known int
		known, err = asm.valueOf(key)
		if err != nil {
			// Ignore non-integer equates. They may be operands
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(known)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(int(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > 0xffff || st_int64 < -0x8000 {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

var (
	characterRe  = regexp.MustCompile(`'\\?[^']'`)
	expressionRe = regexp.MustCompile(`\$\([^\$]*\)`)
)

// parseLine parses a single line into words, handling equates, labels, and macros.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = characterRe.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = expressionRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.ToLower(words[0]) == ".equ" {
		if len(words) != 3 || !isIdentifier(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !isIdentifier(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint16, 16)
		}
		asm.Label[label] = uint16(asm.addr)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		mangle := fmt.Sprintf("%v_%v_", name, asm.expansion)
		asm.expansion++

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", mangle)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			var se *ErrSyntax
			if !errors.As(err, &se) {
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.addr = int(asm.Origin)
	asm.expansion = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && strings.ToLower(words[0]) == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 || !isIdentifier(words[1]) {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && strings.ToLower(words[0]) == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of forward labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}

		ins, ins_err := op.Instruction()
		if ins_err == nil && ins.Mnemonic().IsBranch() {
			var rel Operand
			rel, err = branchOperand(op.Addr, int(addr))
			if err != nil {
				return
			}
			op.Bytes[1] = rel.Byte()
			continue
		}

		if len(op.Bytes) < 2 {
			log.Fatalf("Unable to link label '%s' to line %d: %v", op.LinkLabel, op.LineNo, op.Words)
		}
		size := len(op.Bytes)
		op.Bytes[size-2] = uint8(addr)
		op.Bytes[size-1] = uint8(addr >> 8)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// emit appends an opcode at the current address.
func (asm *Assembler) emit(op Opcode) (err error) {
	if asm.addr+len(op.Bytes) > MEMORY_SIZE {
		err = ErrValueRange
		return
	}

	op.Addr = uint16(asm.addr)
	if asm.Verbose {
		log.Printf("%04x: % x", op.Addr, op.Bytes)
	}

	asm.Opcode = append(asm.Opcode, op)
	asm.addr += len(op.Bytes)

	return
}

// branchOperand computes the displacement of a branch at from to target.
func branchOperand(from uint16, target int) (op Operand, err error) {
	offset := target - (int(from) + 2)
	if offset < -128 || offset > 127 {
		err = ErrBranchRange{From: from, To: uint16(target)}
		return
	}
	op = Relative(int8(offset))
	return
}

// byteValue checks that a value fits in a byte, signed or unsigned.
func byteValue(value int) (b uint8, err error) {
	if value < -0x80 || value > 0xff {
		err = ErrValueRange
		return
	}
	b = uint8(value)
	return
}

// wordValue checks that a value is an address.
func wordValue(value int) (w uint16, err error) {
	if value < 0 || value > 0xffff {
		err = ErrValueRange
		return
	}
	w = uint16(value)
	return
}

// parseOperand parses the operand of a mnemonic into its addressing mode.
func (asm *Assembler) parseOperand(mn Mnemonic, arg string) (op Operand, label string, err error) {
	upper := strings.ToUpper(arg)

	switch {
	case len(arg) == 0:
		switch {
		case Legal(mn, MODE_IMPLIED):
			op = Implied()
		case Legal(mn, MODE_ACCUMULATOR):
			op = Accumulator()
		default:
			err = ErrOpcodeValueMissing
		}
		return
	case upper == "A":
		op = Accumulator()
		return
	case mn.IsBranch():
		var target int
		target, label, err = asm.valueOrLink(arg)
		if err != nil || len(label) != 0 {
			op = Relative(0)
			return
		}
		if _, err = wordValue(target); err != nil {
			return
		}
		op, err = branchOperand(uint16(asm.addr), target)
		return
	case strings.HasPrefix(arg, "#"):
		var value int
		value, err = asm.valueOf(arg[1:])
		if err != nil {
			return
		}
		var b uint8
		b, err = byteValue(value)
		op = Immediate(b)
		return
	case strings.HasPrefix(arg, "("):
		var mode AddrMode
		var inner string
		switch {
		case strings.HasSuffix(upper, ",X)"):
			mode, inner = MODE_INDEXED_INDIRECT, arg[1:len(arg)-3]
		case strings.HasSuffix(upper, "),Y"):
			mode, inner = MODE_INDIRECT_INDEXED, arg[1:len(arg)-3]
		case strings.HasSuffix(arg, ")"):
			mode, inner = MODE_INDIRECT, arg[1:len(arg)-1]
		default:
			err = ErrOperandInvalid
			return
		}

		var value int
		if mode == MODE_INDIRECT {
			value, label, err = asm.valueOrLink(inner)
			if err != nil {
				return
			}
			var w uint16
			w, err = wordValue(value)
			op = Indirect(w)
			return
		}

		value, err = asm.valueOf(inner)
		if err != nil {
			return
		}
		if value < 0 || value > 0xff {
			err = ErrValueRange
			return
		}
		op = Operand{Mode: mode, Value: uint16(value)}
		return
	}

	zp, abs := MODE_ZERO_PAGE, MODE_ABSOLUTE
	switch {
	case strings.HasSuffix(upper, ",X"):
		zp, abs = MODE_ZERO_PAGE_X, MODE_ABSOLUTE_X
		arg = arg[:len(arg)-2]
	case strings.HasSuffix(upper, ",Y"):
		zp, abs = MODE_ZERO_PAGE_Y, MODE_ABSOLUTE_Y
		arg = arg[:len(arg)-2]
	}

	value, label, err := asm.valueOrLink(arg)
	if err != nil {
		return
	}
	w, err := wordValue(value)
	if err != nil {
		return
	}

	// $0010 is assembled as absolute, $10 as zero page.
	wide := strings.HasPrefix(arg, "$") && len(arg) > 3

	switch {
	case len(label) == 0 && !wide && w <= 0xff && Legal(mn, zp):
		op = Operand{Mode: zp, Value: w}
	case Legal(mn, abs):
		op = Operand{Mode: abs, Value: w}
	case len(label) != 0:
		err = ErrLabelMissing(label)
	case Legal(mn, zp):
		err = ErrValueRange
	default:
		err = ErrIllegalMode{Mnemonic: mn, Mode: abs}
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	switch strings.ToLower(words[0]) {
	case ".org":
		if len(words) != 2 {
			err = ErrDirectiveSyntax
			return
		}
		var value int
		value, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		var addr uint16
		addr, err = wordValue(value)
		if err != nil {
			return
		}
		if len(asm.Opcode) != 0 && int(addr) < asm.addr {
			err = ErrOriginOverlap
			return
		}
		asm.addr = int(addr)
	case ".byte":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		data := make([]byte, 0, len(words)-1)
		for _, word := range words[1:] {
			var value int
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			var b uint8
			b, err = byteValue(value)
			if err != nil {
				return
			}
			data = append(data, b)
		}
		err = asm.emit(Opcode{LineNo: lineno, Words: words, Bytes: data, Data: true})
	case ".word":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		// One opcode per word, so each can be linked.
		for _, word := range words[1:] {
			var value int
			var label string
			value, label, err = asm.valueOrLink(word)
			if err != nil {
				return
			}
			if value < -0x8000 || value > 0xffff {
				err = ErrValueRange
				return
			}
			err = asm.emit(Opcode{
				LineNo:    lineno,
				Words:     []string{words[0], word},
				Bytes:     []byte{uint8(value), uint8(value >> 8)},
				LinkLabel: label,
				Data:      true,
			})
			if err != nil {
				return
			}
		}
	default:
		mn, ok := LookupMnemonic(strings.ToUpper(words[0]))
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		if len(words) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var arg string
		if len(words) == 2 {
			arg = words[1]
		}

		var op Operand
		var label string
		op, label, err = asm.parseOperand(mn, arg)
		if err != nil {
			return
		}

		var ins Instruction
		ins, err = NewInstruction(mn, op)
		if err != nil {
			return
		}

		err = asm.emit(Opcode{LineNo: lineno, Words: words, Bytes: ins.Encode(), LinkLabel: label})
	}

	return
}
