package cpu

// Mnemonic is an instruction name.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	ADC = Mnemonic(iota) // ADC
	AND                  // AND
	ASL                  // ASL
	BCC                  // BCC
	BCS                  // BCS
	BEQ                  // BEQ
	BIT                  // BIT
	BMI                  // BMI
	BNE                  // BNE
	BPL                  // BPL
	BRK                  // BRK
	BVC                  // BVC
	BVS                  // BVS
	CLC                  // CLC
	CLD                  // CLD
	CLI                  // CLI
	CLV                  // CLV
	CMP                  // CMP
	CPX                  // CPX
	CPY                  // CPY
	DEC                  // DEC
	DEX                  // DEX
	DEY                  // DEY
	EOR                  // EOR
	INC                  // INC
	INX                  // INX
	INY                  // INY
	JMP                  // JMP
	JSR                  // JSR
	LDA                  // LDA
	LDX                  // LDX
	LDY                  // LDY
	LSR                  // LSR
	NOP                  // NOP
	ORA                  // ORA
	PHA                  // PHA
	PHP                  // PHP
	PLA                  // PLA
	PLP                  // PLP
	ROL                  // ROL
	ROR                  // ROR
	RTI                  // RTI
	RTS                  // RTS
	SBC                  // SBC
	SEC                  // SEC
	SED                  // SED
	SEI                  // SEI
	STA                  // STA
	STX                  // STX
	STY                  // STY
	TAX                  // TAX
	TAY                  // TAY
	TSX                  // TSX
	TXA                  // TXA
	TXS                  // TXS
	TYA                  // TYA
)

// mnemonicCount is the number of defined mnemonics.
const mnemonicCount = int(TYA) + 1

// IsBranch is true for the conditional relative branches.
func (mn Mnemonic) IsBranch() bool {
	switch mn {
	case BPL, BMI, BVC, BVS, BCC, BCS, BNE, BEQ:
		return true
	}
	return false
}

// mnemonicMap maps upper case names to mnemonics.
var mnemonicMap = func() map[string]Mnemonic {
	names := make(map[string]Mnemonic, mnemonicCount)
	for n := range mnemonicCount {
		mn := Mnemonic(n)
		names[mn.String()] = mn
	}
	return names
}()

// LookupMnemonic finds a mnemonic by its upper case name.
func LookupMnemonic(name string) (mn Mnemonic, ok bool) {
	mn, ok = mnemonicMap[name]
	return
}
