// Package inst decodes the DMG's 8-bit opcode stream into a tagged
// Instruction variant. Rather than enumerating one constant per concrete
// instruction (LD_A_B, ADD_A_N, ...) and looking metadata up in a parallel
// table, the variant itself is the unit of dispatch: the executor switches
// on Category, and every operand that category needs is already sitting in
// a typed field on the struct. A dense per-opcode enum buys nothing here,
// since there are only a couple dozen categories and every operand already
// has its own small selector type.
package inst

// Category tags which executor handler a decoded Instruction dispatches to.
type Category uint8

const (
	CatLoad8 Category = iota
	CatLoad16
	CatLoadIndirectHigh
	CatPush
	CatPop
	CatArith
	CatArith16
	CatInc8
	CatDec8
	CatInc16
	CatDec16
	CatRotate
	CatRotateA
	CatBit
	CatRes
	CatSet
	CatJump
	CatCall
	CatRet
	CatReti
	CatRst
	CatMisc
)

// Reg8 selects an 8-bit operand. RegHLInd and RegD8 are pseudo-selectors:
// (HL) indirect and an immediate byte fetched from the instruction stream.
// RegNone marks "not used by this instruction."
type Reg8 uint8

const (
	RegNone Reg8 = iota
	RegA
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHLInd
	RegD8
	RegBCInd
	RegDEInd
)

// Reg16 selects a 16-bit register-pair operand.
type Reg16 uint8

const (
	PairNone Reg16 = iota
	PairAF
	PairBC
	PairDE
	PairHL
	PairSP
)

// Load8Kind distinguishes the three Load8 addressing shapes.
type Load8Kind uint8

const (
	L8RegSrc    Load8Kind = iota // Dest <- Src; each a register or a (HL)/(BC)/(DE)/d8 pseudo-selector
	L8FromD16Ind                 // Dest <- memory[imm16]      (LD A,(nn))
	L8ToD16Ind                    // memory[imm16] <- Src        (LD (nn),A)
)

// Load16Kind distinguishes the four Load16 addressing shapes.
type Load16Kind uint8

const (
	L16PairFromD16    Load16Kind = iota // pair <- imm16
	L16SPFromHL                         // SP <- HL
	L16D16FromSP                        // memory_word[imm16] <- SP
	L16HLFromSPOffset                   // HL <- SP + signed imm8
)

// HiVariant enumerates the eight LoadIndirectHigh shapes: the FF00-relative
// forms and the (HL) post-increment/decrement forms.
type HiVariant uint8

const (
	HiAToFF00C HiVariant = iota // A -> (FF00+C)
	HiFF00CToA                  // (FF00+C) -> A
	HiAToFF00N                  // A -> (FF00+n8)
	HiFF00NToA                  // (FF00+n8) -> A
	HiAToHLInc                  // A -> (HL), HL++
	HiAToHLDec                  // A -> (HL), HL--
	HiHLIncToA                  // A <- (HL), HL++
	HiHLDecToA                  // A <- (HL), HL--
)

// ArithOp enumerates the 8-bit ALU operations.
type ArithOp uint8

const (
	ArithAdd ArithOp = iota
	ArithAdc
	ArithSub
	ArithSbc
	ArithAnd
	ArithOr
	ArithXor
	ArithCp
)

// Arith16Op enumerates the 16-bit add operations.
type Arith16Op uint8

const (
	Arith16Add   Arith16Op = iota // HL += pair
	Arith16AddSP                  // SP += signed imm8
)

// RotOp enumerates the CB-prefixed rotate/shift/swap operations.
type RotOp uint8

const (
	RotRlc RotOp = iota
	RotRl
	RotRrc
	RotRr
	RotSla
	RotSra
	RotSrl
	RotSwap
)

// RotAOp enumerates the non-prefixed accumulator rotates.
type RotAOp uint8

const (
	RotARlca RotAOp = iota
	RotARla
	RotARrca
	RotARra
)

// Cond enumerates the flag-condition gates for conditional jump, call,
// and return instructions.
type Cond uint8

const (
	CondNone Cond = iota
	CondNZ
	CondZ
	CondNC
	CondC
)

// JumpKind enumerates the five jump shapes.
type JumpKind uint8

const (
	JumpAbsolute JumpKind = iota
	JumpAbsoluteCond
	JumpToHL
	JumpRelative
	JumpRelativeCond
)

// MiscOp enumerates the miscellaneous single-byte operations: NOP, DAA,
// CPL, CCF, SCF, HALT, STOP, DI, and EI.
type MiscOp uint8

const (
	MiscNop MiscOp = iota
	MiscDaa
	MiscCpl
	MiscCcf
	MiscScf
	MiscHalt
	MiscStop
	MiscDi
	MiscEi
)

// Instruction is the decoded tagged variant. Only the fields relevant to
// Category are meaningful; the zero value of the rest is inert. Length is
// the total instruction byte count including the opcode byte(s) and any
// immediate — straight-line handlers advance PC by Length, while
// jump/call/return handlers compute PC from Length plus their own
// control-transfer rule.
type Instruction struct {
	Category Category

	Dest     Reg8
	Src      Reg8
	DestPair Reg16
	SrcPair  Reg16

	Load8Kind  Load8Kind
	Load16Kind Load16Kind
	HiVariant  HiVariant

	Arith   ArithOp
	Arith16 Arith16Op
	Rot     RotOp
	RotA    RotAOp
	Bit     uint8

	Jump JumpKind
	Cond Cond

	Vector uint8 // RST target
	Misc   MiscOp

	Mnemonic string
	Length   uint8
}
