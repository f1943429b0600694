package inst

// regOrder is the low-3-bit register selection order shared by the ALU
// register grid (0x80-0xBF), the register-load grid (0x40-0x7F), and the
// entire CB-prefixed table: B, C, D, E, H, L, (HL), A.
var regOrder = [8]Reg8{RegB, RegC, RegD, RegE, RegH, RegL, RegHLInd, RegA}
var regName = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// nonPrefixed and cbTable are dense 256-entry decode tables, built once by
// formula for the regular blocks and by explicit literal entries for the
// irregular rows, rather than hand-enumerating all 256 entries.
// nonPrefixedOK flags which non-prefixed slots
// are real instructions; the eleven gaps in the DMG opcode map and the
// 0xCB escape byte decode to ok=false. Every CB-prefixed slot is a real
// instruction.
var (
	nonPrefixed   [256]Instruction
	nonPrefixedOK [256]bool
	cbTable       [256]Instruction
)

func init() {
	buildRegisterLoadGrid()
	buildALUGrid()
	buildIrregularNonPrefixed()
	buildCBTable()
}

// buildRegisterLoadGrid fills 0x40-0x7F: LD r,r' for r,r' in regOrder,
// except 0x76 which is HALT (the historical (HL),(HL) hole).
func buildRegisterLoadGrid() {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			op := uint8(0x40 + row*8 + col)
			if row == 6 && col == 6 {
				nonPrefixed[op] = Instruction{Category: CatMisc, Misc: MiscHalt, Mnemonic: "HALT", Length: 1}
				nonPrefixedOK[op] = true
				continue
			}
			dest, src := regOrder[row], regOrder[col]
			nonPrefixed[op] = Instruction{
				Category: CatLoad8, Load8Kind: L8RegSrc,
				Dest: dest, Src: src,
				Mnemonic: "LD " + regName[row] + "," + regName[col],
				Length:   1,
			}
			nonPrefixedOK[op] = true
		}
	}
}

// buildALUGrid fills 0x80-0xBF: the eight ALU ops against the eight
// regOrder operands.
func buildALUGrid() {
	ops := [8]ArithOp{ArithAdd, ArithAdc, ArithSub, ArithSbc, ArithAnd, ArithXor, ArithOr, ArithCp}
	names := [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			op := uint8(0x80 + row*8 + col)
			src := regOrder[col]
			nonPrefixed[op] = Instruction{
				Category: CatArith, Arith: ops[row], Src: src,
				Mnemonic: names[row] + regName[col],
				Length:   1,
			}
			nonPrefixedOK[op] = true
		}
	}
}

// buildCBTable fills the full 256-entry CB-prefixed table, eight rotate/
// shift ops followed by Bit, Res, and Set blocks, each indexed by regOrder.
// Length is always 2 (the 0xCB escape byte plus this byte).
func buildCBTable() {
	rotOps := [8]RotOp{RotRlc, RotRrc, RotRl, RotRr, RotSla, RotSra, RotSwap, RotSrl}
	rotNames := [8]string{"RLC ", "RRC ", "RL ", "RR ", "SLA ", "SRA ", "SWAP ", "SRL "}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			op := uint8(row*8 + col)
			cbTable[op] = Instruction{
				Category: CatRotate, Rot: rotOps[row], Dest: regOrder[col],
				Mnemonic: rotNames[row] + regName[col], Length: 2,
			}
		}
	}
	blocks := []struct {
		base uint8
		cat  Category
	}{
		{0x40, CatBit},
		{0x80, CatRes},
		{0xC0, CatSet},
	}
	blockName := map[Category]string{CatBit: "BIT ", CatRes: "RES ", CatSet: "SET "}
	for _, blk := range blocks {
		for n := 0; n < 8; n++ {
			for col := 0; col < 8; col++ {
				op := blk.base + uint8(n*8+col)
				cbTable[op] = Instruction{
					Category: blk.cat, Bit: uint8(n), Dest: regOrder[col],
					Mnemonic: blockName[blk.cat] + itoa(n) + "," + regName[col], Length: 2,
				}
			}
		}
	}
}

func itoa(n int) string {
	return string(rune('0' + n))
}

func rstHex(v uint8) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[v>>4], hex[v&0xF]})
}

// buildIrregularNonPrefixed fills every non-prefixed opcode not covered by
// the two regular grids above: immediates, stack ops, 16-bit loads,
// jumps/calls/returns, RST, and the misc block. Opcodes not assigned here
// and not in the two grids are left with nonPrefixedOK == false (the
// eleven DMG invalid opcodes: 0xD3,0xDB,0xDD,0xE3,0xE4,0xEB,0xEC,0xED,
// 0xF4,0xFC,0xFD, plus the 0xCB escape byte, which Step consumes before
// decoding).
func buildIrregularNonPrefixed() {
	set := func(op uint8, instr Instruction) {
		nonPrefixed[op] = instr
		nonPrefixedOK[op] = true
	}

	// Misc.
	set(0x00, Instruction{Category: CatMisc, Misc: MiscNop, Mnemonic: "NOP", Length: 1})
	set(0x10, Instruction{Category: CatMisc, Misc: MiscStop, Mnemonic: "STOP", Length: 2})
	set(0x27, Instruction{Category: CatMisc, Misc: MiscDaa, Mnemonic: "DAA", Length: 1})
	set(0x2F, Instruction{Category: CatMisc, Misc: MiscCpl, Mnemonic: "CPL", Length: 1})
	set(0x37, Instruction{Category: CatMisc, Misc: MiscScf, Mnemonic: "SCF", Length: 1})
	set(0x3F, Instruction{Category: CatMisc, Misc: MiscCcf, Mnemonic: "CCF", Length: 1})
	set(0xF3, Instruction{Category: CatMisc, Misc: MiscDi, Mnemonic: "DI", Length: 1})
	set(0xFB, Instruction{Category: CatMisc, Misc: MiscEi, Mnemonic: "EI", Length: 1})

	// Accumulator rotates (non-CB).
	set(0x07, Instruction{Category: CatRotateA, RotA: RotARlca, Mnemonic: "RLCA", Length: 1})
	set(0x17, Instruction{Category: CatRotateA, RotA: RotARla, Mnemonic: "RLA", Length: 1})
	set(0x0F, Instruction{Category: CatRotateA, RotA: RotARrca, Mnemonic: "RRCA", Length: 1})
	set(0x1F, Instruction{Category: CatRotateA, RotA: RotARra, Mnemonic: "RRA", Length: 1})

	// LD r,d8 and LD (HL),d8.
	immLoads := []struct {
		op  uint8
		r   Reg8
		nam string
	}{
		{0x06, RegB, "B"}, {0x0E, RegC, "C"}, {0x16, RegD, "D"}, {0x1E, RegE, "E"},
		{0x26, RegH, "H"}, {0x2E, RegL, "L"}, {0x36, RegHLInd, "(HL)"}, {0x3E, RegA, "A"},
	}
	for _, il := range immLoads {
		set(il.op, Instruction{
			Category: CatLoad8, Load8Kind: L8RegSrc, Dest: il.r, Src: RegD8,
			Mnemonic: "LD " + il.nam + ",n", Length: 2,
		})
	}

	// INC r / DEC r (8-bit).
	incDec := []struct {
		incOp, decOp uint8
		r            Reg8
		nam          string
	}{
		{0x04, 0x05, RegB, "B"}, {0x0C, 0x0D, RegC, "C"},
		{0x14, 0x15, RegD, "D"}, {0x1C, 0x1D, RegE, "E"},
		{0x24, 0x25, RegH, "H"}, {0x2C, 0x2D, RegL, "L"},
		{0x34, 0x35, RegHLInd, "(HL)"}, {0x3C, 0x3D, RegA, "A"},
	}
	for _, id := range incDec {
		set(id.incOp, Instruction{Category: CatInc8, Dest: id.r, Mnemonic: "INC " + id.nam, Length: 1})
		set(id.decOp, Instruction{Category: CatDec8, Dest: id.r, Mnemonic: "DEC " + id.nam, Length: 1})
	}

	// ALU immediates (0xC6..0xFE column of the ALU grid).
	aluImm := []struct {
		op  uint8
		a   ArithOp
		nam string
	}{
		{0xC6, ArithAdd, "ADD A,n"}, {0xCE, ArithAdc, "ADC A,n"},
		{0xD6, ArithSub, "SUB n"}, {0xDE, ArithSbc, "SBC A,n"},
		{0xE6, ArithAnd, "AND n"}, {0xEE, ArithXor, "XOR n"},
		{0xF6, ArithOr, "OR n"}, {0xFE, ArithCp, "CP n"},
	}
	for _, ai := range aluImm {
		set(ai.op, Instruction{Category: CatArith, Arith: ai.a, Src: RegD8, Mnemonic: ai.nam, Length: 2})
	}

	// 16-bit register-pair loads, INC/DEC, ADD HL,rr.
	pairs := []struct {
		ldOp, incOp, decOp, addOp uint8
		pair                      Reg16
		nam                       string
	}{
		{0x01, 0x03, 0x0B, 0x09, PairBC, "BC"},
		{0x11, 0x13, 0x1B, 0x19, PairDE, "DE"},
		{0x21, 0x23, 0x2B, 0x29, PairHL, "HL"},
		{0x31, 0x33, 0x3B, 0x39, PairSP, "SP"},
	}
	for _, p := range pairs {
		set(p.ldOp, Instruction{
			Category: CatLoad16, Load16Kind: L16PairFromD16, DestPair: p.pair,
			Mnemonic: "LD " + p.nam + ",nn", Length: 3,
		})
		set(p.incOp, Instruction{Category: CatInc16, DestPair: p.pair, Mnemonic: "INC " + p.nam, Length: 1})
		set(p.decOp, Instruction{Category: CatDec16, DestPair: p.pair, Mnemonic: "DEC " + p.nam, Length: 1})
		set(p.addOp, Instruction{
			Category: CatArith16, Arith16: Arith16Add, SrcPair: p.pair,
			Mnemonic: "ADD HL," + p.nam, Length: 1,
		})
	}

	set(0xF9, Instruction{Category: CatLoad16, Load16Kind: L16SPFromHL, Mnemonic: "LD SP,HL", Length: 1})
	set(0x08, Instruction{Category: CatLoad16, Load16Kind: L16D16FromSP, Mnemonic: "LD (nn),SP", Length: 3})
	set(0xF8, Instruction{Category: CatLoad16, Load16Kind: L16HLFromSPOffset, Mnemonic: "LD HL,SP+n", Length: 2})
	set(0xE8, Instruction{Category: CatArith16, Arith16: Arith16AddSP, Mnemonic: "ADD SP,n", Length: 2})

	// PUSH/POP.
	pushPop := []struct {
		pushOp, popOp uint8
		pair          Reg16
		nam           string
	}{
		{0xC5, 0xC1, PairBC, "BC"}, {0xD5, 0xD1, PairDE, "DE"},
		{0xE5, 0xE1, PairHL, "HL"}, {0xF5, 0xF1, PairAF, "AF"},
	}
	for _, pp := range pushPop {
		set(pp.pushOp, Instruction{Category: CatPush, SrcPair: pp.pair, Mnemonic: "PUSH " + pp.nam, Length: 1})
		set(pp.popOp, Instruction{Category: CatPop, DestPair: pp.pair, Mnemonic: "POP " + pp.nam, Length: 1})
	}

	// Indirect loads through BC/DE, and (HL) with post-inc/dec.
	set(0x02, Instruction{Category: CatLoad8, Load8Kind: L8RegSrc, Dest: RegBCInd, Src: RegA, Mnemonic: "LD (BC),A", Length: 1})
	set(0x0A, Instruction{Category: CatLoad8, Load8Kind: L8RegSrc, Dest: RegA, Src: RegBCInd, Mnemonic: "LD A,(BC)", Length: 1})
	set(0x12, Instruction{Category: CatLoad8, Load8Kind: L8RegSrc, Dest: RegDEInd, Src: RegA, Mnemonic: "LD (DE),A", Length: 1})
	set(0x1A, Instruction{Category: CatLoad8, Load8Kind: L8RegSrc, Dest: RegA, Src: RegDEInd, Mnemonic: "LD A,(DE)", Length: 1})

	set(0x22, Instruction{Category: CatLoadIndirectHigh, HiVariant: HiAToHLInc, Mnemonic: "LD (HL+),A", Length: 1})
	set(0x2A, Instruction{Category: CatLoadIndirectHigh, HiVariant: HiHLIncToA, Mnemonic: "LD A,(HL+)", Length: 1})
	set(0x32, Instruction{Category: CatLoadIndirectHigh, HiVariant: HiAToHLDec, Mnemonic: "LD (HL-),A", Length: 1})
	set(0x3A, Instruction{Category: CatLoadIndirectHigh, HiVariant: HiHLDecToA, Mnemonic: "LD A,(HL-)", Length: 1})

	set(0xE2, Instruction{Category: CatLoadIndirectHigh, HiVariant: HiAToFF00C, Mnemonic: "LD (C),A", Length: 1})
	set(0xF2, Instruction{Category: CatLoadIndirectHigh, HiVariant: HiFF00CToA, Mnemonic: "LD A,(C)", Length: 1})
	set(0xE0, Instruction{Category: CatLoadIndirectHigh, HiVariant: HiAToFF00N, Mnemonic: "LDH (n),A", Length: 2})
	set(0xF0, Instruction{Category: CatLoadIndirectHigh, HiVariant: HiFF00NToA, Mnemonic: "LDH A,(n)", Length: 2})

	set(0xEA, Instruction{Category: CatLoad8, Load8Kind: L8ToD16Ind, Src: RegA, Mnemonic: "LD (nn),A", Length: 3})
	set(0xFA, Instruction{Category: CatLoad8, Load8Kind: L8FromD16Ind, Dest: RegA, Mnemonic: "LD A,(nn)", Length: 3})

	// Jumps.
	set(0xC3, Instruction{Category: CatJump, Jump: JumpAbsolute, Mnemonic: "JP nn", Length: 3})
	set(0xE9, Instruction{Category: CatJump, Jump: JumpToHL, Mnemonic: "JP HL", Length: 1})
	set(0x18, Instruction{Category: CatJump, Jump: JumpRelative, Mnemonic: "JR n", Length: 2})
	condJumps := []struct {
		absOp, relOp uint8
		cond         Cond
		nam          string
	}{
		{0xC2, 0x20, CondNZ, "NZ"}, {0xCA, 0x28, CondZ, "Z"},
		{0xD2, 0x30, CondNC, "NC"}, {0xDA, 0x38, CondC, "C"},
	}
	for _, cj := range condJumps {
		set(cj.absOp, Instruction{
			Category: CatJump, Jump: JumpAbsoluteCond, Cond: cj.cond,
			Mnemonic: "JP " + cj.nam + ",nn", Length: 3,
		})
		set(cj.relOp, Instruction{
			Category: CatJump, Jump: JumpRelativeCond, Cond: cj.cond,
			Mnemonic: "JR " + cj.nam + ",n", Length: 2,
		})
	}

	// Calls/returns.
	set(0xCD, Instruction{Category: CatCall, Cond: CondNone, Mnemonic: "CALL nn", Length: 3})
	set(0xC9, Instruction{Category: CatRet, Cond: CondNone, Mnemonic: "RET", Length: 1})
	set(0xD9, Instruction{Category: CatReti, Mnemonic: "RETI", Length: 1})
	condCalls := []struct {
		callOp, retOp uint8
		cond          Cond
		nam           string
	}{
		{0xC4, 0xC0, CondNZ, "NZ"}, {0xCC, 0xC8, CondZ, "Z"},
		{0xD4, 0xD0, CondNC, "NC"}, {0xDC, 0xD8, CondC, "C"},
	}
	for _, cc := range condCalls {
		set(cc.callOp, Instruction{
			Category: CatCall, Cond: cc.cond, Mnemonic: "CALL " + cc.nam + ",nn", Length: 3,
		})
		set(cc.retOp, Instruction{
			Category: CatRet, Cond: cc.cond, Mnemonic: "RET " + cc.nam, Length: 1,
		})
	}

	// RST.
	rsts := []struct {
		op  uint8
		vec uint8
	}{
		{0xC7, 0x00}, {0xCF, 0x08}, {0xD7, 0x10}, {0xDF, 0x18},
		{0xE7, 0x20}, {0xEF, 0x28}, {0xF7, 0x30}, {0xFF, 0x38},
	}
	for _, r := range rsts {
		set(r.op, Instruction{Category: CatRst, Vector: r.vec, Mnemonic: "RST " + rstHex(r.vec) + "h", Length: 1})
	}
}
