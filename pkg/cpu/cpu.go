// Package cpu is the DMG instruction interpreter: a fetch-decode-execute
// loop over RegisterFile and Memory, driven by the tagged Instruction
// variant from pkg/inst. A plain switch over Category, one handler per case,
// scales fine at a few dozen categories and keeps each handler's operand
// types visible at the call site instead of behind a generic dispatch
// table.
package cpu

import (
	"github.com/dmg-emu/dmg-core/internal/dmgerr"
	"github.com/dmg-emu/dmg-core/pkg/inst"
)

// CPU owns the register file, the flat address space, the program counter,
// and the master-interrupt-enable flag. There are no aliasing
// cycles: decoded instructions are pure values with no back-reference to
// the CPU.
type CPU struct {
	Regs RegisterFile
	Mem  Memory
	PC   uint16
	IME  bool

	// Halted/Stopped record entry into the corresponding state for the
	// external collaborator driving interrupts and timing; the core treats
	// both as observable no-ops otherwise.
	Halted  bool
	Stopped bool
}

// New constructs a CPU with all state zeroed and IME false.
func New() *CPU {
	return &CPU{}
}

// Boot writes the boot image at 0x0000 and the game image at 0x0100, and
// resets PC to 0x0000. No other side effects.
func (c *CPU) Boot(bootImage, gameImage []byte) {
	c.Mem.WriteRange(0x0000, bootImage)
	c.Mem.WriteRange(gameImgOff, gameImage)
	c.PC = 0x0000
}

// DumpMemory returns the full 64 KiB snapshot.
func (c *CPU) DumpMemory() []uint8 {
	return c.Mem.Dump()
}

// Run loops Step indefinitely until it returns an error. The
// shell is the only caller; there is no other way to stop it.
func (c *CPU) Run() error {
	for {
		if err := c.Step(); err != nil {
			return err
		}
	}
}

// controlTransfer reports whether a category may legitimately return a PC
// equal to the PC it was fetched at. Only jump/call/ret/reti/rst can target
// their own address on purpose (a self-jump like JR -2 is a deliberate
// stall loop); any other category returning the same PC means a handler
// forgot to advance it, which is a bug worth surfacing as PCStuck.
func controlTransfer(cat inst.Category) bool {
	switch cat {
	case inst.CatJump, inst.CatCall, inst.CatRet, inst.CatReti, inst.CatRst:
		return true
	default:
		return false
	}
}

// Step fetches one opcode at PC, decodes it (consuming the CB-prefix
// escape byte when present), dispatches it to its category handler, and
// commits the new PC.
func (c *CPU) Step() error {
	pc := c.PC
	opcode := c.Mem.Read(pc)
	prefixed := opcode == 0xCB
	if prefixed {
		opcode = c.Mem.Read(pc + 1)
	}

	decoded, ok := inst.Decode(opcode, prefixed)
	if !ok {
		return dmgerr.InvalidOpcode(pc, opcode, prefixed)
	}

	newPC, err := c.dispatch(pc, decoded)
	if err != nil {
		return err
	}
	if newPC == pc && !controlTransfer(decoded.Category) {
		return dmgerr.PCStuck(pc, decoded.Mnemonic)
	}

	c.PC = newPC
	return nil
}

func (c *CPU) dispatch(pc uint16, ins inst.Instruction) (uint16, error) {
	switch ins.Category {
	case inst.CatLoad8:
		return c.execLoad8(pc, ins), nil
	case inst.CatLoad16:
		return c.execLoad16(pc, ins), nil
	case inst.CatLoadIndirectHigh:
		return c.execLoadIndirectHigh(pc, ins), nil
	case inst.CatPush:
		return c.execPush(pc, ins), nil
	case inst.CatPop:
		return c.execPop(pc, ins), nil
	case inst.CatArith:
		return c.execArith(pc, ins), nil
	case inst.CatArith16:
		return c.execArith16(pc, ins), nil
	case inst.CatInc8:
		return c.execInc8(pc, ins), nil
	case inst.CatDec8:
		return c.execDec8(pc, ins), nil
	case inst.CatInc16:
		return c.execInc16(pc, ins), nil
	case inst.CatDec16:
		return c.execDec16(pc, ins), nil
	case inst.CatRotate:
		return c.execRotate(pc, ins), nil
	case inst.CatRotateA:
		return c.execRotateA(pc, ins), nil
	case inst.CatBit:
		return c.execBit(pc, ins), nil
	case inst.CatRes:
		return c.execRes(pc, ins), nil
	case inst.CatSet:
		return c.execSet(pc, ins), nil
	case inst.CatJump:
		return c.execJump(pc, ins), nil
	case inst.CatCall:
		return c.execCall(pc, ins), nil
	case inst.CatRet:
		return c.execRet(pc, ins), nil
	case inst.CatReti:
		return c.execReti(pc, ins), nil
	case inst.CatRst:
		return c.execRst(pc, ins), nil
	case inst.CatMisc:
		return c.execMisc(pc, ins)
	default:
		return pc, dmgerr.Unimplemented(pc, ins.Mnemonic)
	}
}

// readSrc8 resolves any Reg8 selector to a value, including the indirect
// and immediate pseudo-selectors and the extra (BC)/(DE) indirect forms
// that LD A,(BC)/LD A,(DE) need.
func (c *CPU) readSrc8(pc uint16, sel inst.Reg8) uint8 {
	switch sel {
	case inst.RegD8:
		return c.Mem.Read(pc + 1)
	case inst.RegHLInd:
		return c.Mem.Read(c.Regs.Read16(inst.PairHL))
	case inst.RegBCInd:
		return c.Mem.Read(c.Regs.Read16(inst.PairBC))
	case inst.RegDEInd:
		return c.Mem.Read(c.Regs.Read16(inst.PairDE))
	default:
		return c.Regs.Read8(sel)
	}
}

// writeDst8 is readSrc8's write-side counterpart.
func (c *CPU) writeDst8(sel inst.Reg8, v uint8) {
	switch sel {
	case inst.RegHLInd:
		c.Mem.Write(c.Regs.Read16(inst.PairHL), v)
	case inst.RegBCInd:
		c.Mem.Write(c.Regs.Read16(inst.PairBC), v)
	case inst.RegDEInd:
		c.Mem.Write(c.Regs.Read16(inst.PairDE), v)
	default:
		c.Regs.Write8(sel, v)
	}
}

func (c *CPU) condHolds(cond inst.Cond) bool {
	switch cond {
	case inst.CondNZ:
		return !c.Regs.F.Z
	case inst.CondZ:
		return c.Regs.F.Z
	case inst.CondNC:
		return !c.Regs.F.C
	case inst.CondC:
		return c.Regs.F.C
	default:
		return true
	}
}

func carryBit(c bool) uint8 {
	if c {
		return 1
	}
	return 0
}

// --- Load family ---

func (c *CPU) execLoad8(pc uint16, ins inst.Instruction) uint16 {
	switch ins.Load8Kind {
	case inst.L8FromD16Ind:
		addr := c.Mem.ReadWord(pc + 1)
		c.writeDst8(ins.Dest, c.Mem.Read(addr))
	case inst.L8ToD16Ind:
		addr := c.Mem.ReadWord(pc + 1)
		c.Mem.Write(addr, c.readSrc8(pc, ins.Src))
	default: // L8RegSrc
		c.writeDst8(ins.Dest, c.readSrc8(pc, ins.Src))
	}
	return pc + uint16(ins.Length)
}

func (c *CPU) execLoad16(pc uint16, ins inst.Instruction) uint16 {
	switch ins.Load16Kind {
	case inst.L16SPFromHL:
		c.Regs.SP = c.Regs.Read16(inst.PairHL)
	case inst.L16D16FromSP:
		addr := c.Mem.ReadWord(pc + 1)
		c.Mem.WriteWord(addr, c.Regs.SP)
	case inst.L16HLFromSPOffset:
		e := int8(c.Mem.Read(pc + 1))
		result, h, cy := addSPOffset(c.Regs.SP, e)
		c.Regs.Write16(inst.PairHL, result)
		c.Regs.F = FlagSet{H: h, C: cy}
	default: // L16PairFromD16
		c.Regs.Write16(ins.DestPair, c.Mem.ReadWord(pc+1))
	}
	return pc + uint16(ins.Length)
}

func (c *CPU) execLoadIndirectHigh(pc uint16, ins inst.Instruction) uint16 {
	hl := func() uint16 { return c.Regs.Read16(inst.PairHL) }
	switch ins.HiVariant {
	case inst.HiAToFF00C:
		c.Mem.Write(0xFF00+uint16(c.Regs.C), c.Regs.A)
	case inst.HiFF00CToA:
		c.Regs.A = c.Mem.Read(0xFF00 + uint16(c.Regs.C))
	case inst.HiAToFF00N:
		n := c.Mem.Read(pc + 1)
		c.Mem.Write(0xFF00+uint16(n), c.Regs.A)
	case inst.HiFF00NToA:
		n := c.Mem.Read(pc + 1)
		c.Regs.A = c.Mem.Read(0xFF00 + uint16(n))
	case inst.HiAToHLInc:
		c.Mem.Write(hl(), c.Regs.A)
		c.Regs.Write16(inst.PairHL, hl()+1)
	case inst.HiAToHLDec:
		c.Mem.Write(hl(), c.Regs.A)
		c.Regs.Write16(inst.PairHL, hl()-1)
	case inst.HiHLIncToA:
		c.Regs.A = c.Mem.Read(hl())
		c.Regs.Write16(inst.PairHL, hl()+1)
	case inst.HiHLDecToA:
		c.Regs.A = c.Mem.Read(hl())
		c.Regs.Write16(inst.PairHL, hl()-1)
	}
	return pc + uint16(ins.Length)
}

func (c *CPU) execPush(pc uint16, ins inst.Instruction) uint16 {
	c.Regs.SP -= 2
	c.Mem.WriteWord(c.Regs.SP, c.Regs.Read16(ins.SrcPair))
	return pc + uint16(ins.Length)
}

func (c *CPU) execPop(pc uint16, ins inst.Instruction) uint16 {
	v := c.Mem.ReadWord(c.Regs.SP)
	c.Regs.Write16(ins.DestPair, v)
	c.Regs.SP += 2
	return pc + uint16(ins.Length)
}

// --- ALU, inc/dec, 16-bit add ---

func (c *CPU) execArith(pc uint16, ins inst.Instruction) uint16 {
	v := c.readSrc8(pc, ins.Src)
	a := c.Regs.A
	var result uint8
	var f FlagSet
	switch ins.Arith {
	case inst.ArithAdd:
		result, f = aluAdd(a, v, 0)
	case inst.ArithAdc:
		result, f = aluAdd(a, v, carryBit(c.Regs.F.C))
	case inst.ArithSub:
		result, f = aluSub(a, v, 0)
	case inst.ArithSbc:
		result, f = aluSub(a, v, carryBit(c.Regs.F.C))
	case inst.ArithAnd:
		result, f = aluAnd(a, v)
	case inst.ArithOr:
		result, f = aluOr(a, v)
	case inst.ArithXor:
		result, f = aluXor(a, v)
	case inst.ArithCp:
		result, f = aluSub(a, v, 0)
	}
	c.Regs.F = f
	if ins.Arith != inst.ArithCp {
		c.Regs.A = result
	}
	return pc + uint16(ins.Length)
}

func (c *CPU) execArith16(pc uint16, ins inst.Instruction) uint16 {
	switch ins.Arith16 {
	case inst.Arith16AddSP:
		e := int8(c.Mem.Read(pc + 1))
		result, h, cy := addSPOffset(c.Regs.SP, e)
		c.Regs.SP = result
		c.Regs.F = FlagSet{H: h, C: cy}
	default: // Arith16Add: HL += pair
		hl := c.Regs.Read16(inst.PairHL)
		operand := c.Regs.Read16(ins.SrcPair)
		result, h, cy := add16(hl, operand)
		c.Regs.Write16(inst.PairHL, result)
		c.Regs.F.N = false
		c.Regs.F.H = h
		c.Regs.F.C = cy
		// Z unchanged.
	}
	return pc + uint16(ins.Length)
}

func (c *CPU) execInc8(pc uint16, ins inst.Instruction) uint16 {
	result, z, h := aluInc(c.readSrc8(pc, ins.Dest))
	c.writeDst8(ins.Dest, result)
	c.Regs.F.Z = z
	c.Regs.F.N = false
	c.Regs.F.H = h
	return pc + uint16(ins.Length)
}

func (c *CPU) execDec8(pc uint16, ins inst.Instruction) uint16 {
	result, z, h := aluDec(c.readSrc8(pc, ins.Dest))
	c.writeDst8(ins.Dest, result)
	c.Regs.F.Z = z
	c.Regs.F.N = true
	c.Regs.F.H = h
	return pc + uint16(ins.Length)
}

func (c *CPU) execInc16(pc uint16, ins inst.Instruction) uint16 {
	c.Regs.Write16(ins.DestPair, c.Regs.Read16(ins.DestPair)+1)
	return pc + uint16(ins.Length)
}

func (c *CPU) execDec16(pc uint16, ins inst.Instruction) uint16 {
	c.Regs.Write16(ins.DestPair, c.Regs.Read16(ins.DestPair)-1)
	return pc + uint16(ins.Length)
}

// --- rotate/shift/swap, bit/res/set ---

func (c *CPU) execRotate(pc uint16, ins inst.Instruction) uint16 {
	v := c.readSrc8(pc, ins.Dest)
	var result uint8
	var carryOut bool
	switch ins.Rot {
	case inst.RotRlc:
		result, carryOut = rotRlc(v)
	case inst.RotRl:
		result, carryOut = rotRl(v, c.Regs.F.C)
	case inst.RotRrc:
		result, carryOut = rotRrc(v)
	case inst.RotRr:
		result, carryOut = rotRr(v, c.Regs.F.C)
	case inst.RotSla:
		result, carryOut = rotSla(v)
	case inst.RotSra:
		result, carryOut = rotSra(v)
	case inst.RotSrl:
		result, carryOut = rotSrl(v)
	case inst.RotSwap:
		result, carryOut = rotSwap(v)
	}
	c.writeDst8(ins.Dest, result)
	c.Regs.F = FlagSet{Z: result == 0, C: carryOut}
	return pc + uint16(ins.Length)
}

func (c *CPU) execRotateA(pc uint16, ins inst.Instruction) uint16 {
	v := c.Regs.A
	var result uint8
	var carryOut bool
	switch ins.RotA {
	case inst.RotARlca:
		result, carryOut = rotRlc(v)
	case inst.RotARla:
		result, carryOut = rotRl(v, c.Regs.F.C)
	case inst.RotARrca:
		result, carryOut = rotRrc(v)
	case inst.RotARra:
		result, carryOut = rotRr(v, c.Regs.F.C)
	}
	c.Regs.A = result
	// Z is forced to 0 here regardless of result, unlike the CB-prefixed
	// accumulator variants.
	c.Regs.F = FlagSet{C: carryOut}
	return pc + uint16(ins.Length)
}

func (c *CPU) execBit(pc uint16, ins inst.Instruction) uint16 {
	v := c.readSrc8(pc, ins.Dest)
	c.Regs.F.Z = (v>>ins.Bit)&1 == 0
	c.Regs.F.N = false
	c.Regs.F.H = true
	return pc + uint16(ins.Length)
}

func (c *CPU) execRes(pc uint16, ins inst.Instruction) uint16 {
	v := c.readSrc8(pc, ins.Dest)
	c.writeDst8(ins.Dest, v&^(uint8(1)<<ins.Bit))
	return pc + uint16(ins.Length)
}

func (c *CPU) execSet(pc uint16, ins inst.Instruction) uint16 {
	v := c.readSrc8(pc, ins.Dest)
	c.writeDst8(ins.Dest, v|(uint8(1)<<ins.Bit))
	return pc + uint16(ins.Length)
}

// --- jumps, calls/returns/RST ---

func (c *CPU) execJump(pc uint16, ins inst.Instruction) uint16 {
	switch ins.Jump {
	case inst.JumpAbsolute:
		return c.Mem.ReadWord(pc + 1)
	case inst.JumpAbsoluteCond:
		if c.condHolds(ins.Cond) {
			return c.Mem.ReadWord(pc + 1)
		}
		return pc + uint16(ins.Length)
	case inst.JumpToHL:
		return c.Regs.Read16(inst.PairHL)
	case inst.JumpRelative:
		return relativeTarget(pc, c.Mem.Read(pc+1))
	case inst.JumpRelativeCond:
		if c.condHolds(ins.Cond) {
			return relativeTarget(pc, c.Mem.Read(pc+1))
		}
		return pc + uint16(ins.Length)
	default:
		return pc + uint16(ins.Length)
	}
}

// relativeTarget computes (PC+2) + sign-extended displacement.
func relativeTarget(pc uint16, disp uint8) uint16 {
	return uint16(int32(pc) + 2 + int32(int8(disp)))
}

func (c *CPU) execCall(pc uint16, ins inst.Instruction) uint16 {
	if !c.condHolds(ins.Cond) {
		return pc + uint16(ins.Length)
	}
	ret := pc + uint16(ins.Length)
	c.Regs.SP -= 2
	c.Mem.WriteWord(c.Regs.SP, ret)
	return c.Mem.ReadWord(pc + 1)
}

func (c *CPU) execRet(pc uint16, ins inst.Instruction) uint16 {
	if !c.condHolds(ins.Cond) {
		return pc + uint16(ins.Length)
	}
	v := c.Mem.ReadWord(c.Regs.SP)
	c.Regs.SP += 2
	return v
}

func (c *CPU) execReti(pc uint16, ins inst.Instruction) uint16 {
	v := c.Mem.ReadWord(c.Regs.SP)
	c.Regs.SP += 2
	c.IME = true
	return v
}

func (c *CPU) execRst(pc uint16, ins inst.Instruction) uint16 {
	ret := pc + uint16(ins.Length) // PC+1: the address following RST.
	c.Regs.SP -= 2
	c.Mem.WriteWord(c.Regs.SP, ret)
	return uint16(ins.Vector)
}

// --- miscellaneous ---

func (c *CPU) execMisc(pc uint16, ins inst.Instruction) (uint16, error) {
	switch ins.Misc {
	case inst.MiscNop:
	case inst.MiscDaa:
		c.Regs.A, c.Regs.F = daa(c.Regs.A, c.Regs.F)
	case inst.MiscCpl:
		c.Regs.A = ^c.Regs.A
		c.Regs.F.N = true
		c.Regs.F.H = true
	case inst.MiscCcf:
		c.Regs.F.C = !c.Regs.F.C
		c.Regs.F.N = false
		c.Regs.F.H = false
	case inst.MiscScf:
		c.Regs.F.C = true
		c.Regs.F.N = false
		c.Regs.F.H = false
	case inst.MiscHalt:
		c.Halted = true
	case inst.MiscStop:
		c.Stopped = true
	case inst.MiscDi:
		c.IME = false
	case inst.MiscEi:
		c.IME = true
	default:
		return pc, dmgerr.Unimplemented(pc, ins.Mnemonic)
	}
	return pc + uint16(ins.Length), nil
}
