package cpu

import "github.com/dmg-emu/dmg-core/pkg/inst"

// RegisterFile holds the eight 8-bit register cells and the 16-bit stack
// pointer. AF/BC/DE/HL are purely virtual fused views over the 8-bit
// cells; there is no separate 16-bit storage for them, so a 16-bit write
// is indistinguishable from writing the two halves in order (high byte
// then low byte) and a 16-bit read can never observe a torn state —
// there's no concurrency to tear it. Register selectors (inst.Reg8/
// inst.Reg16) are shared with the decoder so the executor never has to
// translate between two parallel enumerations.
type RegisterFile struct {
	A, B, C, D, E, H, L uint8
	F                   FlagSet
	SP                  uint16
}

// Read8 returns the value of a concrete 8-bit register. It does not resolve
// RegHLInd, RegD8, RegBCInd or RegDEInd — those require memory or the
// instruction stream and are handled by the executor's operand-resolution
// helpers.
func (r *RegisterFile) Read8(sel inst.Reg8) uint8 {
	switch sel {
	case inst.RegA:
		return r.A
	case inst.RegB:
		return r.B
	case inst.RegC:
		return r.C
	case inst.RegD:
		return r.D
	case inst.RegE:
		return r.E
	case inst.RegH:
		return r.H
	case inst.RegL:
		return r.L
	default:
		panic("cpu: Read8 on non-register selector")
	}
}

// Write8 stores a value into a concrete 8-bit register. Pair selectors
// cannot be passed here at all: an 8-bit write to a register pair has no
// well-defined meaning (which half would it touch, and does the other
// half keep its old value?), so pair-sized stores go through Write16
// instead, making the ambiguous case unrepresentable by the type rather
// than guessed at.
func (r *RegisterFile) Write8(sel inst.Reg8, v uint8) {
	switch sel {
	case inst.RegA:
		r.A = v
	case inst.RegB:
		r.B = v
	case inst.RegC:
		r.C = v
	case inst.RegD:
		r.D = v
	case inst.RegE:
		r.E = v
	case inst.RegH:
		r.H = v
	case inst.RegL:
		r.L = v
	default:
		panic("cpu: Write8 on non-register selector")
	}
}

// Read16 returns a fused register-pair view. AF's low byte is the packed
// flag byte, not a plain register cell.
func (r *RegisterFile) Read16(pair inst.Reg16) uint16 {
	switch pair {
	case inst.PairAF:
		return uint16(r.A)<<8 | uint16(r.F.Pack())
	case inst.PairBC:
		return uint16(r.B)<<8 | uint16(r.C)
	case inst.PairDE:
		return uint16(r.D)<<8 | uint16(r.E)
	case inst.PairHL:
		return uint16(r.H)<<8 | uint16(r.L)
	case inst.PairSP:
		return r.SP
	default:
		panic("cpu: Read16 on non-pair selector")
	}
}

// Write16 stores a 16-bit value as the two underlying 8-bit cells, high
// byte first. For AF, the low byte updates F through Unpack, which
// discards the reserved low nibble — POP AF clears it on store.
func (r *RegisterFile) Write16(pair inst.Reg16, v uint16) {
	hi, lo := uint8(v>>8), uint8(v)
	switch pair {
	case inst.PairAF:
		r.A = hi
		r.F.Unpack(lo)
	case inst.PairBC:
		r.B = hi
		r.C = lo
	case inst.PairDE:
		r.D = hi
		r.E = lo
	case inst.PairHL:
		r.H = hi
		r.L = lo
	case inst.PairSP:
		r.SP = v
	default:
		panic("cpu: Write16 on non-pair selector")
	}
}
