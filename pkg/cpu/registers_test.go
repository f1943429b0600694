package cpu

import (
	"testing"

	"github.com/dmg-emu/dmg-core/pkg/inst"
)

func TestRegisterFile8Bit(t *testing.T) {
	var r RegisterFile
	r.Write8(inst.RegB, 0x42)
	if got := r.Read8(inst.RegB); got != 0x42 {
		t.Fatalf("Read8(RegB) = 0x%02X, want 0x42", got)
	}
}

func TestRegisterFileWrite8PanicsOnNonRegisterSelector(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing RegHLInd through Write8")
		}
	}()
	var r RegisterFile
	r.Write8(inst.RegHLInd, 1)
}

func TestRegisterFilePairFusion(t *testing.T) {
	var r RegisterFile
	r.Write16(inst.PairBC, 0x1234)
	if r.B != 0x12 || r.C != 0x34 {
		t.Fatalf("B=0x%02X C=0x%02X, want B=0x12 C=0x34", r.B, r.C)
	}
	if got := r.Read16(inst.PairBC); got != 0x1234 {
		t.Fatalf("Read16(PairBC) = 0x%04X, want 0x1234", got)
	}
}

func TestRegisterFileAFLowByteIsPackedFlags(t *testing.T) {
	var r RegisterFile
	r.A = 0xAB
	r.F = FlagSet{Z: true, C: true}
	if got := r.Read16(inst.PairAF); got != 0xAB90 {
		t.Fatalf("Read16(PairAF) = 0x%04X, want 0xAB90", got)
	}
}

func TestRegisterFileWrite16AFClearsReservedNibble(t *testing.T) {
	var r RegisterFile
	r.Write16(inst.PairAF, 0x1234)
	if r.F.Pack() != 0x30 {
		t.Fatalf("F.Pack() = 0x%02X, want 0x30 (reserved nibble dropped)", r.F.Pack())
	}
	if r.A != 0x12 {
		t.Fatalf("A = 0x%02X, want 0x12", r.A)
	}
}

func TestRegisterFileSP(t *testing.T) {
	var r RegisterFile
	r.Write16(inst.PairSP, 0xFFFE)
	if r.SP != 0xFFFE {
		t.Fatalf("SP = 0x%04X, want 0xFFFE", r.SP)
	}
	if got := r.Read16(inst.PairSP); got != 0xFFFE {
		t.Fatalf("Read16(PairSP) = 0x%04X, want 0xFFFE", got)
	}
}
