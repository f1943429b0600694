package cpu

import (
	"errors"
	"testing"

	"github.com/dmg-emu/dmg-core/internal/dmgerr"
	"github.com/dmg-emu/dmg-core/pkg/inst"
)

func newBootedCPU(t *testing.T, program []uint8) *CPU {
	t.Helper()
	c := New()
	c.Boot(nil, program)
	c.PC = gameImgOff
	return c
}

func TestStepLoadImmediateChain(t *testing.T) {
	// LD A,0x42 ; LD B,A
	c := newBootedCPU(t, []uint8{0x3E, 0x42, 0x47})
	if err := c.Step(); err != nil {
		t.Fatalf("LD A,n: %v", err)
	}
	if c.Regs.A != 0x42 {
		t.Fatalf("A = 0x%02X, want 0x42", c.Regs.A)
	}
	if err := c.Step(); err != nil {
		t.Fatalf("LD B,A: %v", err)
	}
	if c.Regs.B != 0x42 {
		t.Fatalf("B = 0x%02X, want 0x42", c.Regs.B)
	}
	if c.PC != gameImgOff+3 {
		t.Fatalf("PC = 0x%04X, want 0x%04X", c.PC, gameImgOff+3)
	}
}

func TestStepAddWithCarryAndHalfCarry(t *testing.T) {
	// ADD A,B
	c := newBootedCPU(t, []uint8{0x80})
	c.Regs.A = 0x0F
	c.Regs.B = 0x01
	if err := c.Step(); err != nil {
		t.Fatalf("ADD A,B: %v", err)
	}
	if c.Regs.A != 0x10 {
		t.Fatalf("A = 0x%02X, want 0x10", c.Regs.A)
	}
	if !c.Regs.F.H || c.Regs.F.C || c.Regs.F.Z || c.Regs.F.N {
		t.Fatalf("flags = %+v, want H only", c.Regs.F)
	}

	c2 := newBootedCPU(t, []uint8{0x80})
	c2.Regs.A = 0xFF
	c2.Regs.B = 0x01
	if err := c2.Step(); err != nil {
		t.Fatalf("ADD A,B: %v", err)
	}
	if c2.Regs.A != 0x00 {
		t.Fatalf("A = 0x%02X, want 0x00", c2.Regs.A)
	}
	if !c2.Regs.F.Z || !c2.Regs.F.H || !c2.Regs.F.C {
		t.Fatalf("flags = %+v, want Z,H,C all set", c2.Regs.F)
	}
}

func TestStepPushPopRoundTrip(t *testing.T) {
	// LD BC,0xBEEF ; PUSH BC ; POP DE
	c := newBootedCPU(t, []uint8{0x01, 0xEF, 0xBE, 0xC5, 0xD1})
	c.Regs.SP = 0xFFFE
	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if c.Regs.Read16(inst.PairDE) != 0xBEEF {
		t.Fatalf("DE = 0x%04X, want 0xBEEF", c.Regs.Read16(inst.PairDE))
	}
	if c.Regs.SP != 0xFFFE {
		t.Fatalf("SP = 0x%04X, want 0xFFFE (restored after pop)", c.Regs.SP)
	}
}

func TestStepConditionalRelativeJumpTaken(t *testing.T) {
	// addr+0 XOR A (sets Z) ; addr+1 JR Z,+1 ; addr+3 (skipped) NOP ;
	// addr+4 (landed) LD A,0x01
	c := newBootedCPU(t, []uint8{0xAF, 0x28, 0x01, 0x00, 0x3E, 0x01})
	if err := c.Step(); err != nil { // XOR A
		t.Fatalf("XOR A: %v", err)
	}
	if !c.Regs.F.Z {
		t.Fatal("expected Z set after XOR A")
	}
	if err := c.Step(); err != nil { // JR Z,+1
		t.Fatalf("JR Z,+1: %v", err)
	}
	wantPC := uint16(gameImgOff + 4) // landed directly on the LD A,n opcode
	if c.PC != wantPC {
		t.Fatalf("PC = 0x%04X, want 0x%04X", c.PC, wantPC)
	}
	if err := c.Step(); err != nil { // LD A,0x01
		t.Fatalf("LD A,n: %v", err)
	}
	if c.Regs.A != 0x01 {
		t.Fatalf("A = 0x%02X, want 0x01 (conditional jump should have skipped the NOP)", c.Regs.A)
	}
}

func TestStepBitTestOnHLIndirect(t *testing.T) {
	// LD HL,0xC000 ; LD (HL),0x80 ; CB BIT 7,(HL)
	c := newBootedCPU(t, []uint8{0x21, 0x00, 0xC0, 0x36, 0x80, 0xCB, 0x7E})
	for i := 0; i < 2; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if err := c.Step(); err != nil { // BIT 7,(HL)
		t.Fatalf("BIT 7,(HL): %v", err)
	}
	if c.Regs.F.Z {
		t.Fatal("BIT 7,(HL) should clear Z: bit 7 of 0x80 is set")
	}
	if !c.Regs.F.H {
		t.Fatal("BIT always sets H")
	}
}

func TestStepCallAndReturn(t *testing.T) {
	// At game+0: CALL game+4 ; NOP (return lands here)
	// At game+4: LD A,0x07 ; RET
	program := []uint8{0xCD, 0x04, 0x01, 0x00, 0x3E, 0x07, 0xC9}
	c := newBootedCPU(t, program)
	c.Regs.SP = 0xFFFE

	if err := c.Step(); err != nil { // CALL
		t.Fatalf("CALL: %v", err)
	}
	if c.PC != gameImgOff+4 {
		t.Fatalf("PC after CALL = 0x%04X, want 0x%04X", c.PC, gameImgOff+4)
	}
	if err := c.Step(); err != nil { // LD A,0x07
		t.Fatalf("LD A,n: %v", err)
	}
	if err := c.Step(); err != nil { // RET
		t.Fatalf("RET: %v", err)
	}
	if c.PC != gameImgOff+3 {
		t.Fatalf("PC after RET = 0x%04X, want 0x%04X (return address)", c.PC, gameImgOff+3)
	}
	if c.Regs.A != 0x07 {
		t.Fatalf("A = 0x%02X, want 0x07", c.Regs.A)
	}
	if c.Regs.SP != 0xFFFE {
		t.Fatalf("SP = 0x%04X, want 0xFFFE (restored after call/ret)", c.Regs.SP)
	}
}

func TestStepInvalidOpcode(t *testing.T) {
	c := newBootedCPU(t, []uint8{0xD3})
	err := c.Step()
	if err == nil {
		t.Fatal("expected an error for an invalid opcode")
	}
	if !errors.Is(err, dmgerr.ErrInvalidOpcode) {
		t.Fatalf("err = %v, want wrapping ErrInvalidOpcode", err)
	}
}

func TestStepSelfJumpIsNotPCStuck(t *testing.T) {
	// JR -2: an intentional stall loop must not trip the PCStuck guard.
	c := newBootedCPU(t, []uint8{0x18, 0xFE})
	if err := c.Step(); err != nil {
		t.Fatalf("self-jump should not error: %v", err)
	}
	if c.PC != gameImgOff {
		t.Fatalf("PC = 0x%04X, want 0x%04X (jumped back to itself)", c.PC, gameImgOff)
	}
}

func TestDAAAfterBCDAdd(t *testing.T) {
	// ADD A,B (9 + 8 = 0x11, needs BCD correction) ; DAA
	c := newBootedCPU(t, []uint8{0x80, 0x27})
	c.Regs.A = 0x09
	c.Regs.B = 0x08
	if err := c.Step(); err != nil {
		t.Fatalf("ADD A,B: %v", err)
	}
	if err := c.Step(); err != nil {
		t.Fatalf("DAA: %v", err)
	}
	if c.Regs.A != 0x17 {
		t.Fatalf("A = 0x%02X, want 0x17 (BCD for 9+8=17)", c.Regs.A)
	}
}
