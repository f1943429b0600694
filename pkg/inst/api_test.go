package inst

import "testing"

func TestDisassembleNoPlaceholder(t *testing.T) {
	instr, _ := Decode(0x00, false) // NOP
	if got := Disassemble(instr, 0); got != "NOP" {
		t.Fatalf("Disassemble(NOP) = %q, want %q", got, "NOP")
	}
}

func TestDisassembleImm8(t *testing.T) {
	instr, _ := Decode(0x06, false) // LD B,n
	if got := Disassemble(instr, 0x42); got != "LD B,0x42" {
		t.Fatalf("Disassemble(LD B,n, 0x42) = %q, want %q", got, "LD B,0x42")
	}
}

func TestDisassembleImm16(t *testing.T) {
	instr, _ := Decode(0x01, false) // LD BC,nn
	if got := Disassemble(instr, 0xBEEF); got != "LD BC,0xBEEF" {
		t.Fatalf("Disassemble(LD BC,nn, 0xBEEF) = %q, want %q", got, "LD BC,0xBEEF")
	}
}

func TestDisassembleRSTDoesNotSubstitute(t *testing.T) {
	instr, _ := Decode(0xC7, false) // RST 00h
	if got := Disassemble(instr, 0); got != "RST 00h" {
		t.Fatalf("Disassemble(RST 00h) = %q, want %q", got, "RST 00h")
	}
}

func TestDisassembleConditionalRelativeJump(t *testing.T) {
	instr, _ := Decode(0x28, false) // JR Z,n
	if got := Disassemble(instr, 0x05); got != "JR Z,0x05" {
		t.Fatalf("Disassemble(JR Z,n, 0x05) = %q, want %q", got, "JR Z,0x05")
	}
}

func TestDisassembleEmbeddedPlaceholder(t *testing.T) {
	tests := []struct {
		op   uint8
		imm  uint16
		want string
	}{
		{0x08, 0xC000, "LD (0xC000),SP"}, // LD (nn),SP
		{0xEA, 0xC000, "LD (0xC000),A"},  // LD (nn),A
		{0xFA, 0xC000, "LD A,(0xC000)"},  // LD A,(nn)
		{0xE0, 0x80, "LDH (0x80),A"},     // LDH (n),A
		{0xF0, 0x80, "LDH A,(0x80)"},     // LDH A,(n)
	}
	for _, tc := range tests {
		instr, ok := Decode(tc.op, false)
		if !ok {
			t.Fatalf("0x%02X should decode", tc.op)
		}
		if got := Disassemble(instr, tc.imm); got != tc.want {
			t.Fatalf("Disassemble(0x%02X, 0x%X) = %q, want %q", tc.op, tc.imm, got, tc.want)
		}
	}
}
