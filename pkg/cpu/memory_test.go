package cpu

import "testing"

func TestMemoryReadWrite(t *testing.T) {
	var m Memory
	m.Write(0xC000, 0x99)
	if got := m.Read(0xC000); got != 0x99 {
		t.Fatalf("Read(0xC000) = 0x%02X, want 0x99", got)
	}
}

func TestMemoryWordLittleEndian(t *testing.T) {
	var m Memory
	m.WriteWord(0xC000, 0xBEEF)
	if got := m.Read(0xC000); got != 0xEF {
		t.Fatalf("low byte = 0x%02X, want 0xEF", got)
	}
	if got := m.Read(0xC001); got != 0xBE {
		t.Fatalf("high byte = 0x%02X, want 0xBE", got)
	}
	if got := m.ReadWord(0xC000); got != 0xBEEF {
		t.Fatalf("ReadWord(0xC000) = 0x%04X, want 0xBEEF", got)
	}
}

func TestMemoryWriteRange(t *testing.T) {
	var m Memory
	m.WriteRange(0x0100, []uint8{0x01, 0x02, 0x03})
	if m.Read(0x0100) != 0x01 || m.Read(0x0101) != 0x02 || m.Read(0x0102) != 0x03 {
		t.Fatalf("WriteRange did not place bytes at the expected offsets")
	}
}

func TestMemoryEchoRAMIsIndependentOfWorkRAM(t *testing.T) {
	var m Memory
	m.Write(workRAMStart, 0x11)
	if got := m.Read(echoRAMStart); got != 0 {
		t.Fatalf("echo RAM observed work RAM write: got 0x%02X, want 0x00", got)
	}
}

func TestMemoryDumpIsACopy(t *testing.T) {
	var m Memory
	m.Write(0, 0x55)
	dump := m.Dump()
	if len(dump) != memSize {
		t.Fatalf("Dump() len = %d, want %d", len(dump), memSize)
	}
	dump[0] = 0xFF
	if m.Read(0) != 0x55 {
		t.Fatal("mutating the dump slice mutated live memory")
	}
}
