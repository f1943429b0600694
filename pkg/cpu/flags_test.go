package cpu

import "testing"

func TestFlagSetPackUnpack(t *testing.T) {
	tests := []struct {
		name string
		f    FlagSet
		want uint8
	}{
		{"all clear", FlagSet{}, 0x00},
		{"Z only", FlagSet{Z: true}, 0x80},
		{"N only", FlagSet{N: true}, 0x40},
		{"H only", FlagSet{H: true}, 0x20},
		{"C only", FlagSet{C: true}, 0x10},
		{"all set", FlagSet{Z: true, N: true, H: true, C: true}, 0xF0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.f.Pack()
			if got != tc.want {
				t.Fatalf("Pack() = 0x%02X, want 0x%02X", got, tc.want)
			}
			var f FlagSet
			f.Unpack(got)
			if f != tc.f {
				t.Fatalf("Unpack(0x%02X) = %+v, want %+v", got, f, tc.f)
			}
		})
	}
}

func TestFlagSetUnpackIgnoresLowNibble(t *testing.T) {
	var f FlagSet
	f.Unpack(0x8F)
	if !f.Z || f.N || f.H || f.C {
		t.Fatalf("Unpack(0x8F) = %+v, want only Z set", f)
	}
}
