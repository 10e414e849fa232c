package plink

import (
	"bytes"
	"testing"
)

// One byte holding all four 2-bit patterns: 11 10 01 00 reading from the
// most significant pair down, decoded least-significant pair first.
func TestDecodeMapping(t *testing.T) {
	out := make([]byte, PackDensity)
	Decode(out, []byte{0xE4})

	want := []byte{2, NA, 1, 0}
	if !bytes.Equal(out, want) {
		t.Fatalf("Decode(0xE4) = %v, want %v", out, want)
	}
}

func TestDecodeAllBytes(t *testing.T) {
	// Every byte decodes to codes in {0, 1, 2, NA} and decoding twice
	// gives identical output.
	out1 := make([]byte, PackDensity)
	out2 := make([]byte, PackDensity)
	for b := 0; b < 256; b++ {
		Decode(out1, []byte{byte(b)})
		Decode(out2, []byte{byte(b)})
		if !bytes.Equal(out1, out2) {
			t.Fatalf("byte %#x: decode not deterministic: %v vs %v", b, out1, out2)
		}
		for s, c := range out1 {
			if c > NA {
				t.Fatalf("byte %#x sample %d: code %d out of range", b, s, c)
			}
		}
	}
}

func TestDecodeMultiByte(t *testing.T) {
	out := make([]byte, 2*PackDensity)
	Decode(out, []byte{0x1B, 0x4E})

	want := []byte{0, 1, NA, 2, 1, 0, 2, NA}
	if !bytes.Equal(out, want) {
		t.Fatalf("Decode([0x1B 0x4E]) = %v, want %v", out, want)
	}
}

func TestBytesPerMarker(t *testing.T) {
	cases := []struct{ n, want int }{
		{1, 1}, {4, 1}, {5, 2}, {8, 2}, {9, 3},
	}
	for _, c := range cases {
		if got := BytesPerMarker(c.n); got != c.want {
			t.Errorf("BytesPerMarker(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
