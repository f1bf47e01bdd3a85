package value

import "testing"

func TestDecodeSingle(t *testing.T) {
	tests := []struct {
		name string
		word uint32
		want float64
	}{
		{"one", 0x41100000, 1.0},
		{"minus one", 0xC1100000, -1.0},
		{"zero regardless of exponent", 0x00000000, 0.0},
		{"zero frac nonzero exponent", 0x7f000000, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeSingle(tt.word)
			if got != tt.want {
				t.Errorf("DecodeSingle(%#08x) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestDecodeDouble(t *testing.T) {
	tests := []struct {
		name   string
		hi, lo uint32
		want   float64
	}{
		{"one", 0x41100000, 0x00000000, 1.0},
		{"zero", 0x00000000, 0x00000000, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeDouble(tt.hi, tt.lo)
			if got != tt.want {
				t.Errorf("DecodeDouble(%#08x, %#08x) = %v, want %v", tt.hi, tt.lo, got, tt.want)
			}
		})
	}
}
