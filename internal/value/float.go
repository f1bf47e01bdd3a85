package value

import "math"

// DecodeSingle converts an IBM System/360 single-precision hex-float word
// (sign(1) | exponent(7, excess-64, base-16) | fraction(24)) to a float64.
// A zero fraction yields exactly 0.0 regardless of the exponent field, per
// the reference decoder.
func DecodeSingle(word uint32) float64 {
	sign := word&0x80000000 != 0
	exp := int((word >> 24) & 0x7f)
	frac := word & 0x00ffffff

	if frac == 0 {
		return 0.0
	}

	mantissa := float64(frac) / 16777216.0 * math.Pow(16, float64(exp-64))
	if sign {
		mantissa = -mantissa
	}
	return mantissa
}

// DecodeDouble converts an IBM System/360 double-precision hex-float value,
// split across two big-endian words (hi carries sign/exponent/high 24 bits
// of fraction, lo carries the low 32 bits of the 56-bit fraction), to a
// float64.
func DecodeDouble(hi, lo uint32) float64 {
	sign := hi&0x80000000 != 0
	exp := int((hi >> 24) & 0x7f)
	fracHi := hi & 0x00ffffff

	if fracHi == 0 && lo == 0 {
		return 0.0
	}

	mantissa := (float64(fracHi)*4294967296.0 + float64(lo)) / 72057594037927936.0 * math.Pow(16, float64(exp-64))
	if sign {
		mantissa = -mantissa
	}
	return mantissa
}
