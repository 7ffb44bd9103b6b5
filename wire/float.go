package wire

import "math"

// F32Bits returns the IEEE-754 bit pattern of v.
func F32Bits(v float32) uint32 { return math.Float32bits(v) }

// F32FromBits returns the float32 represented by the IEEE-754 bit pattern b.
func F32FromBits(b uint32) float32 { return math.Float32frombits(b) }

// CanonicalF32 canonicalizes a float for digest purposes: every NaN
// collapses to the quiet NaN bit pattern 0x7fc00000 and negative
// zero collapses to positive zero, so bit-identical documents whose
// floats differ only in these encodings still hash identically.
func CanonicalF32(v float32) uint32 {
	if math.IsNaN(float64(v)) {
		return 0x7fc00000
	}
	if v == 0 {
		return 0
	}
	return F32Bits(v)
}
