package digest

import "testing"

func TestDeterministic(t *testing.T) {
	walk := func() (uint32, uint32) {
		b := New()
		b.U32(7)
		b.F32(1.5)
		b.String("hello")
		return b.Sum()
	}
	lo1, hi1 := walk()
	lo2, hi2 := walk()
	if lo1 != lo2 || hi1 != hi2 {
		t.Fatal("digest must be deterministic for identical input")
	}
}

func TestNegativeZeroCanonicalizes(t *testing.T) {
	b1 := New()
	b1.F32(0)
	lo1, hi1 := b1.Sum()

	b2 := New()
	b2.F32(float32(-0.0))
	lo2, hi2 := b2.Sum()

	if lo1 != lo2 || hi1 != hi2 {
		t.Fatal("0 and -0 must hash identically")
	}
}

func TestDifferentInputsDiffer(t *testing.T) {
	b1 := New()
	b1.U32(1)
	lo1, hi1 := b1.Sum()

	b2 := New()
	b2.U32(2)
	lo2, hi2 := b2.Sum()

	if lo1 == lo2 && hi1 == hi2 {
		t.Fatal("different inputs should (overwhelmingly likely) hash differently")
	}
}
