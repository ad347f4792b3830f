package sim

import "testing"

func TestRandomSourceDeterminism(t *testing.T) {
	a := NewRandomSource(99)
	b := NewRandomSource(99)

	for i := 0; i < 100; i++ {
		if a.Float() != b.Float() {
			t.Fatalf("sources with same seed diverged at draw %d", i)
		}
	}

	a.Reseed(7)
	b.Reseed(7)
	if a.Range(-3, 3) != b.Range(-3, 3) {
		t.Error("reseeded sources should match")
	}
	if a.Seed() != 7 {
		t.Errorf("Seed() = %d, expected 7", a.Seed())
	}
}

func TestRandomSourceRanges(t *testing.T) {
	r := NewRandomSource(1)

	for i := 0; i < 1000; i++ {
		if v := r.Range(-0.3, 0.3); v < -0.3 || v >= 0.3 {
			t.Fatalf("Range(-0.3, 0.3) = %v out of range", v)
		}
		if n := r.Intn(4); n < 0 || n >= 4 {
			t.Fatalf("Intn(4) = %d out of range", n)
		}
		if s := r.Sign(); s != 1 && s != -1 {
			t.Fatalf("Sign() = %v", s)
		}
	}

	if got := r.Range(2, 2); got != 2 {
		t.Errorf("empty range should return min, got %v", got)
	}
	if got := r.Intn(1); got != 0 {
		t.Errorf("Intn(1) = %d, expected 0", got)
	}
}
