package sim

import (
	"errors"
	"testing"
)

func TestScoreRecomputesFromBaseline(t *testing.T) {
	s, err := NewScoreAccumulator(10, false)
	if err != nil {
		t.Fatal(err)
	}
	s.Start(0)

	tests := []struct {
		y        float64
		expected int
	}{
		{2, 20},
		{1, 10}, // moving back down lowers the score
		{-4, 0},
		{0.55, 5},
	}

	for _, tc := range tests {
		if got := s.Update(tc.y); got != tc.expected {
			t.Errorf("Update(%v) = %d, expected %d", tc.y, got, tc.expected)
		}
	}
}

func TestScoreRatchetKeepsBest(t *testing.T) {
	s, err := NewScoreAccumulator(10, true)
	if err != nil {
		t.Fatal(err)
	}
	s.Start(5)

	s.Update(7)
	if got := s.Update(6); got != 20 {
		t.Errorf("ratchet score = %d, expected 20", got)
	}
	if s.Distance() != 2 {
		t.Errorf("Distance() = %v, expected 2", s.Distance())
	}

	s.Start(0)
	if s.Score() != 0 || s.Baseline() != 0 {
		t.Errorf("Start() should clear score, got %d", s.Score())
	}
}

func TestScoreRejectsNegativeMultiplier(t *testing.T) {
	if _, err := NewScoreAccumulator(-1, false); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, expected ErrInvalidConfig", err)
	}
}
