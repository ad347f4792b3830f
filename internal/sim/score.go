package sim

import "math"

// ScoreAccumulator derives score from the vertical distance a reference
// point has travelled above its baseline.
//
// By default distance is recomputed from the current position every update,
// so the score drops if the reference moves back down. With ratchet enabled
// the best distance is kept instead.
type ScoreAccumulator struct {
	multiplier float64
	ratchet    bool

	baseline float64
	distance float64
	score    int
}

// NewScoreAccumulator creates an accumulator awarding multiplier points per
// world unit of height.
func NewScoreAccumulator(multiplier float64, ratchet bool) (*ScoreAccumulator, error) {
	if multiplier < 0 {
		return nil, invalid("score multiplier must be >= 0, got %v", multiplier)
	}
	return &ScoreAccumulator{multiplier: multiplier, ratchet: ratchet}, nil
}

// Start captures the baseline and zeroes the score.
func (s *ScoreAccumulator) Start(baselineY float64) {
	s.baseline = baselineY
	s.distance = 0
	s.score = 0
}

// Update recomputes the score from the reference's current height.
func (s *ScoreAccumulator) Update(y float64) int {
	d := math.Max(0, y-s.baseline)
	if s.ratchet {
		d = math.Max(d, s.distance)
	}
	s.distance = d
	s.score = int(math.Floor(d * s.multiplier))
	return s.score
}

// Score returns the current integer score.
func (s *ScoreAccumulator) Score() int { return s.score }

// Distance returns the distance used for the current score.
func (s *ScoreAccumulator) Distance() float64 { return s.distance }

// Baseline returns the captured starting height.
func (s *ScoreAccumulator) Baseline() float64 { return s.baseline }

// Multiplier returns points per world unit.
func (s *ScoreAccumulator) Multiplier() float64 { return s.multiplier }

// Ratchet reports whether the best distance is kept.
func (s *ScoreAccumulator) Ratchet() bool { return s.ratchet }
