package domain

import "math"

const (
	KFactor       = 32.0
	InitialRating = 1500.0
)

// Score values for EloUpdate, from the first player's point of view.
const (
	ScoreLoss = 0.0
	ScoreDraw = 0.5
	ScoreWin  = 1.0
)

// ExpectedScore is the probability-like expectation of a rated ratingA
// player against ratingB.
func ExpectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (ratingB-ratingA)/400.0))
}

// EloUpdate returns both new ratings after a game where player A scored
// score. The update is zero-sum.
func EloUpdate(ratingA, ratingB, score float64) (float64, float64) {
	delta := KFactor * (score - ExpectedScore(ratingA, ratingB))
	return ratingA + delta, ratingB - delta
}
