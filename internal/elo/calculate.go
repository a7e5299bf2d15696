package elo

import "math"

// DefaultK is used when no positive K-factor is given.
const DefaultK = 32.0

type Delta struct {
	Winner int
	Loser  int
}

// Expected returns the expected score of a player rated ra against a player rated rb.
func Expected(ra, rb int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(rb-ra)/400.0))
}

// Calculate rating deltas for a decided match.
// Winner delta is round(k * (1 - Ew)) rounded half away from zero, loser delta is its negation.
func Calculate(winnerRating int, loserRating int, k float64) Delta {
	if k <= 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		k = DefaultK
	}
	ew := Expected(winnerRating, loserRating)
	d := int(math.Round(k * (1 - ew)))
	return Delta{
		Winner: d,
		Loser:  -d,
	}
}
