package elo

import "github.com/goserg/ratingengine/internal/domain"

// KFactor picks one coefficient for a match so the deltas stay zero-sum.
type KFactor interface {
	K(winner, loser domain.Rating) float64
}

type Fixed float64

func (f Fixed) K(_, _ domain.Rating) float64 {
	if f <= 0 {
		return DefaultK
	}
	return float64(f)
}

// Experience: 40 for the first 30 games, 10 from 2400 on, 20 otherwise.
// The match uses the larger coefficient of the two sides.
type Experience struct{}

func (Experience) K(winner, loser domain.Rating) float64 {
	a := playerCoefficient(winner.MatchesPlayed, winner.CurrentRating)
	b := playerCoefficient(loser.MatchesPlayed, loser.CurrentRating)
	if a > b {
		return a
	}
	return b
}

func playerCoefficient(n int, rating int) float64 {
	if n <= 30 {
		return 40
	}
	if rating >= 2400 {
		return 10
	}
	return 20
}

// ParseKFactor maps a config policy name to a KFactor. Unknown names fall back to fixed.
func ParseKFactor(policy string, k float64) KFactor {
	if policy == "experience" {
		return Experience{}
	}
	return Fixed(k)
}
