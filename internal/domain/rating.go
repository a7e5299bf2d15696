package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultRating = 1200

// Scope is either GlobalScope or a normalized game name.
type Scope string

const GlobalScope Scope = "global"

type HistoryEntry struct {
	Rating int
	At     time.Time
}

// Rating of one competitor in one scope.
// HighestRating never decreases and equals the max of History.
type Rating struct {
	CompetitorID  uuid.UUID
	Scope         Scope
	CurrentRating int
	MatchesPlayed int
	HighestRating int
	History       []HistoryEntry
}

// NewRating returns the rating a competitor starts with before the first rated match.
// The starting value is recorded in History so that HighestRating is always backed by an entry.
func NewRating(competitorID uuid.UUID, scope Scope, at time.Time) Rating {
	return Rating{
		CompetitorID:  competitorID,
		Scope:         scope,
		CurrentRating: DefaultRating,
		HighestRating: DefaultRating,
		History:       []HistoryEntry{{Rating: DefaultRating, At: at}},
	}
}

func (r Rating) Clone() Rating {
	c := r
	c.History = make([]HistoryEntry, len(r.History))
	copy(c.History, r.History)
	return c
}

type MatchOutcome struct {
	MatchID     uuid.UUID
	WinnerID    uuid.UUID
	LoserID     uuid.UUID
	WinnerScore int
	LoserScore  int
	Scope       Scope
}

// RatingChange is the record of one applied MatchOutcome.
// Deltas are the ELO deltas, New values are after the zero floor.
type RatingChange struct {
	ID             uuid.UUID
	MatchID        uuid.UUID
	Scope          Scope
	WinnerID       uuid.UUID
	LoserID        uuid.UUID
	WinnerPrevious int
	WinnerNew      int
	WinnerDelta    int
	LoserPrevious  int
	LoserNew       int
	LoserDelta     int
	CreatedAt      time.Time
}
