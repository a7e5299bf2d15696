package domain

import (
	"time"

	"github.com/google/uuid"
)

type Seeding string

const (
	SeedingRandom       Seeding = "random"
	SeedingRating       Seeding = "rating"
	SeedingRegistration Seeding = "registration-order"
)

func (s Seeding) Valid() bool {
	switch s {
	case SeedingRandom, SeedingRating, SeedingRegistration:
		return true
	}
	return false
}

type MatchStatus string

const (
	MatchEmpty        MatchStatus = "empty"
	MatchPartial      MatchStatus = "partially_filled"
	MatchReady        MatchStatus = "ready"
	MatchInProgress   MatchStatus = "in_progress"
	MatchCompleted    MatchStatus = "completed"
	MatchByeCompleted MatchStatus = "bye_completed"
)

func (s MatchStatus) Finished() bool {
	return s == MatchCompleted || s == MatchByeCompleted
}

type BracketStatus string

const (
	BracketInProgress BracketStatus = "in_progress"
	BracketCompleted  BracketStatus = "completed"
)

// Slot holds a competitor, waits for a feeder match, or is a permanent void (bye).
type Slot struct {
	CompetitorID uuid.UUID
	Void         bool
}

func (s Slot) Filled() bool {
	return s.CompetitorID != uuid.Nil
}

// Settled reports whether the slot will not change anymore before the match is played.
func (s Slot) Settled() bool {
	return s.Filled() || s.Void
}

type Score struct {
	Winner int
	Loser  int
}

type MatchResult struct {
	WinnerID uuid.UUID
	Score    Score
}

type BracketMatch struct {
	ID       string
	Round    int
	Position int
	Slots    [2]Slot
	Status   MatchStatus
	Result   *MatchResult
	// NextMatchID is empty for the final.
	NextMatchID string
	NextSlot    int
}

func (m *BracketMatch) HasCompetitor(id uuid.UUID) bool {
	return id != uuid.Nil && (m.Slots[0].CompetitorID == id || m.Slots[1].CompetitorID == id)
}

// Loser returns the competitor that lost a completed match.
func (m *BracketMatch) Loser() (uuid.UUID, bool) {
	if m.Result == nil || m.Status != MatchCompleted {
		return uuid.Nil, false
	}
	for _, s := range m.Slots {
		if s.Filled() && s.CompetitorID != m.Result.WinnerID {
			return s.CompetitorID, true
		}
	}
	return uuid.Nil, false
}

// Bracket is a single elimination graph. Matches is the arena of nodes ordered by round and position,
// the structure never changes after generation.
type Bracket struct {
	ID           uuid.UUID
	TournamentID uuid.UUID
	Scope        Scope
	Seeding      Seeding
	Size         int
	Rounds       int
	Participants []Competitor
	Matches      []BracketMatch
	Status       BracketStatus
	ChampionID   uuid.UUID
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	index map[string]int
}

func (b *Bracket) Match(id string) (*BracketMatch, bool) {
	if b.index == nil || len(b.index) != len(b.Matches) {
		b.Reindex()
	}
	i, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return &b.Matches[i], true
}

// Reindex rebuilds the id lookup, call it after replacing Matches.
func (b *Bracket) Reindex() {
	b.index = make(map[string]int, len(b.Matches))
	for i := range b.Matches {
		b.index[b.Matches[i].ID] = i
	}
}

func (b *Bracket) Final() *BracketMatch {
	for i := range b.Matches {
		if b.Matches[i].NextMatchID == "" {
			return &b.Matches[i]
		}
	}
	return nil
}

func (b *Bracket) Clone() *Bracket {
	c := *b
	c.Participants = make([]Competitor, len(b.Participants))
	copy(c.Participants, b.Participants)
	c.Matches = make([]BracketMatch, len(b.Matches))
	for i, m := range b.Matches {
		if m.Result != nil {
			r := *m.Result
			m.Result = &r
		}
		c.Matches[i] = m
	}
	c.index = nil
	return &c
}
