package rating

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/elo"
)

var (
	ErrInvalidScoreOrdering = errors.New("winner score must be greater than loser score")
	ErrSameCompetitor       = errors.New("winner and loser must be different competitors")
	ErrRatingMismatch       = errors.New("rating does not belong to the match outcome")
	ErrMissingCompetitor    = errors.New("match outcome must name a winner and a loser")
)

type Engine struct {
	k   elo.KFactor
	now func() time.Time
}

type Option func(*Engine)

func WithKFactor(k elo.KFactor) Option {
	return func(e *Engine) {
		if k != nil {
			e.k = k
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		k:   elo.Fixed(elo.DefaultK),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result holds the record of an applied outcome and both updated ratings.
type Result struct {
	Change domain.RatingChange
	Winner domain.Rating
	Loser  domain.Rating
}

// ValidateOutcome checks an outcome before any rating is touched.
func ValidateOutcome(o domain.MatchOutcome) error {
	if o.WinnerID == uuid.Nil || o.LoserID == uuid.Nil {
		return ErrMissingCompetitor
	}
	if o.WinnerID == o.LoserID {
		return ErrSameCompetitor
	}
	if o.WinnerScore <= o.LoserScore {
		return fmt.Errorf("%w: %d:%d", ErrInvalidScoreOrdering, o.WinnerScore, o.LoserScore)
	}
	return nil
}

// ApplyMatchOutcome computes the new ratings of both sides. Inputs are not modified.
func (e *Engine) ApplyMatchOutcome(o domain.MatchOutcome, winner, loser domain.Rating) (Result, error) {
	if err := ValidateOutcome(o); err != nil {
		return Result{}, err
	}
	if winner.CompetitorID != o.WinnerID || winner.Scope != o.Scope {
		return Result{}, fmt.Errorf("%w: winner %s/%s", ErrRatingMismatch, winner.CompetitorID, winner.Scope)
	}
	if loser.CompetitorID != o.LoserID || loser.Scope != o.Scope {
		return Result{}, fmt.Errorf("%w: loser %s/%s", ErrRatingMismatch, loser.CompetitorID, loser.Scope)
	}

	delta := elo.Calculate(winner.CurrentRating, loser.CurrentRating, e.k.K(winner, loser))
	at := e.now()

	newWinner := advance(winner, delta.Winner, at)
	newLoser := advance(loser, delta.Loser, at)

	return Result{
		Change: domain.RatingChange{
			ID:             uuid.New(),
			MatchID:        o.MatchID,
			Scope:          o.Scope,
			WinnerID:       o.WinnerID,
			LoserID:        o.LoserID,
			WinnerPrevious: winner.CurrentRating,
			WinnerNew:      newWinner.CurrentRating,
			WinnerDelta:    delta.Winner,
			LoserPrevious:  loser.CurrentRating,
			LoserNew:       newLoser.CurrentRating,
			LoserDelta:     delta.Loser,
			CreatedAt:      at,
		},
		Winner: newWinner,
		Loser:  newLoser,
	}, nil
}

func advance(r domain.Rating, delta int, at time.Time) domain.Rating {
	next := r.Clone()
	next.CurrentRating = r.CurrentRating + delta
	if next.CurrentRating < 0 {
		next.CurrentRating = 0
	}
	next.MatchesPlayed++
	if next.CurrentRating > next.HighestRating {
		next.HighestRating = next.CurrentRating
	}
	next.History = append(next.History, domain.HistoryEntry{Rating: next.CurrentRating, At: at})
	return next
}

// Preview returns the deltas a win of winner over loser would produce, nothing is recorded.
func (e *Engine) Preview(winner, loser domain.Rating) elo.Delta {
	return elo.Calculate(winner.CurrentRating, loser.CurrentRating, e.k.K(winner, loser))
}
