package rating

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/elo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testTime }

func newOutcome(w, l uuid.UUID) domain.MatchOutcome {
	return domain.MatchOutcome{
		MatchID:     uuid.New(),
		WinnerID:    w,
		LoserID:     l,
		WinnerScore: 2,
		LoserScore:  1,
		Scope:       domain.GlobalScope,
	}
}

func TestApplyMatchOutcomeEqualRatings(t *testing.T) {
	e := New(WithClock(fixedClock))
	w, l := uuid.New(), uuid.New()
	o := newOutcome(w, l)

	res, err := e.ApplyMatchOutcome(o,
		domain.NewRating(w, domain.GlobalScope, testTime),
		domain.NewRating(l, domain.GlobalScope, testTime))
	require.NoError(t, err)

	assert.Equal(t, 16, res.Change.WinnerDelta)
	assert.Equal(t, -16, res.Change.LoserDelta)
	assert.Equal(t, 1216, res.Change.WinnerNew)
	assert.Equal(t, 1184, res.Change.LoserNew)
	assert.Equal(t, 1200, res.Change.WinnerPrevious)
	assert.Equal(t, 1200, res.Change.LoserPrevious)
	assert.Equal(t, o.MatchID, res.Change.MatchID)
	assert.Equal(t, testTime, res.Change.CreatedAt)

	assert.Equal(t, 1216, res.Winner.CurrentRating)
	assert.Equal(t, 1216, res.Winner.HighestRating)
	assert.Equal(t, 1, res.Winner.MatchesPlayed)
	assert.Len(t, res.Winner.History, 2)

	assert.Equal(t, 1184, res.Loser.CurrentRating)
	assert.Equal(t, 1200, res.Loser.HighestRating)
	assert.Equal(t, 1, res.Loser.MatchesPlayed)
	assert.Equal(t, domain.HistoryEntry{Rating: 1184, At: testTime}, res.Loser.History[1])
}

func TestApplyMatchOutcomeDoesNotModifyInput(t *testing.T) {
	e := New()
	w, l := uuid.New(), uuid.New()
	winner := domain.NewRating(w, domain.GlobalScope, testTime)
	loser := domain.NewRating(l, domain.GlobalScope, testTime)

	_, err := e.ApplyMatchOutcome(newOutcome(w, l), winner, loser)
	require.NoError(t, err)
	assert.Equal(t, 1200, winner.CurrentRating)
	assert.Len(t, winner.History, 1)
	assert.Len(t, loser.History, 1)
}

func TestApplyMatchOutcomeFloorsAtZero(t *testing.T) {
	e := New(WithKFactor(elo.Fixed(32)))
	w, l := uuid.New(), uuid.New()
	winner := domain.Rating{CompetitorID: w, Scope: domain.GlobalScope, CurrentRating: 5, HighestRating: 1200}
	loser := domain.Rating{CompetitorID: l, Scope: domain.GlobalScope, CurrentRating: 5, HighestRating: 1200}

	res, err := e.ApplyMatchOutcome(newOutcome(w, l), winner, loser)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Loser.CurrentRating)
	assert.Equal(t, -16, res.Change.LoserDelta)
	assert.Equal(t, 0, res.Change.LoserNew)
	assert.Equal(t, 21, res.Winner.CurrentRating)
}

func TestApplyMatchOutcomeErrors(t *testing.T) {
	e := New()
	w, l := uuid.New(), uuid.New()
	winner := domain.NewRating(w, domain.GlobalScope, testTime)
	loser := domain.NewRating(l, domain.GlobalScope, testTime)

	tests := []struct {
		name    string
		outcome func() domain.MatchOutcome
		winner  domain.Rating
		loser   domain.Rating
		wantErr error
	}{
		{
			name: "equal scores",
			outcome: func() domain.MatchOutcome {
				o := newOutcome(w, l)
				o.LoserScore = 2
				return o
			},
			winner:  winner,
			loser:   loser,
			wantErr: ErrInvalidScoreOrdering,
		},
		{
			name: "loser scored more",
			outcome: func() domain.MatchOutcome {
				o := newOutcome(w, l)
				o.WinnerScore, o.LoserScore = 0, 3
				return o
			},
			winner:  winner,
			loser:   loser,
			wantErr: ErrInvalidScoreOrdering,
		},
		{
			name:    "same competitor",
			outcome: func() domain.MatchOutcome { return newOutcome(w, w) },
			winner:  winner,
			loser:   winner,
			wantErr: ErrSameCompetitor,
		},
		{
			name:    "missing loser",
			outcome: func() domain.MatchOutcome { return newOutcome(w, uuid.Nil) },
			winner:  winner,
			loser:   loser,
			wantErr: ErrMissingCompetitor,
		},
		{
			name:    "swapped ratings",
			outcome: func() domain.MatchOutcome { return newOutcome(w, l) },
			winner:  loser,
			loser:   winner,
			wantErr: ErrRatingMismatch,
		},
		{
			name: "other scope",
			outcome: func() domain.MatchOutcome {
				o := newOutcome(w, l)
				o.Scope = "chess"
				return o
			},
			winner:  winner,
			loser:   loser,
			wantErr: ErrRatingMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.ApplyMatchOutcome(tt.outcome(), tt.winner, tt.loser)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHighestRatingMonotonic(t *testing.T) {
	e := New(WithKFactor(elo.Experience{}))
	rnd := rand.New(rand.NewSource(7))
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	ratings := make(map[uuid.UUID]domain.Rating)
	for _, id := range ids {
		ratings[id] = domain.NewRating(id, domain.GlobalScope, testTime)
	}

	for i := 0; i < 500; i++ {
		a := ids[rnd.Intn(len(ids))]
		b := ids[rnd.Intn(len(ids))]
		if a == b {
			continue
		}
		prevA, prevB := ratings[a], ratings[b]
		res, err := e.ApplyMatchOutcome(newOutcome(a, b), prevA, prevB)
		require.NoError(t, err)

		assert.Zero(t, res.Change.WinnerDelta+res.Change.LoserDelta)
		assert.GreaterOrEqual(t, res.Winner.HighestRating, prevA.HighestRating)
		assert.Equal(t, prevB.HighestRating, res.Loser.HighestRating)
		assert.GreaterOrEqual(t, res.Winner.CurrentRating, 0)
		assert.GreaterOrEqual(t, res.Loser.CurrentRating, 0)
		ratings[a], ratings[b] = res.Winner, res.Loser
	}

	for _, r := range ratings {
		best := 0
		for _, h := range r.History {
			if h.Rating > best {
				best = h.Rating
			}
		}
		assert.Equal(t, best, r.HighestRating)
		assert.Equal(t, r.MatchesPlayed+1, len(r.History))
	}
}

func TestGlicko2Board(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	changes := []domain.RatingChange{
		{WinnerID: a, LoserID: b},
		{WinnerID: a, LoserID: c},
		{WinnerID: b, LoserID: c},
		{WinnerID: a, LoserID: b},
	}
	board := Glicko2Board(changes)
	require.Len(t, board, 3)
	assert.Equal(t, a, board[0].CompetitorID)
	assert.Equal(t, c, board[2].CompetitorID)
	assert.Equal(t, 3, board[0].Matches)
	for _, r := range board {
		assert.Less(t, r.Interval.Min, r.Rating)
		assert.Greater(t, r.Interval.Max, r.Rating)
	}

	assert.Empty(t, Glicko2Board(nil))
}

func TestPreviewMatchesApply(t *testing.T) {
	e := New(WithClock(fixedClock), WithKFactor(elo.Experience{}))
	w, l := uuid.New(), uuid.New()
	winner := domain.NewRating(w, domain.GlobalScope, testTime)
	loser := domain.NewRating(l, domain.GlobalScope, testTime)
	loser.CurrentRating = 1400

	preview := e.Preview(winner, loser)
	res, err := e.ApplyMatchOutcome(newOutcome(w, l), winner, loser)
	require.NoError(t, err)
	assert.Equal(t, preview.Winner, res.Change.WinnerDelta)
	assert.Equal(t, preview.Loser, res.Change.LoserDelta)
	assert.Equal(t, 1200, winner.CurrentRating)
}
