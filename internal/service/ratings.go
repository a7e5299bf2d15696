package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/elo"
	"github.com/goserg/ratingengine/internal/normalize"
	"github.com/goserg/ratingengine/internal/policy"
	"github.com/goserg/ratingengine/internal/rank"
	"github.com/goserg/ratingengine/internal/rating"
	"github.com/goserg/ratingengine/internal/storage"

	"github.com/google/uuid"
)

// Standing is a rating placed on the leaderboard of its scope.
type Standing struct {
	Position int
	Rating   domain.Rating
	Tier     rank.Tier
}

// ReportMatch applies a confirmed outcome to the ratings of both competitors.
// An empty MatchID gets a fresh one.
func (s *Service) ReportMatch(ctx context.Context, actor policy.Actor, o domain.MatchOutcome) (rating.Result, error) {
	if err := s.policy.Authorize(actor, policy.ReportMatch); err != nil {
		return rating.Result{}, err
	}
	o.Scope = normalize.Scope(string(o.Scope))
	if o.MatchID == uuid.Nil {
		o.MatchID = uuid.New()
	}
	if err := rating.ValidateOutcome(o); err != nil {
		return rating.Result{}, err
	}

	unlock := s.locks.Lock(ratingKey(o.Scope, o.WinnerID), ratingKey(o.Scope, o.LoserID))
	defer unlock()

	var res rating.Result
	err := s.storage.Atomic(ctx, func(repo storage.Repository) error {
		var err error
		res, err = s.applyOutcome(ctx, repo, o)
		return err
	})
	if err != nil {
		return rating.Result{}, err
	}
	s.ratingApplied(ctx, res)
	return res, nil
}

// Leaderboard returns all ratings of the scope, highest first.
// Concurrent cache misses for the same scope share one storage read.
func (s *Service) Leaderboard(ctx context.Context, scope string) ([]Standing, error) {
	sc := normalize.Scope(scope)
	ratings, ok := s.cache.Leaderboard(sc)
	if !ok {
		_, err, _ := s.leaderboard.Do(string(sc), func() (interface{}, error) {
			gen := s.cache.Generation(sc)
			list, err := s.storage.ListRatings(ctx, sc)
			if err != nil {
				return nil, err
			}
			if !s.cache.Update(sc, gen, list) {
				s.log.WithField("scope", sc).Debug("leaderboard changed while loading, not cached")
			}
			return nil, nil
		})
		if err != nil {
			return nil, err
		}
		ratings, ok = s.cache.Leaderboard(sc)
		if !ok {
			// invalidated between the load and the read
			ratings, err = s.storage.ListRatings(ctx, sc)
			if err != nil {
				return nil, err
			}
		}
	}
	standings := make([]Standing, 0, len(ratings))
	for i := range ratings {
		standings = append(standings, Standing{
			Position: i + 1,
			Rating:   ratings[i],
			Tier:     rank.GetTier(ratings[i].CurrentRating),
		})
	}
	return standings, nil
}

// GetRating returns the standing of one competitor, storage.ErrNotFound if it never played in scope.
func (s *Service) GetRating(ctx context.Context, competitorID uuid.UUID, scope string) (Standing, error) {
	sc := normalize.Scope(scope)
	if r, pos, ok := s.cache.Get(sc, competitorID); ok {
		return Standing{Position: pos, Rating: r, Tier: rank.GetTier(r.CurrentRating)}, nil
	}
	board, err := s.Leaderboard(ctx, scope)
	if err != nil {
		return Standing{}, err
	}
	for _, st := range board {
		if st.Rating.CompetitorID == competitorID {
			return st, nil
		}
	}
	return Standing{}, fmt.Errorf("rating of %s: %w", competitorID, storage.ErrNotFound)
}

// RatingChanges lists applied changes in order. An empty scope lists every scope.
func (s *Service) RatingChanges(ctx context.Context, scope string) ([]domain.RatingChange, error) {
	var sc domain.Scope
	if scope != "" {
		sc = normalize.Scope(scope)
	}
	return s.storage.ListRatingChanges(ctx, sc)
}

func (s *Service) Glicko2Board(ctx context.Context, scope string) ([]rating.Glicko2Rating, error) {
	changes, err := s.storage.ListRatingChanges(ctx, normalize.Scope(scope))
	if err != nil {
		return nil, err
	}
	return rating.Glicko2Board(changes), nil
}

// Preview shows the deltas a match between two competitors would produce with their current ratings.
func (s *Service) Preview(ctx context.Context, winnerID, loserID uuid.UUID, scope string) (elo.Delta, error) {
	if winnerID == uuid.Nil || loserID == uuid.Nil || winnerID == loserID {
		return elo.Delta{}, fmt.Errorf("%w: two different competitors are required", ErrInvalidRequest)
	}
	sc := normalize.Scope(scope)
	winner, err := s.loadRating(ctx, s.storage, winnerID, sc)
	if err != nil {
		return elo.Delta{}, err
	}
	loser, err := s.loadRating(ctx, s.storage, loserID, sc)
	if err != nil {
		return elo.Delta{}, err
	}
	return s.ratings.Preview(winner, loser), nil
}

// Record is the head to head result against one opponent.
type Record struct {
	OpponentID uuid.UUID
	Wins       int
	Losses     int
	Delta      int
}

func (r Record) Games() int {
	return r.Wins + r.Losses
}

// HeadToHead summarizes every opponent the competitor met in scope, most played first.
func (s *Service) HeadToHead(ctx context.Context, competitorID uuid.UUID, scope string) ([]Record, error) {
	changes, err := s.storage.ListRatingChanges(ctx, normalize.Scope(scope))
	if err != nil {
		return nil, err
	}
	records := make(map[uuid.UUID]*Record)
	get := func(id uuid.UUID) *Record {
		r, ok := records[id]
		if !ok {
			r = &Record{OpponentID: id}
			records[id] = r
		}
		return r
	}
	for _, c := range changes {
		switch competitorID {
		case c.WinnerID:
			r := get(c.LoserID)
			r.Wins++
			r.Delta += c.WinnerNew - c.WinnerPrevious
		case c.LoserID:
			r := get(c.WinnerID)
			r.Losses++
			r.Delta += c.LoserNew - c.LoserPrevious
		}
	}
	if len(records) == 0 {
		_, err := s.storage.GetRating(ctx, competitorID, normalize.Scope(scope))
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("rating of %s: %w", competitorID, storage.ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Games() != out[j].Games() {
			return out[i].Games() > out[j].Games()
		}
		return out[i].OpponentID.String() < out[j].OpponentID.String()
	})
	return out, nil
}
