package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goserg/ratingengine/internal/bracket"
	"github.com/goserg/ratingengine/internal/cache/mem"
	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/notify"
	"github.com/goserg/ratingengine/internal/policy"
	"github.com/goserg/ratingengine/internal/rank"
	"github.com/goserg/ratingengine/internal/rating"
	"github.com/goserg/ratingengine/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrBracketExists  = errors.New("tournament already has a bracket")
)

// Service persists what the rating and bracket engines compute.
// State changes go through a policy check and are serialized per bracket and per competitor rating.
type Service struct {
	storage  storage.Storage
	cache    *mem.Cache
	ratings  *rating.Engine
	brackets *bracket.Engine
	policy   *policy.Policy
	notifier notify.Notifier
	log      *logrus.Entry

	locks       *keyedMutex
	leaderboard singleflight.Group
	now         func() time.Time
}

type Option func(*Service)

func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		if p != nil {
			s.policy = p
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(
	st storage.Storage,
	ratings *rating.Engine,
	brackets *bracket.Engine,
	log *logrus.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		storage:  st,
		cache:    mem.New(),
		ratings:  ratings,
		brackets: brackets,
		policy:   policy.AllowAll(),
		notifier: notify.Nop{},
		log:      log.WithField("from", "service"),
		locks:    newKeyedMutex(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func ratingKey(scope domain.Scope, id uuid.UUID) string {
	return fmt.Sprintf("rating/%s/%s", scope, id)
}

func bracketKey(id uuid.UUID) string {
	return "bracket/" + id.String()
}

func tournamentKey(id uuid.UUID) string {
	return "tournament/" + id.String()
}

// loadRating returns the stored rating or a fresh default one.
func (s *Service) loadRating(ctx context.Context, repo storage.Repository, id uuid.UUID, scope domain.Scope) (domain.Rating, error) {
	r, err := repo.GetRating(ctx, id, scope)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.NewRating(id, scope, s.now()), nil
	}
	return r, err
}

// applyOutcome runs the rating engine on stored ratings and saves everything it produced.
// Callers hold the rating locks of both competitors.
func (s *Service) applyOutcome(ctx context.Context, repo storage.Repository, o domain.MatchOutcome) (rating.Result, error) {
	winner, err := s.loadRating(ctx, repo, o.WinnerID, o.Scope)
	if err != nil {
		return rating.Result{}, err
	}
	loser, err := s.loadRating(ctx, repo, o.LoserID, o.Scope)
	if err != nil {
		return rating.Result{}, err
	}
	res, err := s.ratings.ApplyMatchOutcome(o, winner, loser)
	if err != nil {
		return rating.Result{}, err
	}
	if err := repo.SaveRating(ctx, res.Winner); err != nil {
		return rating.Result{}, fmt.Errorf("save winner rating: %w", err)
	}
	if err := repo.SaveRating(ctx, res.Loser); err != nil {
		return rating.Result{}, fmt.Errorf("save loser rating: %w", err)
	}
	if err := repo.CreateRatingChange(ctx, res.Change); err != nil {
		return rating.Result{}, fmt.Errorf("save rating change: %w", err)
	}
	return res, nil
}

// ratingApplied runs after the transaction of an applied outcome is committed.
func (s *Service) ratingApplied(ctx context.Context, res rating.Result) {
	s.cache.Invalidate(res.Change.Scope)
	s.log.WithFields(logrus.Fields{
		"match":  res.Change.MatchID,
		"scope":  res.Change.Scope,
		"winner": res.Change.WinnerID,
		"delta":  res.Change.WinnerDelta,
	}).Debug("rating applied")

	changes := []struct {
		rating   domain.Rating
		previous int
	}{
		{rating: res.Winner, previous: res.Change.WinnerPrevious},
		{rating: res.Loser, previous: res.Change.LoserPrevious},
	}
	for _, c := range changes {
		from, to := rank.GetTier(c.previous), rank.GetTier(c.rating.CurrentRating)
		if from == to {
			continue
		}
		s.notifier.TierChanged(ctx, notify.TierChange{
			CompetitorID: c.rating.CompetitorID,
			Scope:        c.rating.Scope,
			Rating:       c.rating.CurrentRating,
			From:         from,
			To:           to,
		})
	}
}
