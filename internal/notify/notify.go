package notify

import (
	"context"

	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/rank"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TierChange struct {
	CompetitorID uuid.UUID
	Scope        domain.Scope
	Rating       int
	From         rank.Tier
	To           rank.Tier
}

// Promoted is false for a demotion.
func (c TierChange) Promoted() bool {
	return c.To.Above(c.From)
}

type Champion struct {
	BracketID    uuid.UUID
	TournamentID uuid.UUID
	Scope        domain.Scope
	Competitor   domain.Competitor
}

// Notifier receives events after they are committed. Implementations must not block for long.
type Notifier interface {
	TierChanged(ctx context.Context, change TierChange)
	ChampionCrowned(ctx context.Context, champion Champion)
}

type Log struct {
	log *logrus.Entry
}

func NewLog(log *logrus.Logger) *Log {
	return &Log{log: log.WithField("from", "notify")}
}

func (l *Log) TierChanged(_ context.Context, change TierChange) {
	l.log.WithFields(logrus.Fields{
		"competitor": change.CompetitorID,
		"scope":      change.Scope,
		"rating":     change.Rating,
		"old_tier":   change.From.Name,
		"new_tier":   change.To.Name,
	}).Info("tier changed")
}

func (l *Log) ChampionCrowned(_ context.Context, champion Champion) {
	l.log.WithFields(logrus.Fields{
		"bracket":    champion.BracketID,
		"tournament": champion.TournamentID,
		"champion":   champion.Competitor.ID,
		"name":       champion.Competitor.Name,
	}).Info("champion crowned")
}

// Multi fans events out to every notifier in order.
type Multi []Notifier

func (m Multi) TierChanged(ctx context.Context, change TierChange) {
	for _, n := range m {
		n.TierChanged(ctx, change)
	}
}

func (m Multi) ChampionCrowned(ctx context.Context, champion Champion) {
	for _, n := range m {
		n.ChampionCrowned(ctx, champion)
	}
}

// Nop drops every event.
type Nop struct{}

func (Nop) TierChanged(context.Context, TierChange) {}
func (Nop) ChampionCrowned(context.Context, Champion) {}
