package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/policy"
	"github.com/goserg/ratingengine/internal/storage"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const exportVersion = 1

var ErrExportVersion = fmt.Errorf("%w: unsupported export version", ErrInvalidRequest)

type export struct {
	Version    int
	ExportedAt time.Time
	Ratings    []domain.Rating
	Changes    []domain.RatingChange
	Brackets   []*domain.Bracket
}

// Export dumps every rating, rating change and bracket as versioned JSON.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	data := export{
		Version:    exportVersion,
		ExportedAt: s.now(),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.Ratings, err = s.storage.ListRatings(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		data.Changes, err = s.storage.ListRatingChanges(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		data.Brackets, err = s.storage.ListBrackets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return json.Marshal(data)
}

// Import loads an export into storage in one transaction.
// Ratings are overwritten, an already stored rating change or bracket makes it fail.
func (s *Service) Import(ctx context.Context, actor policy.Actor, raw []byte) error {
	if err := s.policy.Authorize(actor, policy.Import); err != nil {
		return err
	}
	var data export
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	if data.Version != exportVersion {
		return fmt.Errorf("%w: %d", ErrExportVersion, data.Version)
	}

	err := s.storage.Atomic(ctx, func(repo storage.Repository) error {
		for _, r := range data.Ratings {
			if err := repo.SaveRating(ctx, r); err != nil {
				return fmt.Errorf("import rating %s: %w", r.CompetitorID, err)
			}
		}
		for _, c := range data.Changes {
			if err := repo.CreateRatingChange(ctx, c); err != nil {
				return fmt.Errorf("import rating change %s: %w", c.ID, err)
			}
		}
		for _, b := range data.Brackets {
			if err := repo.CreateBracket(ctx, b); err != nil {
				return fmt.Errorf("import bracket %s: %w", b.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	scopes := make(map[domain.Scope]struct{})
	for _, r := range data.Ratings {
		scopes[r.Scope] = struct{}{}
	}
	for scope := range scopes {
		s.cache.Invalidate(scope)
	}
	s.log.WithFields(logrus.Fields{
		"ratings":  len(data.Ratings),
		"changes":  len(data.Changes),
		"brackets": len(data.Brackets),
	}).Info("import done")
	return nil
}
