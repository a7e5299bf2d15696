package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/goserg/ratingengine/internal/domain"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("bracket was modified concurrently")
)

type RatingStorage interface {
	// GetRating returns ErrNotFound when the competitor has no rating in scope yet.
	GetRating(ctx context.Context, competitorID uuid.UUID, scope domain.Scope) (domain.Rating, error)
	SaveRating(ctx context.Context, rating domain.Rating) error
	// ListRatings returns ratings with history, highest first. An empty scope lists every scope.
	ListRatings(ctx context.Context, scope domain.Scope) ([]domain.Rating, error)
}

type RatingChangeStorage interface {
	CreateRatingChange(ctx context.Context, change domain.RatingChange) error
	// ListRatingChanges returns changes in the order they were applied. An empty scope lists every scope.
	ListRatingChanges(ctx context.Context, scope domain.Scope) ([]domain.RatingChange, error)
}

type BracketStorage interface {
	CreateBracket(ctx context.Context, bracket *domain.Bracket) error
	GetBracket(ctx context.Context, id uuid.UUID) (*domain.Bracket, error)
	GetBracketByTournament(ctx context.Context, tournamentID uuid.UUID) (*domain.Bracket, error)
	ListBrackets(ctx context.Context) ([]*domain.Bracket, error)
	// UpdateBracket stores bracket if the stored version equals bracket.Version and increments it.
	// Otherwise it returns ErrVersionConflict.
	UpdateBracket(ctx context.Context, bracket *domain.Bracket) error
}

type Repository interface {
	RatingStorage
	RatingChangeStorage
	BracketStorage
}

type Storage interface {
	Repository
	// Atomic runs fn in a single transaction, any error rolls it back.
	Atomic(ctx context.Context, fn func(repo Repository) error) error
	Close() error
}
