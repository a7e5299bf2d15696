package mem

import (
	"sort"
	"sync"

	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/normalize"

	"github.com/google/uuid"
)

// Cache keeps the leaderboard of every scope that was read since its last change.
// Every Invalidate moves the scope's generation, a load that started before it is not stored.
type Cache struct {
	mu     sync.RWMutex
	scopes map[domain.Scope]*board
	gens   map[domain.Scope]uint64
}

type board struct {
	ratings []domain.Rating
	byID    map[uuid.UUID]int
}

func New() *Cache {
	return &Cache{
		scopes: make(map[domain.Scope]*board),
		gens:   make(map[domain.Scope]uint64),
	}
}

// Generation is read before loading a scope from storage and passed to Update.
func (c *Cache) Generation(scope domain.Scope) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[normalize.Scope(string(scope))]
}

// Update stores the leaderboard unless the scope was invalidated after gen was read.
func (c *Cache) Update(scope domain.Scope, gen uint64, ratings []domain.Rating) bool {
	scope = normalize.Scope(string(scope))
	b := &board{
		ratings: make([]domain.Rating, len(ratings)),
		byID:    make(map[uuid.UUID]int, len(ratings)),
	}
	for i := range ratings {
		b.ratings[i] = ratings[i].Clone()
	}
	sort.SliceStable(b.ratings, func(i, j int) bool {
		return b.ratings[i].CurrentRating > b.ratings[j].CurrentRating
	})
	for i := range b.ratings {
		b.byID[b.ratings[i].CompetitorID] = i
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[scope] != gen {
		return false
	}
	c.scopes[scope] = b
	return true
}

// Leaderboard returns a copy of the cached ratings, highest first.
func (c *Cache) Leaderboard(scope domain.Scope) ([]domain.Rating, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.scopes[normalize.Scope(string(scope))]
	if !ok {
		return nil, false
	}
	ratings := make([]domain.Rating, len(b.ratings))
	for i := range b.ratings {
		ratings[i] = b.ratings[i].Clone()
	}
	return ratings, true
}

// Get returns a copy of one cached rating and its 1-based leaderboard place.
func (c *Cache) Get(scope domain.Scope, competitorID uuid.UUID) (domain.Rating, int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.scopes[normalize.Scope(string(scope))]
	if !ok {
		return domain.Rating{}, 0, false
	}
	i, ok := b.byID[competitorID]
	if !ok {
		return domain.Rating{}, 0, false
	}
	return b.ratings[i].Clone(), i + 1, true
}

func (c *Cache) Invalidate(scope domain.Scope) {
	scope = normalize.Scope(string(scope))
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.scopes, scope)
	c.gens[scope]++
}
