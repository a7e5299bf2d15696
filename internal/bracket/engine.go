package bracket

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/goserg/ratingengine/internal/domain"
)

// Engine builds and advances single elimination brackets.
// It keeps no bracket state, callers serialize work on the same bracket.
type Engine struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

type Option func(*Engine)

// WithRand sets the source used by random seeding.
func WithRand(rnd *rand.Rand) Option {
	return func(e *Engine) {
		if rnd != nil {
			e.rnd = rnd
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
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func matchID(round, position int) string {
	return fmt.Sprintf("R%dM%d", round, position)
}

// Generate builds the full bracket for registrants. Byes are resolved before it returns.
func (e *Engine) Generate(registrants []domain.Competitor, seeding domain.Seeding) (*domain.Bracket, error) {
	if !seeding.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSeeding, seeding)
	}
	n := len(registrants)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientParticipants, n)
	}
	seen := make(map[uuid.UUID]struct{}, n)
	for _, c := range registrants {
		if c.ID == uuid.Nil {
			return nil, ErrInvalidCompetitor
		}
		if _, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCompetitor, c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	e.mu.Lock()
	ordered := order(registrants, seeding, e.rnd)
	e.mu.Unlock()

	size := nextPowerOfTwo(n)
	rounds := log2(size)
	now := e.now()

	b := &domain.Bracket{
		ID:           uuid.New(),
		Seeding:      seeding,
		Size:         size,
		Rounds:       rounds,
		Participants: ordered,
		Matches:      make([]domain.BracketMatch, 0, size-1),
		Status:       domain.BracketInProgress,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	slots := firstRoundSlots(ordered, size, seeding)
	for r := 1; r <= rounds; r++ {
		count := size >> r
		for p := 1; p <= count; p++ {
			m := domain.BracketMatch{
				ID:       matchID(r, p),
				Round:    r,
				Position: p,
			}
			if r == 1 {
				m.Slots = [2]domain.Slot{slots[2*(p-1)], slots[2*(p-1)+1]}
			}
			if r < rounds {
				m.NextMatchID = matchID(r+1, (p+1)/2)
				m.NextSlot = (p - 1) % 2
			}
			refreshStatus(&m)
			b.Matches = append(b.Matches, m)
		}
	}
	b.Reindex()

	resolveByes(b)
	return b, nil
}

// resolveByes walks rounds in order so byes cascade into later rounds.
func resolveByes(b *domain.Bracket) {
	for i := range b.Matches {
		m := &b.Matches[i]
		if m.Status.Finished() {
			continue
		}
		if !m.Slots[0].Settled() || !m.Slots[1].Settled() {
			continue
		}
		if !m.Slots[0].Void && !m.Slots[1].Void {
			continue
		}
		m.Status = domain.MatchByeCompleted
		winner := uuid.Nil
		for _, s := range m.Slots {
			if s.Filled() {
				winner = s.CompetitorID
			}
		}
		if winner != uuid.Nil {
			m.Result = &domain.MatchResult{WinnerID: winner}
		}
		promote(b, m, winner)
	}
}

// promote moves the winner of m into its successor, or crowns the champion after the final.
// A nil winner voids the successor slot.
func promote(b *domain.Bracket, m *domain.BracketMatch, winner uuid.UUID) {
	if m.NextMatchID == "" {
		b.Status = domain.BracketCompleted
		b.ChampionID = winner
		return
	}
	next, ok := b.Match(m.NextMatchID)
	if !ok {
		return
	}
	if winner == uuid.Nil {
		next.Slots[m.NextSlot] = domain.Slot{Void: true}
	} else {
		next.Slots[m.NextSlot] = domain.Slot{CompetitorID: winner}
	}
	refreshStatus(next)
}

func refreshStatus(m *domain.BracketMatch) {
	if m.Status.Finished() || m.Status == domain.MatchInProgress {
		return
	}
	filled := 0
	for _, s := range m.Slots {
		if s.Filled() {
			filled++
		}
	}
	switch filled {
	case 0:
		m.Status = domain.MatchEmpty
	case 1:
		m.Status = domain.MatchPartial
	default:
		m.Status = domain.MatchReady
	}
}

// StartMatch moves a ready match to in progress.
func (e *Engine) StartMatch(b *domain.Bracket, id string) error {
	m, ok := b.Match(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMatch, id)
	}
	if m.Status.Finished() {
		return fmt.Errorf("%w: %s", ErrAlreadyCompleted, id)
	}
	if m.Status != domain.MatchReady {
		return fmt.Errorf("%w: %s is %s", ErrInvalidMatchState, id, m.Status)
	}
	m.Status = domain.MatchInProgress
	b.UpdatedAt = e.now()
	return nil
}

// ReportResult completes a match and advances its winner. The bracket is changed in place
// and returned; a rejected report leaves it untouched.
func (e *Engine) ReportResult(b *domain.Bracket, id string, winner uuid.UUID, score domain.Score) (*domain.Bracket, error) {
	m, ok := b.Match(id)
	if !ok {
		return b, fmt.Errorf("%w: %s", ErrUnknownMatch, id)
	}
	if m.Status.Finished() {
		return b, fmt.Errorf("%w: %s", ErrAlreadyCompleted, id)
	}
	if m.Status != domain.MatchReady && m.Status != domain.MatchInProgress {
		return b, fmt.Errorf("%w: %s is %s", ErrInvalidMatchState, id, m.Status)
	}
	if !m.HasCompetitor(winner) {
		return b, fmt.Errorf("%w: %s in %s", ErrUnknownCompetitor, winner, id)
	}
	if score.Winner <= score.Loser {
		return b, fmt.Errorf("%w: %d:%d", ErrInvalidScoreOrdering, score.Winner, score.Loser)
	}

	m.Status = domain.MatchCompleted
	m.Result = &domain.MatchResult{WinnerID: winner, Score: score}
	promote(b, m, winner)
	// the successor may face a slot voided by an empty bye, settle it now
	resolveByes(b)
	b.UpdatedAt = e.now()
	return b, nil
}

// Champion returns the tournament winner once the final is decided.
func Champion(b *domain.Bracket) (uuid.UUID, bool) {
	if b.Status != domain.BracketCompleted || b.ChampionID == uuid.Nil {
		return uuid.Nil, false
	}
	return b.ChampionID, true
}

// Playable lists matches waiting for a result.
func Playable(b *domain.Bracket) []*domain.BracketMatch {
	var out []*domain.BracketMatch
	for i := range b.Matches {
		s := b.Matches[i].Status
		if s == domain.MatchReady || s == domain.MatchInProgress {
			out = append(out, &b.Matches[i])
		}
	}
	return out
}
