package web

import (
	"errors"
	"fmt"
	"time"

	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/elo"
	"github.com/goserg/ratingengine/internal/rank"
	"github.com/goserg/ratingengine/internal/rating"
	"github.com/goserg/ratingengine/internal/service"

	"github.com/google/uuid"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrMissingWinner  = fmt.Errorf("%w: winnerId is required", ErrValidation)
	ErrMissingLoser   = fmt.Errorf("%w: loserId is required", ErrValidation)
	ErrSameCompetitor = fmt.Errorf("%w: winner and loser must differ", ErrValidation)
	ErrScoreOrdering  = fmt.Errorf("%w: winnerScore must be greater than loserScore", rating.ErrInvalidScoreOrdering)
	ErrNegativeScore  = fmt.Errorf("%w: scores must not be negative", ErrValidation)
)

type reportMatchRequest struct {
	MatchID     uuid.UUID `json:"matchId"`
	WinnerID    uuid.UUID `json:"winnerId"`
	LoserID     uuid.UUID `json:"loserId"`
	WinnerScore int       `json:"winnerScore"`
	LoserScore  int       `json:"loserScore"`
	Scope       string    `json:"scope"`
}

// Validate reports every problem of the request at once.
func (r reportMatchRequest) Validate() error {
	var err error
	if r.WinnerID == uuid.Nil {
		err = errors.Join(err, ErrMissingWinner)
	}
	if r.LoserID == uuid.Nil {
		err = errors.Join(err, ErrMissingLoser)
	}
	if r.WinnerID != uuid.Nil && r.WinnerID == r.LoserID {
		err = errors.Join(err, ErrSameCompetitor)
	}
	return errors.Join(err, validateScore(r.WinnerScore, r.LoserScore))
}

func (r reportMatchRequest) toDomain() domain.MatchOutcome {
	return domain.MatchOutcome{
		MatchID:     r.MatchID,
		WinnerID:    r.WinnerID,
		LoserID:     r.LoserID,
		WinnerScore: r.WinnerScore,
		LoserScore:  r.LoserScore,
		Scope:       domain.Scope(r.Scope),
	}
}

func validateScore(winner, loser int) error {
	if winner < 0 || loser < 0 {
		return ErrNegativeScore
	}
	if winner <= loser {
		return ErrScoreOrdering
	}
	return nil
}

type participant struct {
	ID   uuid.UUID `json:"id"`
	Kind string    `json:"kind"`
	Name string    `json:"name"`
	// Rating is only used by rating seeding when the competitor has no stored rating yet.
	Rating int `json:"rating,omitempty"`
}

type generateBracketRequest struct {
	TournamentID uuid.UUID     `json:"tournamentId"`
	Scope        string        `json:"scope"`
	Seeding      string        `json:"seeding"`
	Participants []participant `json:"participants"`
}

func (r generateBracketRequest) Validate() error {
	var err error
	if r.TournamentID == uuid.Nil {
		err = errors.Join(err, fmt.Errorf("%w: tournamentId is required", ErrValidation))
	}
	if !domain.Seeding(r.Seeding).Valid() {
		err = errors.Join(err, fmt.Errorf("%w: unknown seeding %q", ErrValidation, r.Seeding))
	}
	for i, p := range r.Participants {
		if p.ID == uuid.Nil {
			err = errors.Join(err, fmt.Errorf("%w: participant %d has no id", ErrValidation, i))
		}
		if p.Kind != "" && !domain.CompetitorKind(p.Kind).Valid() {
			err = errors.Join(err, fmt.Errorf("%w: participant %d has unknown kind %q", ErrValidation, i, p.Kind))
		}
	}
	return err
}

func (r generateBracketRequest) toDomain() service.GenerateRequest {
	registrants := make([]domain.Competitor, 0, len(r.Participants))
	for _, p := range r.Participants {
		registrants = append(registrants, domain.Competitor{
			ID:     p.ID,
			Kind:   domain.CompetitorKind(p.Kind),
			Name:   p.Name,
			Rating: p.Rating,
		})
	}
	return service.GenerateRequest{
		TournamentID: r.TournamentID,
		Scope:        r.Scope,
		Seeding:      domain.Seeding(r.Seeding),
		Registrants:  registrants,
	}
}

type reportResultRequest struct {
	WinnerID    uuid.UUID `json:"winnerId"`
	WinnerScore int       `json:"winnerScore"`
	LoserScore  int       `json:"loserScore"`
}

func (r reportResultRequest) Validate() error {
	var err error
	if r.WinnerID == uuid.Nil {
		err = errors.Join(err, ErrMissingWinner)
	}
	if r.WinnerScore < 0 || r.LoserScore < 0 {
		err = errors.Join(err, ErrNegativeScore)
	}
	return err
}

type historyEntry struct {
	Rating int       `json:"rating"`
	At     time.Time `json:"at"`
}

type ratingResponse struct {
	CompetitorID  uuid.UUID      `json:"competitorId"`
	Scope         string         `json:"scope"`
	CurrentRating int            `json:"currentRating"`
	MatchesPlayed int            `json:"matchesPlayed"`
	HighestRating int            `json:"highestRating"`
	History       []historyEntry `json:"history,omitempty"`
}

func newRatingResponse(r domain.Rating, withHistory bool) ratingResponse {
	resp := ratingResponse{
		CompetitorID:  r.CompetitorID,
		Scope:         string(r.Scope),
		CurrentRating: r.CurrentRating,
		MatchesPlayed: r.MatchesPlayed,
		HighestRating: r.HighestRating,
	}
	if withHistory {
		resp.History = make([]historyEntry, 0, len(r.History))
		for _, h := range r.History {
			resp.History = append(resp.History, historyEntry{Rating: h.Rating, At: h.At})
		}
	}
	return resp
}

type standingResponse struct {
	Position int            `json:"position"`
	Tier     rank.Tier      `json:"tier"`
	Rating   ratingResponse `json:"rating"`
}

func newStandingResponse(s service.Standing, withHistory bool) standingResponse {
	return standingResponse{
		Position: s.Position,
		Tier:     s.Tier,
		Rating:   newRatingResponse(s.Rating, withHistory),
	}
}

type ratingChangeResponse struct {
	ID             uuid.UUID `json:"id"`
	MatchID        uuid.UUID `json:"matchId"`
	Scope          string    `json:"scope"`
	WinnerID       uuid.UUID `json:"winnerId"`
	LoserID        uuid.UUID `json:"loserId"`
	WinnerPrevious int       `json:"winnerPrevious"`
	WinnerNew      int       `json:"winnerNew"`
	WinnerDelta    int       `json:"winnerDelta"`
	LoserPrevious  int       `json:"loserPrevious"`
	LoserNew       int       `json:"loserNew"`
	LoserDelta     int       `json:"loserDelta"`
	CreatedAt      time.Time `json:"createdAt"`
}

func newRatingChangeResponse(c domain.RatingChange) ratingChangeResponse {
	return ratingChangeResponse{
		ID:             c.ID,
		MatchID:        c.MatchID,
		Scope:          string(c.Scope),
		WinnerID:       c.WinnerID,
		LoserID:        c.LoserID,
		WinnerPrevious: c.WinnerPrevious,
		WinnerNew:      c.WinnerNew,
		WinnerDelta:    c.WinnerDelta,
		LoserPrevious:  c.LoserPrevious,
		LoserNew:       c.LoserNew,
		LoserDelta:     c.LoserDelta,
		CreatedAt:      c.CreatedAt,
	}
}

type matchReportResponse struct {
	Change ratingChangeResponse `json:"change"`
	Winner standingTier         `json:"winner"`
	Loser  standingTier         `json:"loser"`
}

type standingTier struct {
	Rating int       `json:"rating"`
	Tier   rank.Tier `json:"tier"`
}

func newMatchReportResponse(res rating.Result) matchReportResponse {
	return matchReportResponse{
		Change: newRatingChangeResponse(res.Change),
		Winner: standingTier{Rating: res.Winner.CurrentRating, Tier: rank.GetTier(res.Winner.CurrentRating)},
		Loser:  standingTier{Rating: res.Loser.CurrentRating, Tier: rank.GetTier(res.Loser.CurrentRating)},
	}
}

type previewResponse struct {
	WinnerDelta int `json:"winnerDelta"`
	LoserDelta  int `json:"loserDelta"`
}

func newPreviewResponse(d elo.Delta) previewResponse {
	return previewResponse{WinnerDelta: d.Winner, LoserDelta: d.Loser}
}

type recordResponse struct {
	OpponentID uuid.UUID `json:"opponentId"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	Delta      int       `json:"delta"`
}

type glickoResponse struct {
	CompetitorID uuid.UUID `json:"competitorId"`
	Rating       float64   `json:"rating"`
	Deviation    float64   `json:"deviation"`
	Volatility   float64   `json:"volatility"`
	Min          float64   `json:"min"`
	Max          float64   `json:"max"`
	Matches      int       `json:"matches"`
}

type slotResponse struct {
	CompetitorID *uuid.UUID `json:"competitorId"`
	Bye          bool       `json:"bye"`
}

type resultResponse struct {
	WinnerID    uuid.UUID `json:"winnerId"`
	WinnerScore int       `json:"winnerScore"`
	LoserScore  int       `json:"loserScore"`
}

type bracketMatchResponse struct {
	ID          string          `json:"id"`
	Round       int             `json:"round"`
	Position    int             `json:"position"`
	Slots       [2]slotResponse `json:"slots"`
	Status      string          `json:"status"`
	Result      *resultResponse `json:"result,omitempty"`
	NextMatchID string          `json:"nextMatchId,omitempty"`
	NextSlot    int             `json:"nextSlot"`
}

type bracketResponse struct {
	ID           uuid.UUID              `json:"id"`
	TournamentID uuid.UUID              `json:"tournamentId"`
	Scope        string                 `json:"scope"`
	Seeding      string                 `json:"seeding"`
	Size         int                    `json:"size"`
	Rounds       int                    `json:"rounds"`
	Status       string                 `json:"status"`
	ChampionID   *uuid.UUID             `json:"championId"`
	Version      int                    `json:"version"`
	Participants []participant          `json:"participants"`
	Matches      []bracketMatchResponse `json:"matches"`
}

func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func newBracketResponse(b *domain.Bracket) bracketResponse {
	resp := bracketResponse{
		ID:           b.ID,
		TournamentID: b.TournamentID,
		Scope:        string(b.Scope),
		Seeding:      string(b.Seeding),
		Size:         b.Size,
		Rounds:       b.Rounds,
		Status:       string(b.Status),
		ChampionID:   optionalID(b.ChampionID),
		Version:      b.Version,
		Participants: make([]participant, 0, len(b.Participants)),
		Matches:      make([]bracketMatchResponse, 0, len(b.Matches)),
	}
	for _, p := range b.Participants {
		resp.Participants = append(resp.Participants, participant{
			ID:     p.ID,
			Kind:   string(p.Kind),
			Name:   p.Name,
			Rating: p.Rating,
		})
	}
	for _, m := range b.Matches {
		resp.Matches = append(resp.Matches, newBracketMatchResponse(m))
	}
	return resp
}

func newBracketMatchResponse(m domain.BracketMatch) bracketMatchResponse {
	match := bracketMatchResponse{
		ID:          m.ID,
		Round:       m.Round,
		Position:    m.Position,
		Status:      string(m.Status),
		NextMatchID: m.NextMatchID,
		NextSlot:    m.NextSlot,
	}
	for i, s := range m.Slots {
		match.Slots[i] = slotResponse{CompetitorID: optionalID(s.CompetitorID), Bye: s.Void}
	}
	if m.Result != nil {
		match.Result = &resultResponse{
			WinnerID:    m.Result.WinnerID,
			WinnerScore: m.Result.Score.Winner,
			LoserScore:  m.Result.Score.Loser,
		}
	}
	return match
}

type errorResponse struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind"`
	Errors []string `json:"errors,omitempty"`
}
