package sqlite

import (
	"fmt"

	"github.com/goserg/ratingengine/gen/model"
	"github.com/goserg/ratingengine/internal/domain"

	"github.com/google/uuid"
)

func convertRatingFromDomain(rating domain.Rating) model.Ratings {
	m := model.Ratings{
		CompetitorID:  rating.CompetitorID.String(),
		Scope:         string(rating.Scope),
		CurrentRating: int32(rating.CurrentRating),
		MatchesPlayed: int32(rating.MatchesPlayed),
		HighestRating: int32(rating.HighestRating),
	}
	if n := len(rating.History); n > 0 {
		m.UpdatedAt = rating.History[n-1].At.UTC()
	}
	return m
}

func convertRatingToDomain(m model.Ratings, history []model.RatingHistory) (domain.Rating, error) {
	id, err := uuid.Parse(m.CompetitorID)
	if err != nil {
		return domain.Rating{}, fmt.Errorf("rating competitor id: %w", err)
	}
	rating := domain.Rating{
		CompetitorID:  id,
		Scope:         domain.Scope(m.Scope),
		CurrentRating: int(m.CurrentRating),
		MatchesPlayed: int(m.MatchesPlayed),
		HighestRating: int(m.HighestRating),
		History:       make([]domain.HistoryEntry, 0, len(history)),
	}
	for _, h := range history {
		rating.History = append(rating.History, domain.HistoryEntry{
			Rating: int(h.Rating),
			At:     h.RecordedAt.UTC(),
		})
	}
	return rating, nil
}

func convertHistoryFromDomain(rating domain.Rating, entries []domain.HistoryEntry) []model.RatingHistory {
	converted := make([]model.RatingHistory, 0, len(entries))
	for _, e := range entries {
		converted = append(converted, model.RatingHistory{
			CompetitorID: rating.CompetitorID.String(),
			Scope:        string(rating.Scope),
			Rating:       int32(e.Rating),
			RecordedAt:   e.At.UTC(),
		})
	}
	return converted
}

func convertRatingChangeFromDomain(change domain.RatingChange) model.RatingChanges {
	return model.RatingChanges{
		ID:             change.ID.String(),
		MatchID:        change.MatchID.String(),
		Scope:          string(change.Scope),
		WinnerID:       change.WinnerID.String(),
		LoserID:        change.LoserID.String(),
		WinnerPrevious: int32(change.WinnerPrevious),
		WinnerNew:      int32(change.WinnerNew),
		WinnerDelta:    int32(change.WinnerDelta),
		LoserPrevious:  int32(change.LoserPrevious),
		LoserNew:       int32(change.LoserNew),
		LoserDelta:     int32(change.LoserDelta),
		CreatedAt:      change.CreatedAt.UTC(),
	}
}

func convertRatingChangesToDomain(changes []model.RatingChanges) ([]domain.RatingChange, error) {
	converted := make([]domain.RatingChange, 0, len(changes))
	for _, c := range changes {
		ids, err := parseIDs(c.ID, c.MatchID, c.WinnerID, c.LoserID)
		if err != nil {
			return nil, fmt.Errorf("rating change %s: %w", c.ID, err)
		}
		converted = append(converted, domain.RatingChange{
			ID:             ids[0],
			MatchID:        ids[1],
			Scope:          domain.Scope(c.Scope),
			WinnerID:       ids[2],
			LoserID:        ids[3],
			WinnerPrevious: int(c.WinnerPrevious),
			WinnerNew:      int(c.WinnerNew),
			WinnerDelta:    int(c.WinnerDelta),
			LoserPrevious:  int(c.LoserPrevious),
			LoserNew:       int(c.LoserNew),
			LoserDelta:     int(c.LoserDelta),
			CreatedAt:      c.CreatedAt.UTC(),
		})
	}
	return converted, nil
}

func convertBracketFromDomain(b *domain.Bracket) model.Brackets {
	return model.Brackets{
		ID:           b.ID.String(),
		TournamentID: b.TournamentID.String(),
		Scope:        string(b.Scope),
		Seeding:      string(b.Seeding),
		Size:         int32(b.Size),
		Rounds:       int32(b.Rounds),
		Status:       string(b.Status),
		ChampionID:   nullableID(b.ChampionID),
		Version:      int32(b.Version),
		CreatedAt:    b.CreatedAt.UTC(),
		UpdatedAt:    b.UpdatedAt.UTC(),
	}
}

func convertParticipantsFromDomain(b *domain.Bracket) []model.BracketParticipants {
	converted := make([]model.BracketParticipants, 0, len(b.Participants))
	for i, p := range b.Participants {
		converted = append(converted, model.BracketParticipants{
			BracketID:    b.ID.String(),
			Seed:         int32(i + 1),
			CompetitorID: p.ID.String(),
			Kind:         string(p.Kind),
			Name:         p.Name,
			Rating:       int32(p.Rating),
		})
	}
	return converted
}

func convertMatchFromDomain(bracketID uuid.UUID, m domain.BracketMatch) model.BracketMatches {
	converted := model.BracketMatches{
		BracketID: bracketID.String(),
		MatchID:   m.ID,
		Round:     int32(m.Round),
		Position:  int32(m.Position),
		SlotA:     nullableID(m.Slots[0].CompetitorID),
		SlotAVoid: m.Slots[0].Void,
		SlotB:     nullableID(m.Slots[1].CompetitorID),
		SlotBVoid: m.Slots[1].Void,
		Status:    string(m.Status),
		NextSlot:  int32(m.NextSlot),
	}
	if m.NextMatchID != "" {
		next := m.NextMatchID
		converted.NextMatchID = &next
	}
	if m.Result != nil {
		winnerScore := int32(m.Result.Score.Winner)
		loserScore := int32(m.Result.Score.Loser)
		converted.WinnerID = nullableID(m.Result.WinnerID)
		converted.WinnerScore = &winnerScore
		converted.LoserScore = &loserScore
	}
	return converted
}

func convertBracketToDomain(
	b model.Brackets,
	participants []model.BracketParticipants,
	matches []model.BracketMatches,
) (*domain.Bracket, error) {
	ids, err := parseIDs(b.ID, b.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("bracket %s: %w", b.ID, err)
	}
	championID, err := parseNullableID(b.ChampionID)
	if err != nil {
		return nil, fmt.Errorf("bracket %s champion: %w", b.ID, err)
	}
	converted := &domain.Bracket{
		ID:           ids[0],
		TournamentID: ids[1],
		Scope:        domain.Scope(b.Scope),
		Seeding:      domain.Seeding(b.Seeding),
		Size:         int(b.Size),
		Rounds:       int(b.Rounds),
		Participants: make([]domain.Competitor, 0, len(participants)),
		Matches:      make([]domain.BracketMatch, 0, len(matches)),
		Status:       domain.BracketStatus(b.Status),
		ChampionID:   championID,
		Version:      int(b.Version),
		CreatedAt:    b.CreatedAt.UTC(),
		UpdatedAt:    b.UpdatedAt.UTC(),
	}
	for _, p := range participants {
		id, err := uuid.Parse(p.CompetitorID)
		if err != nil {
			return nil, fmt.Errorf("bracket %s participant: %w", b.ID, err)
		}
		converted.Participants = append(converted.Participants, domain.Competitor{
			ID:     id,
			Kind:   domain.CompetitorKind(p.Kind),
			Name:   p.Name,
			Rating: int(p.Rating),
		})
	}
	for _, m := range matches {
		match, err := convertMatchToDomain(m)
		if err != nil {
			return nil, fmt.Errorf("bracket %s match %s: %w", b.ID, m.MatchID, err)
		}
		converted.Matches = append(converted.Matches, match)
	}
	converted.Reindex()
	return converted, nil
}

func convertMatchToDomain(m model.BracketMatches) (domain.BracketMatch, error) {
	slotA, err := parseNullableID(m.SlotA)
	if err != nil {
		return domain.BracketMatch{}, err
	}
	slotB, err := parseNullableID(m.SlotB)
	if err != nil {
		return domain.BracketMatch{}, err
	}
	match := domain.BracketMatch{
		ID:       m.MatchID,
		Round:    int(m.Round),
		Position: int(m.Position),
		Slots: [2]domain.Slot{
			{CompetitorID: slotA, Void: m.SlotAVoid},
			{CompetitorID: slotB, Void: m.SlotBVoid},
		},
		Status:   domain.MatchStatus(m.Status),
		NextSlot: int(m.NextSlot),
	}
	if m.NextMatchID != nil {
		match.NextMatchID = *m.NextMatchID
	}
	if m.WinnerID != nil {
		winnerID, err := uuid.Parse(*m.WinnerID)
		if err != nil {
			return domain.BracketMatch{}, err
		}
		match.Result = &domain.MatchResult{WinnerID: winnerID}
		if m.WinnerScore != nil {
			match.Result.Score.Winner = int(*m.WinnerScore)
		}
		if m.LoserScore != nil {
			match.Result.Score.Loser = int(*m.LoserScore)
		}
	}
	return match, nil
}

func nullableID(id uuid.UUID) *string {
	if id == uuid.Nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseNullableID(s *string) (uuid.UUID, error) {
	if s == nil {
		return uuid.Nil, nil
	}
	return uuid.Parse(*s)
}

func parseIDs(raw ...string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
