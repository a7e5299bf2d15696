package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/goserg/ratingengine/internal/bracket"
	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/normalize"
	"github.com/goserg/ratingengine/internal/notify"
	"github.com/goserg/ratingengine/internal/policy"
	"github.com/goserg/ratingengine/internal/rating"
	"github.com/goserg/ratingengine/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type GenerateRequest struct {
	TournamentID uuid.UUID
	Scope        string
	Seeding      domain.Seeding
	Registrants  []domain.Competitor
}

// GenerateBracket builds and stores the bracket of a tournament. A tournament has at most one bracket.
// Rating seeding reads the registrants' ratings of the bracket scope from storage.
func (s *Service) GenerateBracket(ctx context.Context, actor policy.Actor, req GenerateRequest) (*domain.Bracket, error) {
	if err := s.policy.Authorize(actor, policy.GenerateBracket); err != nil {
		return nil, err
	}
	if req.TournamentID == uuid.Nil {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidRequest)
	}
	scope := normalize.Scope(req.Scope)
	registrants := make([]domain.Competitor, len(req.Registrants))
	copy(registrants, req.Registrants)
	for i := range registrants {
		if registrants[i].Kind == "" {
			registrants[i].Kind = domain.KindPlayer
		}
		if !registrants[i].Kind.Valid() {
			return nil, fmt.Errorf("%w: competitor kind %q", ErrInvalidRequest, registrants[i].Kind)
		}
		registrants[i].Name = normalize.Display(registrants[i].Name)
	}

	unlock := s.locks.Lock(tournamentKey(req.TournamentID))
	defer unlock()

	_, err := s.storage.GetBracketByTournament(ctx, req.TournamentID)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrBracketExists, req.TournamentID)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	if req.Seeding == domain.SeedingRating {
		for i := range registrants {
			if registrants[i].ID == uuid.Nil {
				continue
			}
			r, err := s.loadRating(ctx, s.storage, registrants[i].ID, scope)
			if err != nil {
				return nil, err
			}
			registrants[i].Rating = r.CurrentRating
		}
	}

	b, err := s.brackets.Generate(registrants, req.Seeding)
	if err != nil {
		return nil, err
	}
	b.TournamentID = req.TournamentID
	b.Scope = scope
	if err := s.storage.CreateBracket(ctx, b); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"bracket":    b.ID,
		"tournament": b.TournamentID,
		"size":       b.Size,
		"seeding":    b.Seeding,
	}).Info("bracket generated")
	return b, nil
}

func (s *Service) GetBracket(ctx context.Context, id uuid.UUID) (*domain.Bracket, error) {
	return s.storage.GetBracket(ctx, id)
}

// PlayableMatches lists the matches of a bracket that wait for a result, in round order.
func (s *Service) PlayableMatches(ctx context.Context, id uuid.UUID) ([]domain.BracketMatch, error) {
	b, err := s.storage.GetBracket(ctx, id)
	if err != nil {
		return nil, err
	}
	playable := bracket.Playable(b)
	out := make([]domain.BracketMatch, 0, len(playable))
	for _, m := range playable {
		out = append(out, *m)
	}
	return out, nil
}

func (s *Service) BracketByTournament(ctx context.Context, tournamentID uuid.UUID) (*domain.Bracket, error) {
	return s.storage.GetBracketByTournament(ctx, tournamentID)
}

// StartBracketMatch marks a ready match as being played.
func (s *Service) StartBracketMatch(ctx context.Context, actor policy.Actor, bracketID uuid.UUID, matchID string) (*domain.Bracket, error) {
	if err := s.policy.Authorize(actor, policy.StartMatch); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(bracketKey(bracketID))
	defer unlock()

	b, err := s.storage.GetBracket(ctx, bracketID)
	if err != nil {
		return nil, err
	}
	if err := s.brackets.StartMatch(b, matchID); err != nil {
		return nil, err
	}
	if err := s.storage.UpdateBracket(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

type BracketReport struct {
	Bracket *domain.Bracket
	Rating  rating.Result
}

// ReportBracketResult completes a bracket match and rates it in the bracket scope.
// The bracket update and the rating update are committed together or not at all.
func (s *Service) ReportBracketResult(
	ctx context.Context,
	actor policy.Actor,
	bracketID uuid.UUID,
	matchID string,
	winnerID uuid.UUID,
	score domain.Score,
) (BracketReport, error) {
	if err := s.policy.Authorize(actor, policy.ReportResult); err != nil {
		return BracketReport{}, err
	}
	unlock := s.locks.Lock(bracketKey(bracketID))
	defer unlock()

	b, err := s.storage.GetBracket(ctx, bracketID)
	if err != nil {
		return BracketReport{}, err
	}
	b, err = s.brackets.ReportResult(b, matchID, winnerID, score)
	if err != nil {
		return BracketReport{}, err
	}
	m, _ := b.Match(matchID)
	loserID, ok := m.Loser()
	if !ok {
		return BracketReport{}, fmt.Errorf("%w: %s has no loser", bracket.ErrInvalidMatchState, matchID)
	}
	outcome := domain.MatchOutcome{
		MatchID:     bracketMatchUUID(b.ID, matchID),
		WinnerID:    winnerID,
		LoserID:     loserID,
		WinnerScore: score.Winner,
		LoserScore:  score.Loser,
		Scope:       b.Scope,
	}

	unlockRatings := s.locks.Lock(ratingKey(outcome.Scope, winnerID), ratingKey(outcome.Scope, loserID))
	defer unlockRatings()

	var res rating.Result
	err = s.storage.Atomic(ctx, func(repo storage.Repository) error {
		var err error
		res, err = s.applyOutcome(ctx, repo, outcome)
		if err != nil {
			return err
		}
		return repo.UpdateBracket(ctx, b)
	})
	if err != nil {
		return BracketReport{}, err
	}

	s.ratingApplied(ctx, res)
	s.crowned(ctx, b)
	return BracketReport{Bracket: b, Rating: res}, nil
}

// bracketMatchUUID derives a stable match reference for rating changes of bracket matches.
func bracketMatchUUID(bracketID uuid.UUID, matchID string) uuid.UUID {
	return uuid.NewSHA1(bracketID, []byte(matchID))
}

func (s *Service) crowned(ctx context.Context, b *domain.Bracket) {
	championID, ok := bracket.Champion(b)
	if !ok {
		return
	}
	champion := domain.Competitor{ID: championID}
	for _, p := range b.Participants {
		if p.ID == championID {
			champion = p
		}
	}
	s.notifier.ChampionCrowned(ctx, notify.Champion{
		BracketID:    b.ID,
		TournamentID: b.TournamentID,
		Scope:        b.Scope,
		Competitor:   champion,
	})
}
