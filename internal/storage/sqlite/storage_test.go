package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/goserg/ratingengine/internal/bracket"
	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	ctx     context.Context
	storage *Storage
}

func TestStorage(t *testing.T) {
	suite.Run(t, &StorageSuite{})
}

func (s *StorageSuite) SetupTest() {
	log := logrus.New()
	log.SetOutput(io.Discard)
	st, err := New(log, filepath.Join(s.T().TempDir(), "rating.sqlite"))
	s.Require().NoError(err)
	s.storage = st
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	s.Require().NoError(s.storage.Close())
}

func (s *StorageSuite) TestRatingNotFound() {
	_, err := s.storage.GetRating(s.ctx, uuid.New(), domain.GlobalScope)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestSaveRatingAppendsHistory() {
	at := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	rating := domain.NewRating(uuid.New(), domain.GlobalScope, at)
	s.Require().NoError(s.storage.SaveRating(s.ctx, rating))

	rating.CurrentRating = 1216
	rating.HighestRating = 1216
	rating.MatchesPlayed = 1
	rating.History = append(rating.History, domain.HistoryEntry{Rating: 1216, At: at.Add(time.Hour)})
	s.Require().NoError(s.storage.SaveRating(s.ctx, rating))
	s.Require().NoError(s.storage.SaveRating(s.ctx, rating))

	got, err := s.storage.GetRating(s.ctx, rating.CompetitorID, domain.GlobalScope)
	s.Require().NoError(err)
	s.Equal(1216, got.CurrentRating)
	s.Equal(1, got.MatchesPlayed)
	s.Equal(1216, got.HighestRating)
	s.Require().Len(got.History, 2)
	s.Equal(1200, got.History[0].Rating)
	s.True(got.History[1].At.Equal(at.Add(time.Hour)))
}

func (s *StorageSuite) TestListRatingsOrderedByRating() {
	at := time.Now().UTC()
	low := domain.NewRating(uuid.New(), "chess", at)
	low.CurrentRating = 1100
	high := domain.NewRating(uuid.New(), "chess", at)
	high.CurrentRating = 1300
	other := domain.NewRating(uuid.New(), domain.GlobalScope, at)
	for _, r := range []domain.Rating{low, high, other} {
		s.Require().NoError(s.storage.SaveRating(s.ctx, r))
	}

	list, err := s.storage.ListRatings(s.ctx, "chess")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(high.CompetitorID, list[0].CompetitorID)
	s.Equal(low.CompetitorID, list[1].CompetitorID)
	s.Len(list[0].History, 1)
}

func (s *StorageSuite) TestRatingChangesKeepOrder() {
	first := domain.RatingChange{
		ID: uuid.New(), MatchID: uuid.New(), Scope: domain.GlobalScope,
		WinnerID: uuid.New(), LoserID: uuid.New(),
		WinnerPrevious: 1200, WinnerNew: 1216, WinnerDelta: 16,
		LoserPrevious: 1200, LoserNew: 1184, LoserDelta: -16,
		CreatedAt: time.Now().UTC(),
	}
	second := first
	second.ID = uuid.New()
	second.MatchID = uuid.New()
	second.Scope = "go"
	s.Require().NoError(s.storage.CreateRatingChange(s.ctx, first))
	s.Require().NoError(s.storage.CreateRatingChange(s.ctx, second))

	all, err := s.storage.ListRatingChanges(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(first.ID, all[0].ID)
	s.Equal(second.ID, all[1].ID)
	s.Equal(-16, all[0].LoserDelta)

	scoped, err := s.storage.ListRatingChanges(s.ctx, "go")
	s.Require().NoError(err)
	s.Require().Len(scoped, 1)
	s.Equal(second.ID, scoped[0].ID)
}

func (s *StorageSuite) newBracket(n int) *domain.Bracket {
	registrants := make([]domain.Competitor, n)
	for i := range registrants {
		registrants[i] = domain.Competitor{ID: uuid.New(), Kind: domain.KindPlayer, Name: "p", Rating: 1200 + i}
	}
	b, err := bracket.New().Generate(registrants, domain.SeedingRegistration)
	s.Require().NoError(err)
	b.ID = uuid.New()
	b.TournamentID = uuid.New()
	b.Scope = domain.GlobalScope
	return b
}

func (s *StorageSuite) TestBracketRoundTrip() {
	b := s.newBracket(5)
	s.Require().NoError(s.storage.CreateBracket(s.ctx, b))

	got, err := s.storage.GetBracket(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(b.Participants, got.Participants)
	s.Equal(b.Matches, got.Matches)
	s.Equal(b.Size, got.Size)
	s.Equal(b.Rounds, got.Rounds)
	s.Equal(b.Status, got.Status)

	byTournament, err := s.storage.GetBracketByTournament(s.ctx, b.TournamentID)
	s.Require().NoError(err)
	s.Equal(b.ID, byTournament.ID)

	_, err = s.storage.GetBracket(s.ctx, uuid.New())
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestUpdateBracketVersionConflict() {
	b := s.newBracket(2)
	s.Require().NoError(s.storage.CreateBracket(s.ctx, b))

	first, err := s.storage.GetBracket(s.ctx, b.ID)
	s.Require().NoError(err)
	stale, err := s.storage.GetBracket(s.ctx, b.ID)
	s.Require().NoError(err)

	final := first.Final()
	winner := final.Slots[0].CompetitorID
	updated, err := bracket.New().ReportResult(first, final.ID, winner, domain.Score{Winner: 2, Loser: 1})
	s.Require().NoError(err)
	s.Require().NoError(s.storage.UpdateBracket(s.ctx, updated))
	s.Equal(b.Version+1, updated.Version)

	s.ErrorIs(s.storage.UpdateBracket(s.ctx, stale), storage.ErrVersionConflict)

	got, err := s.storage.GetBracket(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(domain.BracketCompleted, got.Status)
	s.Equal(winner, got.ChampionID)
	final, ok := got.Match(final.ID)
	s.Require().True(ok)
	s.Equal(domain.MatchCompleted, final.Status)
	s.Equal(domain.Score{Winner: 2, Loser: 1}, final.Result.Score)
}

func (s *StorageSuite) TestAtomicRollsBack() {
	rating := domain.NewRating(uuid.New(), domain.GlobalScope, time.Now().UTC())
	err := s.storage.Atomic(s.ctx, func(repo storage.Repository) error {
		if err := repo.SaveRating(s.ctx, rating); err != nil {
			return err
		}
		return storage.ErrVersionConflict
	})
	s.ErrorIs(err, storage.ErrVersionConflict)

	_, err = s.storage.GetRating(s.ctx, rating.CompetitorID, domain.GlobalScope)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestListEverything() {
	at := time.Now().UTC()
	chess := domain.NewRating(uuid.New(), "chess", at)
	global := domain.NewRating(chess.CompetitorID, domain.GlobalScope, at)
	global.History = append(global.History, domain.HistoryEntry{Rating: 1210, At: at})
	global.CurrentRating = 1210
	s.Require().NoError(s.storage.SaveRating(s.ctx, chess))
	s.Require().NoError(s.storage.SaveRating(s.ctx, global))

	ratings, err := s.storage.ListRatings(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(ratings, 2)
	s.Equal(domain.GlobalScope, ratings[0].Scope)
	s.Len(ratings[0].History, 2)
	s.Len(ratings[1].History, 1)

	first, second := s.newBracket(3), s.newBracket(4)
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	s.Require().NoError(s.storage.CreateBracket(s.ctx, first))
	s.Require().NoError(s.storage.CreateBracket(s.ctx, second))

	brackets, err := s.storage.ListBrackets(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(brackets, 2)
	s.Equal(first.ID, brackets[0].ID)
	s.Equal(second.ID, brackets[1].ID)
	s.Len(brackets[1].Matches, 3)
}
