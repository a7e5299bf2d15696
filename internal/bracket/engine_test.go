package bracket

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/goserg/ratingengine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func competitors(n int) []domain.Competitor {
	out := make([]domain.Competitor, n)
	for i := range out {
		out[i] = domain.Competitor{
			ID:     uuid.New(),
			Kind:   domain.KindPlayer,
			Rating: 1000 + 10*i,
		}
	}
	return out
}

func newEngine(seed int64) *Engine {
	return New(WithRand(rand.New(rand.NewSource(seed))))
}

func countStatus(b *domain.Bracket, s domain.MatchStatus) int {
	n := 0
	for _, m := range b.Matches {
		if m.Status == s {
			n++
		}
	}
	return n
}

func TestSeedOrder(t *testing.T) {
	assert.Equal(t, []int{1, 2}, seedOrder(2))
	assert.Equal(t, []int{1, 4, 2, 3}, seedOrder(4))
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, seedOrder(8))
	assert.Len(t, seedOrder(64), 64)
}

func TestGenerateInsufficient(t *testing.T) {
	e := newEngine(1)
	for _, n := range []int{0, 1} {
		_, err := e.Generate(competitors(n), domain.SeedingRegistration)
		assert.ErrorIs(t, err, ErrInsufficientParticipants)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	e := newEngine(1)
	cs := competitors(3)

	_, err := e.Generate(cs, "swiss")
	assert.ErrorIs(t, err, ErrUnknownSeeding)

	dup := append(cs, cs[0])
	_, err = e.Generate(dup, domain.SeedingRegistration)
	assert.ErrorIs(t, err, ErrDuplicateCompetitor)

	cs[1].ID = uuid.Nil
	_, err = e.Generate(cs, domain.SeedingRegistration)
	assert.ErrorIs(t, err, ErrInvalidCompetitor)
}

func TestGenerateRoundCount(t *testing.T) {
	e := newEngine(1)
	for _, seeding := range []domain.Seeding{domain.SeedingRegistration, domain.SeedingRating, domain.SeedingRandom} {
		for n := 2; n <= 40; n++ {
			b, err := e.Generate(competitors(n), seeding)
			require.NoError(t, err)

			size := nextPowerOfTwo(n)
			assert.Equal(t, size, b.Size)
			assert.Equal(t, log2(size), b.Rounds, "n=%d", n)
			assert.Len(t, b.Matches, size-1)

			finals := 0
			for _, m := range b.Matches {
				if m.NextMatchID == "" {
					finals++
					assert.Equal(t, b.Rounds, m.Round)
					continue
				}
				next, ok := b.Match(m.NextMatchID)
				require.True(t, ok)
				assert.Equal(t, m.Round+1, next.Round)
			}
			assert.Equal(t, 1, finals)
			assert.Equal(t, domain.BracketInProgress, b.Status)
		}
	}
}

func TestGenerateFiveRegistrants(t *testing.T) {
	e := newEngine(1)
	cs := competitors(5)
	b, err := e.Generate(cs, domain.SeedingRegistration)
	require.NoError(t, err)

	assert.Equal(t, 8, b.Size)
	assert.Equal(t, 3, b.Rounds)
	assert.Len(t, b.Matches, 7)
	assert.Equal(t, 3, countStatus(b, domain.MatchByeCompleted))
	assert.Equal(t, 4, len(b.Matches)-countStatus(b, domain.MatchByeCompleted))

	// slots: 1v8 4v5 2v7 3v6, seeds 6-8 are byes
	r1m1, _ := b.Match("R1M1")
	assert.Equal(t, domain.MatchByeCompleted, r1m1.Status)
	assert.Equal(t, cs[0].ID, r1m1.Result.WinnerID)

	r1m2, _ := b.Match("R1M2")
	assert.Equal(t, domain.MatchReady, r1m2.Status)
	assert.True(t, r1m2.HasCompetitor(cs[3].ID))
	assert.True(t, r1m2.HasCompetitor(cs[4].ID))

	r2m1, _ := b.Match("R2M1")
	assert.Equal(t, domain.MatchPartial, r2m1.Status)
	assert.Equal(t, cs[0].ID, r2m1.Slots[0].CompetitorID)

	r2m2, _ := b.Match("R2M2")
	assert.Equal(t, domain.MatchReady, r2m2.Status)
	assert.Equal(t, cs[1].ID, r2m2.Slots[0].CompetitorID)
	assert.Equal(t, cs[2].ID, r2m2.Slots[1].CompetitorID)

	final, _ := b.Match("R3M1")
	assert.Equal(t, domain.MatchEmpty, final.Status)
	assert.Same(t, final, b.Final())
}

func TestGenerateRatingSeeding(t *testing.T) {
	e := newEngine(1)
	cs := competitors(4)
	b, err := e.Generate(cs, domain.SeedingRating)
	require.NoError(t, err)

	// highest rating is seed 1
	assert.Equal(t, cs[3].ID, b.Participants[0].ID)
	m1, _ := b.Match("R1M1")
	assert.Equal(t, cs[3].ID, m1.Slots[0].CompetitorID)
	assert.Equal(t, cs[0].ID, m1.Slots[1].CompetitorID)
	m2, _ := b.Match("R1M2")
	assert.Equal(t, cs[2].ID, m2.Slots[0].CompetitorID)
	assert.Equal(t, cs[1].ID, m2.Slots[1].CompetitorID)
}

func TestGenerateRandomCascadingByes(t *testing.T) {
	e := newEngine(3)
	cs := competitors(5)
	b, err := e.Generate(cs, domain.SeedingRandom)
	require.NoError(t, err)

	// sequential fill: slots 5-7 are voids, R1M4 is an empty bye and R2M2 a cascaded bye
	r1m4, _ := b.Match("R1M4")
	assert.Equal(t, domain.MatchByeCompleted, r1m4.Status)
	assert.Nil(t, r1m4.Result)

	r1m3, _ := b.Match("R1M3")
	assert.Equal(t, domain.MatchByeCompleted, r1m3.Status)

	r2m2, _ := b.Match("R2M2")
	assert.Equal(t, domain.MatchByeCompleted, r2m2.Status)
	require.NotNil(t, r2m2.Result)
	assert.Equal(t, r1m3.Result.WinnerID, r2m2.Result.WinnerID)

	final, _ := b.Match("R3M1")
	assert.Equal(t, r2m2.Result.WinnerID, final.Slots[1].CompetitorID)
	assert.Equal(t, domain.MatchPartial, final.Status)
}

func TestReportResultResolvesLateBye(t *testing.T) {
	e := newEngine(7)
	b, err := e.Generate(competitors(6), domain.SeedingRandom)
	require.NoError(t, err)

	// slots 6 and 7 are voids: R1M4 is an empty bye, R2M2 waits on R1M3 against a void
	r2m2, _ := b.Match("R2M2")
	require.True(t, r2m2.Slots[1].Void)
	assert.Equal(t, domain.MatchEmpty, r2m2.Status)

	r1m3, _ := b.Match("R1M3")
	winner := r1m3.Slots[0].CompetitorID
	_, err = e.ReportResult(b, "R1M3", winner, domain.Score{Winner: 1})
	require.NoError(t, err)

	r2m2, _ = b.Match("R2M2")
	assert.Equal(t, domain.MatchByeCompleted, r2m2.Status)
	require.NotNil(t, r2m2.Result)
	assert.Equal(t, winner, r2m2.Result.WinnerID)
	final, _ := b.Match("R3M1")
	assert.Equal(t, winner, final.Slots[1].CompetitorID)

	for len(Playable(b)) > 0 {
		m := Playable(b)[0]
		_, err := e.ReportResult(b, m.ID, m.Slots[0].CompetitorID, domain.Score{Winner: 2})
		require.NoError(t, err)
	}
	champion, ok := Champion(b)
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, champion)
	assert.Equal(t, domain.BracketCompleted, b.Status)
}

func TestReportResultTwoPlayers(t *testing.T) {
	e := newEngine(1)
	cs := competitors(2)
	b, err := e.Generate(cs, domain.SeedingRegistration)
	require.NoError(t, err)
	require.Len(t, b.Matches, 1)

	_, ok := Champion(b)
	assert.False(t, ok)

	b, err = e.ReportResult(b, "R1M1", cs[1].ID, domain.Score{Winner: 3, Loser: 1})
	require.NoError(t, err)
	champion, ok := Champion(b)
	require.True(t, ok)
	assert.Equal(t, cs[1].ID, champion)
	assert.Equal(t, domain.BracketCompleted, b.Status)

	loser, ok := b.Matches[0].Loser()
	require.True(t, ok)
	assert.Equal(t, cs[0].ID, loser)
}

func TestReportResultAdvances(t *testing.T) {
	e := newEngine(1)
	cs := competitors(4)
	b, err := e.Generate(cs, domain.SeedingRegistration)
	require.NoError(t, err)

	_, err = e.ReportResult(b, "R1M1", cs[0].ID, domain.Score{Winner: 2, Loser: 0})
	require.NoError(t, err)
	final, _ := b.Match("R2M1")
	assert.Equal(t, domain.MatchPartial, final.Status)
	assert.Equal(t, cs[0].ID, final.Slots[0].CompetitorID)

	require.NoError(t, e.StartMatch(b, "R1M2"))
	m2, _ := b.Match("R1M2")
	assert.Equal(t, domain.MatchInProgress, m2.Status)

	_, err = e.ReportResult(b, "R1M2", cs[2].ID, domain.Score{Winner: 2, Loser: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchReady, final.Status)
	assert.Equal(t, cs[2].ID, final.Slots[1].CompetitorID)
	assert.Equal(t, domain.BracketInProgress, b.Status)
}

func TestReportResultErrors(t *testing.T) {
	e := newEngine(1)
	cs := competitors(4)
	b, err := e.Generate(cs, domain.SeedingRegistration)
	require.NoError(t, err)
	score := domain.Score{Winner: 1, Loser: 0}

	_, err = e.ReportResult(b, "R9M9", cs[0].ID, score)
	assert.ErrorIs(t, err, ErrUnknownMatch)

	_, err = e.ReportResult(b, "R2M1", cs[0].ID, score)
	assert.ErrorIs(t, err, ErrInvalidMatchState)

	_, err = e.ReportResult(b, "R1M1", cs[1].ID, score)
	assert.ErrorIs(t, err, ErrUnknownCompetitor)

	_, err = e.ReportResult(b, "R1M1", cs[0].ID, domain.Score{Winner: 1, Loser: 1})
	assert.ErrorIs(t, err, ErrInvalidScoreOrdering)

	assert.ErrorIs(t, e.StartMatch(b, "R2M1"), ErrInvalidMatchState)
	assert.ErrorIs(t, e.StartMatch(b, "nope"), ErrUnknownMatch)

	for _, m := range b.Matches {
		assert.Nil(t, m.Result)
	}
}

func TestReportResultTwiceRejected(t *testing.T) {
	e := newEngine(1)
	cs := competitors(4)
	b, err := e.Generate(cs, domain.SeedingRegistration)
	require.NoError(t, err)

	_, err = e.ReportResult(b, "R1M1", cs[0].ID, domain.Score{Winner: 2, Loser: 0})
	require.NoError(t, err)
	before := b.Clone()

	_, err = e.ReportResult(b, "R1M1", cs[0].ID, domain.Score{Winner: 2, Loser: 0})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	_, err = e.ReportResult(b, "R1M1", cs[3].ID, domain.Score{Winner: 2, Loser: 0})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.ErrorIs(t, e.StartMatch(b, "R1M1"), ErrAlreadyCompleted)

	assert.Equal(t, before.Matches, b.Matches)
	assert.Equal(t, before.Status, b.Status)
}

func TestByeMatchRejectsReport(t *testing.T) {
	e := newEngine(1)
	cs := competitors(3)
	b, err := e.Generate(cs, domain.SeedingRegistration)
	require.NoError(t, err)

	m, _ := b.Match("R1M1")
	require.Equal(t, domain.MatchByeCompleted, m.Status)
	_, err = e.ReportResult(b, "R1M1", cs[0].ID, domain.Score{Winner: 1, Loser: 0})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestRandomPathSingleChampion(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for _, seeding := range []domain.Seeding{domain.SeedingRegistration, domain.SeedingRating, domain.SeedingRandom} {
		for n := 2; n <= 33; n++ {
			e := newEngine(int64(n))
			cs := competitors(n)
			b, err := e.Generate(cs, seeding)
			require.NoError(t, err)

			reported := 0
			for {
				playable := Playable(b)
				if len(playable) == 0 {
					break
				}
				m := playable[rnd.Intn(len(playable))]
				winner := m.Slots[rnd.Intn(2)].CompetitorID
				_, err := e.ReportResult(b, m.ID, winner, domain.Score{Winner: 2, Loser: rnd.Intn(2)})
				require.NoError(t, err)
				reported++
			}

			assert.Equal(t, n-1, reported, "every match eliminates one competitor")
			champion, ok := Champion(b)
			require.True(t, ok, "n=%d seeding=%s", n, seeding)
			final := b.Final()
			require.NotNil(t, final)
			assert.Equal(t, champion, final.Result.WinnerID)
			for _, m := range b.Matches {
				assert.True(t, m.Status.Finished(), "%s is %s", m.ID, m.Status)
			}
		}
	}
}
