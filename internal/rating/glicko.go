package rating

import (
	"sort"

	"github.com/google/uuid"
	"github.com/goserg/ratingengine/internal/domain"
	glicko "github.com/zelenin/go-glicko2"
)

const (
	glickoRating     = 1500
	glickoDeviation  = 350
	glickoVolatility = 0.06
)

type Interval struct {
	Min float64
	Max float64
}

type Glicko2Rating struct {
	CompetitorID uuid.UUID
	Rating       float64
	Deviation    float64
	Volatility   float64
	Interval     Interval
	Matches      int
}

// Glicko2Board replays rating changes in order, every match is its own rating period.
// The result is sorted by rating, highest first.
func Glicko2Board(changes []domain.RatingChange) []Glicko2Rating {
	players := make(map[uuid.UUID]*glicko.Player)
	matches := make(map[uuid.UUID]int)
	get := func(id uuid.UUID) *glicko.Player {
		p, ok := players[id]
		if !ok {
			p = glicko.NewPlayer(glicko.NewRating(glickoRating, glickoDeviation, glickoVolatility))
			players[id] = p
		}
		return p
	}

	for _, c := range changes {
		winner := get(c.WinnerID)
		loser := get(c.LoserID)
		period := glicko.NewRatingPeriod()
		period.AddPlayer(winner)
		period.AddPlayer(loser)
		period.AddMatch(winner, loser, glicko.MATCH_RESULT_WIN)
		period.Calculate()
		matches[c.WinnerID]++
		matches[c.LoserID]++
	}

	board := make([]Glicko2Rating, 0, len(players))
	for id, p := range players {
		r := p.Rating()
		board = append(board, Glicko2Rating{
			CompetitorID: id,
			Rating:       r.R(),
			Deviation:    r.Rd(),
			Volatility:   r.Sigma(),
			Interval: Interval{
				Min: r.R() - 2*r.Rd(),
				Max: r.R() + 2*r.Rd(),
			},
			Matches: matches[id],
		})
	}
	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Rating == board[j].Rating {
			return board[i].CompetitorID.String() < board[j].CompetitorID.String()
		}
		return board[i].Rating > board[j].Rating
	})
	return board
}
