package tgbot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goserg/ratingengine/internal/notify"
	"github.com/goserg/ratingengine/internal/rank"
	"github.com/goserg/ratingengine/internal/rating"
	"github.com/goserg/ratingengine/internal/service"
)

const topSize = 10

func formatTierChange(c notify.TierChange) string {
	verb := "понижен"
	if c.Promoted() {
		verb = "повышен"
	}
	return fmt.Sprintf("Игрок %s %s до %s (%d) в рейтинге %s",
		c.CompetitorID, verb, c.To.Name, c.Rating, c.Scope)
}

func formatChampion(c notify.Champion) string {
	name := c.Competitor.Name
	if name == "" {
		name = c.Competitor.ID.String()
	}
	return fmt.Sprintf("Турнир %s завершен, победитель: %s", c.TournamentID, name)
}

func formatTop(standings []service.Standing) string {
	if len(standings) == 0 {
		return "Рейтинг пока пуст"
	}
	var buffer strings.Builder
	for i := range standings {
		if i >= topSize {
			break
		}
		buffer.WriteString(strconv.Itoa(standings[i].Position))
		buffer.WriteString(". ")
		buffer.WriteString(standings[i].Rating.CompetitorID.String())
		buffer.WriteString(" (")
		buffer.WriteString(strconv.Itoa(standings[i].Rating.CurrentRating))
		buffer.WriteString(", ")
		buffer.WriteString(standings[i].Tier.Name)
		buffer.WriteString(")\n")
	}
	return buffer.String()
}

func formatTiers(tiers []rank.Tier) string {
	var buffer strings.Builder
	for i := len(tiers) - 1; i >= 0; i-- {
		buffer.WriteString(tiers[i].Name)
		buffer.WriteString(": от ")
		buffer.WriteString(strconv.Itoa(tiers[i].MinRating))
		buffer.WriteString("\n")
	}
	return buffer.String()
}

func formatGlicko2Top(board []rating.Glicko2Rating) string {
	if len(board) == 0 {
		return "Рейтинг пока пуст"
	}
	var buffer strings.Builder
	for i := range board {
		if i >= topSize {
			break
		}
		buffer.WriteString(strconv.Itoa(i + 1))
		buffer.WriteString(". ")
		buffer.WriteString(board[i].CompetitorID.String())
		buffer.WriteString(" - ")
		buffer.WriteString(strconv.Itoa(int(board[i].Rating)))
		buffer.WriteString(" (")
		buffer.WriteString(strconv.Itoa(int(board[i].Interval.Min)))
		buffer.WriteString("-")
		buffer.WriteString(strconv.Itoa(int(board[i].Interval.Max)))
		buffer.WriteString(")\n")
	}
	return buffer.String()
}

func formatInfo(s service.Standing) string {
	var buf strings.Builder
	buf.WriteString("ID: ")
	buf.WriteString(s.Rating.CompetitorID.String())
	buf.WriteString("\n")
	buf.WriteString("Дисциплина: ")
	buf.WriteString(string(s.Rating.Scope))
	buf.WriteString("\n")
	buf.WriteString("Место в рейтинге: ")
	buf.WriteString(prettifyPosition(s.Position))
	buf.WriteString("\n")
	buf.WriteString("Рейтинг: ")
	buf.WriteString(strconv.Itoa(s.Rating.CurrentRating))
	buf.WriteString(" (")
	buf.WriteString(s.Tier.Name)
	buf.WriteString(")\n")
	buf.WriteString("Лучший рейтинг: ")
	buf.WriteString(strconv.Itoa(s.Rating.HighestRating))
	buf.WriteString("\n")
	buf.WriteString("Сыграно матчей: ")
	buf.WriteString(strconv.Itoa(s.Rating.MatchesPlayed))
	if n := len(s.Rating.History); n > 0 {
		buf.WriteString("\n")
		buf.WriteString("Последнее изменение: ")
		buf.WriteString(s.Rating.History[n-1].At.Format(time.RFC1123))
	}
	return buf.String()
}

func prettifyPosition(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return strconv.Itoa(position)
}
