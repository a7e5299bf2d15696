package tgbot

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/notify"
	"github.com/goserg/ratingengine/internal/rank"
	"github.com/goserg/ratingengine/internal/rating"
	"github.com/goserg/ratingengine/internal/service"
	"github.com/goserg/ratingengine/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable")
	}
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{}, nil
}

type fakeBoard struct {
	scope     string
	standings []service.Standing
	glicko    []rating.Glicko2Rating
}

func (f *fakeBoard) Leaderboard(_ context.Context, scope string) ([]service.Standing, error) {
	f.scope = scope
	return f.standings, nil
}

func (f *fakeBoard) GetRating(_ context.Context, id uuid.UUID, scope string) (service.Standing, error) {
	f.scope = scope
	for _, s := range f.standings {
		if s.Rating.CompetitorID == id {
			return s, nil
		}
	}
	return service.Standing{}, storage.ErrNotFound
}

func (f *fakeBoard) Glicko2Board(_ context.Context, scope string) ([]rating.Glicko2Rating, error) {
	f.scope = scope
	return f.glicko, nil
}

func newTestBot(board Ratings) (*Bot, *fakeSender) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := &fakeSender{}
	return newBot(s, board, log), s
}

func command(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chatID},
			Text: text,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: commandLength(text)},
			},
		},
	}
}

func commandLength(text string) int {
	if i := strings.IndexByte(text, ' '); i >= 0 {
		return i
	}
	return len(text)
}

func drain(b *Bot) {
	for {
		select {
		case o := <-b.queue:
			b.broadcast(o.event, o.text)
		default:
			return
		}
	}
}

func TestSubscribeAndNotify(t *testing.T) {
	b, s := newTestBot(&fakeBoard{})

	b.handleMessage(context.Background(), command(1, "/sub champion"))
	b.handleMessage(context.Background(), command(2, "/sub"))
	require.Len(t, s.sent, 2)
	assert.True(t, b.subs.Subscribed(ChampionCrowned, 1))
	assert.False(t, b.subs.Subscribed(TierChanged, 1))
	assert.True(t, b.subs.Subscribed(TierChanged, 2))

	b.TierChanged(context.Background(), notify.TierChange{
		CompetitorID: uuid.New(), Scope: domain.GlobalScope, Rating: 1400,
		From: rank.GetTier(1390), To: rank.GetTier(1400),
	})
	b.ChampionCrowned(context.Background(), notify.Champion{
		Competitor: domain.Competitor{ID: uuid.New(), Name: "Team Liquid"},
	})
	drain(b)

	require.Len(t, s.sent, 5)
	assert.Equal(t, int64(2), s.sent[2].ChatID)
	assert.Contains(t, s.sent[2].Text, "повышен до Silver")
	var champions []int64
	for _, m := range s.sent[3:] {
		assert.Contains(t, m.Text, "Team Liquid")
		champions = append(champions, m.ChatID)
	}
	assert.ElementsMatch(t, []int64{1, 2}, champions)

	b.handleMessage(context.Background(), command(2, "/unsub"))
	assert.False(t, b.subs.Subscribed(ChampionCrowned, 2))
}

func TestTopCommand(t *testing.T) {
	id := uuid.New()
	board := &fakeBoard{standings: []service.Standing{
		{Position: 1, Rating: domain.Rating{CompetitorID: id, CurrentRating: 1650}, Tier: rank.GetTier(1650)},
	}}
	b, s := newTestBot(board)

	b.handleMessage(context.Background(), command(7, "/top dota 2"))

	require.Len(t, s.sent, 1)
	assert.Equal(t, "dota 2", board.scope)
	assert.Equal(t, "1. "+id.String()+" (1650, Gold)\n", s.sent[0].Text)
}

func TestInfoCommand(t *testing.T) {
	id := uuid.New()
	board := &fakeBoard{standings: []service.Standing{
		{
			Position: 2,
			Rating: domain.Rating{
				CompetitorID: id, Scope: "dota 2", CurrentRating: 1420, HighestRating: 1450, MatchesPlayed: 4,
			},
			Tier: rank.GetTier(1420),
		},
	}}
	b, s := newTestBot(board)

	b.handleMessage(context.Background(), command(7, "/info "+id.String()+" dota 2"))
	b.handleMessage(context.Background(), command(7, "/info"))
	b.handleMessage(context.Background(), command(7, "/info nope"))
	b.handleMessage(context.Background(), command(7, "/info "+uuid.NewString()))

	require.Len(t, s.sent, 4)
	assert.Equal(t, "dota 2", board.scope)
	assert.Contains(t, s.sent[0].Text, "Место в рейтинге: 🥈")
	assert.Contains(t, s.sent[0].Text, "Рейтинг: 1420 (Silver)")
	assert.Contains(t, s.sent[0].Text, "Сыграно матчей: 4")
	assert.Contains(t, s.sent[1].Text, "после /info")
	assert.Contains(t, s.sent[2].Text, "некорректный id")
	assert.Equal(t, storage.ErrNotFound.Error(), s.sent[3].Text)
}

func TestGlicko2TopCommand(t *testing.T) {
	id := uuid.New()
	board := &fakeBoard{glicko: []rating.Glicko2Rating{
		{CompetitorID: id, Rating: 1662.4, Interval: rating.Interval{Min: 1400.2, Max: 1924.9}},
	}}
	b, s := newTestBot(board)

	b.handleMessage(context.Background(), command(7, "/gtop"))

	require.Len(t, s.sent, 1)
	assert.Equal(t, "1. "+id.String()+" - 1662 (1400-1924)\n", s.sent[0].Text)
}

func TestUnknownCommand(t *testing.T) {
	b, s := newTestBot(&fakeBoard{})
	b.handleMessage(context.Background(), command(7, "/nope"))
	b.handleMessage(context.Background(), command(7, "/sub everything"))
	require.Len(t, s.sent, 2)
	assert.Equal(t, ErrBadRequest.Error(), s.sent[0].Text)
	assert.Equal(t, ErrBadRequest.Error(), s.sent[1].Text)
}

func TestQueueDropsWhenFull(t *testing.T) {
	b, _ := newTestBot(&fakeBoard{})
	for i := 0; i < queueSize+5; i++ {
		b.ChampionCrowned(context.Background(), notify.Champion{})
	}
	assert.Len(t, b.queue, queueSize)
}

func TestFormatTiers(t *testing.T) {
	text := formatTiers(rank.Tiers())
	assert.Equal(t, "Grandmaster: от 2400\nMaster: от 2200\nDiamond: от 2000\nPlatinum: от 1800\nGold: от 1600\nSilver: от 1400\nBronze: от 0\n", text)
	assert.Equal(t, "Рейтинг пока пуст", formatTop(nil))
}
