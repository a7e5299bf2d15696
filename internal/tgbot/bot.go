package tgbot

import (
	"context"
	"fmt"

	"github.com/goserg/ratingengine/internal/config"
	"github.com/goserg/ratingengine/internal/notify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers a few read only commands and pushes rating events to subscribed chats.
type Bot struct {
	api    *tgbotapi.BotAPI
	sender sender
	log    *logrus.Entry

	subs     *subscriptions
	commands *Commands
	queue    chan outgoing
}

type outgoing struct {
	event EventType
	text  string
}

const queueSize = 64

var _ notify.Notifier = (*Bot)(nil)

func New(cfg config.TgBot, board Ratings, log *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramApiToken)
	if err != nil {
		return nil, fmt.Errorf("env TELEGRAM_APITOKEN: %w", err)
	}
	api.Debug = cfg.Debug
	_, err = api.GetMe()
	if err != nil {
		return nil, err
	}
	b := newBot(api, board, log)
	b.api = api
	for _, chatID := range cfg.ChatIDs {
		for _, t := range eventTypes {
			b.subs.Add(t, chatID)
		}
	}
	return b, nil
}

func newBot(s sender, board Ratings, log *logrus.Logger) *Bot {
	subs := newSubs()
	return &Bot{
		sender:   s,
		log:      log.WithField("from", "tg_bot"),
		subs:     subs,
		commands: NewCommands(board, subs),
		queue:    make(chan outgoing, queueSize),
	}
}

// Run polls updates and sends queued notifications until ctx is done.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleMessage(ctx, update)
		case o := <-b.queue:
			b.broadcast(o.event, o.text)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}
	log := b.log.WithFields(logrus.Fields{
		"chat_id": update.Message.Chat.ID,
		"text":    update.Message.Text,
	})

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	text, err := b.commands.RunCommand(ctx, update.Message.Chat.ID, update.Message.Command(), update.Message.CommandArguments())
	if err != nil {
		log.WithError(err).Debug("command failed")
		text = err.Error()
	}
	msg.Text = text
	if _, err := b.sender.Send(msg); err != nil {
		log.WithError(err).Error("send error")
	}
}

func (b *Bot) TierChanged(_ context.Context, change notify.TierChange) {
	b.enqueue(TierChanged, formatTierChange(change))
}

func (b *Bot) ChampionCrowned(_ context.Context, champion notify.Champion) {
	b.enqueue(ChampionCrowned, formatChampion(champion))
}

// enqueue never blocks the caller, a full queue drops the event.
func (b *Bot) enqueue(event EventType, text string) {
	select {
	case b.queue <- outgoing{event: event, text: text}:
	default:
		b.log.WithField("event", event).Warn("notification queue is full, event dropped")
	}
}

func (b *Bot) broadcast(event EventType, text string) {
	for _, chatID := range b.subs.GetChatIDs(event) {
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := b.sender.Send(msg); err != nil {
			b.log.WithError(err).WithField("chat_id", chatID).Error("notification not sent")
		}
	}
}
