package tgbot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goserg/ratingengine/internal/rank"
	"github.com/goserg/ratingengine/internal/rating"
	"github.com/goserg/ratingengine/internal/service"

	"github.com/google/uuid"
)

var ErrBadRequest = errors.New("неизвестная команда")

// Ratings is the read side of the rating service the bot answers from.
type Ratings interface {
	Leaderboard(ctx context.Context, scope string) ([]service.Standing, error)
	GetRating(ctx context.Context, competitorID uuid.UUID, scope string) (service.Standing, error)
	Glicko2Board(ctx context.Context, scope string) ([]rating.Glicko2Rating, error)
}

type Command interface {
	Run(ctx context.Context, chatID int64, args string) (string, error)
	Help() string
}

type Commands struct {
	list map[string]Command
}

func NewCommands(board Ratings, subs *subscriptions) *Commands {
	hc := &HelpCommand{}
	uc := Commands{
		list: map[string]Command{
			"help":  hc,
			"start": hc,
			"top": &TopCommand{
				board: board,
			},
			"gtop": &Glicko2TopCommand{
				board: board,
			},
			"info": &InfoCommand{
				board: board,
			},
			"tiers": &TiersCommand{},
			"sub": &SubCommand{
				subs: subs,
			},
			"unsub": &UnsubCommand{
				subs: subs,
			},
		},
	}
	hc.commands = uc.list
	return &uc
}

func (uc *Commands) RunCommand(ctx context.Context, chatID int64, cmd string, args string) (string, error) {
	command, ok := uc.list[cmd]
	if !ok {
		return "", ErrBadRequest
	}
	return command.Run(ctx, chatID, strings.TrimSpace(args))
}

type HelpCommand struct {
	commands map[string]Command
}

func (c *HelpCommand) Run(_ context.Context, _ int64, args string) (string, error) {
	if command, ok := c.commands[strings.TrimPrefix(args, "/")]; ok && args != "" {
		return command.Help(), nil
	}
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString("Доступные команды:\n")
	for _, name := range names {
		b.WriteString("/")
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("Подробная помощь по команде /help и имя команды")
	return b.String(), nil
}

func (c *HelpCommand) Help() string {
	return "Выводит список доступных комманд"
}

type TopCommand struct {
	board Ratings
}

func (c *TopCommand) Run(ctx context.Context, _ int64, args string) (string, error) {
	standings, err := c.board.Leaderboard(ctx, args)
	if err != nil {
		return "", err
	}
	return formatTop(standings), nil
}

func (c *TopCommand) Help() string {
	return "Список лучших в рейтинге, например /top или /top dota 2"
}

type Glicko2TopCommand struct {
	board Ratings
}

func (c *Glicko2TopCommand) Run(ctx context.Context, _ int64, args string) (string, error) {
	board, err := c.board.Glicko2Board(ctx, args)
	if err != nil {
		return "", err
	}
	return formatGlicko2Top(board), nil
}

func (c *Glicko2TopCommand) Help() string {
	return "Список лучших в рейтинге Glicko2 (beta)"
}

type InfoCommand struct {
	board Ratings
}

func (c *InfoCommand) Run(ctx context.Context, _ int64, args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) < 1 {
		return "", errors.New(`после /info id участника необходимо указывать в этом же сообщении. Например "/info 6f1c... dota 2"`)
	}
	id, err := uuid.Parse(fields[0])
	if err != nil {
		return "", fmt.Errorf("некорректный id участника: %s", fields[0])
	}
	standing, err := c.board.GetRating(ctx, id, strings.Join(fields[1:], " "))
	if err != nil {
		return "", err
	}
	return formatInfo(standing), nil
}

func (c *InfoCommand) Help() string {
	return "Информация об участнике. Использование - /info, id участника и, при необходимости, дисциплина."
}

type TiersCommand struct{}

func (c *TiersCommand) Run(_ context.Context, _ int64, _ string) (string, error) {
	return formatTiers(rank.Tiers()), nil
}

func (c *TiersCommand) Help() string {
	return "Ранги и их нижние границы"
}

type SubCommand struct {
	subs *subscriptions
}

func (c *SubCommand) Run(_ context.Context, chatID int64, args string) (string, error) {
	types, ok := parseEventTypes(args)
	if !ok {
		return "", ErrBadRequest
	}
	for _, t := range types {
		c.subs.Add(t, chatID)
	}
	return "Подписка оформленна, чтобы отписаться от уведомлений: /unsub", nil
}

func (c *SubCommand) Help() string {
	return "Подписаться на уведомления: /sub, /sub tier или /sub champion"
}

type UnsubCommand struct {
	subs *subscriptions
}

func (c *UnsubCommand) Run(_ context.Context, chatID int64, args string) (string, error) {
	types, ok := parseEventTypes(args)
	if !ok {
		return "", ErrBadRequest
	}
	for _, t := range types {
		c.subs.Remove(t, chatID)
	}
	return "Вы отписались от уведомлений", nil
}

func (c *UnsubCommand) Help() string {
	return "Отписаться от уведомлений"
}
