package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goserg/ratingengine/internal/bracket"
	"github.com/goserg/ratingengine/internal/config"
	"github.com/goserg/ratingengine/internal/elo"
	"github.com/goserg/ratingengine/internal/logger"
	"github.com/goserg/ratingengine/internal/notify"
	"github.com/goserg/ratingengine/internal/policy"
	"github.com/goserg/ratingengine/internal/rating"
	"github.com/goserg/ratingengine/internal/service"
	"github.com/goserg/ratingengine/internal/storage/sqlite"
	"github.com/goserg/ratingengine/internal/tgbot"
	"github.com/goserg/ratingengine/internal/web"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var serverConfigPath, botConfigPath string
	flag.StringVar(&serverConfigPath, "server-config", "configs/server.toml", "server config path")
	flag.StringVar(&botConfigPath, "bot-config", "configs/bot.toml", "bot config path")
	flag.Parse()

	cfg, err := config.New(serverConfigPath, botConfigPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.LogLevel)

	st, err := sqlite.New(log, cfg.Server.SqliteFile)
	if err != nil {
		return err
	}
	defer st.Close()

	rules, err := policy.New(cfg.Server.Rules)
	if err != nil {
		return err
	}

	ratings := rating.New(rating.WithKFactor(elo.ParseKFactor(cfg.Server.Rating.KPolicy, cfg.Server.Rating.KFactor)))
	// the bot reads from the service, so it joins the notifiers after the service exists
	notifiers := notify.Multi{notify.NewLog(log)}
	svc := service.New(st, ratings, bracket.New(), log,
		service.WithPolicy(rules),
		service.WithNotifier(&notifiers),
	)
	var bot *tgbot.Bot
	if cfg.TgBot.Enabled {
		bot, err = tgbot.New(cfg.TgBot, svc, log)
		if err != nil {
			return err
		}
		notifiers = append(notifiers, bot)
	}
	server := web.New(svc, cfg.Server, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Serve)
	if bot != nil {
		g.Go(func() error {
			bot.Run(ctx)
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		return server.Shutdown()
	})
	return g.Wait()
}
