package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/chucky-1/expenses/internal/config"
	"github.com/chucky-1/expenses/internal/consumer"
	"github.com/chucky-1/expenses/internal/producer"
	"github.com/chucky-1/expenses/internal/repository"
	"github.com/chucky-1/expenses/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	setupLogger(cfg.Log)

	ids, err := service.NewIDGenerator(cfg.IDStrategy)
	if err != nil {
		logrus.Fatal(err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logrus.Fatal(err)
	}
	bot.Debug = cfg.Telegram.Debug
	logrus.Infof("authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.Timeout
	updates := bot.GetUpdatesChan(u)

	hub := consumer.NewHub(
		producer.NewScreen(bot, cfg.CurrencySymbol),
		updates,
		service.NewValidator(validator.New()),
		service.NewChats(repository.NewChatsLocalStorage()),
		ids,
		cfg.ChatBuffer,
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		hub.Consume(gCtx)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		bot.StopReceivingUpdates()
		return nil
	})

	if err = g.Wait(); err != nil {
		logrus.Errorf("expense bot stopped with error: %v", err)
		return
	}
	logrus.Info("expense bot stopped")
}

func setupLogger(cfg config.Log) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
