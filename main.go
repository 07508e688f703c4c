package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/types/events"

	"stikerbot/pkg/activity"
	"stikerbot/pkg/bot"
	"stikerbot/pkg/config"
	"stikerbot/pkg/sticker"
	"stikerbot/pkg/wa"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Not an error: deployments usually set real environment variables.
		os.Stderr.WriteString("no .env file found, relying on environment variables\n")
	}

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TuningPath).Msg("could not load tuning file")
	}
	cfg.Tuning = *tuning

	ctx := context.Background()

	client, err := wa.Connect(ctx, cfg.StorePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect")
	}
	defer client.Close()

	encoder := sticker.NewEncoder(cfg, log.With().Str("component", "encoder").Logger())
	converter := sticker.NewConverter(client, encoder, client, log.With().Str("component", "converter").Logger())
	activityLog := activity.NewLogger(cfg.ActivityLogPath())
	handler := bot.NewHandler(cfg, client, converter, activityLog, log.With().Str("component", "handler").Logger())

	client.OnMessage(func(evt *events.Message) {
		handler.HandleMessage(ctx, evt)
	})

	log.Info().
		Str("prefix", cfg.Prefix).
		Str("activity_log", cfg.ActivityLogPath()).
		Msg("bot is running, press ctrl-c to exit")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
