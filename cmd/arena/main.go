package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/config"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/repository/redis"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/service/bot"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/service/match"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Msg("arena failed")
	}
}

func run() error {
	cfg, err := config.LoadConfig(config.NewFlagSet("arena"), os.Args[1:])
	if err != nil {
		return err
	}
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cache bot.MoveCache
	if cfg.CacheEnabled {
		if client := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword); client != nil {
			moves := redis.NewMoveCache(client)
			defer moves.Close()
			cache = moves
		} else {
			cache = bot.NewMemoryCache()
		}
	}

	series, err := match.NewSeries(match.SeriesConfig{
		Columns:     cfg.Columns,
		Rows:        cfg.Rows,
		Games:       cfg.Games,
		Parallelism: cfg.Parallelism,
		Red:         match.AgentSpec{Kind: cfg.Red.Kind, Depth: cfg.Red.Depth},
		Yellow:      match.AgentSpec{Kind: cfg.Yellow.Kind, Depth: cfg.Yellow.Depth},
		Seed:        cfg.Seed,
		MoveTimeout: cfg.SearchTimeout,
		Cache:       cache,
		CacheTTL:    cfg.CacheTTL,
	})
	if err != nil {
		return err
	}

	log.Info().Int("games", cfg.Games).Int("parallelism", cfg.Parallelism).
		Str("board", fmt.Sprintf("%dx%d", cfg.Columns, cfg.Rows)).Msg("starting series")
	tally, err := series.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Print(tally.String())
	fmt.Println("Game lengths:")
	if err := tally.FprintHistogram(os.Stdout, 6); err != nil {
		return err
	}

	if cfg.ReportPath != "" {
		if err := match.WriteFile(cfg.ReportPath, tally, match.WriteReport); err != nil {
			return err
		}
		log.Info().Str("path", cfg.ReportPath).Msg("wrote report")
	}
	if cfg.ChartPath != "" {
		if err := match.WriteFile(cfg.ChartPath, tally, match.WriteChart); err != nil {
			return err
		}
		log.Info().Str("path", cfg.ChartPath).Msg("wrote chart")
	}
	return nil
}
