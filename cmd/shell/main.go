package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/config"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/repository/redis"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/service/bot"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/shell"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Msg("shell failed")
	}
}

func run() error {
	fs := config.NewFlagSet("shell")
	human := fs.String("human", "red", "the colour you play")
	history := fs.String("history", defaultHistory(), "readline history file")

	cfg, err := config.LoadConfig(fs, os.Args[1:])
	if err != nil {
		return err
	}
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		return err
	}
	color, err := domain.ParseColor(*human)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the agent takes the other side's settings
	agent := cfg.Yellow
	if color == domain.Yellow {
		agent = cfg.Red
	}

	opts := shell.Options{
		Columns: cfg.Columns,
		Rows:    cfg.Rows,
		Agent:   agent.Kind,
		Depth:   agent.Depth,
		Human:   color,
		Timeout: cfg.SearchTimeout,
		Colors:  isatty.IsTerminal(os.Stdout.Fd()),
	}
	if cfg.CacheEnabled {
		var cache bot.MoveCache = bot.NewMemoryCache()
		if client := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword); client != nil {
			moves := redis.NewMoveCache(client)
			defer moves.Close()
			cache = moves
		}
		opts.Decorate = func(p bot.Player) bot.Player {
			name := fmt.Sprintf("%s(%s)", p.Name(), p.Color())
			if s, ok := p.(fmt.Stringer); ok {
				name = s.String()
			}
			identity := fmt.Sprintf("shell/%s/%dx%d", name, cfg.Columns, cfg.Rows)
			return bot.NewCachedChooser(p, cache, identity, cfg.CacheTTL)
		}
	}

	sc, err := shell.NewShellController(opts, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Println("connect four, type help for commands")
	return sc.Loop(ctx, *history)
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".connect4_history")
}
