package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/service/bot"
)

type AgentConfig struct {
	Kind  string
	Depth int
}

type Config struct {
	Columns       int
	Rows          int
	Red           AgentConfig
	Yellow        AgentConfig
	Games         int
	Parallelism   int
	Seed          uint64
	SearchTimeout time.Duration
	LogLevel      string
	LogFormat     string
	CacheEnabled  bool
	CacheTTL      time.Duration
	RedisURL      string
	RedisPassword string
	ReportPath    string
	ChartPath     string
}

var AppConfig *Config

// flag name → config key
var flagKeys = map[string]string{
	"columns":      "BOARD_COLUMNS",
	"rows":         "BOARD_ROWS",
	"red":          "RED_AGENT",
	"red-depth":    "RED_DEPTH",
	"yellow":       "YELLOW_AGENT",
	"yellow-depth": "YELLOW_DEPTH",
	"games":        "GAMES",
	"parallelism":  "PARALLELISM",
	"seed":         "SEED",
	"timeout":      "SEARCH_TIMEOUT",
	"log-level":    "LOG_LEVEL",
	"log-format":   "LOG_FORMAT",
	"cache":        "CACHE_ENABLED",
	"cache-ttl":    "CACHE_TTL",
	"redis-url":    "REDIS_URL",
	"report":       "REPORT_PATH",
	"chart":        "CHART_PATH",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("BOARD_COLUMNS", domain.DefaultColumns)
	v.SetDefault("BOARD_ROWS", domain.DefaultRows)
	v.SetDefault("RED_AGENT", bot.KindBaseline)
	v.SetDefault("RED_DEPTH", 7)
	v.SetDefault("YELLOW_AGENT", bot.KindEnhanced)
	v.SetDefault("YELLOW_DEPTH", 6)
	v.SetDefault("GAMES", 25)
	v.SetDefault("PARALLELISM", 1)
	v.SetDefault("SEED", 0)
	v.SetDefault("SEARCH_TIMEOUT", time.Duration(0))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "pretty")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", 24*time.Hour)
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REPORT_PATH", "")
	v.SetDefault("CHART_PATH", "")
}

// NewFlagSet declares the command line flags LoadConfig understands.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "YAML config file (also CONFIG_FILE)")
	fs.Int("columns", domain.DefaultColumns, "board width")
	fs.Int("rows", domain.DefaultRows, "board height")
	fs.String("red", bot.KindBaseline, "red agent: "+strings.Join(bot.Kinds, ", "))
	fs.Int("red-depth", 7, "red search depth in plies")
	fs.String("yellow", bot.KindEnhanced, "yellow agent: "+strings.Join(bot.Kinds, ", "))
	fs.Int("yellow-depth", 6, "yellow search depth in plies")
	fs.Int("games", 25, "games in the series")
	fs.Int("parallelism", 1, "games played at once")
	fs.Uint64("seed", 0, "seed for random tie-breaks, 0 for entropy")
	fs.Duration("timeout", 0, "time limit per move, 0 for none")
	fs.String("log-level", "info", "debug, info, warn, error")
	fs.String("log-format", "pretty", "pretty or json")
	fs.Bool("cache", false, "cache chosen moves in redis (in memory when redis is down)")
	fs.Duration("cache-ttl", 24*time.Hour, "cached move lifetime")
	fs.String("redis-url", "localhost:6379", "redis address")
	fs.String("report", "", "write a YAML summary here")
	fs.String("chart", "", "write an HTML chart here")
	return fs
}

// LoadConfig resolves settings from, highest first: flags in args, the
// environment (a .env file included), the YAML config file and defaults.
func LoadConfig(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Debug().Msg("no .env file found")
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	configFile := GetEnv("CONFIG_FILE", "")
	if f, _ := fs.GetString("config"); f != "" {
		configFile = f
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	for name, key := range flagKeys {
		if flag := fs.Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Columns:       v.GetInt("BOARD_COLUMNS"),
		Rows:          v.GetInt("BOARD_ROWS"),
		Red:           AgentConfig{Kind: v.GetString("RED_AGENT"), Depth: v.GetInt("RED_DEPTH")},
		Yellow:        AgentConfig{Kind: v.GetString("YELLOW_AGENT"), Depth: v.GetInt("YELLOW_DEPTH")},
		Games:         v.GetInt("GAMES"),
		Parallelism:   v.GetInt("PARALLELISM"),
		Seed:          v.GetUint64("SEED"),
		SearchTimeout: v.GetDuration("SEARCH_TIMEOUT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		CacheEnabled:  v.GetBool("CACHE_ENABLED"),
		CacheTTL:      v.GetDuration("CACHE_TTL"),
		RedisURL:      v.GetString("REDIS_URL"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		ReportPath:    v.GetString("REPORT_PATH"),
		ChartPath:     v.GetString("CHART_PATH"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return AppConfig, nil
}

// Validate checks settings that would otherwise fail once games start.
func (c *Config) Validate() error {
	var errs []error
	if c.Columns < domain.MinDimension || c.Rows < domain.MinDimension {
		errs = append(errs, fmt.Errorf("board %dx%d: %w", c.Columns, c.Rows, domain.ErrInvalidDimension))
	}
	for _, side := range []struct {
		name  string
		agent AgentConfig
	}{{"red", c.Red}, {"yellow", c.Yellow}} {
		if !lo.Contains(bot.Kinds, side.agent.Kind) {
			errs = append(errs, fmt.Errorf("%s agent %q: %w", side.name, side.agent.Kind, bot.ErrUnknownAgent))
		} else if side.agent.Kind != bot.KindGreedy && side.agent.Depth <= 0 {
			errs = append(errs, fmt.Errorf("%s depth %d: %w", side.name, side.agent.Depth, bot.ErrInvalidDepth))
		}
	}
	if c.Games <= 0 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.Parallelism <= 0 {
		errs = append(errs, fmt.Errorf("parallelism must be positive, got %d", c.Parallelism))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if c.LogFormat != "pretty" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log format %q: want pretty or json", c.LogFormat))
	}
	return errors.Join(errs...)
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
