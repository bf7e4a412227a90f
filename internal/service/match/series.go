package match

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/service/bot"
)

// AgentSpec names an agent kind and its search depth.
type AgentSpec struct {
	Kind  string `yaml:"kind"`
	Depth int    `yaml:"depth"`
}

func (a AgentSpec) String() string {
	if a.Kind == bot.KindGreedy {
		return a.Kind
	}
	return fmt.Sprintf("%s-%d", a.Kind, a.Depth)
}

// SeriesConfig describes a run of games between the same two agents.
type SeriesConfig struct {
	Columns     int
	Rows        int
	Games       int
	Parallelism int
	Red         AgentSpec
	Yellow      AgentSpec
	// Seed makes the random tie-breaks reproducible. Zero draws from entropy.
	Seed        uint64
	MoveTimeout time.Duration
	Cache       bot.MoveCache
	CacheTTL    time.Duration
}

// Series plays Games games, red moving first in each, building fresh agents
// for every game so no search state carries over.
type Series struct {
	cfg    SeriesConfig
	runner *Runner
}

func NewSeries(cfg SeriesConfig) (*Series, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("series needs at least one game, got %d", cfg.Games)
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	runner, err := NewRunner(cfg.Columns, cfg.Rows, cfg.MoveTimeout)
	if err != nil {
		return nil, err
	}
	// fail on bad agent settings before any game starts
	for _, side := range []struct {
		spec  AgentSpec
		color domain.Slot
	}{{cfg.Red, domain.Red}, {cfg.Yellow, domain.Yellow}} {
		if _, err := bot.NewAgent(side.spec.Kind, side.color, cfg.Columns, side.spec.Depth, bot.NewRandomSource()); err != nil {
			return nil, err
		}
	}
	return &Series{cfg: cfg, runner: runner}, nil
}

// Run plays the series. Games run concurrently up to Parallelism; the
// returned tally lists them in game order.
func (s *Series) Run(ctx context.Context) (*Tally, error) {
	records := make([]*GameRecord, s.cfg.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Parallelism)
	for i := 0; i < s.cfg.Games; i++ {
		g.Go(func() error {
			red, err := s.newPlayer(s.cfg.Red, domain.Red, i)
			if err != nil {
				return err
			}
			yellow, err := s.newPlayer(s.cfg.Yellow, domain.Yellow, i)
			if err != nil {
				return err
			}

			record, err := s.runner.Play(gctx, red, yellow)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			record.Index = i
			records[i] = record

			log.Info().
				Int("game", i+1).
				Int("of", s.cfg.Games).
				Str("outcome", record.Outcome.String()).
				Int("moves", record.Length()).
				Dur("duration", record.Duration).
				Msg("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tally := NewTally(s.cfg.Red.String(), s.cfg.Yellow.String())
	for _, record := range records {
		tally.Add(record)
	}
	return tally, nil
}

func (s *Series) newPlayer(spec AgentSpec, color domain.Slot, game int) (bot.Player, error) {
	player, err := bot.NewAgent(spec.Kind, color, s.cfg.Columns, spec.Depth, s.randomSource(color, game))
	if err != nil {
		return nil, err
	}
	if s.cfg.Cache != nil {
		identity := fmt.Sprintf("%s/%s/%dx%d", spec, color, s.cfg.Columns, s.cfg.Rows)
		player = bot.NewCachedChooser(player, s.cfg.Cache, identity, s.cfg.CacheTTL)
	}
	return player, nil
}

func (s *Series) randomSource(color domain.Slot, game int) bot.RandomSource {
	if s.cfg.Seed == 0 {
		return bot.NewRandomSource()
	}
	// two bits per game so red and yellow never share a stream
	return rand.New(rand.NewPCG(s.cfg.Seed, uint64(game)<<2|uint64(color)))
}
