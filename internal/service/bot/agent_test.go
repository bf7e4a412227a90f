package bot

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

func seeded(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, 1))
}

func newAgents(t *testing.T, color domain.Slot, columns, depth int) []*Agent {
	t.Helper()
	baseline, err := NewBaselineAgent(color, columns, depth)
	require.NoError(t, err)
	enhanced, err := NewEnhancedAgent(color, columns, depth, seeded(42))
	require.NoError(t, err)
	return []*Agent{baseline, enhanced}
}

func TestEnhancedAgentOpensInTheCenter(t *testing.T) {
	agent, err := NewEnhancedAgent(domain.Yellow, 7, 6, seeded(3))
	require.NoError(t, err)

	b, err := domain.NewBoard(7, 6)
	require.NoError(t, err)
	col, err := agent.ChooseMove(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, 3, col)

	// still the center with one disc in it
	_, err = b.Place(3, domain.Red)
	require.NoError(t, err)
	col, err = agent.ChooseMove(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, 3, col)
}

func TestEnhancedOpeningComesBeforeTheWin(t *testing.T) {
	agent, err := NewEnhancedAgent(domain.Yellow, 7, 6, seeded(3))
	require.NoError(t, err)

	// column 0 wins, but the center is still open
	b := domain.MustParseBoard(7, 6,
		"Y......",
		"Y.....R",
		"Y.....R",
	)
	col, err := agent.ChooseMove(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, 3, col)

	baseline, err := NewBaselineAgent(domain.Yellow, 7, 3)
	require.NoError(t, err)
	col, err = baseline.ChooseMove(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, 0, col)
}

func TestAgentsTakeTheWin(t *testing.T) {
	b := domain.MustParseBoard(7, 6,
		"...Y...",
		"YRRR.YY",
	)
	for _, agent := range newAgents(t, domain.Red, 7, 3) {
		t.Run(agent.Name(), func(t *testing.T) {
			col, err := agent.ChooseMove(context.Background(), b)
			require.NoError(t, err)
			require.Equal(t, 4, col)
		})
	}
}

func TestAgentsBlock(t *testing.T) {
	b := domain.MustParseBoard(7, 6,
		"Y......",
		"Y..R...",
		"Y..RR..",
	)
	for depth := 2; depth <= 4; depth++ {
		for _, agent := range newAgents(t, domain.Red, 7, depth) {
			t.Run(agent.Name(), func(t *testing.T) {
				col, err := agent.ChooseMove(context.Background(), b)
				require.NoError(t, err)
				require.Equal(t, 0, col, "depth %d", depth)
			})
		}
	}
}

func TestAgentLeavesBoardUntouched(t *testing.T) {
	b := domain.MustParseBoard(7, 6,
		"...R...",
		"..YY...",
		"..RRY..",
		".YRYR..",
	)
	before := b.Clone()
	for _, agent := range newAgents(t, domain.Yellow, 7, 4) {
		_, err := agent.ChooseMove(context.Background(), b)
		require.NoError(t, err)
		require.True(t, before.Equal(b), "%s changed the board", agent)
	}
}

func TestAgentsNeverPlayAFullColumn(t *testing.T) {
	for seed := uint64(1); seed <= 4; seed++ {
		red, err := NewBaselineAgent(domain.Red, 5, 3)
		require.NoError(t, err)
		yellow, err := NewEnhancedAgent(domain.Yellow, 5, 3, seeded(seed))
		require.NoError(t, err)
		greedy, err := NewGreedyAgent(domain.Red, seeded(seed))
		require.NoError(t, err)

		// alternate the opponents of the enhanced agent between games
		var first Player = red
		if seed%2 == 0 {
			first = greedy
		}
		players := map[domain.Slot]Player{domain.Red: first, domain.Yellow: yellow}

		g, err := domain.NewGame(5, 4, domain.Red)
		require.NoError(t, err)
		for !g.IsFinished() {
			col, err := players[g.CurrentPlayer].ChooseMove(context.Background(), g.Board)
			require.NoError(t, err)
			require.False(t, g.Board.IsColumnFull(col), "seed %d: column %d is full", seed, col)
			_, err = g.MakeMove(g.CurrentPlayer, col)
			require.NoError(t, err)
		}
	}
}

func TestAgentErrors(t *testing.T) {
	t.Run("full board", func(t *testing.T) {
		b := domain.MustParseBoard(4, 4,
			"RRYY",
			"YYRR",
			"RRYY",
			"YYRR",
		)
		for _, agent := range newAgents(t, domain.Red, 4, 2) {
			_, err := agent.ChooseMove(context.Background(), b)
			require.ErrorIs(t, err, domain.ErrNoLegalMove)
		}
	})

	t.Run("board width", func(t *testing.T) {
		b, err := domain.NewBoard(6, 6)
		require.NoError(t, err)
		for _, agent := range newAgents(t, domain.Red, 7, 2) {
			_, err := agent.ChooseMove(context.Background(), b)
			require.ErrorIs(t, err, ErrBoardMismatch)
		}
	})

	t.Run("construction", func(t *testing.T) {
		_, err := NewBaselineAgent(domain.Red, 7, 0)
		require.ErrorIs(t, err, ErrInvalidDepth)
		_, err = NewEnhancedAgent(domain.Empty, 7, 3, nil)
		require.ErrorIs(t, err, domain.ErrInvalidColor)
		_, err = NewBaselineAgent(domain.Red, 3, 3)
		require.ErrorIs(t, err, domain.ErrInvalidDimension)
	})
}

func TestAgentFallsBackWhenInterrupted(t *testing.T) {
	b := domain.MustParseBoard(7, 6,
		"R.....Y",
		"Y.....R",
	)
	agent, err := NewBaselineAgent(domain.Red, 7, 6)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	col, err := agent.ChooseMove(ctx, b)
	require.NoError(t, err)
	require.Equal(t, 0, col, "fallback keeps the lowest open column")
}

func TestAgentFallback(t *testing.T) {
	b := domain.MustParseBoard(5, 4,
		"RY...",
		"YR...",
		"RY...",
		"YR...",
	)
	agent, err := NewBaselineAgent(domain.Red, 5, 2)
	require.NoError(t, err)
	col, err := agent.fallback(b)
	require.NoError(t, err)
	require.Equal(t, 2, col)
}

func TestNewAgent(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind, func(t *testing.T) {
			p, err := NewAgent(kind, domain.Yellow, 7, 3, seeded(9))
			require.NoError(t, err)
			require.Equal(t, kind, p.Name())
			require.Equal(t, domain.Yellow, p.Color())
		})
	}

	_, err := NewAgent("oracle", domain.Red, 7, 3, nil)
	require.ErrorIs(t, err, ErrUnknownAgent)

	p, err := NewAgent(KindBaseline, domain.Red, 7, 0, nil)
	require.ErrorIs(t, err, ErrInvalidDepth)
	require.Nil(t, p)
}

func TestGreedyAgent(t *testing.T) {
	g, err := NewGreedyAgent(domain.Yellow, seeded(5))
	require.NoError(t, err)

	t.Run("wins", func(t *testing.T) {
		// red threatens the same column, winning comes first
		b := domain.MustParseBoard(7, 6, "YYY.RRR")
		col, err := g.ChooseMove(context.Background(), b)
		require.NoError(t, err)
		require.Equal(t, 3, col)
	})

	t.Run("blocks", func(t *testing.T) {
		b := domain.MustParseBoard(7, 6,
			"Y......",
			"Y......",
			"RRR.Y..",
		)
		col, err := g.ChooseMove(context.Background(), b)
		require.NoError(t, err)
		require.Equal(t, 3, col)
	})

	t.Run("plays a legal column", func(t *testing.T) {
		b := domain.MustParseBoard(4, 4,
			"RR.Y",
			"YY.R",
			"RR.Y",
			"YY.R",
		)
		for i := 0; i < 10; i++ {
			col, err := g.ChooseMove(context.Background(), b)
			require.NoError(t, err)
			require.Equal(t, 2, col)
		}
	})
}
