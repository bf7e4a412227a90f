package bot

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

var searchFixtures = map[string][]string{
	"empty": nil,
	"opening": {
		"...Y...",
		"..RR...",
	},
	"middle game": {
		"...R...",
		"..YY...",
		"..RRY..",
		".YRYR..",
	},
	"crowded": {
		"Y.RY.R.",
		"R.YR.Y.",
		"Y.RY.R.",
		"RYYRRYR",
	},
}

func TestSearchPrunedMatchesFullTree(t *testing.T) {
	for name, lines := range searchFixtures {
		for depth := 1; depth <= 4; depth++ {
			t.Run(name, func(t *testing.T) {
				b := domain.MustParseBoard(7, 6, lines...)

				for _, eval := range []Evaluator{WindowEvaluator{}, &RunLengthEvaluator{}} {
					pruned, err := NewSearcher(domain.Red, eval, WithDepth(depth), WithMoveOrder(CenterOutOrder(7)))
					require.NoError(t, err)
					full, err := NewSearcher(domain.Red, eval, WithDepth(depth), WithMoveOrder(CenterOutOrder(7)), WithPruning(false))
					require.NoError(t, err)

					a, err := pruned.Search(context.Background(), b)
					require.NoError(t, err)
					f, err := full.Search(context.Background(), b)
					require.NoError(t, err)

					require.Equal(t, f.Column, a.Column, "%s depth %d", eval.Name(), depth)
					require.LessOrEqual(t, a.Nodes, f.Nodes)
					require.Zero(t, f.Cutoffs)
				}
			})
		}
	}
}

func TestSearchPrunedMatchesFullTreeWithRandomTies(t *testing.T) {
	for name, lines := range searchFixtures {
		t.Run(name, func(t *testing.T) {
			b := domain.MustParseBoard(7, 6, lines...)
			for seed := uint64(1); seed <= 5; seed++ {
				pruned, err := NewSearcher(domain.Yellow, &RunLengthEvaluator{},
					WithDepth(3), WithWinScore(InfiniteWin),
					WithRandomTieBreak(rand.New(rand.NewPCG(seed, 7))))
				require.NoError(t, err)
				full, err := NewSearcher(domain.Yellow, &RunLengthEvaluator{},
					WithDepth(3), WithWinScore(InfiniteWin), WithPruning(false),
					WithRandomTieBreak(rand.New(rand.NewPCG(seed, 7))))
				require.NoError(t, err)

				a, err := pruned.Search(context.Background(), b)
				require.NoError(t, err)
				f, err := full.Search(context.Background(), b)
				require.NoError(t, err)
				require.Equal(t, f.Column, a.Column, "seed %d", seed)
				require.Equal(t, f.Score, a.Score, "root scores are exact with random ties")
			}
		})
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	for name, lines := range searchFixtures {
		t.Run(name, func(t *testing.T) {
			b := domain.MustParseBoard(7, 6, lines...)
			before := b.Clone()

			s, err := NewSearcher(domain.Red, WindowEvaluator{}, WithDepth(4))
			require.NoError(t, err)
			_, err = s.Search(context.Background(), b)
			require.NoError(t, err)
			require.True(t, before.Equal(b), "board changed:\n%s\nwant\n%s", b, before)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err = s.Search(ctx, b)
			require.ErrorIs(t, err, context.Canceled)
			require.True(t, before.Equal(b), "board changed after cancellation")
		})
	}
}

func TestSearchWinsAndBlocks(t *testing.T) {
	t.Run("takes the win", func(t *testing.T) {
		b := domain.MustParseBoard(7, 6,
			"YYY....",
			"RRR....",
		)
		for depth := 1; depth <= 4; depth++ {
			s, err := NewSearcher(domain.Red, WindowEvaluator{}, WithDepth(depth), WithMoveOrder(CenterOutOrder(7)))
			require.NoError(t, err)
			res, err := s.Search(context.Background(), b)
			require.NoError(t, err)
			require.Equal(t, 3, res.Column, "depth %d", depth)
			require.Equal(t, DepthAdjustedWin(depth-1), res.Score)
		}
	})

	t.Run("blocks a vertical threat", func(t *testing.T) {
		b := domain.MustParseBoard(7, 6,
			"Y......",
			"Y..R...",
			"Y..RR..",
		)
		for depth := 2; depth <= 4; depth++ {
			s, err := NewSearcher(domain.Red, &RunLengthEvaluator{}, WithDepth(depth), WithWinScore(InfiniteWin))
			require.NoError(t, err)
			res, err := s.Search(context.Background(), b)
			require.NoError(t, err)
			require.Equal(t, 0, res.Column, "depth %d", depth)
			require.False(t, math.IsInf(res.Score, -1))
		}
	})

	t.Run("wins instead of blocking", func(t *testing.T) {
		// yellow threatens column 6, red completes its row first
		b := domain.MustParseBoard(7, 6,
			"Y.....Y",
			"Y.....Y",
			"RRR...Y",
		)
		s, err := NewSearcher(domain.Red, WindowEvaluator{}, WithDepth(5))
		require.NoError(t, err)
		res, err := s.Search(context.Background(), b)
		require.NoError(t, err)
		require.Equal(t, 3, res.Column)
	})
}

func TestSearchSkipsFullColumns(t *testing.T) {
	b := domain.MustParseBoard(5, 4,
		"RR.YY",
		"YY.RR",
		"RR.YY",
		"YY.RR",
	)
	s, err := NewSearcher(domain.Red, WindowEvaluator{}, WithDepth(3), WithMoveOrder(CenterOutOrder(5)))
	require.NoError(t, err)
	res, err := s.Search(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, 2, res.Column, "only column 2 is open")

	full := domain.MustParseBoard(4, 4,
		"RRYY",
		"YYRR",
		"RRYY",
		"YYRR",
	)
	s, err = NewSearcher(domain.Red, WindowEvaluator{}, WithDepth(3))
	require.NoError(t, err)
	res, err = s.Search(context.Background(), full)
	require.NoError(t, err)
	require.Equal(t, -1, res.Column)
}

func TestNewSearcherValidates(t *testing.T) {
	_, err := NewSearcher(domain.Empty, WindowEvaluator{})
	require.ErrorIs(t, err, domain.ErrInvalidColor)

	_, err = NewSearcher(domain.Red, nil)
	require.Error(t, err)

	s, err := NewSearcher(domain.Red, WindowEvaluator{}, WithDepth(0))
	require.NoError(t, err)
	require.Equal(t, 1, s.Depth(), "non-positive depths keep the default")
}
