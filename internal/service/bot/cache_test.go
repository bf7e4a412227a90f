package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

type countingPlayer struct {
	Player
	calls int
}

func (c *countingPlayer) ChooseMove(ctx context.Context, b *domain.Board) (int, error) {
	c.calls++
	return c.Player.ChooseMove(ctx, b)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	_, err := cache.Get(ctx, "a")
	require.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "a", 3, time.Minute))
	require.NoError(t, cache.Set(ctx, "b", 5, 0))
	col, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 3, col)

	now = now.Add(2 * time.Minute)
	_, err = cache.Get(ctx, "a")
	require.ErrorIs(t, err, ErrCacheMiss, "entry should have expired")

	col, err = cache.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, 5, col, "zero ttl never expires")
	require.Equal(t, 1, cache.Len())
}

func TestCachedChooser(t *testing.T) {
	ctx := context.Background()
	agent, err := NewBaselineAgent(domain.Red, 7, 3)
	require.NoError(t, err)
	inner := &countingPlayer{Player: agent}
	cache := NewMemoryCache()
	chooser := NewCachedChooser(inner, cache, "baseline/red/3", time.Hour)

	b := domain.MustParseBoard(7, 6, "..YR...")
	first, err := chooser.ChooseMove(ctx, b)
	require.NoError(t, err)
	second, err := chooser.ChooseMove(ctx, b)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, inner.calls, "second call should hit the cache")
	require.Equal(t, "baseline", chooser.Name())

	// a different position or identity misses
	other := domain.MustParseBoard(7, 6, "..RY...")
	_, err = chooser.ChooseMove(ctx, other)
	require.NoError(t, err)
	require.Equal(t, 2, inner.calls)
	require.NotEqual(t, PositionKey("baseline/red/3", b), PositionKey("baseline/red/4", b))
}

func TestCachedChooserIgnoresStaleColumn(t *testing.T) {
	ctx := context.Background()
	agent, err := NewBaselineAgent(domain.Red, 4, 2)
	require.NoError(t, err)
	inner := &countingPlayer{Player: agent}
	cache := NewMemoryCache()
	chooser := NewCachedChooser(inner, cache, "x", 0)

	b := domain.MustParseBoard(4, 4,
		"RR.Y",
		"YY.R",
		"RR.Y",
		"YY.R",
	)
	require.NoError(t, cache.Set(ctx, PositionKey("x", b), 0, 0))
	col, err := chooser.ChooseMove(ctx, b)
	require.NoError(t, err)
	require.Equal(t, 2, col)
	require.Equal(t, 1, inner.calls)
}
