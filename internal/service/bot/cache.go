package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

const ErrCacheMiss = domain.Error("move not cached")

// MoveCache stores chosen columns by position key.
type MoveCache interface {
	Get(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, column int, ttl time.Duration) error
}

// PositionKey identifies b for the agent described by identity.
func PositionKey(identity string, b *domain.Board) string {
	return fmt.Sprintf("move:%s:%016x", identity, xxhash.Sum64(b.Encode()))
}

// CachedChooser answers from cache when it can and otherwise asks the
// wrapped player and remembers the answer. Wrapping an agent with a random
// tie-break pins its first answer in each position.
type CachedChooser struct {
	Player
	cache    MoveCache
	identity string
	ttl      time.Duration
}

func NewCachedChooser(player Player, cache MoveCache, identity string, ttl time.Duration) *CachedChooser {
	return &CachedChooser{
		Player:   player,
		cache:    cache,
		identity: identity,
		ttl:      ttl,
	}
}

func (c *CachedChooser) ChooseMove(ctx context.Context, b *domain.Board) (int, error) {
	key := PositionKey(c.identity, b)

	col, err := c.cache.Get(ctx, key)
	switch {
	case err == nil && col >= 0 && col < b.Columns() && !b.IsColumnFull(col):
		log.Debug().Str("key", key).Int("column", col).Msg("move cache hit")
		return col, nil
	case err != nil && !errors.Is(err, ErrCacheMiss):
		log.Warn().Err(err).Str("key", key).Msg("move cache read failed")
	}

	col, err = c.Player.ChooseMove(ctx, b)
	if err != nil {
		return col, err
	}
	// an interrupted search answers with its fallback, which is not worth keeping
	if ctx.Err() == nil {
		if err := c.cache.Set(ctx, key, col, c.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("move cache write failed")
		}
	}
	return col, nil
}

// MemoryCache is an in-process MoveCache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	column  int
	expires time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return -1, ErrCacheMiss
	}
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		delete(m.entries, key)
		return -1, ErrCacheMiss
	}
	return entry.column, nil
}

// Set stores column under key. A zero ttl keeps it forever.
func (m *MemoryCache) Set(_ context.Context, key string, column int, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{column: column}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
