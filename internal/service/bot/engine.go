package bot

import (
	"fmt"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

const (
	KindBaseline = "baseline"
	KindEnhanced = "enhanced"
	KindGreedy   = "greedy"
)

// Kinds lists the agent kinds NewAgent understands.
var Kinds = []string{KindBaseline, KindEnhanced, KindGreedy}

// Player is a MoveChooser that knows who it is.
type Player interface {
	MoveChooser
	Name() string
	Color() domain.Slot
}

// NewAgent builds an agent of the given kind. depth is ignored by the
// greedy agent; src only feeds the agents that draw random numbers.
func NewAgent(kind string, color domain.Slot, columns, depth int, src RandomSource) (Player, error) {
	var (
		player Player
		err    error
	)
	switch kind {
	case KindBaseline:
		player, err = NewBaselineAgent(color, columns, depth)
	case KindEnhanced:
		player, err = NewEnhancedAgent(color, columns, depth, src)
	case KindGreedy:
		player, err = NewGreedyAgent(color, src)
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownAgent)
	}
	if err != nil {
		return nil, fmt.Errorf("new %s agent: %w", kind, err)
	}
	return player, nil
}
