package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

const (
	ErrInvalidDepth  = domain.Error("search depth must be positive")
	ErrBoardMismatch = domain.Error("board width does not match the agent")
	ErrUnknownAgent  = domain.Error("unknown agent kind")
)

// MoveChooser picks a column for its colour on a board snapshot. It never
// modifies the board it is given.
type MoveChooser interface {
	ChooseMove(ctx context.Context, b *domain.Board) (int, error)
}

// Agent plays by minimax search on a private copy of the board.
type Agent struct {
	name          string
	color         domain.Slot
	columns       int
	order         []int
	searcher      *Searcher
	centerOpening bool
}

// NewBaselineAgent searches with the window evaluator, center-out move order
// and a stable tie-break, so it always plays the same move in a position.
func NewBaselineAgent(color domain.Slot, columns, depth int) (*Agent, error) {
	if err := checkAgentParams(color, columns, depth); err != nil {
		return nil, err
	}
	order := CenterOutOrder(columns)
	searcher, err := NewSearcher(color, WindowEvaluator{},
		WithDepth(depth),
		WithMoveOrder(order),
		WithWinScore(DepthAdjustedWin),
	)
	if err != nil {
		return nil, err
	}
	return &Agent{
		name:     KindBaseline,
		color:    color,
		columns:  columns,
		order:    order,
		searcher: searcher,
	}, nil
}

// NewEnhancedAgent searches with the run-length evaluator in left-to-right
// order and breaks ties between equal root moves with src. While the center
// column holds at most one disc it plays there without searching.
func NewEnhancedAgent(color domain.Slot, columns, depth int, src RandomSource) (*Agent, error) {
	if err := checkAgentParams(color, columns, depth); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewRandomSource()
	}
	order := NaturalOrder(columns)
	searcher, err := NewSearcher(color, &RunLengthEvaluator{},
		WithDepth(depth),
		WithMoveOrder(order),
		WithWinScore(InfiniteWin),
		WithRandomTieBreak(src),
	)
	if err != nil {
		return nil, err
	}
	return &Agent{
		name:          KindEnhanced,
		color:         color,
		columns:       columns,
		order:         order,
		searcher:      searcher,
		centerOpening: true,
	}, nil
}

func checkAgentParams(color domain.Slot, columns, depth int) error {
	if !color.IsColor() {
		return domain.ErrInvalidColor
	}
	if columns < domain.MinDimension {
		return fmt.Errorf("%d columns: %w", columns, domain.ErrInvalidDimension)
	}
	if depth <= 0 {
		return fmt.Errorf("depth %d: %w", depth, ErrInvalidDepth)
	}
	return nil
}

func (a *Agent) Name() string       { return a.name }
func (a *Agent) Color() domain.Slot { return a.color }
func (a *Agent) Depth() int         { return a.searcher.Depth() }

func (a *Agent) String() string {
	return fmt.Sprintf("%s(%s, depth %d)", a.name, a.color, a.searcher.Depth())
}

// ChooseMove returns a non-full column for the agent's colour. When the
// search is cut short by ctx the agent still answers with its fallback move.
func (a *Agent) ChooseMove(ctx context.Context, b *domain.Board) (int, error) {
	if b.Columns() != a.columns {
		return -1, fmt.Errorf("board has %d columns, agent %d: %w", b.Columns(), a.columns, ErrBoardMismatch)
	}
	if b.IsFull() {
		return -1, domain.ErrNoLegalMove
	}

	if a.centerOpening {
		center := a.columns / 2
		if b.TopEmptyRow(center) >= b.Rows()-2 {
			return center, nil
		}
	}

	work := b.Clone()
	if col, ok := completesLine(work, a.order, a.color); ok {
		log.Debug().Str("agent", a.name).Int("column", col).Msg("immediate win")
		return col, nil
	}

	result, err := a.searcher.Search(ctx, work)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return -1, err
		}
		log.Warn().Err(err).Str("agent", a.name).Int("nodes", result.Nodes).
			Msg("search interrupted, using fallback move")
		return a.fallback(b)
	}

	log.Debug().
		Str("agent", a.name).
		Str("color", a.color.String()).
		Int("depth", a.searcher.Depth()).
		Int("column", result.Column).
		Float64("score", result.Score).
		Int("nodes", result.Nodes).
		Int("leaves", result.Leaves).
		Int("cutoffs", result.Cutoffs).
		Msg("search finished")

	if result.Column == -1 || b.IsColumnFull(result.Column) {
		log.Warn().Str("agent", a.name).Msg("search returned no column, using fallback move")
		return a.fallback(b)
	}
	return result.Column, nil
}

// fallback scans the columns from the right and keeps the last open one it
// sees, which is the lowest open index.
func (a *Agent) fallback(b *domain.Board) (int, error) {
	choice := -1
	for col := b.Columns() - 1; col >= 0; col-- {
		if !b.IsColumnFull(col) {
			choice = col
		}
	}
	if choice == -1 {
		return -1, domain.ErrNoLegalMove
	}
	return choice, nil
}
