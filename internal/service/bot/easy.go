package bot

import (
	"context"
	"fmt"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

// GreedyAgent looks one move ahead: it wins if it can, blocks an immediate
// loss if it must and otherwise plays a random legal column.
type GreedyAgent struct {
	color domain.Slot
	src   RandomSource
}

func NewGreedyAgent(color domain.Slot, src RandomSource) (*GreedyAgent, error) {
	if !color.IsColor() {
		return nil, domain.ErrInvalidColor
	}
	if src == nil {
		src = NewRandomSource()
	}
	return &GreedyAgent{color: color, src: src}, nil
}

func (g *GreedyAgent) Name() string       { return KindGreedy }
func (g *GreedyAgent) Color() domain.Slot { return g.color }

func (g *GreedyAgent) ChooseMove(_ context.Context, b *domain.Board) (int, error) {
	validColumns := b.LegalColumns()
	if len(validColumns) == 0 {
		return -1, domain.ErrNoLegalMove
	}

	work := b.Clone()
	if col, ok := completesLine(work, validColumns, g.color); ok {
		return col, nil
	}
	if col, ok := completesLine(work, validColumns, g.color.Opponent()); ok {
		return col, nil
	}

	return validColumns[g.src.IntN(len(validColumns))], nil
}

func completesLine(work *domain.Board, columns []int, color domain.Slot) (int, bool) {
	for _, col := range columns {
		row, err := work.Place(col, color)
		if err != nil {
			continue
		}
		won := work.CheckWin(row, col, color)
		if err := work.Unplace(col); err != nil {
			panic(fmt.Sprintf("lost track of column %d: %v", col, err))
		}
		if won {
			return col, true
		}
	}
	return -1, false
}
