package bot

import (
	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

// Evaluator scores a non-terminal position from self's point of view. It is
// only consulted at the depth limit; wins and draws are scored by the search.
type Evaluator interface {
	Name() string
	Evaluate(b *domain.Board, self domain.Slot) float64
}

const (
	// Window scores (from highest to lowest)
	SCORE_FOUR_WINDOW  = 1000000 // four of a colour in one window
	SCORE_THREE_OPEN   = 5000    // three plus one empty
	SCORE_TWO_OF_THREE = 2500    // two plus one empty in a three-cell window
	SCORE_TWO_OPEN     = 2000    // two plus two empties
)

// WindowEvaluator sums fixed scores over short windows of the board.
//
// Only part of the board is scanned: every horizontal four-window, one
// vertical four-window per open column (starting at its lowest empty slot,
// so only threats reachable from the top count), and three-cell diagonal
// windows in the regions below. The regions were tuned on 7x6 boards and are
// kept as-is on other sizes; cells falling outside the board drop the window.
type WindowEvaluator struct{}

func (WindowEvaluator) Name() string { return "window" }

func (e WindowEvaluator) Evaluate(b *domain.Board, self domain.Slot) float64 {
	rows, cols := b.Rows(), b.Columns()
	score := 0

	// Evaluates vertical threats
	for c := 0; c < cols; c++ {
		top := b.TopEmptyRow(c)
		if top == domain.FullColumn || top >= rows-3 {
			continue
		}
		score += e.window(b, self, top, c, 1, 0, 4)
	}

	// Evaluates horizontal threats
	for r := rows - 1; r >= 0; r-- {
		for c := 0; c < cols-3; c++ {
			score += e.window(b, self, r, c, 0, 1, 4)
		}
	}

	// Evaluates upper upward diagonals and lower downward diagonals
	for i := 2; i < rows; i++ {
		for j := 0; j < i-1; j++ {
			score += e.window(b, self, i, j, -1, 1, 3)
		}
		for j := rows - 1; j >= rows-i+2; j-- {
			score += e.window(b, self, j, i, -1, -1, 3)
		}
	}

	// Evaluates the lower upward diagonals and upper downward diagonals
	for i := 1; i < cols; i++ {
		for j := rows - i; j > 1; j-- {
			score += e.window(b, self, j, i, -1, 1, 3)
		}
		for j := 0; j < rows-i-1; j++ {
			score += e.window(b, self, j, i, 1, 1, 3)
		}
	}

	return float64(score)
}

// window scores the n cells starting at (row, col) stepping by (dRow, dCol).
func (WindowEvaluator) window(b *domain.Board, self domain.Slot, row, col, dRow, dCol, n int) int {
	var cells [4]domain.Slot
	for i := 0; i < n; i++ {
		r, c := row+dRow*i, col+dCol*i
		if r < 0 || r >= b.Rows() || c < 0 || c >= b.Columns() {
			return 0
		}
		cells[i] = b.Cell(r, c)
	}
	return scoreWindow(cells[:n], self)
}

// scoreWindow applies the window table. Windows holding both colours score 0.
func scoreWindow(window []domain.Slot, self domain.Slot) int {
	own, other, empty := 0, 0, 0
	for _, s := range window {
		switch s {
		case domain.Empty:
			empty++
		case self:
			own++
		default:
			other++
		}
	}

	switch {
	case empty == len(window):
		return 0
	case own == 4:
		return SCORE_FOUR_WINDOW
	case other == 4:
		return -SCORE_FOUR_WINDOW
	case own > 0 && other > 0:
		return 0
	case own == 3 && empty == 1:
		return SCORE_THREE_OPEN
	case other == 3 && empty == 1:
		return -SCORE_THREE_OPEN
	case own == 2 && empty == 1:
		return SCORE_TWO_OF_THREE
	case other == 2 && empty == 1:
		return -SCORE_TWO_OF_THREE
	case own == 2 && empty == 2:
		return SCORE_TWO_OPEN
	case other == 2 && empty == 2:
		return -SCORE_TWO_OPEN
	}
	return 0
}
