package bot

import (
	"math"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

type cell struct {
	row, col int
}

// RunLengthEvaluator walks every line of the board keeping a sliding count
// of a colour's discs and at most two gap cells. Each time discs plus gaps
// span four cells it records a group needing one more disc (one gap) or two
// (otherwise). A colour scores one² + two^1.5, so several overlapping
// threats are worth more than the same number spread thin.
//
// The evaluator caches the line geometry of the last board size it saw and
// must not be shared between goroutines.
type RunLengthEvaluator struct {
	columns, rows int
	lines         [][]cell
}

func (*RunLengthEvaluator) Name() string { return "runlength" }

// Evaluate returns self's score minus the opponent's.
func (e *RunLengthEvaluator) Evaluate(b *domain.Board, self domain.Slot) float64 {
	return e.Score(b, self) - e.Score(b, self.Opponent())
}

// Score is the one² + two^1.5 tally for target alone.
func (e *RunLengthEvaluator) Score(b *domain.Board, target domain.Slot) float64 {
	one, two := 0, 0
	for _, line := range e.geometry(b) {
		o, t := scanLine(b, line, target)
		one += o
		two += t
	}
	return float64(one*one) + math.Pow(float64(two), 1.5)
}

func scanLine(b *domain.Board, line []cell, target domain.Slot) (one, two int) {
	blank, found := 0, 0
	for i, p := range line {
		switch b.Cell(p.row, p.col) {
		case target:
			found++
		case domain.Empty:
			blank++
			if blank == 3 {
				blank--
			}
		default:
			blank, found = 0, 0
			continue
		}

		if found+blank == 4 {
			if blank == 1 {
				one++
			} else {
				two++
			}
			// slide the window past the cell four back
			back := line[i-3]
			if b.Cell(back.row, back.col) == domain.Empty {
				blank--
			} else {
				found--
			}
		}
	}
	return one, two
}

func (e *RunLengthEvaluator) geometry(b *domain.Board) [][]cell {
	if e.lines != nil && e.columns == b.Columns() && e.rows == b.Rows() {
		return e.lines
	}
	e.columns, e.rows = b.Columns(), b.Rows()
	e.lines = lineFamilies(e.columns, e.rows)
	return e.lines
}

// lineFamilies lists rows, columns, and both diagonal directions, each
// diagonal direction split into lines starting on the left edge and lines
// starting on the top or bottom edge.
func lineFamilies(cols, rows int) [][]cell {
	var lines [][]cell

	for r := 0; r < rows; r++ {
		line := make([]cell, 0, cols)
		for c := 0; c < cols; c++ {
			line = append(line, cell{r, c})
		}
		lines = append(lines, line)
	}

	for c := 0; c < cols; c++ {
		line := make([]cell, 0, rows)
		for r := 0; r < rows; r++ {
			line = append(line, cell{r, c})
		}
		lines = append(lines, line)
	}

	// falling diagonals from the left edge
	for r := 0; r < rows-3; r++ {
		var line []cell
		for k := 0; k < cols && r+k < rows; k++ {
			line = append(line, cell{r + k, k})
		}
		lines = append(lines, line)
	}

	// falling diagonals from the top edge
	for c := 1; c < cols-3; c++ {
		var line []cell
		for k := 0; k < rows && k+c < cols; k++ {
			line = append(line, cell{k, k + c})
		}
		lines = append(lines, line)
	}

	// rising diagonals from the left edge
	for r := rows - 1; r >= 3; r-- {
		var line []cell
		for k := 0; k < cols && r-k >= 0; k++ {
			line = append(line, cell{r - k, k})
		}
		lines = append(lines, line)
	}

	// rising diagonals from the bottom edge
	for c := 1; c < cols-3; c++ {
		var line []cell
		for r := rows - 1; r >= 0 && c+rows-1-r < cols; r-- {
			line = append(line, cell{r, c + rows - 1 - r})
		}
		lines = append(lines, line)
	}

	return lines
}
