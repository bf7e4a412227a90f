package domain

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Board is a columns x rows connect-four grid. Row 0 is the top row and
// rows-1 the bottom one; discs fall towards higher row indices.
//
// The board can only change through Place and Unplace, which keeps every
// column's filled slots contiguous from the bottom.
type Board struct {
	columns int
	rows    int
	slots   [][]Slot // slots[column][row]
	top     []int    // lowest empty row per column, FullColumn when full
}

func NewBoard(columns, rows int) (*Board, error) {
	if columns < MinDimension || rows < MinDimension {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, columns, rows)
	}

	b := &Board{
		columns: columns,
		rows:    rows,
		slots:   make([][]Slot, columns),
		top:     make([]int, columns),
	}
	for c := range b.slots {
		b.slots[c] = make([]Slot, rows)
		b.top[c] = rows - 1
	}
	return b, nil
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	clone := &Board{
		columns: b.columns,
		rows:    b.rows,
		slots:   make([][]Slot, b.columns),
		top:     make([]int, b.columns),
	}
	for c := range b.slots {
		clone.slots[c] = make([]Slot, b.rows)
		copy(clone.slots[c], b.slots[c])
	}
	copy(clone.top, b.top)
	return clone
}

func (b *Board) Columns() int { return b.columns }
func (b *Board) Rows() int    { return b.rows }

// Slot returns the content of (column, row). Out-of-range cells read as Empty.
func (b *Board) Slot(column, row int) Slot {
	if !b.inBounds(row, column) {
		return Empty
	}
	return b.slots[column][row]
}

// Cell is Slot with row-major arguments, matching how windows are scanned.
func (b *Board) Cell(row, column int) Slot {
	return b.Slot(column, row)
}

func (b *Board) inBounds(row, column int) bool {
	return row >= 0 && row < b.rows && column >= 0 && column < b.columns
}

// TopEmptyRow returns the row a disc dropped into column would land on, or
// FullColumn. The column is scanned from the bottom up.
func (b *Board) TopEmptyRow(column int) int {
	if column < 0 || column >= b.columns {
		return FullColumn
	}
	for row := b.rows - 1; row >= 0; row-- {
		if b.slots[column][row] == Empty {
			return row
		}
	}
	return FullColumn
}

// IsColumnFull also reports true for columns outside the board.
func (b *Board) IsColumnFull(column int) bool {
	if column < 0 || column >= b.columns {
		return true
	}
	return b.top[column] == FullColumn
}

// Height is the number of discs in column.
func (b *Board) Height(column int) int {
	return b.rows - 1 - b.top[column]
}

// Place drops a disc of color into column and returns the row it landed on.
func (b *Board) Place(column int, color Slot) (int, error) {
	if column < 0 || column >= b.columns {
		return -1, fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}
	if !color.IsColor() {
		return -1, ErrInvalidColor
	}
	row := b.top[column]
	if row == FullColumn {
		return -1, fmt.Errorf("%w: %d", ErrColumnFull, column)
	}

	b.slots[column][row] = color
	b.top[column]--
	return row, nil
}

// Unplace clears the most recently placed disc of column.
func (b *Board) Unplace(column int) error {
	if column < 0 || column >= b.columns {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}
	row := b.top[column] + 1
	if row >= b.rows {
		return fmt.Errorf("%w: %d", ErrColumnEmpty, column)
	}

	b.slots[column][row] = Empty
	b.top[column] = row
	return nil
}

func (b *Board) IsFull() bool {
	for c := 0; c < b.columns; c++ {
		if b.top[c] != FullColumn {
			return false
		}
	}
	return true
}

// LegalColumns lists the non-full columns in ascending order.
func (b *Board) LegalColumns() []int {
	return lo.Filter(lo.Range(b.columns), func(c int, _ int) bool {
		return !b.IsColumnFull(c)
	})
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.columns != other.columns || b.rows != other.rows {
		return false
	}
	for c := range b.slots {
		if b.top[c] != other.top[c] {
			return false
		}
		for r := range b.slots[c] {
			if b.slots[c][r] != other.slots[c][r] {
				return false
			}
		}
	}
	return true
}

// Encode returns a stable byte encoding: the dimensions as uvarints followed
// by every slot in column-major order.
func (b *Board) Encode() []byte {
	out := make([]byte, 0, 2*binary.MaxVarintLen64+b.columns*b.rows)
	out = binary.AppendUvarint(out, uint64(b.columns))
	out = binary.AppendUvarint(out, uint64(b.rows))
	for c := range b.slots {
		for r := range b.slots[c] {
			out = append(out, byte(b.slots[c][r]))
		}
	}
	return out
}

// String renders the board top row first with a column index footer.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			sb.WriteRune(b.slots[c][r].Rune())
		}
		sb.WriteByte('\n')
	}
	for c := 0; c < b.columns; c++ {
		sb.WriteString(fmt.Sprint(c % 10))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// ParseBoard builds a board from row strings given top row first, using
// 'R', 'Y' and '.' (or ' '). Discs must obey gravity.
func ParseBoard(columns, rows int, lines ...string) (*Board, error) {
	b, err := NewBoard(columns, rows)
	if err != nil {
		return nil, err
	}
	if len(lines) > rows {
		return nil, fmt.Errorf("%w: %d rows given for a %d row board", ErrInvalidDimension, len(lines), rows)
	}

	// pad missing top rows
	padded := make([]string, rows-len(lines), rows)
	padded = append(padded, lines...)

	for c := 0; c < columns; c++ {
		for r := rows - 1; r >= 0; r-- {
			line := padded[r]
			if c >= len(line) {
				continue
			}
			var s Slot
			switch line[c] {
			case 'R', 'r':
				s = Red
			case 'Y', 'y':
				s = Yellow
			case '.', ' ', '-':
				continue
			default:
				return nil, fmt.Errorf("unknown slot %q at row %d column %d", line[c], r, c)
			}
			if b.TopEmptyRow(c) != r {
				return nil, fmt.Errorf("%w: row %d column %d", ErrFloatingPiece, r, c)
			}
			if _, err := b.Place(c, s); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures known to be valid.
func MustParseBoard(columns, rows int, lines ...string) *Board {
	b, err := ParseBoard(columns, rows, lines...)
	if err != nil {
		panic(err)
	}
	return b
}
