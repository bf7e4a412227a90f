package render

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
)

// Renderer draws boards for a terminal, in colour when enabled.
type Renderer struct {
	au aurora.Aurora
}

func New(colors bool) *Renderer {
	return &Renderer{au: aurora.NewAurora(colors)}
}

// Board draws b top row first between bars, with column numbers underneath.
// The disc in column last (if any) is drawn bold; pass -1 for none.
func (r *Renderer) Board(b *domain.Board, last int) string {
	var sb strings.Builder
	lastRow := -1
	if last >= 0 && last < b.Columns() && b.Height(last) > 0 {
		lastRow = b.TopEmptyRow(last) + 1
	}

	for row := 0; row < b.Rows(); row++ {
		sb.WriteString(fmt.Sprint(r.au.Blue("|")))
		for col := 0; col < b.Columns(); col++ {
			sb.WriteByte(' ')
			sb.WriteString(r.slot(b.Cell(row, col), row == lastRow && col == last))
		}
		sb.WriteString(" ")
		sb.WriteString(fmt.Sprint(r.au.Blue("|")))
		sb.WriteByte('\n')
	}

	sb.WriteString(" ")
	for col := 0; col < b.Columns(); col++ {
		fmt.Fprintf(&sb, " %d", col%10)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (r *Renderer) slot(s domain.Slot, bold bool) string {
	var v aurora.Value
	switch s {
	case domain.Red:
		v = r.au.Red(string(s.Rune()))
	case domain.Yellow:
		v = r.au.Yellow(string(s.Rune()))
	default:
		return string(s.Rune())
	}
	if bold {
		v = v.Bold()
	}
	return v.String()
}

// Status describes whose turn it is or how the game ended.
func (r *Renderer) Status(g *domain.Game) string {
	switch g.Outcome() {
	case domain.RedWins:
		return fmt.Sprint(r.au.Bold(r.au.Red("Red wins")))
	case domain.YellowWins:
		return fmt.Sprint(r.au.Bold(r.au.Yellow("Yellow wins")))
	case domain.Draw:
		return fmt.Sprint(r.au.Bold("Draw"))
	}
	return fmt.Sprintf("%s to move (move %d)", r.color(g.CurrentPlayer), g.MoveCount()+1)
}

func (r *Renderer) color(s domain.Slot) string {
	switch s {
	case domain.Red:
		return r.au.Red("red").String()
	case domain.Yellow:
		return r.au.Yellow("yellow").String()
	}
	return s.String()
}
