package domain

// directions a four-in-a-row can run in: horizontal, vertical and both diagonals
var lineDirections = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{-1, 1}, // diagonal /
}

// Outcome scans every four-cell window of the board. A win takes precedence
// over a full board.
func (b *Board) Outcome() Outcome {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.columns; col++ {
			s := b.slots[col][row]
			if s == Empty {
				continue
			}
			for _, dir := range lineDirections {
				if b.runFrom(row, col, dir[0], dir[1], s) {
					return winFor(s)
				}
			}
		}
	}

	if b.IsFull() {
		return Draw
	}
	return InProgress
}

// runFrom reports whether the ToWin cells starting at (row, col) in the
// given direction all hold player.
func (b *Board) runFrom(row, col, deltaRow, deltaCol int, player Slot) bool {
	endRow := row + deltaRow*(ToWin-1)
	endCol := col + deltaCol*(ToWin-1)
	if !b.inBounds(endRow, endCol) {
		return false
	}
	for i := 1; i < ToWin; i++ {
		if b.slots[col+deltaCol*i][row+deltaRow*i] != player {
			return false
		}
	}
	return true
}

// CheckWin only checks the lines passing through (row, column), which is
// enough after a single move.
func (b *Board) CheckWin(row, column int, player Slot) bool {
	for _, dir := range lineDirections {
		count := 1 + b.CountInDirection(row, column, dir[0], dir[1], player) +
			b.CountInDirection(row, column, -dir[0], -dir[1], player)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// this counts the number of disks in a specific direction
func (b *Board) CountInDirection(row, column, deltaRow, deltaCol int, player Slot) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for b.inBounds(r, c) && b.slots[c][r] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
