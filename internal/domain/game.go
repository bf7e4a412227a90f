package domain

// Game is the live record a driver keeps while two players alternate on a
// board. Red moves first unless the game is created otherwise.
type Game struct {
	Board         *Board
	CurrentPlayer Slot
	Status        GameStatus
	Winner        Slot
	Moves         []int
}

func NewGame(columns, rows int, first Slot) (*Game, error) {
	if !first.IsColor() {
		return nil, ErrInvalidColor
	}
	board, err := NewBoard(columns, rows)
	if err != nil {
		return nil, err
	}
	return &Game{
		Board:         board,
		CurrentPlayer: first,
		Status:        StatusActive,
		Winner:        Empty,
	}, nil
}

// MakeMove drops a disc for player and advances the turn. It returns the row
// the disc landed on.
func (g *Game) MakeMove(player Slot, column int) (int, error) {
	if g.IsFinished() {
		return -1, ErrGameOver
	}
	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	row, err := g.Board.Place(column, player)
	if err != nil {
		return -1, err
	}
	g.Moves = append(g.Moves, column)

	if g.Board.CheckWin(row, column, player) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

// Undo takes back the last move and reopens the game if it had ended.
func (g *Game) Undo() error {
	if len(g.Moves) == 0 {
		return ErrColumnEmpty
	}
	last := g.Moves[len(g.Moves)-1]
	if err := g.Board.Unplace(last); err != nil {
		return err
	}
	g.Moves = g.Moves[:len(g.Moves)-1]

	if g.Status == StatusActive {
		g.CurrentPlayer = g.CurrentPlayer.Opponent()
	} else {
		// the player who made the final move is to play again
		g.CurrentPlayer = g.lastMover()
	}
	g.Status = StatusActive
	g.Winner = Empty
	return nil
}

func (g *Game) lastMover() Slot {
	if g.Status == StatusWon {
		return g.Winner
	}
	return g.CurrentPlayer
}

func (g *Game) MoveCount() int {
	return len(g.Moves)
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// Outcome maps the game status onto a board outcome.
func (g *Game) Outcome() Outcome {
	switch g.Status {
	case StatusWon:
		return winFor(g.Winner)
	case StatusDraw:
		return Draw
	}
	return InProgress
}
