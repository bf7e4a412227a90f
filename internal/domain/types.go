package domain

// Slot is the content of a single board cell.
type Slot uint8

const (
	Empty Slot = iota
	Red
	Yellow
)

// Opponent returns the other colour. Empty has no opponent.
func (s Slot) Opponent() Slot {
	switch s {
	case Red:
		return Yellow
	case Yellow:
		return Red
	}
	return Empty
}

func (s Slot) IsColor() bool {
	return s == Red || s == Yellow
}

// Rune is the single character used in fixtures and plain renderings.
func (s Slot) Rune() rune {
	switch s {
	case Red:
		return 'R'
	case Yellow:
		return 'Y'
	}
	return '.'
}

func (s Slot) String() string {
	switch s {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	}
	return "empty"
}

// ParseColor accepts "red"/"r" and "yellow"/"y".
func ParseColor(name string) (Slot, error) {
	switch name {
	case "red", "r", "R", "Red", "RED":
		return Red, nil
	case "yellow", "y", "Y", "Yellow", "YELLOW":
		return Yellow, nil
	}
	return Empty, ErrInvalidColor
}

// Outcome classifies a board. It is derived on demand, never stored.
type Outcome int

const (
	InProgress Outcome = iota
	RedWins
	YellowWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case RedWins:
		return "red wins"
	case YellowWins:
		return "yellow wins"
	case Draw:
		return "draw"
	}
	return "in progress"
}

// Winner returns the winning colour, or Empty for draws and unfinished games.
func (o Outcome) Winner() Slot {
	switch o {
	case RedWins:
		return Red
	case YellowWins:
		return Yellow
	}
	return Empty
}

func (o Outcome) IsTerminal() bool {
	return o != InProgress
}

func winFor(s Slot) Outcome {
	if s == Red {
		return RedWins
	}
	return YellowWins
}

const (
	// MinDimension is the smallest width or height that can hold four in a row.
	MinDimension = 4
	ToWin        = 4

	DefaultColumns = 7
	DefaultRows    = 6

	// FullColumn is returned by TopEmptyRow for a column without an empty slot.
	FullColumn = -1
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidDimension Error = "board needs at least 4 columns and 4 rows"
	ErrInvalidColumn    Error = "column out of range"
	ErrInvalidColor     Error = "slot color must be red or yellow"
	ErrColumnFull       Error = "column is full"
	ErrColumnEmpty      Error = "column is empty"
	ErrNoLegalMove      Error = "no legal move"
	ErrFloatingPiece    Error = "piece has an empty slot below it"
	ErrGameOver         Error = "game is over"
	ErrNotYourTurn      Error = "not this color's turn"
)
