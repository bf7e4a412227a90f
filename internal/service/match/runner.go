package match

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/service/bot"
	"github.com/connorcarey/ConnectFour-MiniMax/pkg/uid"
)

// GameRecord is the result of one finished game.
type GameRecord struct {
	GameID    string
	Index     int
	Red       string
	Yellow    string
	Outcome   domain.Outcome
	Moves     []int
	Board     string
	CreatedAt time.Time
	Duration  time.Duration
}

func (r *GameRecord) Length() int { return len(r.Moves) }

// Runner drives a game between two players until it is won or drawn. The
// players only see the live board; the runner applies their columns.
type Runner struct {
	columns     int
	rows        int
	moveTimeout time.Duration
}

// NewRunner builds a runner for columns x rows boards. A zero moveTimeout
// lets every search run to completion.
func NewRunner(columns, rows int, moveTimeout time.Duration) (*Runner, error) {
	if columns < domain.MinDimension || rows < domain.MinDimension {
		return nil, fmt.Errorf("%dx%d board: %w", columns, rows, domain.ErrInvalidDimension)
	}
	return &Runner{columns: columns, rows: rows, moveTimeout: moveTimeout}, nil
}

// Play runs one game with red moving first. A player that errors or answers
// with an illegal column aborts the game.
func (r *Runner) Play(ctx context.Context, red, yellow bot.Player) (*GameRecord, error) {
	game, err := domain.NewGame(r.columns, r.rows, domain.Red)
	if err != nil {
		return nil, err
	}
	players := map[domain.Slot]bot.Player{domain.Red: red, domain.Yellow: yellow}

	record := &GameRecord{
		GameID:    uid.GenerateGameID(),
		Red:       red.Name(),
		Yellow:    yellow.Name(),
		CreatedAt: time.Now(),
	}

	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		player := players[game.CurrentPlayer]

		column, err := r.chooseMove(ctx, player, game.Board)
		if err != nil {
			return nil, fmt.Errorf("game %s: %s (%s) failed to move: %w",
				uid.ShortID(record.GameID), player.Name(), game.CurrentPlayer, err)
		}

		row, err := game.MakeMove(game.CurrentPlayer, column)
		if err != nil {
			return nil, fmt.Errorf("game %s: %s (%s) played column %d: %w",
				uid.ShortID(record.GameID), player.Name(), player.Color(), column, err)
		}

		log.Debug().
			Str("game", uid.ShortID(record.GameID)).
			Str("player", player.Name()).
			Str("color", player.Color().String()).
			Int("column", column).
			Int("row", row).
			Msg("move made")
	}

	record.Outcome = game.Outcome()
	record.Moves = append([]int(nil), game.Moves...)
	record.Board = game.Board.String()
	record.Duration = time.Since(record.CreatedAt)

	log.Debug().
		Str("game", uid.ShortID(record.GameID)).
		Str("outcome", record.Outcome.String()).
		Int("moves", record.Length()).
		Dur("duration", record.Duration).
		Msg("game over")
	return record, nil
}

func (r *Runner) chooseMove(ctx context.Context, player bot.MoveChooser, b *domain.Board) (int, error) {
	if r.moveTimeout <= 0 {
		return player.ChooseMove(ctx, b)
	}
	moveCtx, cancel := context.WithTimeout(ctx, r.moveTimeout)
	defer cancel()
	return player.ChooseMove(moveCtx, b)
}
