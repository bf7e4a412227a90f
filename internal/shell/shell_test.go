package shell

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/service/bot"
)

func newTestShell(t *testing.T, human domain.Slot) (*ShellController, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	sc, err := NewShellController(Options{
		Columns: 7,
		Rows:    6,
		Agent:   bot.KindBaseline,
		Depth:   2,
		Human:   human,
		Random:  rand.New(rand.NewPCG(1, 2)),
	}, &out)
	require.NoError(t, err)
	return sc, &out
}

func TestPlayAndUndo(t *testing.T) {
	sc, out := newTestShell(t, domain.Red)
	ctx := context.Background()

	require.NoError(t, sc.Execute(ctx, "play 3"))
	require.Equal(t, 2, sc.game.MoveCount(), "the agent replies")
	require.Equal(t, domain.Red, sc.game.CurrentPlayer)
	require.Contains(t, out.String(), "baseline plays column")

	require.NoError(t, sc.Execute(ctx, "undo"))
	require.Zero(t, sc.game.MoveCount())
	require.Equal(t, domain.Red, sc.game.CurrentPlayer)

	require.ErrorIs(t, sc.Execute(ctx, "play 9"), domain.ErrInvalidColumn)
	require.Error(t, sc.Execute(ctx, "play x"))
	require.Error(t, sc.Execute(ctx, "play"))
}

func TestAgentOpensForYellow(t *testing.T) {
	sc, _ := newTestShell(t, domain.Yellow)
	require.Equal(t, 1, sc.game.MoveCount())
	require.Equal(t, domain.Yellow, sc.game.CurrentPlayer)

	// taking back the only move lets the agent open again
	require.NoError(t, sc.Execute(context.Background(), "undo"))
	require.Equal(t, 1, sc.game.MoveCount())
}

func TestCommands(t *testing.T) {
	sc, out := newTestShell(t, domain.Red)
	ctx := context.Background()

	require.NoError(t, sc.Execute(ctx, "new 5 4"))
	require.Equal(t, 5, sc.game.Board.Columns())
	require.Equal(t, 4, sc.game.Board.Rows())
	require.ErrorIs(t, sc.Execute(ctx, "new 3 3"), domain.ErrInvalidDimension)

	require.NoError(t, sc.Execute(ctx, "agent greedy"))
	require.Equal(t, bot.KindGreedy, sc.opponent.Name())
	require.ErrorIs(t, sc.Execute(ctx, "agent oracle 3"), bot.ErrUnknownAgent)
	require.Equal(t, bot.KindGreedy, sc.opponent.Name(), "a failed switch keeps the agent")

	require.NoError(t, sc.Execute(ctx, "color yellow"))
	require.Equal(t, domain.Yellow, sc.human)
	require.Equal(t, domain.Red, sc.opponent.Color())
	require.ErrorIs(t, sc.Execute(ctx, "color blue"), domain.ErrInvalidColor)

	out.Reset()
	require.NoError(t, sc.Execute(ctx, "hint"))
	require.Contains(t, out.String(), "try column")

	out.Reset()
	require.NoError(t, sc.Execute(ctx, "help"))
	require.Contains(t, out.String(), "agent <kind> [depth]")

	require.NoError(t, sc.Execute(ctx, "   "))
	require.Error(t, sc.Execute(ctx, "dance"))
	require.Error(t, sc.Execute(ctx, `play "3`), "unbalanced quotes")
	require.ErrorIs(t, sc.Execute(ctx, "exit"), errQuit)
}

func TestPlayAfterTheGameEnds(t *testing.T) {
	sc, _ := newTestShell(t, domain.Red)
	ctx := context.Background()
	sc.game.Status = domain.StatusDraw

	require.ErrorIs(t, sc.Execute(ctx, "play 0"), domain.ErrGameOver)
	require.ErrorIs(t, sc.Execute(ctx, "hint"), domain.ErrGameOver)
}

func TestDecorate(t *testing.T) {
	var built []string
	var out bytes.Buffer
	_, err := NewShellController(Options{
		Columns: 7, Rows: 6, Agent: bot.KindGreedy, Human: domain.Red,
		Decorate: func(p bot.Player) bot.Player {
			built = append(built, p.Name())
			return p
		},
	}, &out)
	require.NoError(t, err)
	require.Equal(t, []string{bot.KindGreedy}, built)
}
