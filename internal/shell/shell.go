package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/domain"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/render"
	"github.com/connorcarey/ConnectFour-MiniMax/internal/service/bot"
)

var errQuit = errors.New("quit")

// Options configures a shell session.
type Options struct {
	Columns    int
	Rows       int
	Agent      string
	Depth      int
	Human      domain.Slot
	Timeout    time.Duration
	Colors     bool
	Random     bot.RandomSource
	// Decorate, when set, wraps every agent the shell builds.
	Decorate func(bot.Player) bot.Player
}

// ShellController plays games between a person at the terminal and an agent.
type ShellController struct {
	l   *readline.Instance
	out io.Writer

	columns, rows int
	kind          string
	depth         int
	human         domain.Slot
	timeout       time.Duration
	src           bot.RandomSource
	wrap          func(bot.Player) bot.Player

	game     *domain.Game
	opponent bot.Player
	lastMove int
	render   *render.Renderer
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(opts Options, out io.Writer) (*ShellController, error) {
	sc := &ShellController{
		out:      out,
		columns:  opts.Columns,
		rows:     opts.Rows,
		kind:     opts.Agent,
		depth:    opts.Depth,
		human:    opts.Human,
		timeout:  opts.Timeout,
		src:      opts.Random,
		wrap:     opts.Decorate,
		lastMove: -1,
		render:   render.New(opts.Colors),
	}
	if sc.src == nil {
		sc.src = bot.NewRandomSource()
	}
	if !sc.human.IsColor() {
		sc.human = domain.Red
	}
	if err := sc.newGame(context.Background(), sc.columns, sc.rows); err != nil {
		return nil, err
	}
	return sc, nil
}

// Loop reads commands until exit, EOF or an interrupt on an empty line.
func (sc *ShellController) Loop(ctx context.Context, historyFile string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[34mconnect4>\033[0m ",
		HistoryFile:     historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	sc.l = l
	sc.out = l.Stdout()
	defer sc.l.Close()

	sc.showMessage(sc.render.Board(sc.game.Board, sc.lastMove))
	sc.showMessage(sc.render.Status(sc.game))

	for {
		line, err := sc.l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		}

		err = sc.Execute(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			sc.showError(err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Execute runs a single command line.
func (sc *ShellController) Execute(ctx context.Context, line string) error {
	fields, err := shellquote.Split(strings.TrimSpace(line))
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "new":
		columns, rows := sc.columns, sc.rows
		if len(args) == 2 {
			if columns, err = strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("columns: %w", err)
			}
			if rows, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("rows: %w", err)
			}
		} else if len(args) != 0 {
			return errors.New("usage: new [columns rows]")
		}
		if err := sc.newGame(ctx, columns, rows); err != nil {
			return err
		}
		sc.show()

	case "agent":
		if len(args) == 0 || len(args) > 2 {
			return errors.New("usage: agent <" + strings.Join(bot.Kinds, "|") + "> [depth]")
		}
		depth := sc.depth
		if len(args) == 2 {
			if depth, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("depth: %w", err)
			}
		}
		opponent, err := sc.newPlayer(args[0], sc.human.Opponent(), depth)
		if err != nil {
			return err
		}
		sc.kind, sc.depth, sc.opponent = args[0], depth, opponent
		sc.showMessage(fmt.Sprintf("playing against %s (depth %d)", sc.kind, sc.depth))
		if err := sc.agentTurn(ctx); err != nil {
			return err
		}

	case "color":
		if len(args) != 1 {
			return errors.New("usage: color <red|yellow>")
		}
		human, err := domain.ParseColor(args[0])
		if err != nil {
			return err
		}
		sc.human = human
		if err := sc.newGame(ctx, sc.columns, sc.rows); err != nil {
			return err
		}
		sc.show()

	case "play", "p":
		if len(args) != 1 {
			return errors.New("usage: play <column>")
		}
		column, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("column: %w", err)
		}
		if err := sc.play(ctx, column); err != nil {
			return err
		}
		sc.show()

	case "hint":
		if sc.game.IsFinished() {
			return domain.ErrGameOver
		}
		advisor, err := sc.newPlayer(bot.KindBaseline, sc.human, max(sc.depth, 1))
		if err != nil {
			return err
		}
		column, err := sc.chooseMove(ctx, advisor)
		if err != nil {
			return err
		}
		sc.showMessage(fmt.Sprintf("try column %d", column))

	case "show", "s":
		sc.show()

	case "undo":
		if err := sc.undo(ctx); err != nil {
			return err
		}
		sc.show()

	case "help", "?":
		usage(sc.out)

	case "exit", "bye", "quit":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (sc *ShellController) newGame(ctx context.Context, columns, rows int) error {
	game, err := domain.NewGame(columns, rows, domain.Red)
	if err != nil {
		return err
	}
	sc.columns, sc.rows = columns, rows
	opponent, err := sc.newPlayer(sc.kind, sc.human.Opponent(), sc.depth)
	if err != nil {
		return err
	}
	sc.game, sc.opponent, sc.lastMove = game, opponent, -1
	return sc.agentTurn(ctx)
}

func (sc *ShellController) newPlayer(kind string, color domain.Slot, depth int) (bot.Player, error) {
	player, err := bot.NewAgent(kind, color, sc.columns, depth, sc.src)
	if err != nil {
		return nil, err
	}
	if sc.wrap != nil {
		player = sc.wrap(player)
	}
	return player, nil
}

func (sc *ShellController) play(ctx context.Context, column int) error {
	if sc.game.IsFinished() {
		return domain.ErrGameOver
	}
	if sc.game.CurrentPlayer != sc.human {
		return domain.ErrNotYourTurn
	}
	if _, err := sc.game.MakeMove(sc.human, column); err != nil {
		return err
	}
	sc.lastMove = column
	return sc.agentTurn(ctx)
}

// agentTurn lets the agent move if it is its turn.
func (sc *ShellController) agentTurn(ctx context.Context) error {
	if sc.game.IsFinished() || sc.game.CurrentPlayer == sc.human {
		return nil
	}
	start := time.Now()
	column, err := sc.chooseMove(ctx, sc.opponent)
	if err != nil {
		return err
	}
	if _, err := sc.game.MakeMove(sc.opponent.Color(), column); err != nil {
		return fmt.Errorf("%s played column %d: %w", sc.opponent.Name(), column, err)
	}
	sc.lastMove = column
	log.Debug().Str("agent", sc.opponent.Name()).Int("column", column).
		Dur("took", time.Since(start)).Msg("agent moved")
	sc.showMessage(fmt.Sprintf("%s plays column %d", sc.opponent.Name(), column))
	return nil
}

func (sc *ShellController) chooseMove(ctx context.Context, player bot.MoveChooser) (int, error) {
	if sc.timeout <= 0 {
		return player.ChooseMove(ctx, sc.game.Board)
	}
	moveCtx, cancel := context.WithTimeout(ctx, sc.timeout)
	defer cancel()
	return player.ChooseMove(moveCtx, sc.game.Board)
}

// undo takes moves back until it is the person's turn again.
func (sc *ShellController) undo(ctx context.Context) error {
	if err := sc.game.Undo(); err != nil {
		return err
	}
	for sc.game.CurrentPlayer != sc.human {
		if err := sc.game.Undo(); err != nil {
			// back at the start with the agent to open
			if errors.Is(err, domain.ErrColumnEmpty) {
				break
			}
			return err
		}
	}
	sc.lastMove = -1
	if n := len(sc.game.Moves); n > 0 {
		sc.lastMove = sc.game.Moves[n-1]
	}
	return sc.agentTurn(ctx)
}

func (sc *ShellController) show() {
	sc.showMessage(sc.render.Board(sc.game.Board, sc.lastMove))
	sc.showMessage(sc.render.Status(sc.game))
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}
