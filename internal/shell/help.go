package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/service/bot"
)

var commands = [][2]string{
	{"new [columns rows]", "start a new game, optionally on another board size"},
	{"agent <kind> [depth]", "change opponent: " + strings.Join(bot.Kinds, ", ")},
	{"color <red|yellow>", "choose your colour and start over (red moves first)"},
	{"play <column>", "drop a disc; the agent answers straight away (alias p)"},
	{"hint", "ask the baseline search for a move"},
	{"show", "print the board (alias s)"},
	{"undo", "take back your last move and the agent's reply"},
	{"help", "this text"},
	{"exit", "leave the shell"},
}

func usage(w io.Writer) {
	for _, c := range commands {
		fmt.Fprintf(w, "  %-22s %s\n", c[0], c[1])
	}
}
