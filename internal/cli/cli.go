// Package cli is the operator command line: a few read-only views of the
// Croissant API plus token derivation, run through the same pkg/cmd registry
// the bot uses.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"croissant-bot/internal/auth"
	"croissant-bot/internal/croissant"
	"croissant-bot/pkg/cmd"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgHiMagenta, color.Bold)
	labelColor   = color.New(color.FgHiBlack)
	valueColor   = color.New(color.FgHiWhite)
	errorColor   = color.New(color.FgHiRed)
)

// ErrUsage is returned when a command is called with the wrong arguments.
var ErrUsage = errors.New("usage")

// Env is what every CLI command receives in Invocation.Data.
type Env struct {
	API  *croissant.Client
	Keys auth.Keyer
	Out  io.Writer
	// Registry lets help list the other commands.
	Registry *cmd.Registry
}

// usager is implemented by commands that take arguments.
type usager interface {
	Usage() string
}

// Register adds every CLI command to reg.
func Register(reg *cmd.Registry) {
	for _, c := range []cmd.Command{
		&helpCommand{},
		&tokenCommand{},
		&itemsCommand{},
		&inventoryCommand{},
		&profileCommand{},
		&gamesCommand{},
		&lobbyCommand{},
	} {
		reg.Register(c)
	}
}

// Run executes the command named by args[0] with the remaining arguments.
func Run(ctx context.Context, env *Env, args []string) error {
	name := "help"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	c := env.Registry.Get(name)
	if c == nil {
		errorColor.Fprintf(env.Out, "unknown command %q\n", name)
		c = env.Registry.Get("help")
	}

	err := c.Run(ctx, &cmd.Invocation{Args: args, Data: env})
	switch {
	case errors.Is(err, ErrUsage):
		usage := ""
		if u, ok := c.(usager); ok {
			usage = " " + u.Usage()
		}
		errorColor.Fprintf(env.Out, "usage: %s%s\n", c.Name(), usage)
	case err != nil:
		errorColor.Fprintf(env.Out, "%s: %s\n", c.Name(), croissant.Message(err, err.Error()))
	}
	return err
}

func envOf(inv *cmd.Invocation) (*Env, error) {
	env, ok := inv.Data.(*Env)
	if !ok {
		return nil, fmt.Errorf("cli: unexpected invocation data %T", inv.Data)
	}
	return env, nil
}

func field(w io.Writer, label string, value any) {
	labelColor.Fprintf(w, "%-12s", label)
	valueColor.Fprintf(w, "%v\n", value)
}
