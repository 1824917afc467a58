// Package cmd is the transport-agnostic command core: a command has a name, a
// description and Run(ctx, invocation). Registration and dispatch for a given
// transport (Discord interactions, the CLI) live in adapters that wrap it.
package cmd

import "context"

// Invocation is what a runner passes to a command: positional arguments and
// an opaque payload. The Discord adapter puts its *command.Context in Data,
// the CLI leaves Data nil and fills Args.
type Invocation struct {
	Args []string
	Data any
}

type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}
