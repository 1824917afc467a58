package middleware

import (
	"context"
	"errors"
	"log"

	"croissant-bot/internal/auth"
	"croissant-bot/internal/command"
	"croissant-bot/internal/interaction"
	"croissant-bot/pkg/cmd"
)

// TokenSource derives the API token of a Discord user.
type TokenSource interface {
	Key(userID string) (string, error)
}

// WithAuth binds the invoker's API token to the command's client. When no
// token can be derived the invoker is told to link their account and the
// command does not run; autocomplete requests get no choices.
func WithAuth(src TokenSource) cmd.Middleware {
	return authMiddleware(src, true)
}

// WithOptionalAuth binds the token when one can be derived and runs the
// command either way. The command checks API.Token() before calls that need it.
func WithOptionalAuth(src TokenSource) cmd.Middleware {
	return authMiddleware(src, false)
}

func authMiddleware(src TokenSource, required bool) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			dc, ok := inv.Data.(*command.Context)
			if !ok {
				return c.Run(ctx, inv)
			}

			token, err := src.Key(interaction.InvokerID(dc.Interaction))
			if err == nil {
				if dc.API != nil {
					dc.API = dc.API.WithToken(token)
				}
				return c.Run(ctx, inv)
			}
			if !required {
				return c.Run(ctx, inv)
			}

			if !errors.Is(err, auth.ErrMissingSecret) {
				log.Printf("[WARN] No token for /%s: %v", c.Name(), err)
			}
			if command.IsAutocomplete(dc) {
				return interaction.Autocomplete(dc.Interaction, nil)
			}
			return interaction.RespondEphemeral(dc.Interaction, command.MsgNotAuthenticated)
		})
	}
}
