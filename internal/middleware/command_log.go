package middleware

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"croissant-bot/internal/command"
	"croissant-bot/internal/storage"
	"croissant-bot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// HistoryStore keeps the recent command runs of a scope.
type HistoryStore interface {
	AppendCommandToHistory(scope string, rec storage.CommandHistoryRecord) error
}

// WithCommandLogger records every command run in store once it finishes.
// Autocomplete requests are not recorded.
func WithCommandLogger(store HistoryStore) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			dc, ok := inv.Data.(*command.Context)
			if !ok || command.IsAutocomplete(dc) || store == nil {
				return err
			}

			i := dc.Interaction.Data()
			user := dc.Invoker()
			rec := storage.CommandHistoryRecord{
				GuildID:   i.GuildID,
				ChannelID: i.ChannelID,
				UserID:    user.ID,
				Username:  user.Username,
				Command:   c.Name(),
				Param:     describeOptions(i),
				Failed:    err != nil,
				Datetime:  time.Now(),
			}
			if e := store.AppendCommandToHistory(i.GuildID, rec); e != nil {
				log.Printf("[WARN] Failed to log command /%s: %v", c.Name(), e)
			}
			return err
		})
	}
}

// describeOptions flattens the invocation options to "sub name=value ...".
func describeOptions(i *discordgo.Interaction) string {
	if i.Type != discordgo.InteractionApplicationCommand {
		return ""
	}
	var parts []string
	var walk func(opts []*discordgo.ApplicationCommandInteractionDataOption)
	walk = func(opts []*discordgo.ApplicationCommandInteractionDataOption) {
		for _, o := range opts {
			switch o.Type {
			case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
				parts = append(parts, o.Name)
				walk(o.Options)
			default:
				parts = append(parts, fmt.Sprintf("%s=%v", o.Name, o.Value))
			}
		}
	}
	walk(i.ApplicationCommandData().Options)
	return strings.Join(parts, " ")
}
