package command

import (
	"context"
	"fmt"
	"time"

	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"
	"croissant-bot/internal/view"
	"croissant-bot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Context is what the Discord runtime hands to a command.
type Context struct {
	Interaction interaction.Interaction
	// API is the Croissant client. The auth middleware rebinds it to the
	// invoker's token before the command runs.
	API     *croissant.Client
	Catalog Catalog
	Timeouts
}

type Timeouts struct {
	Page    time.Duration
	Confirm time.Duration
}

// Invoker is the user running the command.
func (c *Context) Invoker() *discordgo.User { return interaction.Invoker(c.Interaction) }

// Options are the top-level command options.
func (c *Context) Options() interaction.Options { return interaction.OptionsOf(c.Interaction) }

// Dialog is a confirmation dialog using the configured timeout.
func (c *Context) Dialog(denied string) view.Dialog {
	return view.Dialog{TTL: c.Timeouts.Confirm, Denied: denied, Unauthenticated: MsgNotAuthenticated}
}

// CommandInfo describes a registered command for listings.
type CommandInfo struct {
	Name        string
	Description string
	Category    string
	// ID is Discord's id for the command, empty until registered.
	ID string
	// Slash is false for context-menu commands.
	Slash bool
}

// Catalog lists the commands the bot exposes.
type Catalog interface {
	Commands() []CommandInfo
}

// Providers: how a command is registered with Discord.

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type ContextMenuProvider interface {
	ContextDefinition() *discordgo.ApplicationCommand
}

// AutocompleteProvider answers autocomplete requests for a command's options.
type AutocompleteProvider interface {
	Autocomplete(ctx context.Context, c *Context) error
}

// DiscordMeta is exposed by the Discord adapter so middleware and listings
// can read the category without depending on the concrete command type.
type DiscordMeta interface {
	Category() string
}

// DiscordCommand is what individual Discord commands implement.
type DiscordCommand interface {
	Name() string
	Description() string
	Category() string
	Run(ctx context.Context, c *Context) error
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in a
// cmd.Registry, and exposes the provider interfaces of the inner command.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string        { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string { return a.Cmd.Description() }
func (a *DiscordAdapter) Category() string    { return a.Cmd.Category() }

// Run routes autocomplete requests to the command's AutocompleteProvider and
// everything else to its Run.
func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	c, ok := inv.Data.(*Context)
	if !ok {
		return fmt.Errorf("command %s: unexpected invocation data %T", a.Cmd.Name(), inv.Data)
	}
	if IsAutocomplete(c) {
		if ap, ok := a.Cmd.(AutocompleteProvider); ok {
			return ap.Autocomplete(ctx, c)
		}
		return interaction.Autocomplete(c.Interaction, nil)
	}
	return a.Cmd.Run(ctx, c)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (a *DiscordAdapter) ContextDefinition() *discordgo.ApplicationCommand {
	if cp, ok := a.Cmd.(ContextMenuProvider); ok {
		return cp.ContextDefinition()
	}
	return nil
}

// IsAutocomplete reports whether c carries an autocomplete request.
func IsAutocomplete(c *Context) bool {
	return c.Interaction.Data().Type == discordgo.InteractionApplicationCommandAutocomplete
}

// RegisterCommand registers a Discord command with reg and applies middlewares.
func RegisterCommand(reg *cmd.Registry, discordCmd DiscordCommand, mws ...cmd.Middleware) {
	reg.Register(cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...))
}

// Definition extracts the Discord definition of a registered command, walking
// through middleware wrappers.
func Definition(c cmd.Command) *discordgo.ApplicationCommand {
	root := cmd.Root(c)
	if slash, ok := root.(SlashProvider); ok {
		if def := slash.SlashDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			return def
		}
	}
	if menu, ok := root.(ContextMenuProvider); ok {
		if def := menu.ContextDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.UserApplicationCommand
			}
			return def
		}
	}
	return nil
}

// CategoryOf returns the category of a registered command, or "".
func CategoryOf(c cmd.Command) string {
	if meta, ok := cmd.Root(c).(DiscordMeta); ok {
		return meta.Category()
	}
	return ""
}
