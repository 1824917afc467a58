package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"

	"croissant-bot/internal/command"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"
	"croissant-bot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Router turns inbound interactions into command runs or collector events.
// It is shared by the gateway bot and the webhook server.
type Router struct {
	reg      *cmd.Registry
	hub      *interaction.Hub
	api      *croissant.Client
	catalog  command.Catalog
	timeouts command.Timeouts
}

func NewRouter(reg *cmd.Registry, hub *interaction.Hub, api *croissant.Client, catalog command.Catalog, timeouts command.Timeouts) *Router {
	return &Router{
		reg:      reg,
		hub:      hub,
		api:      api,
		catalog:  catalog,
		timeouts: timeouts,
	}
}

func (r *Router) Hub() *interaction.Hub { return r.hub }

// Dispatch handles one interaction. It blocks for as long as the view the
// command opened stays alive, so callers run it in its own goroutine.
func (r *Router) Dispatch(ctx context.Context, in interaction.Interaction) {
	switch in.Data().Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		r.runCommand(ctx, in)
	case discordgo.InteractionMessageComponent, discordgo.InteractionModalSubmit:
		if !r.hub.Deliver(in) {
			if err := interaction.RespondEphemeral(in, command.MsgExpired); err != nil {
				log.Printf("[WARN] Failed to answer expired interaction %s: %v", interaction.CustomID(in), err)
			}
		}
	case discordgo.InteractionPing:
	default:
		log.Printf("[DEBUG] Ignoring interaction type %d", in.Data().Type)
	}
}

func (r *Router) runCommand(ctx context.Context, in interaction.Interaction) {
	name := interaction.CommandName(in)
	autocomplete := in.Data().Type == discordgo.InteractionApplicationCommandAutocomplete

	c := r.reg.Get(name)
	if c == nil {
		if autocomplete {
			_ = interaction.Autocomplete(in, nil)
			return
		}
		log.Printf("[WARN] Unknown command: %s", name)
		_ = interaction.RespondEphemeral(in, command.MsgCommandNotFound)
		return
	}

	dc := &command.Context{
		Interaction: in,
		API:         r.api,
		Catalog:     r.catalog,
		Timeouts:    r.timeouts,
	}

	var err error
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[ERR] Panic in /%s: %v\n%s", name, rec, debug.Stack())
				err = fmt.Errorf("panic: %v", rec)
			}
		}()
		err = c.Run(ctx, &cmd.Invocation{Data: dc})
	}()
	if err != nil {
		r.fail(in, name, autocomplete, err)
	}
}

// fail maps a command error to the message the user sees.
func (r *Router) fail(in interaction.Interaction, name string, autocomplete bool, err error) {
	msg := command.MsgCommandError
	if errors.Is(err, croissant.ErrUnauthorized) || errors.Is(err, croissant.ErrNoToken) {
		msg = command.MsgNotAuthenticated
	} else {
		log.Printf("[ERR] Error running /%s: %v", name, err)
	}

	if autocomplete {
		if !in.Responded() {
			_ = interaction.Autocomplete(in, nil)
		}
		return
	}
	if rerr := interaction.RespondEphemeral(in, msg); rerr != nil {
		log.Printf("[WARN] Failed to report error of /%s: %v", name, rerr)
	}
}
