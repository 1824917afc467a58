package interaction

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Gateway is an interaction received over the gateway websocket. Every
// response goes through the REST API.
type Gateway struct {
	s   *discordgo.Session
	i   *discordgo.Interaction
	hub *Hub
	tracker
}

func NewGateway(s *discordgo.Session, i *discordgo.Interaction, hub *Hub) *Gateway {
	return &Gateway{s: s, i: i, hub: hub}
}

// DeferAfter acknowledges the interaction with a deferral if nothing answered
// it within d. The returned func stops the timer.
func (g *Gateway) DeferAfter(d time.Duration) (stop func() bool) {
	return time.AfterFunc(d, g.deferNow).Stop
}

func (g *Gateway) deferNow() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != statePending {
		return
	}
	resp := deferredResponse(g.i.Type)
	if err := g.s.InteractionRespond(g.i, resp); err != nil {
		log.Printf("[WARN] Failed to defer interaction %s: %v", g.i.ID, err)
		return
	}
	g.markDeferred(resp)
}

func (g *Gateway) Data() *discordgo.Interaction { return g.i }

// Respond holds the lock across the REST call so a deferral cannot race it.
func (g *Gateway) Respond(resp *discordgo.InteractionResponse) error {
	g.mu.Lock()
	switch g.state {
	case statePending:
		defer g.mu.Unlock()
		if err := g.s.InteractionRespond(g.i, resp); err != nil {
			return err
		}
		g.state = stateAnswered
		return nil
	case stateDeferred:
		g.mu.Unlock()
		return respondDeferred(g, resp)
	default:
		g.mu.Unlock()
		return ErrAlreadyResponded
	}
}

func (g *Gateway) Edit(edit *discordgo.WebhookEdit) (*discordgo.Message, error) {
	g.resolve()
	return g.s.InteractionResponseEdit(g.i, edit)
}

func (g *Gateway) Followup(params *discordgo.WebhookParams, ephemeral bool) (*discordgo.Message, error) {
	return followupREST(g.s, g.i, &g.tracker, params, ephemeral)
}

func (g *Gateway) Message() (*discordgo.Message, error) {
	return g.s.InteractionResponse(g.i)
}

func (g *Gateway) Collect(messageID string) *Collector { return g.hub.Collect(messageID) }
