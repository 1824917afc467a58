package interaction

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// writeWait bounds how long REST calls wait for the HTTP reply to be flushed.
const writeWait = 3 * time.Second

// Webhook is an interaction received as an HTTP POST. The initial response is
// handed to the HTTP handler through Reply; everything after it goes through
// the REST API.
type Webhook struct {
	rest *discordgo.Session
	i    *discordgo.Interaction
	hub  *Hub
	tracker

	reply   chan *discordgo.InteractionResponse
	written chan struct{}
	once    sync.Once
}

func NewWebhook(rest *discordgo.Session, i *discordgo.Interaction, hub *Hub) *Webhook {
	return &Webhook{
		rest:    rest,
		i:       i,
		hub:     hub,
		reply:   make(chan *discordgo.InteractionResponse, 1),
		written: make(chan struct{}),
	}
}

// Reply delivers the initial response once a handler produces it.
func (w *Webhook) Reply() <-chan *discordgo.InteractionResponse { return w.reply }

// MarkWritten signals that the HTTP reply has been flushed to Discord.
func (w *Webhook) MarkWritten() {
	w.once.Do(func() { close(w.written) })
}

// Defer acknowledges the interaction when the handler is too slow for the
// HTTP deadline. It returns nil if a response was already produced.
func (w *Webhook) Defer() *discordgo.InteractionResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != statePending {
		return nil
	}
	resp := deferredResponse(w.i.Type)
	w.markDeferred(resp)
	return resp
}

func (w *Webhook) Data() *discordgo.Interaction { return w.i }

func (w *Webhook) Respond(resp *discordgo.InteractionResponse) error {
	w.mu.Lock()
	state := w.state
	if state == statePending {
		w.state = stateAnswered
	}
	w.mu.Unlock()

	switch state {
	case statePending:
		w.reply <- resp
		return nil
	case stateDeferred:
		return respondDeferred(w, resp)
	default:
		return ErrAlreadyResponded
	}
}

func (w *Webhook) Edit(edit *discordgo.WebhookEdit) (*discordgo.Message, error) {
	w.waitWritten()
	w.resolve()
	return w.rest.InteractionResponseEdit(w.i, edit)
}

func (w *Webhook) Followup(params *discordgo.WebhookParams, ephemeral bool) (*discordgo.Message, error) {
	w.waitWritten()
	return followupREST(w.rest, w.i, &w.tracker, params, ephemeral)
}

func (w *Webhook) Message() (*discordgo.Message, error) {
	w.waitWritten()
	return w.rest.InteractionResponse(w.i)
}

func (w *Webhook) Collect(messageID string) *Collector { return w.hub.Collect(messageID) }

func (w *Webhook) waitWritten() {
	select {
	case <-w.written:
	case <-time.After(writeWait):
	}
}
