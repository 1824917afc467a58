// Package interactiontest provides an in-memory interaction.Interaction that
// records everything a handler sends.
package interactiontest

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"croissant-bot/internal/interaction"

	"github.com/bwmarrin/discordgo"
)

const waitTimeout = 2 * time.Second

type Followup struct {
	Params    *discordgo.WebhookParams
	Ephemeral bool
}

// Fake implements interaction.Interaction.
type Fake struct {
	I   *discordgo.Interaction
	Hub *interaction.Hub
	// MessageID is the id Message() reports for the initial response.
	MessageID string

	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	followups []Followup
	seq       int
}

func New(i *discordgo.Interaction, hub *interaction.Hub) *Fake {
	if hub == nil {
		hub = interaction.NewHub()
	}
	return &Fake{I: i, Hub: hub, MessageID: "msg-" + i.ID}
}

func (f *Fake) Data() *discordgo.Interaction { return f.I }

func (f *Fake) Respond(resp *discordgo.InteractionResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) > 0 {
		return interaction.ErrAlreadyResponded
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *Fake) Edit(edit *discordgo.WebhookEdit) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	return &discordgo.Message{ID: f.MessageID}, nil
}

func (f *Fake) Followup(params *discordgo.WebhookParams, ephemeral bool) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.followups = append(f.followups, Followup{Params: params, Ephemeral: ephemeral})
	f.seq++
	return &discordgo.Message{ID: fmt.Sprintf("%s-followup-%d", f.MessageID, f.seq)}, nil
}

func (f *Fake) Message() (*discordgo.Message, error) {
	return &discordgo.Message{ID: f.MessageID}, nil
}

func (f *Fake) Responded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.responses) > 0
}

func (f *Fake) Collect(messageID string) *interaction.Collector { return f.Hub.Collect(messageID) }

func (f *Fake) Responses() []*discordgo.InteractionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.InteractionResponse(nil), f.responses...)
}

func (f *Fake) Edits() []*discordgo.WebhookEdit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.WebhookEdit(nil), f.edits...)
}

func (f *Fake) Followups() []Followup {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Followup(nil), f.followups...)
}

// Response returns the initial response, failing the test if there is none.
func (f *Fake) Response(t testing.TB) *discordgo.InteractionResponse {
	t.Helper()
	rs := f.Responses()
	if len(rs) == 0 {
		t.Fatal("no response recorded")
	}
	return rs[0]
}

// LastEdit returns the latest edit, failing the test if there is none.
func (f *Fake) LastEdit(t testing.TB) *discordgo.WebhookEdit {
	t.Helper()
	es := f.Edits()
	if len(es) == 0 {
		t.Fatal("no edit recorded")
	}
	return es[len(es)-1]
}

// WaitResponse blocks until the initial response is recorded.
func (f *Fake) WaitResponse(t testing.TB) *discordgo.InteractionResponse {
	t.Helper()
	waitFor(t, "response", func() bool { return f.Responded() })
	return f.Responses()[0]
}

// WaitEdits blocks until at least n edits are recorded.
func (f *Fake) WaitEdits(t testing.TB, n int) []*discordgo.WebhookEdit {
	t.Helper()
	waitFor(t, fmt.Sprintf("%d edits", n), func() bool { return len(f.Edits()) >= n })
	return f.Edits()
}

// WaitFollowups blocks until at least n followups are recorded.
func (f *Fake) WaitFollowups(t testing.TB, n int) []Followup {
	t.Helper()
	waitFor(t, fmt.Sprintf("%d followups", n), func() bool { return len(f.Followups()) >= n })
	return f.Followups()
}

// WaitCollector blocks until a collector is registered for messageID.
func WaitCollector(t testing.TB, hub *interaction.Hub, messageID string) {
	t.Helper()
	waitFor(t, "collector "+messageID, func() bool { return hub.Has(messageID) })
}

// WaitNoCollector blocks until the collector for messageID is released.
func WaitNoCollector(t testing.TB, hub *interaction.Hub, messageID string) {
	t.Helper()
	waitFor(t, "release of "+messageID, func() bool { return !hub.Has(messageID) })
}

func waitFor(t testing.TB, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}
