package interaction

import (
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// DeferAfter is how long a handler may run before its interaction is
// acknowledged with a deferral. Discord drops interactions left unanswered
// for 3 seconds.
const DeferAfter = 2500 * time.Millisecond

var errAfterDeferral = errors.New("interaction: response type not allowed after deferral")

type responseState int

const (
	statePending responseState = iota
	stateAnswered
	stateDeferred
)

// tracker holds the initial-response state of an interaction.
type tracker struct {
	mu    sync.Mutex
	state responseState
	// placeholder is set while the public "thinking" message of a deferred
	// command is showing.
	placeholder bool
}

func (t *tracker) Responded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state != statePending
}

// markDeferred records that resp was sent as the deferral. Callers hold mu.
func (t *tracker) markDeferred(resp *discordgo.InteractionResponse) {
	switch resp.Type {
	case discordgo.InteractionApplicationCommandAutocompleteResult:
		t.state = stateAnswered
	case discordgo.InteractionResponseDeferredChannelMessageWithSource:
		t.state = stateDeferred
		t.placeholder = true
	default:
		t.state = stateDeferred
	}
}

// resolve clears the placeholder and reports whether it was showing.
func (t *tracker) resolve() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.placeholder {
		return false
	}
	t.placeholder = false
	t.state = stateAnswered
	return true
}

func deferredResponse(t discordgo.InteractionType) *discordgo.InteractionResponse {
	switch t {
	case discordgo.InteractionMessageComponent, discordgo.InteractionModalSubmit:
		return &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
	case discordgo.InteractionApplicationCommandAutocomplete:
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionApplicationCommandAutocompleteResult,
			Data: &discordgo.InteractionResponseData{Choices: []*discordgo.ApplicationCommandOptionChoice{}},
		}
	default:
		return &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource}
	}
}

// respondDeferred delivers a response once the deferral is out: a private
// reply becomes an ephemeral followup, anything else an edit of the deferred
// message.
func respondDeferred(in Interaction, resp *discordgo.InteractionResponse) error {
	if resp.Data == nil || resp.Type == discordgo.InteractionResponseModal ||
		resp.Type == discordgo.InteractionApplicationCommandAutocompleteResult {
		return errAfterDeferral
	}
	if resp.Data.Flags&discordgo.MessageFlagsEphemeral != 0 {
		_, err := in.Followup(&discordgo.WebhookParams{
			Content:    resp.Data.Content,
			Embeds:     resp.Data.Embeds,
			Components: resp.Data.Components,
		}, true)
		return err
	}
	_, err := in.Edit(&discordgo.WebhookEdit{
		Content:    &resp.Data.Content,
		Embeds:     &resp.Data.Embeds,
		Components: &resp.Data.Components,
	})
	return err
}

// followupREST posts a followup through s. A showing placeholder is resolved
// first: a public followup takes its place, a private one deletes it so the
// deferral does not hang on "thinking".
func followupREST(s *discordgo.Session, i *discordgo.Interaction, t *tracker, params *discordgo.WebhookParams, ephemeral bool) (*discordgo.Message, error) {
	if t.resolve() {
		if !ephemeral {
			return s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
				Content:    &params.Content,
				Embeds:     &params.Embeds,
				Components: &params.Components,
			})
		}
		if err := s.InteractionResponseDelete(i); err != nil {
			return nil, err
		}
	}
	if ephemeral {
		params.Flags |= discordgo.MessageFlagsEphemeral
	}
	return s.FollowupMessageCreate(i, true, params)
}
