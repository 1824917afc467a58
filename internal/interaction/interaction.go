// Package interaction gives command handlers one view of a Discord
// interaction, whichever transport delivered it (gateway event or HTTP
// webhook), plus a hub that routes component clicks and modal submits to the
// view waiting on the message they belong to.
package interaction

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// ErrAlreadyResponded is returned by Respond on an interaction that already
// received its initial response.
var ErrAlreadyResponded = errors.New("interaction: already responded")

type Interaction interface {
	// Data is the raw interaction payload.
	Data() *discordgo.Interaction
	// Respond sends the initial response. Only one is allowed.
	Respond(resp *discordgo.InteractionResponse) error
	// Edit changes the initial response message.
	Edit(edit *discordgo.WebhookEdit) (*discordgo.Message, error)
	// Followup posts an additional message tied to the interaction.
	Followup(params *discordgo.WebhookParams, ephemeral bool) (*discordgo.Message, error)
	// Message fetches the initial response message.
	Message() (*discordgo.Message, error)
	Responded() bool
	// Collect registers for component events on messageID.
	Collect(messageID string) *Collector
}
