package view

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"

	"github.com/bwmarrin/discordgo"
)

const (
	ConfirmID = "confirm"
	CancelID  = "cancel"
)

const defaultConfirmTTL = 15 * time.Second

type Outcome int

const (
	Pending Outcome = iota
	Accepted
	Declined
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Declined:
		return "declined"
	case TimedOut:
		return "timed out"
	}
	return "pending"
}

// Confirmation moves from Pending to exactly one final outcome.
type Confirmation struct {
	OwnerID string
	outcome Outcome
}

func (c *Confirmation) Outcome() Outcome { return c.outcome }

// Resolve records o if nothing was decided yet.
func (c *Confirmation) Resolve(o Outcome) bool {
	if c.outcome != Pending || o == Pending {
		return false
	}
	c.outcome = o
	return true
}

// Dialog asks the owner to confirm an action with two buttons.
type Dialog struct {
	TTL          time.Duration
	ConfirmLabel string
	CancelLabel  string
	// Denied is the private notice for clicks by anyone but the owner.
	Denied string
	// Unauthenticated replaces the failure text when the API rejects or
	// lacks the owner's token.
	Unauthenticated string
}

// Ask shows prompt privately and waits for the owner's answer or the TTL.
// The returned interaction is the click that resolved the dialog; it is nil
// on timeout and has not been responded to.
func (d Dialog) Ask(ctx context.Context, in interaction.Interaction, ownerID, prompt string) (Outcome, interaction.Interaction, error) {
	c := &Confirmation{OwnerID: ownerID}

	if err := d.show(in, prompt); err != nil {
		return Pending, nil, fmt.Errorf("show confirmation: %w", err)
	}
	msg, err := in.Message()
	if err != nil {
		return Pending, nil, fmt.Errorf("fetch confirmation message: %w", err)
	}

	// Clicks landing before this point are held by the hub for its Grace.
	col := in.Collect(msg.ID)
	defer col.Stop()

	ttl := d.TTL
	if ttl <= 0 {
		ttl = defaultConfirmTTL
	}
	timer := time.NewTimer(ttl)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Resolve(TimedOut)
			return c.Outcome(), nil, nil
		case <-timer.C:
			c.Resolve(TimedOut)
			return c.Outcome(), nil, nil
		case ev := <-col.Events():
			if interaction.InvokerID(ev) != c.OwnerID {
				if err := interaction.RespondEphemeral(ev, d.Denied); err != nil {
					log.Printf("[WARN] Failed to reject foreign click: %v", err)
				}
				continue
			}
			switch interaction.CustomID(ev) {
			case ConfirmID:
				c.Resolve(Accepted)
			case CancelID:
				c.Resolve(Declined)
			default:
				_ = ev.Respond(&discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate})
				continue
			}
			return c.Outcome(), ev, nil
		}
	}
}

func (d Dialog) show(in interaction.Interaction, prompt string) error {
	confirm, cancel := d.ConfirmLabel, d.CancelLabel
	if confirm == "" {
		confirm = "Confirm"
	}
	if cancel == "" {
		cancel = "Cancel"
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: ConfirmID, Label: confirm, Style: discordgo.SuccessButton},
			discordgo.Button{CustomID: CancelID, Label: cancel, Style: discordgo.SecondaryButton},
		}},
	}

	if in.Responded() {
		_, err := in.Edit(&discordgo.WebhookEdit{Content: &prompt, Components: &components})
		return err
	}
	return in.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    prompt,
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

// Action is a side effect gated behind a confirmation, with the texts shown
// for each outcome.
type Action struct {
	Prompt string
	Do     func(ctx context.Context) error

	Success   string
	Failure   string
	Cancelled string
	Expired   string
	// Announce, when set, is posted publicly after a success.
	Announce string
}

// publicError is implemented by errors whose message may be shown to users.
type publicError interface {
	PublicMessage() string
}

// Run asks for confirmation and performs a.Do at most once.
func (d Dialog) Run(ctx context.Context, in interaction.Interaction, ownerID string, a Action) (Outcome, error) {
	outcome, ev, err := d.Ask(ctx, in, ownerID, a.Prompt)
	if err != nil {
		return outcome, err
	}

	switch outcome {
	case Accepted:
		if err := ev.Respond(&discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}); err != nil {
			log.Printf("[WARN] Failed to acknowledge confirmation: %v", err)
		}
		if err := a.Do(ctx); err != nil {
			if editErr := interaction.EditContent(in, d.failureText(err, a.Failure)); editErr != nil {
				log.Printf("[WARN] Failed to show action failure: %v", editErr)
			}
			var pub publicError
			if !errors.As(err, &pub) {
				log.Printf("[ERR] Confirmed action failed: %v", err)
			}
			return outcome, nil
		}
		if err := interaction.EditContent(in, a.Success); err != nil {
			return outcome, err
		}
		if a.Announce != "" {
			return outcome, interaction.Followup(in, a.Announce)
		}
	case Declined:
		return outcome, interaction.Update(ev, &discordgo.InteractionResponseData{
			Content:    a.Cancelled,
			Components: []discordgo.MessageComponent{},
		})
	case TimedOut:
		return outcome, interaction.EditContent(in, a.Expired)
	}
	return outcome, nil
}

func (d Dialog) failureText(err error, fallback string) string {
	if d.Unauthenticated != "" && (errors.Is(err, croissant.ErrUnauthorized) || errors.Is(err, croissant.ErrNoToken)) {
		return d.Unauthenticated
	}
	var pub publicError
	if errors.As(err, &pub) && pub.PublicMessage() != "" {
		return pub.PublicMessage()
	}
	return fallback
}
