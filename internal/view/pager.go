// Package view holds the interactive message controllers shared by commands:
// a paginated embed with navigation buttons and a Confirm/Cancel dialog.
// Both answer only the user who opened them and tear down on a fixed timer.
package view

import (
	"context"
	"fmt"
	"log"
	"time"

	"croissant-bot/internal/interaction"

	"github.com/bwmarrin/discordgo"
)

const (
	PrevID  = "prev"
	NextID  = "next"
	CloseID = "close"
)

const defaultPageTTL = 60 * time.Second

// State is the paging position of one rendered message.
type State[T any] struct {
	Page      int
	PageSize  int
	Items     []T
	OwnerID   string
	MessageID string
}

func NewState[T any](items []T, size int, ownerID string) *State[T] {
	return &State[T]{Page: 1, PageSize: max(1, size), Items: items, OwnerID: ownerID}
}

func (s *State[T]) Pages() int { return PageCount(len(s.Items), s.PageSize) }

func (s *State[T]) Current() []T { return PageSlice(s.Items, s.Page, s.PageSize) }

// Move shifts the page by delta within bounds and reports whether it changed.
func (s *State[T]) Move(delta int) bool {
	next := clamp(s.Page+delta, 1, s.Pages())
	if next == s.Page {
		return false
	}
	s.Page = next
	return true
}

// Reset swaps the item list and goes back to the first page.
func (s *State[T]) Reset(items []T) {
	s.Items = items
	s.Page = 1
}

// PageCount is ceil(n/size), never less than 1.
func PageCount(n, size int) int {
	size = max(1, size)
	return max(1, (n+size-1)/size)
}

// PageSlice returns the items shown on page (1-based, clamped).
func PageSlice[T any](items []T, page, size int) []T {
	size = max(1, size)
	page = clamp(page, 1, PageCount(len(items), size))
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	return items[start:min(start+size, len(items))]
}

// NavRow is the Previous / Next / extra / Close row for page of pages.
func NavRow(page, pages int, extra ...discordgo.MessageComponent) discordgo.ActionsRow {
	row := []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: PrevID,
			Label:    "Previous",
			Emoji:    &discordgo.ComponentEmoji{Name: "⬅️"},
			Style:    discordgo.SecondaryButton,
			Disabled: page <= 1,
		},
		discordgo.Button{
			CustomID: NextID,
			Label:    "Next",
			Emoji:    &discordgo.ComponentEmoji{Name: "➡️"},
			Style:    discordgo.SecondaryButton,
			Disabled: page >= pages,
		},
	}
	row = append(row, extra...)
	row = append(row, discordgo.Button{
		CustomID: CloseID,
		Label:    "Close",
		Emoji:    &discordgo.ComponentEmoji{Name: "✖️"},
		Style:    discordgo.DangerButton,
	})
	return discordgo.ActionsRow{Components: row}
}

// Controls returns the navigation controls, or none when one page holds everything.
func Controls(page, pages int) []discordgo.MessageComponent {
	if pages <= 1 {
		return nil
	}
	return []discordgo.MessageComponent{NavRow(page, pages)}
}

// Pager renders a list one page at a time and follows the owner's clicks
// until closed or until TTL elapses from the first render.
type Pager[T any] struct {
	PageSize int
	TTL      time.Duration
	// Empty is shown, without controls, when there is nothing to list.
	Empty string
	// Denied is the private notice for clicks by anyone but the owner.
	Denied string
	Render func(s *State[T]) *discordgo.MessageEmbed

	// Persistent keeps the controls on a single page.
	Persistent bool
	// Buttons go in the navigation row, before Close.
	Buttons []discordgo.MessageComponent
	// Rows go under the navigation row.
	Rows func(s *State[T]) []discordgo.MessageComponent
	// Handle gets owner events with any other custom id. It either responds
	// to ev itself, or returns true to have the current page re-rendered as
	// ev's response.
	Handle func(ctx context.Context, s *State[T], ev interaction.Interaction) (bool, error)
}

// Run shows items to ownerID through in and blocks until the view ends.
func (p *Pager[T]) Run(ctx context.Context, in interaction.Interaction, ownerID string, items []T) (*State[T], error) {
	if len(items) == 0 {
		return nil, interaction.Reply(in, &discordgo.InteractionResponseData{
			Content:    p.Empty,
			Components: []discordgo.MessageComponent{},
		})
	}

	s := NewState(items, p.PageSize, ownerID)
	if err := interaction.Reply(in, p.page(s)); err != nil {
		return s, fmt.Errorf("render page: %w", err)
	}
	if !p.interactive(s) {
		return s, nil
	}

	msg, err := in.Message()
	if err != nil {
		return s, fmt.Errorf("fetch page message: %w", err)
	}
	s.MessageID = msg.ID

	// Clicks landing before this point are held by the hub for its Grace.
	col := in.Collect(msg.ID)
	defer col.Stop()

	ttl := p.TTL
	if ttl <= 0 {
		ttl = defaultPageTTL
	}
	timer := time.NewTimer(ttl)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.expire(in)
			return s, nil
		case <-timer.C:
			p.expire(in)
			return s, nil
		case ev := <-col.Events():
			done, err := p.handle(ctx, s, ev)
			if err != nil {
				log.Printf("[WARN] Pager %s: failed to handle %q: %v", s.MessageID, interaction.CustomID(ev), err)
			}
			if done {
				return s, nil
			}
		}
	}
}

func (p *Pager[T]) handle(ctx context.Context, s *State[T], ev interaction.Interaction) (bool, error) {
	if interaction.InvokerID(ev) != s.OwnerID {
		return false, interaction.RespondEphemeral(ev, p.Denied)
	}

	switch interaction.CustomID(ev) {
	case PrevID:
		s.Move(-1)
		return false, interaction.Update(ev, p.page(s))
	case NextID:
		s.Move(1)
		return false, interaction.Update(ev, p.page(s))
	case CloseID:
		return true, interaction.Update(ev, &discordgo.InteractionResponseData{
			Components: []discordgo.MessageComponent{},
		})
	}

	if p.Handle == nil {
		return false, ev.Respond(&discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate})
	}
	rerender, err := p.Handle(ctx, s, ev)
	if err != nil || !rerender {
		return false, err
	}
	return false, interaction.Update(ev, p.page(s))
}

func (p *Pager[T]) interactive(s *State[T]) bool {
	return p.Persistent || s.Pages() > 1
}

func (p *Pager[T]) page(s *State[T]) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{p.Render(s)},
		Components: p.components(s),
	}
}

func (p *Pager[T]) components(s *State[T]) []discordgo.MessageComponent {
	if !p.interactive(s) {
		return []discordgo.MessageComponent{}
	}
	comps := []discordgo.MessageComponent{NavRow(s.Page, s.Pages(), p.Buttons...)}
	if p.Rows != nil {
		comps = append(comps, p.Rows(s)...)
	}
	return comps
}

func (p *Pager[T]) expire(in interaction.Interaction) {
	if err := interaction.StripComponents(in); err != nil {
		log.Printf("[WARN] Failed to strip expired controls: %v", err)
	}
}

// Footer is the "Page X of Y" footer shared by paged embeds.
func Footer[T any](s *State[T]) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Page %d of %d", s.Page, s.Pages())}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
