// Package inventory shows what a user owns, from a slash command or the user
// context menu.
package inventory

import (
	"context"
	"fmt"
	"log"
	"strings"

	"croissant-bot/internal/command"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"
	"croissant-bot/internal/view"

	"github.com/bwmarrin/discordgo"
)

const (
	pageSize       = 15
	inventoryColor = 0xFF69B4
	msgFetchFailed = "An error occurred while fetching the inventory."
)

// show renders the inventory of target as a paged embed owned by the invoker.
func show(ctx context.Context, c *command.Context, target *discordgo.User) error {
	userID := target.ID
	profile, err := c.API.GetUser(ctx, target.ID)
	switch {
	case err == nil && profile.UserID != "":
		userID = profile.UserID
	case err != nil:
		log.Printf("[ERR] Error while fetching inventory of %s: %v", target.ID, err)
		return interaction.RespondEphemeral(c.Interaction, msgFetchFailed)
	}

	inv, err := c.API.GetInventory(ctx, userID)
	if err != nil {
		log.Printf("[ERR] Error while fetching inventory of %s: %v", userID, err)
		return interaction.RespondEphemeral(c.Interaction, msgFetchFailed)
	}

	pager := &view.Pager[croissant.Item]{
		PageSize: pageSize,
		TTL:      c.Timeouts.Page,
		Empty:    fmt.Sprintf(":open_file_folder: **%s**'s inventory is empty.", target.Username),
		Denied:   command.MsgNotYourInventory,
		Render: func(s *view.State[croissant.Item]) *discordgo.MessageEmbed {
			return renderInventory(target, s)
		},
	}
	_, err = pager.Run(ctx, c.Interaction, c.Invoker().ID, inv.Items)
	return err
}

func renderInventory(target *discordgo.User, s *view.State[croissant.Item]) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("%s's Inventory", target.Username),
		Color:     inventoryColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("")},
		Footer:    view.Footer(s),
	}
	page := s.Current()
	if len(page) == 0 {
		embed.Description = "No items to display on this page."
		return embed
	}
	lines := make([]string, 0, len(page))
	for _, it := range page {
		line := "**" + it.Name + "**"
		if it.Amount > 0 {
			line += fmt.Sprintf(" x%d", it.Amount)
		}
		lines = append(lines, line)
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}
