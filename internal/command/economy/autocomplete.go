package economy

import (
	"context"
	"log"

	"croissant-bot/internal/command"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"

	"github.com/bwmarrin/discordgo"
)

// shopChoices suggests shop items whose name or id contains the typed text.
func shopChoices(ctx context.Context, c *command.Context) error {
	items, err := c.API.ListItems(ctx)
	if err != nil {
		log.Printf("[WARN] Autocomplete /%s: list items: %v", interaction.CommandName(c.Interaction), err)
		return interaction.Autocomplete(c.Interaction, nil)
	}
	return interaction.Autocomplete(c.Interaction, itemChoices(items, interaction.FocusedValue(c.Interaction)))
}

// inventoryChoices suggests items the invoker owns.
func inventoryChoices(ctx context.Context, c *command.Context) error {
	inv, err := c.API.MyInventory(ctx)
	if err != nil {
		log.Printf("[WARN] Autocomplete /%s: inventory: %v", interaction.CommandName(c.Interaction), err)
		return interaction.Autocomplete(c.Interaction, nil)
	}
	return interaction.Autocomplete(c.Interaction, itemChoices(inv.Items, interaction.FocusedValue(c.Interaction)))
}

func itemChoices(items []croissant.Item, typed string) []*discordgo.ApplicationCommandOptionChoice {
	named := make([]croissant.Item, 0, len(items))
	for _, it := range items {
		if it.Name != "" {
			named = append(named, it)
		}
	}
	matches := croissant.FilterItems(named, typed, maxChoices)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(matches))
	for _, it := range matches {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(it.Name, 100),
			Value: it.ItemID,
		})
	}
	return choices
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
