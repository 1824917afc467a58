package inventory

import (
	"context"

	"croissant-bot/internal/command"
	"croissant-bot/internal/config"
	"croissant-bot/internal/interaction"

	"github.com/bwmarrin/discordgo"
)

type ViewInventoryCommand struct{}

func (c *ViewInventoryCommand) Name() string        { return "View Inventory" }
func (c *ViewInventoryCommand) Description() string { return "Show the inventory of this user" }
func (c *ViewInventoryCommand) Category() string    { return config.CategoryInventory }

func (c *ViewInventoryCommand) ContextDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name: c.Name(),
		Type: discordgo.UserApplicationCommand,
	}
}

func (c *ViewInventoryCommand) Run(ctx context.Context, dc *command.Context) error {
	target := interaction.TargetUser(dc.Interaction)
	if target == nil {
		return interaction.RespondEphemeral(dc.Interaction, msgFetchFailed)
	}
	return show(ctx, dc, target)
}
