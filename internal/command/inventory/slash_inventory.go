package inventory

import (
	"context"

	"croissant-bot/internal/command"
	"croissant-bot/internal/config"

	"github.com/bwmarrin/discordgo"
)

type InventoryCommand struct{}

func (c *InventoryCommand) Name() string        { return "inventory" }
func (c *InventoryCommand) Description() string { return "Displays a user's inventory" }
func (c *InventoryCommand) Category() string    { return config.CategoryInventory }

func (c *InventoryCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user whose inventory to display",
			},
		},
	}
}

func (c *InventoryCommand) Run(ctx context.Context, dc *command.Context) error {
	target := dc.Options().User(dc.Interaction, "user")
	if target == nil {
		target = dc.Invoker()
	}
	return show(ctx, dc, target)
}
