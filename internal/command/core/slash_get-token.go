package core

import (
	"context"
	"fmt"

	"croissant-bot/internal/command"
	"croissant-bot/internal/config"
	"croissant-bot/internal/interaction"

	"github.com/bwmarrin/discordgo"
)

type GetTokenCommand struct{}

func (c *GetTokenCommand) Name() string        { return "get-token" }
func (c *GetTokenCommand) Description() string { return "Get a secret token to use the API" }
func (c *GetTokenCommand) Category() string    { return config.CategoryAccount }

func (c *GetTokenCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

// Run shows the token bound by the auth middleware.
func (c *GetTokenCommand) Run(ctx context.Context, dc *command.Context) error {
	token := dc.API.Token()
	if token == "" {
		return interaction.RespondEphemeral(dc.Interaction, "❌ Unable to identify user.")
	}
	return interaction.RespondEphemeral(dc.Interaction, fmt.Sprintf(
		"🔑 **Your API Token**\n\n`%s`\n\n⚠️ **Do not share this token with anyone!**\n\nUse this token to authenticate with the Croissant API.",
		token,
	))
}
