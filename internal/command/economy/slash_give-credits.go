package economy

import (
	"context"
	"errors"
	"fmt"
	"log"

	"croissant-bot/internal/command"
	"croissant-bot/internal/config"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"

	"github.com/bwmarrin/discordgo"
)

type GiveCreditsCommand struct{}

func (c *GiveCreditsCommand) Name() string        { return "give-credits" }
func (c *GiveCreditsCommand) Description() string { return "Transfer credits to another user" }
func (c *GiveCreditsCommand) Category() string    { return config.CategoryEconomy }

func (c *GiveCreditsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to give credits to",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "The amount of credits to transfer",
				Required:    true,
			},
		},
	}
}

func (c *GiveCreditsCommand) Run(ctx context.Context, dc *command.Context) error {
	in := dc.Interaction
	opts := dc.Options()
	me := dc.Invoker()
	target := opts.User(in, "user")
	amount, _ := opts.Int("amount")

	if target == nil || amount <= 0 {
		return interaction.RespondEphemeral(in, "The amount must be greater than 0 and the user must be valid.")
	}
	if target.ID == me.ID {
		return interaction.RespondEphemeral(in, "You cannot transfer credits to yourself.")
	}

	if _, err := dc.API.TransferCredits(ctx, target.ID, int(amount)); err != nil {
		if errors.Is(err, croissant.ErrUnauthorized) {
			return err
		}
		var apiErr *croissant.APIError
		if !errors.As(err, &apiErr) {
			log.Printf("[ERR] Credit transfer %s -> %s failed: %v", me.ID, target.ID, err)
		}
		return interaction.RespondEphemeral(in, croissant.Message(err, "Error while transferring credits."))
	}

	if err := interaction.RespondEphemeral(in, fmt.Sprintf("✅ You have transferred %d %s to <@%s>!", amount, command.EmojiCredits, target.ID)); err != nil {
		return err
	}
	return interaction.Followup(in, fmt.Sprintf("**<@%s>** gave %d %s to **<@%s>**!", me.ID, amount, command.EmojiCredits, target.ID))
}
