package economy

import (
	"context"
	"fmt"

	"croissant-bot/internal/command"
	"croissant-bot/internal/config"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"
	"croissant-bot/internal/view"

	"github.com/bwmarrin/discordgo"
)

type TransferCommand struct{}

func (c *TransferCommand) Name() string        { return "transfer" }
func (c *TransferCommand) Description() string { return "Transfer an item to another user" }
func (c *TransferCommand) Category() string    { return config.CategoryInventory }

func (c *TransferCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to transfer the item to",
				Required:    true,
			},
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "item",
				Description:  "The item to transfer",
				Required:     true,
				Autocomplete: true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "The quantity to transfer",
				Required:    true,
			},
		},
	}
}

func (c *TransferCommand) Autocomplete(ctx context.Context, dc *command.Context) error {
	return inventoryChoices(ctx, dc)
}

func (c *TransferCommand) Run(ctx context.Context, dc *command.Context) error {
	in := dc.Interaction
	opts := dc.Options()
	me := dc.Invoker()
	target := opts.User(in, "user")
	ref := opts.String("item")
	amount, _ := opts.Int("amount")

	switch {
	case target == nil || ref == "" || amount == 0:
		return interaction.RespondEphemeral(in, "Invalid parameters.")
	case target.ID == me.ID:
		return interaction.RespondEphemeral(in, "You cannot transfer an item to yourself!")
	case amount < 0:
		return interaction.RespondEphemeral(in, "The quantity must be greater than 0!")
	}

	inv, err := dc.API.MyInventory(ctx)
	if err != nil {
		return fmt.Errorf("fetch inventory: %w", err)
	}
	item, ok := croissant.FindItem(inv.Items, ref)
	if !ok || int64(item.Amount) < amount {
		return interaction.RespondEphemeral(in, "You do not have enough of this item in your inventory.")
	}

	n := int(amount)
	_, err = dc.Dialog(command.MsgNotYourDialog).Run(ctx, in, me.ID, view.Action{
		Prompt: fmt.Sprintf("Are you sure you want to transfer %d **%s** to <@%s>?", n, item.Name, target.ID),
		Do: func(ctx context.Context) error {
			_, err := dc.API.TransferItem(ctx, item.ItemID, n, target.ID)
			return err
		},
		Success:   fmt.Sprintf("You have transferred %d **%s** to <@%s>!", n, item.Name, target.ID),
		Failure:   "Error during item transfer.",
		Cancelled: "Transfer cancelled.",
		Expired:   "No response. Transfer cancelled.",
		Announce:  fmt.Sprintf("**<@%s>** has transferred %d **%s** to **<@%s>**!", me.ID, n, item.Name, target.ID),
	})
	return err
}
