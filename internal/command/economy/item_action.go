// Package economy holds the commands that move credits and items: buy, sell,
// drop, transfer, give-credits and the shop.
package economy

import (
	"context"
	"fmt"
	"log"

	"croissant-bot/internal/command"
	"croissant-bot/internal/config"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"
	"croissant-bot/internal/view"

	"github.com/bwmarrin/discordgo"
)

const (
	maxAmount   = 1000
	maxChoices  = 25
	optItemID   = "itemid"
	optAmount   = "amount"
	msgBadInput = "Invalid item ID or amount (must be 1-1000)."
	msgNoItem   = "Item not found."
)

// itemAction is one of the shop actions a user takes on an item with a
// quantity, confirmed before it is sent.
type itemAction struct {
	name        string
	description string
	verb        string // "buy"
	past        string // "bought"
	noun        string // "Buy"
	announce    bool
	// unpriced actions name the quantity instead of a credit total.
	unpriced bool
	call     func(api *croissant.Client, ctx context.Context, itemID string, amount int) (*croissant.Result, error)
}

func (a *itemAction) Name() string        { return a.name }
func (a *itemAction) Description() string { return a.description }
func (a *itemAction) Category() string    { return config.CategoryEconomy }

func (a *itemAction) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        a.name,
		Description: a.description,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         optItemID,
				Description:  fmt.Sprintf("The ID of the item to %s", a.verb),
				Required:     true,
				Autocomplete: true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optAmount,
				Description: fmt.Sprintf("The amount to %s", a.verb),
			},
		},
	}
}

func (a *itemAction) Autocomplete(ctx context.Context, c *command.Context) error {
	return shopChoices(ctx, c)
}

func (a *itemAction) Run(ctx context.Context, c *command.Context) error {
	opts := c.Options()
	ref := opts.String(optItemID)
	amount, err := parseAmount(opts)
	if ref == "" || err != nil {
		return interaction.RespondEphemeral(c.Interaction, msgBadInput)
	}

	items, err := c.API.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}
	item, ok := croissant.FindItem(items, ref)
	if !ok {
		return interaction.RespondEphemeral(c.Interaction, msgNoItem)
	}

	total := item.Price * amount
	user := c.Invoker()
	outcome, err := c.Dialog(command.MsgNotYourDialog).Run(ctx, c.Interaction, user.ID, view.Action{
		Prompt: fmt.Sprintf("Are you sure you want to %s %s?", a.verb, a.object(item, amount)),
		Do: func(ctx context.Context) error {
			_, err := a.call(c.API, ctx, item.ItemID, amount)
			return err
		},
		Success:   fmt.Sprintf("Successfully %s %s!", a.past, a.object(item, amount)),
		Failure:   fmt.Sprintf("Failed to %s item.", a.verb),
		Cancelled: a.noun + " cancelled.",
		Expired:   "No response. " + a.noun + " cancelled.",
		Announce:  a.announcement(user.ID, item.Name, total),
	})
	if err != nil {
		return err
	}
	log.Printf("[DEBUG] /%s %s x%d by %s: %s", a.name, item.ItemID, amount, user.ID, outcome)
	return nil
}

// object is "`Name` for 200 <credits>", or "3 `Name`" for unpriced actions.
func (a *itemAction) object(item croissant.Item, amount int) string {
	if a.unpriced {
		return fmt.Sprintf("%d `%s`", amount, item.Name)
	}
	return fmt.Sprintf("`%s` for %d %s", item.Name, item.Price*amount, command.EmojiCredits)
}

func (a *itemAction) announcement(userID, itemName string, total int) string {
	if !a.announce {
		return ""
	}
	return fmt.Sprintf("**<@%s>** %s `%s` for %d %s! Congrats!", userID, a.past, itemName, total, command.EmojiCredits)
}

// parseAmount reads the optional amount: missing means 1, negatives count by
// their absolute value, and the result must be within 1..1000.
func parseAmount(opts interaction.Options) (int, error) {
	n, ok := opts.Int(optAmount)
	if !ok || n == 0 {
		n = 1
	}
	if n < 0 {
		n = -n
	}
	if n < 1 || n > maxAmount {
		return 0, fmt.Errorf("amount %d out of range", n)
	}
	return int(n), nil
}

func NewBuyCommand() command.DiscordCommand {
	return &itemAction{
		name:        "buy",
		description: "Buy an item from the store!",
		verb:        "buy",
		past:        "bought",
		noun:        "Buy",
		announce:    true,
		call:        (*croissant.Client).BuyItem,
	}
}

func NewSellCommand() command.DiscordCommand {
	return &itemAction{
		name:        "sell",
		description: "Sell an item from your inventory!",
		verb:        "sell",
		past:        "sold",
		noun:        "Sell",
		call:        (*croissant.Client).SellItem,
	}
}

func NewDropCommand() command.DiscordCommand {
	return &itemAction{
		name:        "drop",
		description: "Drop an item from your inventory!",
		verb:        "drop",
		past:        "dropped",
		noun:        "Drop",
		unpriced:    true,
		call:        (*croissant.Client).DropItem,
	}
}
