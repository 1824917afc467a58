package economy

import (
	"context"
	"fmt"
	"log"
	"strings"

	"croissant-bot/internal/command"
	"croissant-bot/internal/config"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"
	"croissant-bot/internal/view"

	"github.com/bwmarrin/discordgo"
)

const (
	shopPageSize = 9
	shopColor    = 0x43b581

	searchID      = "search"
	searchModalID = "shop_search_modal"
	searchInputID = "search_input"
	selectItemID  = "select_item"
)

type ShopCommand struct{}

func (c *ShopCommand) Name() string        { return "shop" }
func (c *ShopCommand) Description() string { return "Displays the item shop" }
func (c *ShopCommand) Category() string    { return config.CategoryEconomy }

func (c *ShopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *ShopCommand) Run(ctx context.Context, dc *command.Context) error {
	items, err := dc.API.ListItems(ctx)
	if err != nil {
		log.Printf("[ERR] Error while fetching shop items: %v", err)
		return interaction.Respond(dc.Interaction, "Error while fetching shop items.")
	}

	pager := &view.Pager[croissant.Item]{
		PageSize:   shopPageSize,
		TTL:        dc.Timeouts.Page,
		Empty:      ":shopping_cart: The shop is empty.",
		Denied:     command.MsgNotYourShop,
		Persistent: true,
		Render:     renderShop,
		Buttons: []discordgo.MessageComponent{
			discordgo.Button{CustomID: searchID, Label: "Search", Style: discordgo.PrimaryButton},
		},
		Rows: shopSelect,
		Handle: func(ctx context.Context, s *view.State[croissant.Item], ev interaction.Interaction) (bool, error) {
			switch interaction.CustomID(ev) {
			case searchID:
				return false, interaction.ShowModal(ev, searchModal())
			case searchModalID:
				s.Reset(filterShop(items, interaction.ModalValue(ev)))
				return true, nil
			case selectItemID:
				values := interaction.SelectedValues(ev)
				var item croissant.Item
				found := false
				if len(values) > 0 {
					item, found = croissant.FindItem(items, values[0])
				}
				if !found {
					return false, interaction.RespondEphemeral(ev, msgNoItem)
				}
				go purchase(ctx, dc, ev, item)
				return false, nil
			}
			return false, ev.Respond(&discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate})
		},
	}

	_, err = pager.Run(ctx, dc.Interaction, dc.Invoker().ID, items)
	return err
}

// filterShop keeps items whose name contains query; "all" restores the full list.
func filterShop(items []croissant.Item, query string) []croissant.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "all" {
		return items
	}
	var out []croissant.Item
	for _, it := range items {
		if it.Name != "" && strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}

func renderShop(s *view.State[croissant.Item]) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  "🛒 Shop",
		Color:  shopColor,
		Footer: view.Footer(s),
	}
	page := s.Current()
	if len(page) == 0 {
		embed.Description = "No items to display on this page."
		return embed
	}
	for _, it := range page {
		desc := it.Description
		if desc == "" {
			desc = "*No description*"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  it.Name,
			Value: fmt.Sprintf("**Price:** %d %s\n**Description:** %s", it.Price, command.EmojiCredits, desc),
		})
	}
	return embed
}

// shopSelect is the item picker for the current page. A page without items
// gets no picker since Discord rejects an empty select menu.
func shopSelect(s *view.State[croissant.Item]) []discordgo.MessageComponent {
	page := s.Current()
	if len(page) == 0 {
		return nil
	}
	options := make([]discordgo.SelectMenuOption, 0, len(page))
	for _, it := range page {
		desc := truncate(it.Description, 50)
		if desc == "" {
			desc = "No description"
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       truncate(it.Name, 100),
			Value:       it.ItemID,
			Description: desc,
			Emoji:       command.CreditsComponentEmoji(),
		})
	}
	minValues := 1
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    selectItemID,
				Placeholder: "Select an item to buy",
				MinValues:   &minValues,
				MaxValues:   1,
				Options:     options,
			},
		}},
	}
}

func searchModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: searchModalID,
		Title:    "Item Search",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID: searchInputID,
					Label:    "Item name (or 'all')",
					Style:    discordgo.TextInputShort,
					Required: true,
				},
			}},
		},
	}
}

// purchase buys one unit of item after the owner confirms on ev.
func purchase(ctx context.Context, dc *command.Context, ev interaction.Interaction, item croissant.Item) {
	if dc.API.Token() == "" {
		if err := interaction.RespondEphemeral(ev, command.MsgNotAuthenticated); err != nil {
			log.Printf("[WARN] Shop purchase: %v", err)
		}
		return
	}

	user := dc.Invoker()
	d := dc.Dialog(command.MsgNotYourDialog)
	d.ConfirmLabel = "Buy"
	outcome, err := d.Run(ctx, ev, user.ID, view.Action{
		Prompt: fmt.Sprintf("Do you want to buy **%s** for %d %s?", item.Name, item.Price, command.EmojiCredits),
		Do: func(ctx context.Context) error {
			_, err := dc.API.BuyItem(ctx, item.ItemID, 1)
			return err
		},
		Success:   fmt.Sprintf("✅ You bought **%s** for %d %s!", item.Name, item.Price, command.EmojiCredits),
		Failure:   "Failed to purchase the item.",
		Cancelled: "Purchase cancelled.",
		Expired:   "No response, purchase cancelled.",
		Announce:  fmt.Sprintf("**<@%s>** bought **%s** for %d %s! Congratulations!", user.ID, item.Name, item.Price, command.EmojiCredits),
	})
	if err != nil {
		log.Printf("[WARN] Shop purchase of %s by %s: %v", item.ItemID, user.ID, err)
		return
	}
	log.Printf("[DEBUG] Shop purchase of %s by %s: %s", item.ItemID, user.ID, outcome)
}
