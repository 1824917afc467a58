package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"croissant-bot/internal/command"
	"croissant-bot/internal/config"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"

	"github.com/bwmarrin/discordgo"
)

const (
	profileColor = 0x3498db
	siteURL      = "https://croissant-api.fr"
)

// badgeEmojis lists the known badges in display order.
var badgeEmojis = []struct{ key, emoji string }{
	{"staff", command.EmojiStaff},
	{"bug_hunter", command.EmojiBugHunter},
	{"contributor", command.EmojiContributor},
	{"moderator", command.EmojiModerator},
	{"community_manager", command.EmojiCommunityManager},
	{"partner", command.EmojiPartner},
	{"early_user", command.EmojiEarlyUser},
}

type ProfileCommand struct{}

func (c *ProfileCommand) Name() string        { return "profile" }
func (c *ProfileCommand) Description() string { return "Displays your profile via the Croissant API" }
func (c *ProfileCommand) Category() string    { return config.CategoryAccount }

func (c *ProfileCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "The member whose profile to display",
			},
		},
	}
}

func (c *ProfileCommand) Run(ctx context.Context, dc *command.Context) error {
	target := dc.Options().User(dc.Interaction, "member")
	if target == nil {
		target = dc.Invoker()
	}

	user, err := dc.API.GetUser(ctx, target.ID)
	if err != nil {
		log.Printf("[WARN] Error fetching profile of %s: %v", target.ID, err)
		return interaction.RespondEmbedEphemeral(dc.Interaction, &discordgo.MessageEmbed{
			Title:       "❌ Profile not found",
			Description: "This user does not have a Croissant profile or an error occurred.",
			Color:       0xff0000,
		})
	}
	return interaction.RespondEmbed(dc.Interaction, profileEmbed(user))
}

// certification picks the single verification mark shown after the name.
func certification(u *croissant.User) string {
	switch {
	case u.Verified && u.Admin:
		return command.EmojiAdmin
	case u.Verified && u.IsStudio:
		return command.EmojiBrandVerified
	case u.Verified:
		return command.EmojiVerified
	}
	return ""
}

func badges(u *croissant.User) string {
	var out []string
	if u.Disabled {
		out = append(out, "🚫")
	}
	for _, b := range badgeEmojis {
		if u.Badges.Has(b.key) {
			out = append(out, b.emoji)
		}
	}
	if len(out) == 0 {
		return "None"
	}
	return strings.Join(out, " ")
}

func profileEmbed(u *croissant.User) *discordgo.MessageEmbed {
	title := "👤 Profile of " + u.Username
	if cert := certification(u); cert != "" {
		title += " " + cert
	}
	avatar := fmt.Sprintf("%s/avatar/%s", siteURL, u.UserID)
	return &discordgo.MessageEmbed{
		Title:     title,
		Color:     profileColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: avatar},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🏷️ Badges", Value: badges(u)},
			{Name: "📊 Statistics", Value: fmt.Sprintf(
				"🎮 Games created: %d\n🛍️ Owned items: %d\n🎒 Inventory: %d\n🏢 Studios: %d",
				len(u.CreatedGames), len(u.OwnedItems), len(u.Inventory), len(u.Studios),
			)},
			{Name: "🔗 Links", Value: fmt.Sprintf(
				"[View full profile](%s/profile?user=%s)\n[Avatar](%s)", siteURL, u.UserID, avatar,
			)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Croissant ID: " + u.UserID},
	}
}
