// Package lobby manages the invoker's Croissant game lobby.
package lobby

import (
	"context"
	"errors"
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
	msgNotInLobby = "❌ You are not currently in any lobby."
	msgFailed     = "❌ Unable to process your lobby request."
	msgUsage      = "❓ **Lobby Commands:**\n\n• `/lobby info` - Show your current lobby info\n• `/lobby join <lobby_id>` - Join a lobby\n• `/lobby leave` - Leave your current lobby\n• `/lobby create` - Create a new lobby"
	lobbyURL      = "https://croissant-api.fr/lobby?id="
)

type LobbyCommand struct{}

func (c *LobbyCommand) Name() string        { return "lobby" }
func (c *LobbyCommand) Description() string { return "Manage Croissant lobbies" }
func (c *LobbyCommand) Category() string    { return config.CategoryLobbies }

func (c *LobbyCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "info",
				Description: "Show info about your current lobby",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "Show the lobby of another user instead",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "join",
				Description: "Join a lobby",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "lobby_id",
						Description: "Lobby ID to join",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "leave",
				Description: "Leave your current lobby",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Create a new lobby",
			},
		},
	}
}

func (c *LobbyCommand) Run(ctx context.Context, dc *command.Context) error {
	in := dc.Interaction
	sub, opts := interaction.Subcommand(in)

	var err error
	switch sub {
	case "info":
		err = c.info(ctx, dc, opts.User(in, "user"))
	case "join":
		err = c.join(ctx, dc, opts.String("lobby_id"))
	case "leave":
		err = c.leave(ctx, dc)
	case "create":
		err = c.create(ctx, dc)
	default:
		return interaction.RespondEphemeral(in, msgUsage)
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, croissant.ErrUnauthorized) || errors.Is(err, croissant.ErrNoToken) {
		return err
	}

	log.Printf("[WARN] Lobby command %s failed: %v", sub, err)
	if strings.Contains(croissant.Message(err, ""), "User not in any lobby") {
		return interaction.RespondEphemeral(in, msgNotInLobby)
	}
	return interaction.RespondEphemeral(in, msgFailed)
}

func (c *LobbyCommand) info(ctx context.Context, dc *command.Context, user *discordgo.User) error {
	var (
		lobby *croissant.Lobby
		err   error
	)
	if user != nil {
		lobby, err = dc.API.UserLobby(ctx, user.ID)
	} else {
		lobby, err = dc.API.MyLobby(ctx)
	}
	if err != nil {
		return err
	}
	return interaction.Respond(dc.Interaction, lobbyInfo(lobby))
}

func (c *LobbyCommand) join(ctx context.Context, dc *command.Context, lobbyID string) error {
	if lobbyID == "" {
		return interaction.RespondEphemeral(dc.Interaction, "❌ Please provide a lobby ID to join.")
	}
	if _, err := dc.API.JoinLobby(ctx, lobbyID); err != nil {
		return err
	}
	return interaction.Respond(dc.Interaction, fmt.Sprintf("✅ Successfully joined lobby `%s`!", lobbyID))
}

func (c *LobbyCommand) leave(ctx context.Context, dc *command.Context) error {
	lobby, err := dc.API.MyLobby(ctx)
	if err != nil {
		return err
	}
	if _, err := dc.API.LeaveLobby(ctx, lobby.LobbyID); err != nil {
		return err
	}
	return interaction.Respond(dc.Interaction, fmt.Sprintf("✅ Successfully left lobby `%s`.", lobby.LobbyID))
}

func (c *LobbyCommand) create(ctx context.Context, dc *command.Context) error {
	res, err := dc.API.CreateLobby(ctx)
	if err != nil {
		return err
	}
	if res.LobbyID == "" {
		return interaction.Respond(dc.Interaction, "✅ Lobby created!")
	}
	return interaction.Respond(dc.Interaction, fmt.Sprintf("✅ Lobby created: `%s`\n🔗 [View lobby details](%s%s)", res.LobbyID, lobbyURL, res.LobbyID))
}

func lobbyInfo(l *croissant.Lobby) string {
	members := "• No members"
	if len(l.Users) > 0 {
		lines := make([]string, 0, len(l.Users))
		for _, u := range l.Users {
			lines = append(lines, fmt.Sprintf("• **%s** (ID: %s)", u.Username, u.UserID))
		}
		members = strings.Join(lines, "\n")
	}
	return fmt.Sprintf("🏠 **Lobby Information**\n\n🏷️ **Lobby ID:** `%s`\n\n👥 **Members:**\n%s\n\n🔗 [View lobby details](%s%s)",
		l.LobbyID, members, lobbyURL, l.LobbyID)
}
