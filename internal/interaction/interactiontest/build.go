package interactiontest

import (
	"strconv"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

var nextID atomic.Int64

func newID() string { return strconv.FormatInt(nextID.Add(1), 10) }

// User builds a guild member invoker.
func User(id, name string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: id, Username: name, GlobalName: name}}
}

// Command builds a slash command interaction.
func Command(invoker *discordgo.Member, name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:      newID(),
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "guild",
		Member:  invoker,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:        name,
			CommandType: discordgo.ChatApplicationCommand,
			Options:     opts,
			Resolved:    &discordgo.ApplicationCommandInteractionDataResolved{Users: map[string]*discordgo.User{}},
		},
	}
}

// WithUsers adds users to a command's resolved data.
func WithUsers(i *discordgo.Interaction, users ...*discordgo.User) *discordgo.Interaction {
	data := i.Data.(discordgo.ApplicationCommandInteractionData)
	for _, u := range users {
		data.Resolved.Users[u.ID] = u
	}
	i.Data = data
	return i
}

// UserCommand builds a user context-menu interaction targeting target.
func UserCommand(invoker *discordgo.Member, name string, target *discordgo.User) *discordgo.Interaction {
	i := Command(invoker, name)
	data := i.Data.(discordgo.ApplicationCommandInteractionData)
	data.CommandType = discordgo.UserApplicationCommand
	data.TargetID = target.ID
	data.Resolved.Users[target.ID] = target
	i.Data = data
	return i
}

// Autocomplete builds an autocomplete request with focus on the given option.
func Autocomplete(invoker *discordgo.Member, name, option, typed string) *discordgo.Interaction {
	i := Command(invoker, name, &discordgo.ApplicationCommandInteractionDataOption{
		Name:    option,
		Type:    discordgo.ApplicationCommandOptionString,
		Value:   typed,
		Focused: true,
	})
	i.Type = discordgo.InteractionApplicationCommandAutocomplete
	return i
}

// Component builds a button or select event on messageID.
func Component(invoker *discordgo.Member, messageID, customID string, values ...string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:      newID(),
		Type:    discordgo.InteractionMessageComponent,
		GuildID: "guild",
		Member:  invoker,
		Message: &discordgo.Message{ID: messageID},
		Data: discordgo.MessageComponentInteractionData{
			CustomID: customID,
			Values:   values,
		},
	}
}

// ModalSubmit builds a modal submission with a single text input.
func ModalSubmit(invoker *discordgo.Member, messageID, customID, inputID, value string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:      newID(),
		Type:    discordgo.InteractionModalSubmit,
		GuildID: "guild",
		Member:  invoker,
		Message: &discordgo.Message{ID: messageID},
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: customID,
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: inputID, Value: value},
				}},
			},
		},
	}
}

// StringOpt builds a string option.
func StringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

// IntOpt builds an integer option the way decoded JSON carries it.
func IntOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

// UserOpt builds a user option.
func UserOpt(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionUser, Value: id}
}

// SubOpt builds a subcommand option.
func SubOpt(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionSubCommand, Options: opts}
}
