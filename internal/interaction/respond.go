package interaction

import "github.com/bwmarrin/discordgo"

// Invoker returns the user who triggered the interaction, in a guild or a DM.
func Invoker(in Interaction) *discordgo.User {
	i := in.Data()
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

func InvokerID(in Interaction) string { return Invoker(in).ID }

// CommandName is the application command name, or "" for other interaction types.
func CommandName(in Interaction) string {
	switch in.Data().Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		return in.Data().ApplicationCommandData().Name
	}
	return ""
}

// CustomID is the custom id of a component or modal event.
func CustomID(in Interaction) string {
	switch in.Data().Type {
	case discordgo.InteractionMessageComponent:
		return in.Data().MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return in.Data().ModalSubmitData().CustomID
	}
	return ""
}

// Reply shows data as the interaction's message: the initial response if
// none was sent yet, otherwise an edit of it.
func Reply(in Interaction, data *discordgo.InteractionResponseData) error {
	if !in.Responded() {
		return in.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		})
	}
	_, err := in.Edit(&discordgo.WebhookEdit{
		Content:    &data.Content,
		Embeds:     &data.Embeds,
		Components: &data.Components,
	})
	return err
}

// Respond sends a public text reply.
func Respond(in Interaction, content string) error {
	return Reply(in, &discordgo.InteractionResponseData{Content: content})
}

// RespondEphemeral sends a private text reply, as a followup if the
// interaction was already answered.
func RespondEphemeral(in Interaction, content string) error {
	if in.Responded() {
		_, err := in.Followup(&discordgo.WebhookParams{Content: content}, true)
		return err
	}
	return in.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondEmbed sends a public embed reply.
func RespondEmbed(in Interaction, embed *discordgo.MessageEmbed) error {
	return Reply(in, &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}})
}

// RespondEmbedEphemeral sends a private embed reply.
func RespondEmbedEphemeral(in Interaction, embed *discordgo.MessageEmbed) error {
	if in.Responded() {
		_, err := in.Followup(&discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{embed}}, true)
		return err
	}
	return in.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// RespondDeferredEphemeral acknowledges privately without a reply yet.
func RespondDeferredEphemeral(in Interaction) error {
	return in.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

// Update rewrites the message a component or modal event came from.
func Update(in Interaction, data *discordgo.InteractionResponseData) error {
	return in.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

// EditContent replaces the text of the initial response and drops its controls.
func EditContent(in Interaction, content string) error {
	_, err := in.Edit(&discordgo.WebhookEdit{
		Content:    &content,
		Components: &[]discordgo.MessageComponent{},
	})
	return err
}

// StripComponents removes every control from the initial response and keeps
// its content.
func StripComponents(in Interaction) error {
	_, err := in.Edit(&discordgo.WebhookEdit{Components: &[]discordgo.MessageComponent{}})
	return err
}

// Followup posts a public message after the initial response.
func Followup(in Interaction, content string) error {
	_, err := in.Followup(&discordgo.WebhookParams{Content: content}, false)
	return err
}

// ShowModal opens a modal in response to a command or component event.
func ShowModal(in Interaction, data *discordgo.InteractionResponseData) error {
	return in.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	})
}

// Autocomplete answers an autocomplete request.
func Autocomplete(in Interaction, choices []*discordgo.ApplicationCommandOptionChoice) error {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	return in.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}
