package interaction

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Options indexes command options by name.
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

func NewOptions(list []*discordgo.ApplicationCommandInteractionDataOption) Options {
	o := make(Options, len(list))
	for _, opt := range list {
		o[opt.Name] = opt
	}
	return o
}

// OptionsOf returns the top-level options of an application command.
func OptionsOf(in Interaction) Options {
	if !isCommand(in) {
		return Options{}
	}
	return NewOptions(in.Data().ApplicationCommandData().Options)
}

// Subcommand returns the invoked subcommand name and its options.
func Subcommand(in Interaction) (string, Options) {
	if !isCommand(in) {
		return "", Options{}
	}
	for _, opt := range in.Data().ApplicationCommandData().Options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			return opt.Name, NewOptions(opt.Options)
		}
	}
	return "", Options{}
}

func (o Options) Has(name string) bool {
	_, ok := o[name]
	return ok
}

func (o Options) String(name string) string {
	opt, ok := o[name]
	if !ok || opt.Value == nil {
		return ""
	}
	if s, ok := opt.Value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Int returns an integer option. Autocomplete payloads may carry partially
// typed numbers as strings; those report false.
func (o Options) Int(name string) (int64, bool) {
	opt, ok := o[name]
	if !ok || opt.Value == nil {
		return 0, false
	}
	switch v := opt.Value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

// User resolves a user option against the interaction's resolved data.
func (o Options) User(in Interaction, name string) *discordgo.User {
	id := o.String(name)
	if id == "" {
		return nil
	}
	return ResolveUser(in, id)
}

// ResolveUser looks id up in the resolved data, falling back to a bare user.
func ResolveUser(in Interaction, id string) *discordgo.User {
	if isCommand(in) {
		if r := in.Data().ApplicationCommandData().Resolved; r != nil {
			if u, ok := r.Users[id]; ok && u != nil {
				return u
			}
		}
	}
	return &discordgo.User{ID: id}
}

// Focused returns the option being typed in an autocomplete request.
func Focused(in Interaction) *discordgo.ApplicationCommandInteractionDataOption {
	if in.Data().Type != discordgo.InteractionApplicationCommandAutocomplete {
		return nil
	}
	return focused(in.Data().ApplicationCommandData().Options)
}

func focused(list []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range list {
		if opt.Focused {
			return opt
		}
		if f := focused(opt.Options); f != nil {
			return f
		}
	}
	return nil
}

// FocusedValue is the text typed so far in the focused option.
func FocusedValue(in Interaction) string {
	f := Focused(in)
	if f == nil || f.Value == nil {
		return ""
	}
	if s, ok := f.Value.(string); ok {
		return s
	}
	return ""
}

// TargetUser is the user a user context-menu command was invoked on.
func TargetUser(in Interaction) *discordgo.User {
	if !isCommand(in) {
		return nil
	}
	data := in.Data().ApplicationCommandData()
	if data.TargetID == "" {
		return nil
	}
	return ResolveUser(in, data.TargetID)
}

// ModalValue reads the first text input of a submitted modal.
func ModalValue(in Interaction) string {
	if in.Data().Type != discordgo.InteractionModalSubmit {
		return ""
	}
	for _, row := range in.Data().ModalSubmitData().Components {
		r, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range r.Components {
			if ti, ok := c.(*discordgo.TextInput); ok {
				return strings.TrimSpace(ti.Value)
			}
		}
	}
	return ""
}

// SelectedValues returns the values picked in a select menu event.
func SelectedValues(in Interaction) []string {
	if in.Data().Type != discordgo.InteractionMessageComponent {
		return nil
	}
	return in.Data().MessageComponentData().Values
}

func isCommand(in Interaction) bool {
	t := in.Data().Type
	return t == discordgo.InteractionApplicationCommand || t == discordgo.InteractionApplicationCommandAutocomplete
}
