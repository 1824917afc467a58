package core

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"croissant-bot/internal/command"
	"croissant-bot/internal/config"
	"croissant-bot/internal/view"

	"github.com/bwmarrin/discordgo"
)

const (
	helpPageSize = 15
	helpColor    = 0x3498db
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Displays the bot's help menu" }
func (c *HelpCommand) Category() string    { return config.CategoryInformation }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *HelpCommand) Run(ctx context.Context, dc *command.Context) error {
	var list []command.CommandInfo
	if dc.Catalog != nil {
		list = helpEntries(dc.Catalog.Commands())
	}

	pager := &view.Pager[command.CommandInfo]{
		PageSize: helpPageSize,
		TTL:      dc.Timeouts.Page,
		Empty:    "No commands to display.",
		Denied:   command.MsgNotYourHelp,
		Render:   renderHelp,
	}
	_, err := pager.Run(ctx, dc.Interaction, dc.Invoker().ID, list)
	return err
}

// helpEntries keeps the public slash commands, ordered by category weight
// and then by name.
func helpEntries(all []command.CommandInfo) []command.CommandInfo {
	var out []command.CommandInfo
	for _, info := range all {
		if !info.Slash || strings.HasPrefix(info.Name, "admin-") {
			continue
		}
		out = append(out, info)
	}
	slices.SortStableFunc(out, func(a, b command.CommandInfo) int {
		return cmp.Or(
			cmp.Compare(config.CategoryWeights[a.Category], config.CategoryWeights[b.Category]),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return out
}

func renderHelp(s *view.State[command.CommandInfo]) *discordgo.MessageEmbed {
	lines := make([]string, 0, s.PageSize)
	for _, info := range s.Current() {
		desc := info.Description
		if desc == "" {
			desc = "*No description*"
		}
		lines = append(lines, fmt.Sprintf("%s : %s", mention(info), desc))
	}
	return &discordgo.MessageEmbed{
		Title:       "Bot Help",
		Description: strings.Join(lines, "\n"),
		Color:       helpColor,
		Footer:      view.Footer(s),
	}
}

// mention is the clickable </name:id> form once Discord assigned an id.
func mention(info command.CommandInfo) string {
	if info.ID == "" {
		return "`/" + info.Name + "`"
	}
	return fmt.Sprintf("</%s:%s>", info.Name, info.ID)
}
