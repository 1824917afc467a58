package discord

import (
	"sync"

	"croissant-bot/internal/command"
	"croissant-bot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Commands are usable in guilds, in DMs with the bot and in private
// channels, for guild and user installs alike.
var (
	commandContexts = []discordgo.InteractionContextType{
		discordgo.InteractionContextGuild,
		discordgo.InteractionContextBotDM,
		discordgo.InteractionContextPrivateChannel,
	}
	commandIntegrations = []discordgo.ApplicationIntegrationType{
		discordgo.ApplicationIntegrationGuildInstall,
		discordgo.ApplicationIntegrationUserInstall,
	}
)

// Catalog lists the registry's commands together with the ids Discord
// assigned them on the last sync.
type Catalog struct {
	reg *cmd.Registry

	mu  sync.RWMutex
	ids map[string]string
}

func NewCatalog(reg *cmd.Registry) *Catalog {
	return &Catalog{reg: reg, ids: make(map[string]string)}
}

func (c *Catalog) Commands() []command.CommandInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []command.CommandInfo
	for _, rc := range c.reg.GetAll() {
		def := command.Definition(rc)
		if def == nil {
			continue
		}
		out = append(out, command.CommandInfo{
			Name:        def.Name,
			Description: def.Description,
			Category:    command.CategoryOf(rc),
			ID:          c.ids[def.Name],
			Slash:       def.Type == discordgo.ChatApplicationCommand,
		})
	}
	return out
}

// Definitions returns what gets registered with Discord, one per command.
func (c *Catalog) Definitions() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, rc := range c.reg.GetAll() {
		def := command.Definition(rc)
		if def == nil {
			continue
		}
		contexts := commandContexts
		integrations := commandIntegrations
		def.Contexts = &contexts
		def.IntegrationTypes = &integrations
		defs = append(defs, def)
	}
	return defs
}

func (c *Catalog) setIDs(ids map[string]string) {
	c.mu.Lock()
	c.ids = ids
	c.mu.Unlock()
}
