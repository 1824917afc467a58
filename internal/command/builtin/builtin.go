// Package builtin registers every bot command with its middleware chain.
package builtin

import (
	"croissant-bot/internal/command"
	"croissant-bot/internal/command/core"
	"croissant-bot/internal/command/economy"
	"croissant-bot/internal/command/inventory"
	"croissant-bot/internal/command/lobby"
	"croissant-bot/internal/middleware"
	"croissant-bot/pkg/cmd"
)

type Deps struct {
	Tokens  middleware.TokenSource
	History middleware.HistoryStore
}

// Register adds all commands to reg. Middlewares apply inside out: recovery
// sits next to the command and the history logger is outermost.
func Register(reg *cmd.Registry, d Deps) {
	public := []cmd.Middleware{
		middleware.WithRecovery(),
		middleware.WithCommandLogger(d.History),
	}
	optional := []cmd.Middleware{
		middleware.WithRecovery(),
		middleware.WithOptionalAuth(d.Tokens),
		middleware.WithCommandLogger(d.History),
	}
	authed := []cmd.Middleware{
		middleware.WithRecovery(),
		middleware.WithAuth(d.Tokens),
		middleware.WithCommandLogger(d.History),
	}

	for _, c := range []command.DiscordCommand{
		&core.HelpCommand{},
		&core.ProfileCommand{},
		&inventory.InventoryCommand{},
		&inventory.ViewInventoryCommand{},
	} {
		command.RegisterCommand(reg, c, public...)
	}

	command.RegisterCommand(reg, &economy.ShopCommand{}, optional...)

	for _, c := range []command.DiscordCommand{
		&core.GetTokenCommand{},
		economy.NewBuyCommand(),
		economy.NewSellCommand(),
		economy.NewDropCommand(),
		&economy.TransferCommand{},
		&economy.GiveCreditsCommand{},
		&lobby.LobbyCommand{},
	} {
		command.RegisterCommand(reg, c, authed...)
	}
}
