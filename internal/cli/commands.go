package cli

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"croissant-bot/internal/croissant"
	"croissant-bot/pkg/cmd"
)

type helpCommand struct{}

func (c *helpCommand) Name() string        { return "help" }
func (c *helpCommand) Description() string { return "List the available commands" }

func (c *helpCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	env, err := envOf(inv)
	if err != nil {
		return err
	}
	headingColor.Fprintln(env.Out, "Commands")
	for _, rc := range env.Registry.GetAll() {
		name := rc.Name()
		if u, ok := rc.(usager); ok {
			name += " " + u.Usage()
		}
		field(env.Out, name, rc.Description())
	}
	return nil
}

type tokenCommand struct{}

func (c *tokenCommand) Name() string        { return "token" }
func (c *tokenCommand) Description() string { return "Print the API token of a Discord user" }
func (c *tokenCommand) Usage() string       { return "<discord-user-id>" }

func (c *tokenCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	env, err := envOf(inv)
	if err != nil {
		return err
	}
	if len(inv.Args) != 1 {
		return ErrUsage
	}
	token, err := env.Keys.Key(inv.Args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Out, token)
	return nil
}

type itemsCommand struct{}

func (c *itemsCommand) Name() string        { return "items" }
func (c *itemsCommand) Description() string { return "List shop items, optionally filtered" }
func (c *itemsCommand) Usage() string       { return "[query]" }

func (c *itemsCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	env, err := envOf(inv)
	if err != nil {
		return err
	}
	items, err := env.API.ListItems(ctx)
	if err != nil {
		return err
	}
	if q := strings.Join(inv.Args, " "); q != "" {
		items = croissant.FilterItems(items, q, 0)
	}

	headingColor.Fprintf(env.Out, "%d item(s)\n", len(items))
	for _, it := range items {
		labelColor.Fprintf(env.Out, "%-38s", it.ItemID)
		valueColor.Fprintf(env.Out, "%s", it.Name)
		fmt.Fprintf(env.Out, " (%d credits)\n", it.Price)
	}
	return nil
}

type inventoryCommand struct{}

func (c *inventoryCommand) Name() string        { return "inventory" }
func (c *inventoryCommand) Description() string { return "Show the inventory of a Discord user" }
func (c *inventoryCommand) Usage() string       { return "<discord-user-id>" }

func (c *inventoryCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	env, err := envOf(inv)
	if err != nil {
		return err
	}
	if len(inv.Args) != 1 {
		return ErrUsage
	}
	user, err := env.API.GetUser(ctx, inv.Args[0])
	if err != nil {
		return err
	}
	owner := cmp.Or(user.UserID, inv.Args[0])
	items, err := env.API.GetInventory(ctx, owner)
	if err != nil {
		return err
	}

	headingColor.Fprintf(env.Out, "%s's inventory\n", cmp.Or(user.Username, owner))
	if len(items.Items) == 0 {
		fmt.Fprintln(env.Out, "empty")
		return nil
	}
	for _, it := range items.Items {
		field(env.Out, fmt.Sprintf("x%d", it.Amount), it.Name)
	}
	return nil
}

type profileCommand struct{}

func (c *profileCommand) Name() string        { return "profile" }
func (c *profileCommand) Description() string { return "Show the profile of a Discord user" }
func (c *profileCommand) Usage() string       { return "<discord-user-id>" }

func (c *profileCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	env, err := envOf(inv)
	if err != nil {
		return err
	}
	if len(inv.Args) != 1 {
		return ErrUsage
	}
	user, err := env.API.GetUser(ctx, inv.Args[0])
	if err != nil {
		return err
	}

	headingColor.Fprintln(env.Out, user.Username)
	field(env.Out, "id", user.UserID)
	field(env.Out, "balance", user.Balance)
	field(env.Out, "verified", user.Verified)
	field(env.Out, "admin", user.Admin)
	field(env.Out, "disabled", user.Disabled)
	if badges := user.Badges.Keys(); len(badges) > 0 {
		field(env.Out, "badges", strings.Join(badges, ", "))
	}
	field(env.Out, "games", len(user.CreatedGames))
	return nil
}

type gamesCommand struct{}

func (c *gamesCommand) Name() string        { return "games" }
func (c *gamesCommand) Description() string { return "List the games in the store" }

func (c *gamesCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	env, err := envOf(inv)
	if err != nil {
		return err
	}
	games, err := env.API.ListGames(ctx)
	if err != nil {
		return err
	}
	headingColor.Fprintf(env.Out, "%d game(s)\n", len(games))
	for _, g := range games {
		field(env.Out, g.Name, fmt.Sprintf("%d credits", g.Price))
	}
	return nil
}

type lobbyCommand struct{}

func (c *lobbyCommand) Name() string        { return "lobby" }
func (c *lobbyCommand) Description() string { return "Show the lobby a Discord user is in" }
func (c *lobbyCommand) Usage() string       { return "<discord-user-id>" }

func (c *lobbyCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	env, err := envOf(inv)
	if err != nil {
		return err
	}
	if len(inv.Args) != 1 {
		return ErrUsage
	}
	lobby, err := env.API.UserLobby(ctx, inv.Args[0])
	if err != nil {
		return err
	}
	headingColor.Fprintf(env.Out, "Lobby %s\n", lobby.LobbyID)
	for _, u := range lobby.Users {
		field(env.Out, u.UserID, u.Username)
	}
	return nil
}
