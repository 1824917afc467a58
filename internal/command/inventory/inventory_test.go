package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"croissant-bot/internal/command"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"
	"croissant-bot/internal/interaction/interactiontest"
	"croissant-bot/internal/view"

	"github.com/bwmarrin/discordgo"
)

func newAPI(t *testing.T, userID string, items []croissant.Item) *croissant.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/users/" + userID:
			_ = json.NewEncoder(w).Encode(croissant.User{UserID: "cr-" + userID, Username: "someone"})
		case "/api/inventory/cr-" + userID:
			_ = json.NewEncoder(w).Encode(map[string]any{"user_id": "cr-" + userID, "inventory": items})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "User not found"})
		}
	}))
	t.Cleanup(srv.Close)
	return croissant.New(srv.URL + "/api")
}

func numbered(n int) []croissant.Item {
	items := make([]croissant.Item, n)
	for i := range items {
		items[i] = croissant.Item{ItemID: fmt.Sprint(i), Name: fmt.Sprintf("item-%02d", i+1), Amount: 1}
	}
	return items
}

func newContext(in interaction.Interaction, api *croissant.Client) *command.Context {
	return &command.Context{
		Interaction: in,
		API:         api,
		Timeouts:    command.Timeouts{Page: time.Minute, Confirm: time.Minute},
	}
}

func TestInventoryPagesTwentyItems(t *testing.T) {
	api := newAPI(t, "1", numbered(20))
	hub := interaction.NewHub()
	owner := interactiontest.User("1", "ann")
	in := interactiontest.New(interactiontest.Command(owner, "inventory"), hub)

	done := make(chan error, 1)
	go func() { done <- (&InventoryCommand{}).Run(context.Background(), newContext(in, api)) }()
	interactiontest.WaitCollector(t, hub, in.MessageID)

	first := in.Response(t).Data.Embeds[0]
	if first.Title != "ann's Inventory" || strings.Count(first.Description, "\n") != 14 || first.Footer.Text != "Page 1 of 2" {
		t.Fatalf("unexpected first page %+v", first)
	}

	foreign := interactiontest.New(interactiontest.Component(interactiontest.User("2", "bob"), in.MessageID, view.NextID), hub)
	hub.Deliver(foreign)
	if got := foreign.WaitResponse(t).Data.Content; got != command.MsgNotYourInventory {
		t.Fatalf("unexpected denial %q", got)
	}

	next := interactiontest.New(interactiontest.Component(owner, in.MessageID, view.NextID), hub)
	hub.Deliver(next)
	second := next.WaitResponse(t).Data.Embeds[0]
	if !strings.HasPrefix(second.Description, "**item-16** x1") || strings.Count(second.Description, "\n") != 4 {
		t.Fatalf("unexpected second page %q", second.Description)
	}
	if second.Footer.Text != "Page 2 of 2" {
		t.Fatalf("foreign click moved the page: %s", second.Footer.Text)
	}

	hub.Deliver(interactiontest.New(interactiontest.Component(owner, in.MessageID, view.CloseID), hub))
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
	interactiontest.WaitNoCollector(t, hub, in.MessageID)
}

func TestInventoryEmptyHasNoControls(t *testing.T) {
	api := newAPI(t, "2", nil)
	i := interactiontest.Command(interactiontest.User("1", "ann"), "inventory", interactiontest.UserOpt("user", "2"))
	interactiontest.WithUsers(i, &discordgo.User{ID: "2", Username: "bob"})
	in := interactiontest.New(i, nil)

	if err := (&InventoryCommand{}).Run(context.Background(), newContext(in, api)); err != nil {
		t.Fatalf("run: %v", err)
	}
	data := in.Response(t).Data
	if data.Content != ":open_file_folder: **bob**'s inventory is empty." || len(data.Components) != 0 {
		t.Fatalf("unexpected empty inventory %+v", data)
	}
}

func TestViewInventoryContextMenu(t *testing.T) {
	api := newAPI(t, "3", numbered(4))
	i := interactiontest.UserCommand(interactiontest.User("1", "ann"), "View Inventory", &discordgo.User{ID: "3", Username: "cat"})
	in := interactiontest.New(i, nil)

	if err := (&ViewInventoryCommand{}).Run(context.Background(), newContext(in, api)); err != nil {
		t.Fatalf("run: %v", err)
	}
	data := in.Response(t).Data
	if data.Embeds[0].Title != "cat's Inventory" || len(data.Components) != 0 {
		t.Fatalf("single page must render without controls: %+v", data)
	}
}

func TestInventoryUnknownUser(t *testing.T) {
	api := newAPI(t, "1", nil)
	i := interactiontest.Command(interactiontest.User("1", "ann"), "inventory", interactiontest.UserOpt("user", "9"))
	in := interactiontest.New(i, nil)

	if err := (&InventoryCommand{}).Run(context.Background(), newContext(in, api)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := in.Response(t).Data.Content; got != msgFetchFailed {
		t.Fatalf("unexpected reply %q", got)
	}
}
