package core

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
	"croissant-bot/internal/config"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"
	"croissant-bot/internal/interaction/interactiontest"
	"croissant-bot/internal/view"

	"github.com/bwmarrin/discordgo"
)

type staticCatalog []command.CommandInfo

func (s staticCatalog) Commands() []command.CommandInfo { return s }

func newContext(in interaction.Interaction, api *croissant.Client, cat command.Catalog) *command.Context {
	return &command.Context{
		Interaction: in,
		API:         api,
		Catalog:     cat,
		Timeouts:    command.Timeouts{Page: time.Minute, Confirm: time.Minute},
	}
}

func TestHelpEntriesOrderAndFilter(t *testing.T) {
	got := helpEntries([]command.CommandInfo{
		{Name: "shop", Category: config.CategoryEconomy, Slash: true},
		{Name: "admin-reset", Category: config.CategoryInformation, Slash: true},
		{Name: "View Inventory", Category: config.CategoryInventory},
		{Name: "help", Category: config.CategoryInformation, Slash: true},
		{Name: "buy", Category: config.CategoryEconomy, Slash: true},
		{Name: "get-token", Category: config.CategoryAccount, Slash: true},
	})
	var names []string
	for _, info := range got {
		names = append(names, info.Name)
	}
	if strings.Join(names, ",") != "help,buy,shop,get-token" {
		t.Fatalf("unexpected help order %v", names)
	}
}

func TestHelpPaginatesAndMentions(t *testing.T) {
	var cat staticCatalog
	for i := range 17 {
		cat = append(cat, command.CommandInfo{Name: fmt.Sprintf("cmd-%02d", i), ID: fmt.Sprint(100 + i), Slash: true})
	}
	cat = append(cat, command.CommandInfo{Name: "zz-unsynced", Slash: true})

	hub := interaction.NewHub()
	owner := interactiontest.User("1", "ann")
	in := interactiontest.New(interactiontest.Command(owner, "help"), hub)

	done := make(chan error, 1)
	go func() { done <- (&HelpCommand{}).Run(context.Background(), newContext(in, nil, cat)) }()
	interactiontest.WaitCollector(t, hub, in.MessageID)

	embed := in.Response(t).Data.Embeds[0]
	if embed.Title != "Bot Help" || !strings.HasPrefix(embed.Description, "</cmd-00:100> : *No description*") {
		t.Fatalf("unexpected help page %+v", embed)
	}
	if embed.Footer.Text != "Page 1 of 2" {
		t.Fatalf("unexpected footer %q", embed.Footer.Text)
	}

	next := interactiontest.New(interactiontest.Component(owner, in.MessageID, view.NextID), hub)
	hub.Deliver(next)
	if desc := next.WaitResponse(t).Data.Embeds[0].Description; !strings.HasSuffix(desc, "`/zz-unsynced` : *No description*") {
		t.Fatalf("unexpected second page %q", desc)
	}

	hub.Deliver(interactiontest.New(interactiontest.Component(owner, in.MessageID, view.CloseID), hub))
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestGetTokenShowsBoundToken(t *testing.T) {
	in := interactiontest.New(interactiontest.Command(interactiontest.User("1", "ann"), "get-token"), nil)
	api := croissant.New("http://127.0.0.1:0/api").WithToken("abc123")

	if err := (&GetTokenCommand{}).Run(context.Background(), newContext(in, api, nil)); err != nil {
		t.Fatalf("run: %v", err)
	}
	data := in.Response(t).Data
	if !strings.Contains(data.Content, "`abc123`") || data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Fatalf("unexpected token reply %+v", data)
	}
}

func TestProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/2" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "User not found"})
			return
		}
		_, _ = w.Write([]byte(`{"userId":"2","username":"bob","verified":true,"isStudio":true,
			"badges":["early_user","staff"],"createdGames":[{},{}],"ownedItems":[],"inventory":[{}],"studios":[]}`))
	}))
	t.Cleanup(srv.Close)
	api := croissant.New(srv.URL + "/api")

	i := interactiontest.Command(interactiontest.User("1", "ann"), "profile", interactiontest.UserOpt("member", "2"))
	in := interactiontest.New(i, nil)
	if err := (&ProfileCommand{}).Run(context.Background(), newContext(in, api, nil)); err != nil {
		t.Fatalf("run: %v", err)
	}
	embed := in.Response(t).Data.Embeds[0]
	if embed.Title != "👤 Profile of bob "+command.EmojiBrandVerified {
		t.Fatalf("unexpected title %q", embed.Title)
	}
	if embed.Fields[0].Value != command.EmojiStaff+" "+command.EmojiEarlyUser {
		t.Fatalf("unexpected badges %q", embed.Fields[0].Value)
	}
	if !strings.Contains(embed.Fields[1].Value, "Games created: 2") || !strings.Contains(embed.Fields[1].Value, "Inventory: 1") {
		t.Fatalf("unexpected statistics %q", embed.Fields[1].Value)
	}

	missing := interactiontest.New(interactiontest.Command(interactiontest.User("9", "nobody"), "profile"), nil)
	if err := (&ProfileCommand{}).Run(context.Background(), newContext(missing, api, nil)); err != nil {
		t.Fatalf("run: %v", err)
	}
	data := missing.Response(t).Data
	if data.Embeds[0].Title != "❌ Profile not found" || data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Fatalf("unexpected missing profile reply %+v", data)
	}
}
