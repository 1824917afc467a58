package discord

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"croissant-bot/internal/command"
	"croissant-bot/internal/command/builtin"
	"croissant-bot/internal/storage"
	"croissant-bot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type fakeCommandAPI struct {
	mu      sync.Mutex
	remote  map[string]*discordgo.ApplicationCommand
	created []string
	deleted []string
	seq     int
}

func newFakeCommandAPI() *fakeCommandAPI {
	return &fakeCommandAPI{remote: map[string]*discordgo.ApplicationCommand{}}
}

func (f *fakeCommandAPI) ApplicationCommands(appID, guildID string, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*discordgo.ApplicationCommand
	for _, c := range f.remote {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCommandAPI) ApplicationCommandCreate(appID, guildID string, c *discordgo.ApplicationCommand, _ ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("id-%s", c.Name)
	if prev, ok := f.remote[c.Name]; ok {
		id = prev.ID
	} else {
		f.seq++
	}
	f.remote[c.Name] = &discordgo.ApplicationCommand{ID: id, Name: c.Name, Description: c.Description}
	f.created = append(f.created, c.Name)
	return f.remote[c.Name], nil
}

func (f *fakeCommandAPI) ApplicationCommandDelete(appID, guildID, cmdID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, c := range f.remote {
		if c.ID == cmdID {
			delete(f.remote, name)
			f.deleted = append(f.deleted, name)
		}
	}
	return nil
}

func (f *fakeCommandAPI) reset() {
	f.mu.Lock()
	f.created, f.deleted = nil, nil
	f.mu.Unlock()
}

func newSyncer(t *testing.T) (*syncer, *fakeCommandAPI, *storage.Storage) {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "datastore.json"))
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	api := newFakeCommandAPI()
	return &syncer{api: api, store: store}, api, store
}

func defs(names ...string) []*discordgo.ApplicationCommand {
	var out []*discordgo.ApplicationCommand
	for _, n := range names {
		out = append(out, &discordgo.ApplicationCommand{Name: n, Description: n + " things", Type: discordgo.ChatApplicationCommand})
	}
	return out
}

func TestRegisterCommandsOnlySendsChanges(t *testing.T) {
	s, api, store := newSyncer(t)
	ctx := t.Context()

	ids, err := s.registerCommands(ctx, "app", "", defs("buy", "sell"))
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(api.created) != 2 || ids["buy"] != "id-buy" || ids["sell"] != "id-sell" {
		t.Fatalf("first sync: created %v ids %v", api.created, ids)
	}

	api.reset()
	ids, err = s.registerCommands(ctx, "app", "", defs("buy", "sell"))
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(api.created) != 0 {
		t.Fatalf("unchanged commands were sent again: %v", api.created)
	}
	if ids["buy"] != "id-buy" {
		t.Fatalf("ids must come from the remote list, got %v", ids)
	}

	api.reset()
	changed := defs("buy", "sell")
	changed[1].Description = "sell an item"
	if _, err := s.registerCommands(ctx, "app", "", changed); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !slices.Equal(api.created, []string{"sell"}) {
		t.Fatalf("expected only sell to be updated, got %v", api.created)
	}

	hashes, _ := store.CommandHashes(storage.GlobalScope)
	if hashes["sell"] != hashCommand(changed[1]) {
		t.Fatal("hash of the updated command not stored")
	}
}

func TestRegisterCommandsDeletesObsoleteAndRestoresMissing(t *testing.T) {
	s, api, store := newSyncer(t)
	ctx := t.Context()

	if _, err := s.registerCommands(ctx, "app", "guild", defs("buy", "sell", "drop")); err != nil {
		t.Fatalf("sync: %v", err)
	}

	api.reset()
	api.mu.Lock()
	delete(api.remote, "buy")
	api.mu.Unlock()

	ids, err := s.registerCommands(ctx, "app", "guild", defs("buy", "sell"))
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !slices.Equal(api.deleted, []string{"drop"}) {
		t.Fatalf("expected drop to be deleted, got %v", api.deleted)
	}
	if !slices.Equal(api.created, []string{"buy"}) {
		t.Fatalf("expected buy to be registered again, got %v", api.created)
	}
	if _, ok := ids["drop"]; ok {
		t.Fatal("deleted command still has an id")
	}

	hashes, _ := store.CommandHashes("guild")
	if _, ok := hashes["drop"]; ok || len(hashes) != 2 {
		t.Fatalf("unexpected hashes %v", hashes)
	}
	if global, _ := store.CommandHashes(storage.GlobalScope); len(global) != 0 {
		t.Fatalf("guild sync leaked into the global scope: %v", global)
	}
}

func TestRemoveAllCommands(t *testing.T) {
	s, api, store := newSyncer(t)
	ctx := t.Context()

	if _, err := s.registerCommands(ctx, "app", "", defs("buy", "sell")); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if err := s.removeAllCommands(ctx, "app", ""); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(api.remote) != 0 {
		t.Fatalf("commands left: %v", api.remote)
	}
	if hashes, _ := store.CommandHashes(""); len(hashes) != 0 {
		t.Fatalf("hashes left: %v", hashes)
	}

	api.reset()
	if _, err := s.registerCommands(ctx, "app", "", defs("buy", "sell")); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(api.created) != 2 {
		t.Fatalf("expected a full registration after clearing, got %v", api.created)
	}
}

func TestHashIgnoresOptionOrder(t *testing.T) {
	a := &discordgo.ApplicationCommand{Name: "buy", Description: "Buy", Options: []*discordgo.ApplicationCommandOption{
		{Name: "itemid", Type: discordgo.ApplicationCommandOptionString, Required: true, Autocomplete: true},
		{Name: "amount", Type: discordgo.ApplicationCommandOptionInteger},
	}}
	b := &discordgo.ApplicationCommand{Name: "buy", Description: "Buy", Options: []*discordgo.ApplicationCommandOption{
		a.Options[1], a.Options[0],
	}}
	if hashCommand(a) != hashCommand(b) {
		t.Fatal("option order must not change the hash")
	}

	c := &discordgo.ApplicationCommand{Name: "buy", Description: "Buy", Options: []*discordgo.ApplicationCommandOption{
		{Name: "itemid", Type: discordgo.ApplicationCommandOptionString, Required: true},
		a.Options[1],
	}}
	if hashCommand(a) == hashCommand(c) {
		t.Fatal("autocomplete flag must change the hash")
	}
}

func TestCatalogDefinitionsAndIDs(t *testing.T) {
	reg := cmd.NewRegistry()
	builtin.Register(reg, builtin.Deps{})
	catalog := NewCatalog(reg)

	defs := catalog.Definitions()
	if len(defs) != reg.Len() {
		t.Fatalf("expected %d definitions, got %d", reg.Len(), len(defs))
	}
	for _, d := range defs {
		if d.Contexts == nil || len(*d.Contexts) != 3 || d.IntegrationTypes == nil || len(*d.IntegrationTypes) != 2 {
			t.Fatalf("%s: missing contexts or integration types", d.Name)
		}
	}

	catalog.setIDs(map[string]string{"shop": "123"})
	var shop, menu command.CommandInfo
	for _, info := range catalog.Commands() {
		switch info.Name {
		case "shop":
			shop = info
		case "View Inventory":
			menu = info
		}
	}
	if shop.ID != "123" || !shop.Slash || shop.Category == "" {
		t.Fatalf("unexpected shop entry %+v", shop)
	}
	if menu.Name == "" || menu.Slash {
		t.Fatalf("unexpected context menu entry %+v", menu)
	}
}
