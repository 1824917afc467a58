package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"croissant-bot/internal/auth"
	"croissant-bot/internal/croissant"
	"croissant-bot/pkg/cmd"

	"github.com/fatih/color"
)

func newEnv(t *testing.T, routes map[string]any) (*Env, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	reg := cmd.NewRegistry()
	Register(reg)
	var out bytes.Buffer
	return &Env{
		API:      croissant.New(srv.URL + "/api"),
		Keys:     auth.Keyer{Secret: "s3cret"},
		Out:      &out,
		Registry: reg,
	}, &out
}

func TestTokenMatchesDerivation(t *testing.T) {
	env, out := newEnv(t, nil)

	if err := Run(t.Context(), env, []string{"token", "42"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != auth.GenKey("42", "s3cret") {
		t.Fatalf("unexpected token %q", got)
	}
}

func TestUsageErrors(t *testing.T) {
	env, out := newEnv(t, nil)

	err := Run(t.Context(), env, []string{"token"})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(out.String(), "usage: token <discord-user-id>") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestItemsFilters(t *testing.T) {
	env, out := newEnv(t, map[string]any{
		"/api/items": []map[string]any{
			{"itemId": "a1", "name": "Apple", "price": 3},
			{"itemId": "b1", "name": "Banana", "price": 5},
		},
	})

	if err := Run(t.Context(), env, []string{"items", "app"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "1 item(s)") || !strings.Contains(got, "Apple (3 credits)") || strings.Contains(got, "Banana") {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestInventoryResolvesCroissantUser(t *testing.T) {
	env, out := newEnv(t, map[string]any{
		"/api/users/42":        map[string]any{"userId": "cr-42", "username": "ann"},
		"/api/inventory/cr-42": map[string]any{"user_id": "cr-42", "inventory": []map[string]any{{"itemId": "a1", "name": "Apple", "amount": 4}}},
	})

	if err := Run(t.Context(), env, []string{"inventory", "42"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "ann's inventory") || !strings.Contains(got, "x4") || !strings.Contains(got, "Apple") {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestServerMessageIsPrinted(t *testing.T) {
	env, out := newEnv(t, nil)

	if err := Run(t.Context(), env, []string{"profile", "404"}); err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(out.String(), "profile: Not found") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestUnknownCommandFallsBackToHelp(t *testing.T) {
	env, out := newEnv(t, nil)

	if err := Run(t.Context(), env, []string{"nope"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{`unknown command "nope"`, "Commands", "inventory <discord-user-id>", "games"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
}
