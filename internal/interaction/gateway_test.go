package interaction_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"croissant-bot/internal/interaction"
	"croissant-bot/internal/interaction/interactiontest"

	"github.com/bwmarrin/discordgo"
)

const original = "/webhooks/app/itok/messages/@original"

func gatewayCommand(t *testing.T) (*interactiontest.REST, *interaction.Gateway) {
	t.Helper()
	rest := interactiontest.NewREST(t)
	i := interactiontest.Command(interactiontest.User("1", "ann"), "inventory")
	i.AppID = "app"
	i.Token = "itok"
	return rest, interaction.NewGateway(rest.Session, i, interaction.NewHub())
}

func callbackType(t *testing.T, c interactiontest.Call) discordgo.InteractionResponseType {
	t.Helper()
	if c.Method != "POST" || !strings.HasSuffix(c.Path, "/itok/callback") {
		t.Fatalf("expected an interaction callback, got %s", c)
	}
	var resp discordgo.InteractionResponse
	if err := json.Unmarshal([]byte(c.Body), &resp); err != nil {
		t.Fatalf("decode callback %q: %v", c.Body, err)
	}
	return resp.Type
}

func TestGatewayFastReplyIsNotDeferred(t *testing.T) {
	rest, in := gatewayCommand(t)
	stop := in.DeferAfter(30 * time.Millisecond)
	defer stop()

	if err := interaction.RespondEphemeral(in, "done"); err != nil {
		t.Fatalf("respond: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	calls := rest.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected a single callback, got %v", calls)
	}
	if typ := callbackType(t, calls[0]); typ != discordgo.InteractionResponseChannelMessageWithSource {
		t.Fatalf("unexpected callback type %d", typ)
	}
}

func TestGatewaySlowHandlerIsDeferredThenEdited(t *testing.T) {
	rest, in := gatewayCommand(t)
	defer in.DeferAfter(10 * time.Millisecond)()

	rest.WaitCalls(t, 1)
	if typ := callbackType(t, rest.Calls()[0]); typ != discordgo.InteractionResponseDeferredChannelMessageWithSource {
		t.Fatalf("expected a deferral, got type %d", typ)
	}
	if !in.Responded() {
		t.Fatal("deferred interaction must count as responded")
	}

	if err := interaction.Respond(in, "inventory"); err != nil {
		t.Fatalf("respond: %v", err)
	}
	calls := rest.WaitCalls(t, 2)
	if calls[1].Method != "PATCH" || calls[1].Path != original {
		t.Fatalf("public reply must edit the deferred message, got %s", calls[1])
	}
}

func TestGatewayPrivateReplyAfterDeferralClearsPlaceholder(t *testing.T) {
	rest, in := gatewayCommand(t)
	defer in.DeferAfter(10 * time.Millisecond)()
	rest.WaitCalls(t, 1)

	if err := interaction.RespondEphemeral(in, "There was an error"); err != nil {
		t.Fatalf("respond: %v", err)
	}
	calls := rest.WaitCalls(t, 3)
	if calls[1].Method != "DELETE" || calls[1].Path != original {
		t.Fatalf("expected the placeholder to be deleted, got %s", calls[1])
	}
	if calls[2].Method != "POST" || calls[2].Path != "/webhooks/app/itok" || !strings.Contains(calls[2].Body, `"flags":64`) {
		t.Fatalf("expected an ephemeral followup, got %s %s", calls[2], calls[2].Body)
	}

	// The placeholder is gone; later private replies are plain followups.
	if err := interaction.RespondEphemeral(in, "again"); err != nil {
		t.Fatalf("second respond: %v", err)
	}
	calls = rest.WaitCalls(t, 4)
	if calls[3].Method != "POST" || calls[3].Path != "/webhooks/app/itok" {
		t.Fatalf("expected a followup, got %s", calls[3])
	}
}
