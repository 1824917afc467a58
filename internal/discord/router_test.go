package discord

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"croissant-bot/internal/auth"
	"croissant-bot/internal/command"
	"croissant-bot/internal/command/builtin"
	"croissant-bot/internal/config"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/interaction"
	"croissant-bot/internal/interaction/interactiontest"
	"croissant-bot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type stubCommand struct {
	name string
	run  func(ctx context.Context, c *command.Context) error
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub" }
func (s *stubCommand) Category() string    { return config.CategoryInformation }

func (s *stubCommand) Run(ctx context.Context, c *command.Context) error { return s.run(ctx, c) }

func (s *stubCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: s.name, Description: "stub"}
}

func newRouter(reg *cmd.Registry, api *croissant.Client) *Router {
	timeouts := command.Timeouts{Page: time.Second, Confirm: time.Second}
	hub := interaction.NewHub()
	hub.Grace = 20 * time.Millisecond
	return NewRouter(reg, hub, api, NewCatalog(reg), timeouts)
}

func ephemeralContent(t *testing.T, f *interactiontest.Fake) string {
	t.Helper()
	resp := f.Response(t)
	if resp.Data == nil || resp.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Fatalf("expected an ephemeral response, got %+v", resp)
	}
	return resp.Data.Content
}

func TestDispatchUnknownCommand(t *testing.T) {
	r := newRouter(cmd.NewRegistry(), nil)
	f := interactiontest.New(interactiontest.Command(interactiontest.User("1", "ann"), "nope"), r.Hub())

	r.Dispatch(t.Context(), f)

	if got := ephemeralContent(t, f); got != command.MsgCommandNotFound {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestDispatchUnknownAutocompleteAnswersNoChoices(t *testing.T) {
	r := newRouter(cmd.NewRegistry(), nil)
	f := interactiontest.New(interactiontest.Autocomplete(interactiontest.User("1", "ann"), "nope", "itemid", "a"), r.Hub())

	r.Dispatch(t.Context(), f)

	resp := f.Response(t)
	if resp.Type != discordgo.InteractionApplicationCommandAutocompleteResult || len(resp.Data.Choices) != 0 {
		t.Fatalf("unexpected autocomplete answer %+v", resp)
	}
}

func TestDispatchMapsCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", croissant.ErrUnauthorized, command.MsgNotAuthenticated},
		{"no token", croissant.ErrNoToken, command.MsgNotAuthenticated},
		{"wrapped unauthorized", errors.Join(errors.New("lobby"), croissant.ErrUnauthorized), command.MsgNotAuthenticated},
		{"other", errors.New("boom"), command.MsgCommandError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := cmd.NewRegistry()
			command.RegisterCommand(reg, &stubCommand{name: "fail", run: func(context.Context, *command.Context) error {
				return tt.err
			}})
			r := newRouter(reg, nil)
			f := interactiontest.New(interactiontest.Command(interactiontest.User("1", "ann"), "fail"), r.Hub())

			r.Dispatch(t.Context(), f)

			if got := ephemeralContent(t, f); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDispatchErrorAfterReplyIsFollowup(t *testing.T) {
	reg := cmd.NewRegistry()
	command.RegisterCommand(reg, &stubCommand{name: "late", run: func(_ context.Context, c *command.Context) error {
		if err := interaction.Respond(c.Interaction, "working"); err != nil {
			return err
		}
		return errors.New("boom")
	}})
	r := newRouter(reg, nil)
	f := interactiontest.New(interactiontest.Command(interactiontest.User("1", "ann"), "late"), r.Hub())

	r.Dispatch(t.Context(), f)

	fus := f.Followups()
	if len(fus) != 1 || !fus[0].Ephemeral || fus[0].Params.Content != command.MsgCommandError {
		t.Fatalf("unexpected followups %+v", fus)
	}
}

func TestDispatchRecoversPanics(t *testing.T) {
	reg := cmd.NewRegistry()
	command.RegisterCommand(reg, &stubCommand{name: "panic", run: func(context.Context, *command.Context) error {
		panic("kaboom")
	}})
	r := newRouter(reg, nil)
	f := interactiontest.New(interactiontest.Command(interactiontest.User("1", "ann"), "panic"), r.Hub())

	r.Dispatch(t.Context(), f)

	if got := ephemeralContent(t, f); got != command.MsgCommandError {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestDispatchComponentWithoutCollectorExpires(t *testing.T) {
	r := newRouter(cmd.NewRegistry(), nil)
	f := interactiontest.New(interactiontest.Component(interactiontest.User("1", "ann"), "gone", "next"), r.Hub())

	r.Dispatch(t.Context(), f)

	if got := ephemeralContent(t, f); got != command.MsgExpired {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestDispatchComponentReachesCollector(t *testing.T) {
	r := newRouter(cmd.NewRegistry(), nil)
	c := r.Hub().Collect("m1")
	defer c.Stop()

	f := interactiontest.New(interactiontest.Component(interactiontest.User("1", "ann"), "m1", "next"), r.Hub())
	r.Dispatch(t.Context(), f)

	select {
	case ev := <-c.Events():
		if interaction.CustomID(ev) != "next" {
			t.Fatalf("unexpected event %q", interaction.CustomID(ev))
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	if f.Responded() {
		t.Fatal("router must leave the answer to the collector owner")
	}
}

func TestUnauthenticatedUserMakesNoAPICalls(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := cmd.NewRegistry()
	builtin.Register(reg, builtin.Deps{Tokens: auth.Keyer{}})
	r := newRouter(reg, croissant.New(srv.URL+"/api"))

	invoker := interactiontest.User("1", "ann")
	for _, in := range []*discordgo.Interaction{
		interactiontest.Command(invoker, "buy", interactiontest.StringOpt("itemid", "apple"), interactiontest.IntOpt("amount", 2)),
		interactiontest.Command(invoker, "sell", interactiontest.StringOpt("itemid", "apple")),
		interactiontest.Command(invoker, "get-token"),
		interactiontest.Command(invoker, "lobby", interactiontest.SubOpt("leave")),
	} {
		f := interactiontest.New(in, r.Hub())
		r.Dispatch(t.Context(), f)
		if got := ephemeralContent(t, f); got != command.MsgNotAuthenticated {
			t.Fatalf("/%s: unexpected reply %q", interaction.CommandName(f), got)
		}
	}

	ac := interactiontest.New(interactiontest.Autocomplete(invoker, "buy", "itemid", "ap"), r.Hub())
	r.Dispatch(t.Context(), ac)
	if resp := ac.Response(t); len(resp.Data.Choices) != 0 {
		t.Fatalf("expected no choices, got %d", len(resp.Data.Choices))
	}

	if n := hits.Load(); n != 0 {
		t.Fatalf("expected no API calls, got %d", n)
	}
}
