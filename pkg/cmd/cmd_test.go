package cmd

import (
	"context"
	"strings"
	"testing"
)

type stubCommand struct {
	name string
	runs int
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub " + s.name }
func (s *stubCommand) Run(ctx context.Context, inv *Invocation) error {
	s.runs++
	return nil
}

func TestRegistrySortedAndReplaced(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubCommand{name: "shop"})
	reg.Register(&stubCommand{name: "buy"})
	reg.Register(&stubCommand{name: "help"})
	reg.Register(&stubCommand{name: "buy"})

	if reg.Len() != 3 {
		t.Fatalf("expected 3 commands, got %d", reg.Len())
	}
	var names []string
	for _, c := range reg.GetAll() {
		names = append(names, c.Name())
	}
	if got := strings.Join(names, ","); got != "buy,help,shop" {
		t.Fatalf("unexpected order %s", got)
	}
	if reg.Get("missing") != nil {
		t.Fatal("unknown name must return nil")
	}
}

func TestApplyOrderAndRoot(t *testing.T) {
	inner := &stubCommand{name: "buy"}
	var trace []string
	mw := func(tag string) Middleware {
		return func(next Command) Command {
			return Wrap(next, func(ctx context.Context, inv *Invocation) error {
				trace = append(trace, tag)
				return next.Run(ctx, inv)
			})
		}
	}

	c := Apply(inner, mw("inner"), mw("outer"))
	if err := c.Run(context.Background(), &Invocation{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Join(trace, ",") != "outer,inner" || inner.runs != 1 {
		t.Fatalf("unexpected trace %v runs=%d", trace, inner.runs)
	}
	if Root(c) != Command(inner) {
		t.Fatal("root must reach the inner command")
	}
	if c.Name() != "buy" || c.Description() != "stub buy" {
		t.Fatal("wrapper must keep identity")
	}
}
