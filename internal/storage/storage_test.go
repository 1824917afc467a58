package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCommandHistoryKeepsLatest(t *testing.T) {
	s := newTestStorage(t)

	for i := 1; i <= 25; i++ {
		err := s.AppendCommandToHistory("guild", CommandHistoryRecord{
			UserID:   "1",
			Command:  fmt.Sprintf("cmd-%d", i),
			Datetime: time.Now(),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	history, err := s.FetchCommandHistory("guild")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(history) != commandHistoryLimit {
		t.Fatalf("expected %d entries, got %d", commandHistoryLimit, len(history))
	}
	if history[0].Command != "cmd-6" || history[len(history)-1].Command != "cmd-25" {
		t.Fatalf("unexpected window %s..%s", history[0].Command, history[len(history)-1].Command)
	}

	other, err := s.FetchCommandHistory("")
	if err != nil || len(other) != 0 {
		t.Fatalf("scopes must not share history: %v %v", other, err)
	}
}

func TestCommandHashesRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SetCommandHashes(GlobalScope, map[string]string{"buy": "abc"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.CommandHashes("")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["buy"] != "abc" {
		t.Fatalf("unexpected hashes %v", got)
	}

	got["buy"] = "mutated"
	again, _ := s.CommandHashes(GlobalScope)
	if again["buy"] != "abc" {
		t.Fatal("returned map must be a copy")
	}

	if err := s.ClearCommandHashes(GlobalScope); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cleared, _ := s.CommandHashes(GlobalScope); len(cleared) != 0 {
		t.Fatalf("expected no hashes, got %v", cleared)
	}
}
