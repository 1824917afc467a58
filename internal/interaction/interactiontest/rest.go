package interactiontest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// Call is one request the REST session made.
type Call struct {
	Method string
	Path   string
	Body   string
}

func (c Call) String() string { return c.Method + " " + c.Path }

// REST is a Discord REST API stand-in that records every call.
type REST struct {
	Session *discordgo.Session

	mu    sync.Mutex
	calls []Call
}

// NewREST returns a session whose requests all land on a local recorder.
func NewREST(t testing.TB) *REST {
	t.Helper()
	r := &REST{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		path := strings.TrimPrefix(req.URL.Path, "/api/v"+discordgo.APIVersion)
		r.mu.Lock()
		r.calls = append(r.calls, Call{Method: req.Method, Path: path, Body: string(body)})
		r.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"m1"}`)
	}))
	t.Cleanup(srv.Close)

	base, _ := url.Parse(srv.URL)
	s, err := discordgo.New("Bot test")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	s.Client = &http.Client{Transport: redirect{base: base, next: srv.Client().Transport}}
	r.Session = s
	return r
}

func (r *REST) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// WaitCalls blocks until at least n calls are recorded.
func (r *REST) WaitCalls(t testing.TB, n int) []Call {
	t.Helper()
	waitFor(t, fmt.Sprintf("%d REST calls", n), func() bool { return len(r.Calls()) >= n })
	return r.Calls()
}

type redirect struct {
	base *url.URL
	next http.RoundTripper
}

func (rd redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rd.base.Scheme
	req.URL.Host = rd.base.Host
	req.Host = rd.base.Host
	return rd.next.RoundTrip(req)
}
