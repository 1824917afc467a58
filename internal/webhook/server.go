// Package webhook serves Discord HTTP interactions. Each verified request is
// handed to the same router the gateway bot uses; the initial response is
// written to the HTTP reply, or a deferral when the handler is too slow.
package webhook

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"croissant-bot/internal/interaction"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// Dispatcher runs an interaction to completion.
type Dispatcher interface {
	Dispatch(ctx context.Context, in interaction.Interaction)
	Hub() *interaction.Hub
}

type Server struct {
	dispatcher Dispatcher
	rest       *discordgo.Session
	key        ed25519.PublicKey
	deferAfter time.Duration
	inflight   sync.WaitGroup
}

// New creates a server. rest is used for everything after the initial
// response; key is the application's public key.
func New(dispatcher Dispatcher, rest *discordgo.Session, key ed25519.PublicKey) *Server {
	return &Server{
		dispatcher: dispatcher,
		rest:       rest,
		key:        key,
		deferAfter: interaction.DeferAfter,
	}
}

// Handler returns the HTTP routes. Interactions run under ctx, which outlives
// the request so views keep collecting events after the reply is written.
func (s *Server) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(chimw.RealIP)
	r.Use(Logging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/interactions", s.interactions(ctx))
	return r
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] Interactions endpoint listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.inflight.Wait()
	log.Println("[INFO] Interactions endpoint stopped")
	return nil
}

func (s *Server) interactions(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !discordgo.VerifyInteraction(r, s.key) {
			http.Error(w, "invalid request signature", http.StatusUnauthorized)
			return
		}

		var i discordgo.Interaction
		if err := json.NewDecoder(r.Body).Decode(&i); err != nil {
			http.Error(w, "invalid interaction payload", http.StatusBadRequest)
			return
		}
		if i.Type == discordgo.InteractionPing {
			writeJSON(w, http.StatusOK, &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
			return
		}

		in := interaction.NewWebhook(s.rest, &i, s.dispatcher.Hub())
		defer in.MarkWritten()
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.dispatcher.Dispatch(ctx, in)
		}()

		timer := time.NewTimer(s.deferAfter)
		defer timer.Stop()

		var resp *discordgo.InteractionResponse
		select {
		case resp = <-in.Reply():
		case <-timer.C:
			if resp = in.Defer(); resp == nil {
				resp = <-in.Reply()
			}
		case <-r.Context().Done():
			return
		}
		writeJSON(w, http.StatusOK, resp)
		if err := http.NewResponseController(w).Flush(); err != nil {
			log.Printf("[WARN] Failed to flush interaction reply: %v", err)
		}
	}
}
