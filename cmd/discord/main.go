// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"croissant-bot/internal/auth"
	"croissant-bot/internal/command"
	"croissant-bot/internal/command/builtin"
	"croissant-bot/internal/config"
	"croissant-bot/internal/croissant"
	"croissant-bot/internal/discord"
	"croissant-bot/internal/interaction"
	"croissant-bot/internal/storage"
	v "croissant-bot/internal/version"
	"croissant-bot/internal/webhook"
	"croissant-bot/pkg/cmd"
	"croissant-bot/pkg/retrylimit"

	"golang.org/x/time/rate"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}
	if cfg.HashSecret == "" {
		log.Println("[WARN] HASH_SECRET is empty, every user will be treated as unauthenticated")
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal("[ERR] ", err)
	}
	defer store.Close()

	limit := rate.Limit(cfg.APIRate)
	api := croissant.New(cfg.APIBase(),
		croissant.WithLimiter(retrylimit.NewAdaptiveLimiter(limit, 1, 2*limit, 1, 0.5)))

	reg := cmd.NewRegistry()
	builtin.Register(reg, builtin.Deps{
		Tokens:  auth.Keyer{Secret: cfg.HashSecret},
		History: store,
	})
	log.Printf("[INFO] %d command(s) registered", reg.Len())

	catalog := discord.NewCatalog(reg)
	router := discord.NewRouter(reg, interaction.NewHub(), api, catalog, command.Timeouts{
		Page:    cfg.PageTimeout,
		Confirm: cfg.ConfirmTimeout,
	})

	bot, err := discord.NewBot(cfg, store, catalog, router)
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	// Both runners drain their work before returning; store.Close waits on them.
	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	if cfg.HTTPAddr != "" {
		key, _ := cfg.PublicKey()
		srv := webhook.New(router, bot.Session(), key)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
				errCh <- err
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		log.Println("[ERR] Discord bot error:", err)
		cancel()
	}

	wg.Wait()
	log.Println("[INFO] Discord bot exited cleanly")
}
