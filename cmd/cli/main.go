// cmd/cli/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"croissant-bot/internal/auth"
	"croissant-bot/internal/cli"
	"croissant-bot/internal/config"
	"croissant-bot/internal/croissant"
	"croissant-bot/pkg/cmd"
	"croissant-bot/pkg/retrylimit"

	"golang.org/x/time/rate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	limit := rate.Limit(cfg.APIRate)
	reg := cmd.NewRegistry()
	cli.Register(reg)

	env := &cli.Env{
		API:      croissant.New(cfg.APIBase(), croissant.WithLimiter(retrylimit.NewAdaptiveLimiter(limit, 1, limit, 1, 0.5))),
		Keys:     auth.Keyer{Secret: cfg.HashSecret},
		Out:      os.Stdout,
		Registry: reg,
	}
	if err := cli.Run(ctx, env, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
