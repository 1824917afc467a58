package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"croissant-bot/internal/config"
	"croissant-bot/internal/interaction"
	"croissant-bot/pkg/jobmgr"
	"croissant-bot/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
)

// Bot is the gateway side of the bot: it keeps the websocket open, syncs the
// command definitions on ready and hands every interaction to the Router.
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	catalog *Catalog
	router  *Router
	sync    *syncer
	jobs    *jobmgr.Manager

	deferAfter time.Duration
	inflight   sync.WaitGroup
}

const syncJob = "sync-commands"

func NewBot(cfg *config.Config, store HashStore, catalog *Catalog, router *Router) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &Bot{
		dg:      dg,
		cfg:     cfg,
		catalog: catalog,
		router:  router,
		sync: &syncer{
			api:   dg,
			store: store,
			pace:  retrylimit.NewAdaptiveLimiter(5, 1, 10, 1, 0.5),
		},
		jobs:       jobmgr.NewManager(logJobStatus),
		deferAfter: interaction.DeferAfter,
	}, nil
}

// Session is the REST session, also used by the webhook transport.
func (b *Bot) Session() *discordgo.Session { return b.dg }

// Run opens the gateway connection and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	// Interactions need no privileged intents.
	b.dg.Identify.Intents = discordgo.IntentsGuilds

	b.dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.onReady(ctx, s, r)
	})
	b.dg.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.onInteractionCreate(ctx, s, i)
	})

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	if err := b.dg.Close(); err != nil {
		log.Printf("[WARN] Failed to close Discord session: %v", err)
	}
	b.jobs.Wait()
	b.inflight.Wait()
	return nil
}

func (b *Bot) onReady(ctx context.Context, s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] ✅ Logged in as %s (%d guilds)", r.User.Username, len(r.Guilds))

	appID := r.User.ID
	if r.Application != nil && r.Application.ID != "" {
		appID = r.Application.ID
	}
	// Ready fires again after a reconnect; one sync at a time is enough.
	err := b.jobs.StartAsync(ctx, syncJob, func(ctx context.Context) error {
		return b.syncCommands(ctx, appID)
	})
	if err != nil {
		log.Printf("[INFO] Command sync skipped: %v", err)
	}
}

func (b *Bot) syncCommands(ctx context.Context, appID string) error {
	if b.cfg.ClearCommands {
		if err := b.sync.removeAllCommands(ctx, appID, b.cfg.GuildID); err != nil {
			log.Printf("[ERR] Failed to clear commands: %v", err)
		}
	}

	ids, err := b.sync.registerCommands(ctx, appID, b.cfg.GuildID, b.catalog.Definitions())
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	b.catalog.setIDs(ids)
	log.Printf("[DONE] %d command(s) available", len(ids))
	return nil
}

// onInteractionCreate runs on its own goroutine (discordgo dispatches
// handlers concurrently), so the router may block on the view it opens.
// Handlers still waiting on the API when the deadline nears get a deferral.
func (b *Bot) onInteractionCreate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.inflight.Add(1)
	defer b.inflight.Done()

	in := interaction.NewGateway(s, i.Interaction, b.router.Hub())
	stop := in.DeferAfter(b.deferAfter)
	defer stop()
	b.router.Dispatch(ctx, in)
}

func logJobStatus(status string) {
	if strings.HasPrefix(status, "error:") {
		log.Printf("[ERR] Job %s", strings.TrimPrefix(status, "error:"))
		return
	}
	log.Printf("[DEBUG] Job %s", status)
}
