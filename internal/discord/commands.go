package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"croissant-bot/internal/storage"
	"croissant-bot/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
)

// commandAPI is the part of the Discord REST API command sync needs.
type commandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// HashStore keeps the definition hashes last registered per scope.
type HashStore interface {
	CommandHashes(scope string) (map[string]string, error)
	SetCommandHashes(scope string, hashes map[string]string) error
	ClearCommandHashes(scope string) error
}

// syncer keeps the commands registered with Discord in line with the
// registry. Only commands whose definition hash changed are sent again.
type syncer struct {
	api   commandAPI
	store HashStore
	pace  *retrylimit.AdaptiveLimiter
}

func scopeOf(guildID string) string {
	if guildID == "" {
		return storage.GlobalScope
	}
	return guildID
}

// registerCommands syncs commands for a guild (or globally when guildID is
// empty) and returns the Discord id of every registered command by name.
func (s *syncer) registerCommands(ctx context.Context, appID, guildID string, local []*discordgo.ApplicationCommand) (map[string]string, error) {
	scope := scopeOf(guildID)

	var remote []*discordgo.ApplicationCommand
	err := s.paced(ctx, func() (err error) {
		remote, err = s.api.ApplicationCommands(appID, guildID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	remoteByName := make(map[string]*discordgo.ApplicationCommand, len(remote))
	for _, c := range remote {
		remoteByName[c.Name] = c
	}

	cached, err := s.store.CommandHashes(scope)
	if err != nil {
		log.Printf("[WARN] [%s] Failed to load command hashes: %v", scope, err)
		cached = map[string]string{}
	}

	s.deleteObsoleteCommands(ctx, appID, guildID, remoteByName, local, cached)
	ids := s.upsertChangedCommands(ctx, appID, guildID, local, remoteByName, cached)

	if err := s.store.SetCommandHashes(scope, cached); err != nil {
		log.Printf("[WARN] [%s] Failed to save command hashes: %v", scope, err)
	}
	return ids, nil
}

// deleteObsoleteCommands removes commands from Discord that are no longer in the local registry.
func (s *syncer) deleteObsoleteCommands(ctx context.Context, appID, guildID string, remote map[string]*discordgo.ApplicationCommand, local []*discordgo.ApplicationCommand, hashes map[string]string) {
	scope := scopeOf(guildID)
	localNames := make(map[string]struct{}, len(local))
	for _, d := range local {
		localNames[d.Name] = struct{}{}
	}

	for name, rc := range remote {
		if _, exists := localNames[name]; exists {
			continue
		}
		log.Printf("[INFO] [%s] Deleting obsolete command: %s", scope, name)
		err := s.paced(ctx, func() error {
			return s.api.ApplicationCommandDelete(appID, guildID, rc.ID)
		})
		if err != nil {
			log.Printf("[ERR] [%s] Failed to delete %s: %v", scope, name, err)
			continue
		}
		delete(hashes, name)
	}
	for name := range hashes {
		if _, exists := localNames[name]; !exists {
			delete(hashes, name)
		}
	}
}

// upsertChangedCommands creates or updates commands whose hash differs from
// the cached value or that are missing remotely. hashes is updated in place.
func (s *syncer) upsertChangedCommands(ctx context.Context, appID, guildID string, defs []*discordgo.ApplicationCommand, remote map[string]*discordgo.ApplicationCommand, hashes map[string]string) map[string]string {
	scope := scopeOf(guildID)
	ids := make(map[string]string, len(defs))

	var changed []*discordgo.ApplicationCommand
	for _, d := range defs {
		rc, registered := remote[d.Name]
		if registered && hashes[d.Name] == hashCommand(d) {
			ids[d.Name] = rc.ID
			continue
		}
		changed = append(changed, d)
	}
	if len(changed) == 0 {
		log.Printf("[INFO] [%s] Commands are up to date", scope)
		return ids
	}

	log.Printf("[INFO] [%s] Registering %d changed command(s)...", scope, len(changed))
	for _, d := range changed {
		var created *discordgo.ApplicationCommand
		err := s.paced(ctx, func() (err error) {
			created, err = s.api.ApplicationCommandCreate(appID, guildID, d)
			return err
		})
		if err != nil {
			log.Printf("[ERR] [%s] Failed to register %s: %v", scope, d.Name, err)
			delete(hashes, d.Name)
			if rc, ok := remote[d.Name]; ok {
				ids[d.Name] = rc.ID
			}
			continue
		}
		log.Printf("[DONE] [%s] Registered: %s", scope, d.Name)
		hashes[d.Name] = hashCommand(d)
		ids[d.Name] = created.ID
	}
	return ids
}

// removeAllCommands deletes every command of the scope and forgets its hashes.
func (s *syncer) removeAllCommands(ctx context.Context, appID, guildID string) error {
	scope := scopeOf(guildID)

	var existing []*discordgo.ApplicationCommand
	err := s.paced(ctx, func() (err error) {
		existing, err = s.api.ApplicationCommands(appID, guildID)
		return err
	})
	if err != nil {
		return fmt.Errorf("list commands: %w", err)
	}

	log.Printf("[INFO] [%s] Removing all %d command(s)", scope, len(existing))
	for _, c := range existing {
		err := s.paced(ctx, func() error {
			return s.api.ApplicationCommandDelete(appID, guildID, c.ID)
		})
		if err != nil {
			log.Printf("[ERR] [%s] Failed to delete %s: %v", scope, c.Name, err)
		} else {
			log.Printf("[DONE] [%s] Deleted %s", scope, c.Name)
		}
	}
	return s.store.ClearCommandHashes(scope)
}

// paced runs a REST call through the limiter so a burst of registrations
// slows down when Discord pushes back.
func (s *syncer) paced(ctx context.Context, fn func() error) error {
	return retrylimit.Do(ctx, s.pace, func() error {
		err := fn()
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) {
			return restStatusError{restErr}
		}
		return err
	})
}

// restStatusError exposes the HTTP status of a discordgo REST error to the limiter.
type restStatusError struct {
	err *discordgo.RESTError
}

func (e restStatusError) Error() string { return e.err.Error() }
func (e restStatusError) Unwrap() error { return e.err }

func (e restStatusError) StatusCode() int {
	if e.err.Response == nil {
		return 0
	}
	return e.err.Response.StatusCode
}
