package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const (
	commandHistoryLimit int = 20
	// GlobalScope holds records for globally registered commands and DMs.
	GlobalScope = "global"
)

type Storage struct {
	ds *datastore.DataStore
}

type CommandHistoryRecord struct {
	GuildID   string    `json:"guild_id"`
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Param     string    `json:"param"`
	Failed    bool      `json:"failed"`
	Datetime  time.Time `json:"datetime"`
}

type Record struct {
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history"`
	CommandHashes       map[string]string      `json:"cmd_hashes"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

func scopeKey(scope string) string {
	if scope == "" {
		return GlobalScope
	}
	return scope
}

// getOrCreateRecord loads the record for a scope (guild id or GlobalScope).
// Values read back from disk are generic maps, so they go through JSON.
func (s *Storage) getOrCreateRecord(scope string) (*Record, error) {
	key := scopeKey(scope)
	data, exists := s.ds.Get(key)
	if !exists {
		rec := &Record{
			CommandsHistoryList: []CommandHistoryRecord{},
			CommandHashes:       map[string]string{},
		}
		s.ds.Add(key, rec)
		return rec, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(jsonData, &rec); err != nil {
		return nil, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}
	if rec.CommandHashes == nil {
		rec.CommandHashes = map[string]string{}
	}
	if len(rec.CommandsHistoryList) > commandHistoryLimit {
		rec.CommandsHistoryList = rec.CommandsHistoryList[len(rec.CommandsHistoryList)-commandHistoryLimit:]
	}
	return &rec, nil
}

func (s *Storage) save(scope string, rec *Record) {
	s.ds.Add(scopeKey(scope), rec)
}
