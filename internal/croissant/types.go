package croissant

import (
	"encoding/json"
	"fmt"
	"sort"
)

type Item struct {
	ItemID      string `json:"itemId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price"`
	Emoji       string `json:"emoji,omitempty"`
	Type        string `json:"type,omitempty"`
	IconHash    string `json:"iconHash,omitempty"`
	Amount      int    `json:"amount,omitempty"`
	ShowInStore bool   `json:"showInStore,omitempty"`
}

// Inventory is the list of items a user owns. The API answers either a bare
// array or {"user_id": ..., "inventory": [...]}; both decode here.
type Inventory struct {
	UserID string `json:"user_id,omitempty"`
	Items  []Item `json:"inventory"`
}

func (inv *Inventory) UnmarshalJSON(data []byte) error {
	var list []Item
	if err := json.Unmarshal(data, &list); err == nil {
		inv.Items = list
		return nil
	}
	type plain Inventory
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode inventory: %w", err)
	}
	*inv = Inventory(p)
	return nil
}

// Find returns the owned entry matching itemID.
func (inv *Inventory) Find(itemID string) (Item, bool) {
	for _, it := range inv.Items {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return Item{}, false
}

// Badges is a set of badge keys. The API sends either ["staff", ...] or
// {"staff": true, ...}.
type Badges map[string]bool

func (b *Badges) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		set := make(Badges, len(list))
		for _, k := range list {
			set[k] = true
		}
		*b = set
		return nil
	}
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode badges: %w", err)
	}
	*b = Badges(m)
	return nil
}

func (b Badges) Has(key string) bool { return b[key] }

// Keys returns the set badges in sorted order.
func (b Badges) Keys() []string {
	out := make([]string, 0, len(b))
	for k, ok := range b {
		if ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

type User struct {
	UserID       string            `json:"userId"`
	Username     string            `json:"username"`
	Balance      int               `json:"balance"`
	Verified     bool              `json:"verified"`
	Admin        bool              `json:"admin"`
	IsStudio     bool              `json:"isStudio"`
	Disabled     bool              `json:"disabled"`
	Badges       Badges            `json:"badges"`
	CreatedGames []json.RawMessage `json:"createdGames"`
	OwnedItems   []json.RawMessage `json:"ownedItems"`
	Inventory    []json.RawMessage `json:"inventory"`
	Studios      []json.RawMessage `json:"studios"`
}

type LobbyUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Verified bool   `json:"verified,omitempty"`
}

type Lobby struct {
	LobbyID string      `json:"lobbyId"`
	Users   []LobbyUser `json:"users"`
}

type Game struct {
	GameID      string `json:"gameId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	OwnerID     string `json:"owner_id,omitempty"`
	ShowInStore bool   `json:"showInStore"`
	DownloadURL string `json:"download_link,omitempty"`
}

// Result is the generic body returned by mutating routes.
type Result struct {
	Message string `json:"message"`
	LobbyID string `json:"lobbyId,omitempty"`
	GameID  string `json:"gameId,omitempty"`
}
