package croissant

import (
	"context"
	"net/http"
	"strings"
)

func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.get(ctx, "/items", false, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, itemID string) (*Item, error) {
	var it Item
	if err := c.get(ctx, "/items/"+escape(itemID), false, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) BuyItem(ctx context.Context, itemID string, amount int) (*Result, error) {
	return c.itemAction(ctx, "buy", itemID, amount)
}

func (c *Client) SellItem(ctx context.Context, itemID string, amount int) (*Result, error) {
	return c.itemAction(ctx, "sell", itemID, amount)
}

func (c *Client) DropItem(ctx context.Context, itemID string, amount int) (*Result, error) {
	return c.itemAction(ctx, "drop", itemID, amount)
}

// TransferItem gives amount of itemID to targetUserID.
func (c *Client) TransferItem(ctx context.Context, itemID string, amount int, targetUserID string) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, "/items/transfer/"+escape(itemID), map[string]any{
		"amount":       amount,
		"targetUserId": targetUserID,
	})
}

func (c *Client) itemAction(ctx context.Context, action, itemID string, amount int) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, "/items/"+action+"/"+escape(itemID), map[string]any{
		"amount": amount,
	})
}

// FindItem matches ref against item ids first, then names (case-insensitive).
func FindItem(items []Item, ref string) (Item, bool) {
	for _, it := range items {
		if it.ItemID == ref {
			return it, true
		}
	}
	for _, it := range items {
		if strings.EqualFold(it.Name, ref) {
			return it, true
		}
	}
	return Item{}, false
}

// FilterItems keeps items whose name or id contains query (case-insensitive),
// up to limit results. limit <= 0 means no limit.
func FilterItems(items []Item, query string, limit int) []Item {
	q := strings.ToLower(query)
	var out []Item
	for _, it := range items {
		if limit > 0 && len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(strings.ToLower(it.ItemID), q) {
			out = append(out, it)
		}
	}
	return out
}
