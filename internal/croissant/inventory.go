package croissant

import "context"

func (c *Client) GetInventory(ctx context.Context, userID string) (*Inventory, error) {
	var inv Inventory
	if err := c.get(ctx, "/inventory/"+escape(userID), false, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// MyInventory returns the inventory of the token's owner.
func (c *Client) MyInventory(ctx context.Context) (*Inventory, error) {
	var inv Inventory
	if err := c.get(ctx, "/inventory/@me", true, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}
