package croissant

import (
	"context"
	"net/http"
)

// GetUser fetches a public profile by Discord or Croissant user id.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var u User
	if err := c.get(ctx, "/users/"+escape(userID), false, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Me fetches the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/users/@me", true, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser links a Discord account to a new Croissant user.
func (c *Client) CreateUser(ctx context.Context, userID, username string, balance int) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, "/users/create", map[string]any{
		"userId":   userID,
		"username": username,
		"balance":  balance,
	})
}

// TransferCredits moves credits from the token's owner to targetUserID.
func (c *Client) TransferCredits(ctx context.Context, targetUserID string, amount int) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, "/users/transfer-credits", map[string]any{
		"targetUserId": targetUserID,
		"amount":       amount,
	})
}
