package croissant

import (
	"context"
	"net/http"
)

func (c *Client) GetLobby(ctx context.Context, lobbyID string) (*Lobby, error) {
	var l Lobby
	if err := c.get(ctx, "/lobbies/"+escape(lobbyID), false, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// UserLobby returns the lobby userID is currently in.
func (c *Client) UserLobby(ctx context.Context, userID string) (*Lobby, error) {
	var l Lobby
	if err := c.get(ctx, "/lobbies/user/"+escape(userID), false, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// MyLobby returns the lobby of the token's owner.
func (c *Client) MyLobby(ctx context.Context) (*Lobby, error) {
	var l Lobby
	if err := c.get(ctx, "/lobbies/user/@me", true, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) CreateLobby(ctx context.Context) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, "/lobbies", nil)
}

func (c *Client) JoinLobby(ctx context.Context, lobbyID string) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, "/lobbies/"+escape(lobbyID)+"/join", nil)
}

func (c *Client) LeaveLobby(ctx context.Context, lobbyID string) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, "/lobbies/"+escape(lobbyID)+"/leave", nil)
}
