package croissant

import (
	"context"
	"net/http"
)

func (c *Client) ListGames(ctx context.Context) ([]Game, error) {
	var games []Game
	if err := c.get(ctx, "/games", false, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) GetGame(ctx context.Context, gameID string) (*Game, error) {
	var g Game
	if err := c.get(ctx, "/games/"+escape(gameID), false, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) CreateGame(ctx context.Context, g Game) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, "/games", g)
}

func (c *Client) UpdateGame(ctx context.Context, gameID string, g Game) (*Result, error) {
	return c.mutate(ctx, http.MethodPut, "/games/"+escape(gameID), g)
}

func (c *Client) DeleteGame(ctx context.Context, gameID string) (*Result, error) {
	return c.mutate(ctx, http.MethodDelete, "/games/"+escape(gameID), nil)
}
