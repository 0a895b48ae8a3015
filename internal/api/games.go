package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gamevault/gamevault/internal/domain"
)

// === Games ===

func (c *Client) GetGames(ctx context.Context, consoleID int64) ([]*domain.Game, error) {
	var games []*domain.Game
	err := c.getJSON(ctx, fmt.Sprintf("/api/consoles/%d/games", consoleID), nil, &games)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrConsoleNotFound)
	}
	// The list payload omits console_id; stamp it for cache keys.
	for _, g := range games {
		g.ConsoleID = consoleID
	}
	return games, nil
}

func (c *Client) GetGame(ctx context.Context, gameID int64) (*domain.GameDetail, error) {
	var detail domain.GameDetail
	err := c.getJSON(ctx, fmt.Sprintf("/api/games/%d", gameID), nil, &detail)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrGameNotFound)
	}
	return &detail, nil
}

func (c *Client) AddGame(ctx context.Context, consoleID int64, title string) (*domain.AddSummary, error) {
	var resp addResponse
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/consoles/%d/games", consoleID),
		addSingleGameRequest{Title: title}, &resp)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrConsoleNotFound)
	}
	return &domain.AddSummary{Added: resp.Added, Skipped: resp.Skipped, Title: resp.Title}, nil
}

func (c *Client) AddGames(ctx context.Context, consoleID int64, titles []string) (*domain.AddSummary, error) {
	var resp addResponse
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/consoles/%d/games/bulk", consoleID),
		addBulkGamesRequest{Games: titles}, &resp)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrConsoleNotFound)
	}
	return &domain.AddSummary{Added: resp.Added, Skipped: resp.Skipped}, nil
}

func (c *Client) UpdateGame(ctx context.Context, gameID int64, title, genre, description string) error {
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/games/%d/update", gameID),
		updateGameRequest{Title: title, Genre: genre, Description: description}, nil)
	return mapNotFound(err, domain.ErrGameNotFound)
}

func (c *Client) DeleteGame(ctx context.Context, gameID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/games/%d", gameID), nil, nil, "")
	return mapNotFound(err, domain.ErrGameNotFound)
}

// === Search and status subsets ===

func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)

	var results []domain.SearchResult
	if err := c.getJSON(ctx, "/api/games/search", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GamesByStatus fetches the server-evaluated status subset. consoleID
// zero selects the archive-wide endpoint.
func (c *Client) GamesByStatus(ctx context.Context, consoleID int64, status domain.StatusKind) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("status", status.Param())

	path := "/api/games/by-status"
	if consoleID != 0 {
		path = fmt.Sprintf("/api/consoles/%d/games/by-status", consoleID)
	}

	var results []domain.SearchResult
	if err := c.getJSON(ctx, path, params, &results); err != nil {
		return nil, mapNotFound(err, domain.ErrConsoleNotFound)
	}
	return results, nil
}

func (c *Client) CompletedGames(ctx context.Context) ([]domain.SearchResult, error) {
	var results []domain.SearchResult
	if err := c.getJSON(ctx, "/api/games/completed", nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) RecentlyAdded(ctx context.Context, limit int) ([]domain.SearchResult, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var results []domain.SearchResult
	if err := c.getJSON(ctx, "/api/recently-added", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) RecentlyViewed(ctx context.Context, limit int) ([]domain.SearchResult, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var results []domain.SearchResult
	if err := c.getJSON(ctx, "/api/recently-viewed", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) RecordView(ctx context.Context, gameID int64) error {
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/games/%d/view", gameID), nil, nil)
	return mapNotFound(err, domain.ErrGameNotFound)
}

// === Play status ===

func (c *Client) GetStatus(ctx context.Context, gameID int64) (*domain.GameStatus, error) {
	var status domain.GameStatus
	err := c.getJSON(ctx, fmt.Sprintf("/api/games/%d/status", gameID), nil, &status)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrGameNotFound)
	}
	return &status, nil
}

// SetStatus applies a partial status update. The server replies with a
// bare ok envelope, so callers re-fetch the merged status afterwards.
func (c *Client) SetStatus(ctx context.Context, gameID int64, update domain.StatusUpdate) error {
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/games/%d/status", gameID), update, nil)
	return mapNotFound(err, domain.ErrGameNotFound)
}
