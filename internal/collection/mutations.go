package collection

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gamevault/gamevault/internal/domain"
)

// Every mutation in this file follows the same protocol: call the
// server, and on success replace the affected caches wholesale with
// fresh server state. The client never patches its cache optimistically,
// so a failed call leaves the previous state on screen untouched. The
// API client has already emitted the user-facing notice by the time an
// error reaches this layer.

// RefreshConsoles re-fetches the console list and archive stats and
// replaces the cached copies.
func (c *Controller) RefreshConsoles(ctx context.Context) error {
	consoles, err := c.repos.Consoles.GetConsoles(ctx)
	if err != nil {
		return err
	}
	stats, err := c.repos.Stats.ArchiveStats(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.consoles = consoles
	c.archiveStats = stats
	c.mu.Unlock()

	if err := c.store.SaveConsoles(consoles); err != nil {
		c.logger.Warn("failed to cache consoles", "error", err)
	}
	if err := c.store.SaveArchiveStats(stats); err != nil {
		c.logger.Warn("failed to cache archive stats", "error", err)
	}
	return nil
}

// refreshConsoleGames replaces the cached game list and stats for one
// console with fresh server state.
func (c *Controller) refreshConsoleGames(ctx context.Context, consoleID int64) error {
	games, err := c.repos.Games.GetGames(ctx, consoleID)
	if err != nil {
		return err
	}
	stats, err := c.repos.Stats.ConsoleStats(ctx, consoleID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.consoleID == consoleID {
		c.games = games
		c.consoleStats = stats
	}
	c.mu.Unlock()

	if err := c.store.SaveGames(consoleID, games); err != nil {
		c.logger.Warn("failed to cache games", "consoleID", consoleID, "error", err)
	}
	if err := c.store.SaveConsoleStats(stats); err != nil {
		c.logger.Warn("failed to cache console stats", "consoleID", consoleID, "error", err)
	}
	return nil
}

// refreshAfterMutation refreshes everything a game-level mutation can
// change: the console's games and stats, the console list (game
// counts), and the archive totals.
func (c *Controller) refreshAfterMutation(ctx context.Context, consoleID int64) error {
	// A game opened outside a console context carries no console id;
	// the console list and archive totals still refresh.
	if consoleID != 0 {
		if err := c.refreshConsoleGames(ctx, consoleID); err != nil {
			return err
		}
	}
	return c.RefreshConsoles(ctx)
}

// HardRefresh drops every cached collection and the search fallback
// index, then re-fetches from the server. The persisted session entry
// survives, so the current view is kept.
func (c *Controller) HardRefresh(ctx context.Context) error {
	c.store.InvalidateAll()
	if idx, ok := c.searcher.(indexer); ok {
		idx.ClearIndex()
	}

	if err := c.RefreshConsoles(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	consoleID := c.consoleID
	view := c.view
	c.mu.Unlock()
	if view == domain.ViewConsole && consoleID != 0 {
		return c.refreshConsoleGames(ctx, consoleID)
	}
	return nil
}

// === Console mutations ===

// CreateConsole registers a new console directory on the server.
func (c *Controller) CreateConsole(ctx context.Context, name, path string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		c.notify("Console name cannot be empty", true)
		return fmt.Errorf("%w: empty console name", domain.ErrValidation)
	}
	if _, err := c.repos.Consoles.CreateConsole(ctx, name, path); err != nil {
		return err
	}
	c.notify("Console created: "+name, false)
	return c.RefreshConsoles(ctx)
}

// RenameConsole updates a console's name and path.
func (c *Controller) RenameConsole(ctx context.Context, consoleID int64, name, path string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		c.notify("Console name cannot be empty", true)
		return fmt.Errorf("%w: empty console name", domain.ErrValidation)
	}
	if _, err := c.repos.Consoles.UpdateConsole(ctx, consoleID, name, path); err != nil {
		return err
	}
	return c.RefreshConsoles(ctx)
}

// DeleteConsole removes a console and everything under it. The server
// cascades the delete; the local cache mirrors it atomically once the
// server confirms.
func (c *Controller) DeleteConsole(ctx context.Context, consoleID int64) error {
	if err := c.repos.Consoles.DeleteConsole(ctx, consoleID); err != nil {
		return err
	}
	c.store.RemoveConsole(consoleID)

	c.mu.Lock()
	wasSelected := c.consoleID == consoleID
	c.mu.Unlock()
	if wasSelected {
		c.GoHome()
	}
	c.notify("Console deleted", false)
	return c.RefreshConsoles(ctx)
}

// ScanConsole asks the server to scan the console's directory for new
// game folders, then refreshes the affected caches.
func (c *Controller) ScanConsole(ctx context.Context, consoleID int64) error {
	summary, err := c.repos.Consoles.ScanConsole(ctx, consoleID)
	if err != nil {
		return err
	}
	c.notify(fmt.Sprintf("Scan complete: %d added, %d skipped", summary.Added, summary.Skipped), false)
	return c.refreshAfterMutation(ctx, consoleID)
}

// === Game mutations ===

// AddGame registers a single game folder under a console.
func (c *Controller) AddGame(ctx context.Context, consoleID int64, folderName string) error {
	folderName = strings.TrimSpace(folderName)
	if folderName == "" {
		c.notify("Folder name cannot be empty", true)
		return fmt.Errorf("%w: empty folder name", domain.ErrValidation)
	}
	summary, err := c.repos.Games.AddGame(ctx, consoleID, folderName)
	if err != nil {
		return err
	}
	if summary.Added > 0 {
		c.notify("Game added: "+summary.Title, false)
	} else {
		c.notify("Game already present: "+folderName, false)
	}
	return c.refreshAfterMutation(ctx, consoleID)
}

// AddGames registers several game folders in one request.
func (c *Controller) AddGames(ctx context.Context, consoleID int64, folderNames []string) error {
	trimmed := make([]string, 0, len(folderNames))
	for _, name := range folderNames {
		if name = strings.TrimSpace(name); name != "" {
			trimmed = append(trimmed, name)
		}
	}
	if len(trimmed) == 0 {
		c.notify("No folder names given", true)
		return fmt.Errorf("%w: no folder names", domain.ErrValidation)
	}
	summary, err := c.repos.Games.AddGames(ctx, consoleID, trimmed)
	if err != nil {
		return err
	}
	c.notify(fmt.Sprintf("Added %d games, skipped %d", summary.Added, summary.Skipped), false)
	return c.refreshAfterMutation(ctx, consoleID)
}

// UpdateGameRecord replaces a game's editable fields.
func (c *Controller) UpdateGameRecord(ctx context.Context, game *domain.Game, title, genre, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		c.notify("Title cannot be empty", true)
		return fmt.Errorf("%w: empty title", domain.ErrValidation)
	}
	if err := c.repos.Games.UpdateGame(ctx, game.ID, title, genre, description); err != nil {
		return err
	}
	if err := c.refreshAfterMutation(ctx, game.ConsoleID); err != nil {
		return err
	}
	return c.reloadDetail(ctx, game.ID)
}

// DeleteGame removes a game and refreshes the console it belonged to.
func (c *Controller) DeleteGame(ctx context.Context, game *domain.Game) error {
	if err := c.repos.Games.DeleteGame(ctx, game.ID); err != nil {
		return err
	}
	if game.ConsoleID != 0 {
		c.store.RemoveGame(game.ConsoleID, game.ID)
	}

	c.mu.Lock()
	if c.detail != nil && c.detail.ID == game.ID {
		c.clearDetailLocked()
	}
	c.mu.Unlock()

	c.notify("Game deleted: "+game.Title, false)
	return c.refreshAfterMutation(ctx, game.ConsoleID)
}

// === Status mutations ===

// ToggleStatus flips one status flag on the open game. The server
// returns no merged document, so the fresh status is re-fetched before
// anything on screen changes.
func (c *Controller) ToggleStatus(ctx context.Context, kind domain.StatusKind) error {
	c.mu.Lock()
	detail := c.detail
	status := c.detailStatus
	c.mu.Unlock()
	if detail == nil || status == nil {
		return fmt.Errorf("%w: no game open", domain.ErrValidation)
	}

	next := !status.Flag(kind)
	update := domain.StatusUpdate{}
	update.Set(kind, next)
	if err := c.repos.Status.SetStatus(ctx, detail.ID, update); err != nil {
		return err
	}
	return c.refreshStatus(ctx, detail.ID, detail.ConsoleID)
}

// SetCompletedNote stores the free-form note shown next to the
// completed flag.
func (c *Controller) SetCompletedNote(ctx context.Context, note string) error {
	c.mu.Lock()
	detail := c.detail
	c.mu.Unlock()
	if detail == nil {
		return fmt.Errorf("%w: no game open", domain.ErrValidation)
	}

	update := domain.StatusUpdate{CompletedNote: &note}
	if err := c.repos.Status.SetStatus(ctx, detail.ID, update); err != nil {
		return err
	}
	return c.refreshStatus(ctx, detail.ID, detail.ConsoleID)
}

// refreshStatus re-fetches a game's status document and the stats it
// feeds.
func (c *Controller) refreshStatus(ctx context.Context, gameID, consoleID int64) error {
	status, err := c.repos.Status.GetStatus(ctx, gameID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.detail != nil && c.detail.ID == gameID {
		c.detailStatus = status
	}
	c.mu.Unlock()

	if err := c.store.SaveStatus(status); err != nil {
		c.logger.Warn("failed to cache status", "gameID", gameID, "error", err)
	}

	if consoleID != 0 {
		stats, err := c.repos.Stats.ConsoleStats(ctx, consoleID)
		if err != nil {
			return err
		}
		c.mu.Lock()
		if c.consoleID == consoleID {
			c.consoleStats = stats
		}
		c.mu.Unlock()
		if err := c.store.SaveConsoleStats(stats); err != nil {
			c.logger.Warn("failed to cache console stats", "consoleID", consoleID, "error", err)
		}
	}

	stats, err := c.repos.Stats.ArchiveStats(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.archiveStats = stats
	c.mu.Unlock()
	if err := c.store.SaveArchiveStats(stats); err != nil {
		c.logger.Warn("failed to cache archive stats", "error", err)
	}
	return nil
}

// === Asset mutations ===

// FetchMetadata asks the server to pull metadata for the open game and
// reloads the detail on success.
func (c *Controller) FetchMetadata(ctx context.Context, gameID int64, force bool) error {
	summary, err := c.repos.Assets.FetchMetadata(ctx, gameID, force)
	if err != nil {
		return err
	}
	if summary.Updated > 0 {
		c.notify("Metadata updated: "+summary.Title, false)
	} else {
		c.notify("Metadata already present", false)
	}
	return c.reloadDetail(ctx, gameID)
}

// FetchCover pulls cover art for the open game.
func (c *Controller) FetchCover(ctx context.Context, gameID int64, force bool, source string) error {
	if _, err := c.repos.Assets.FetchCover(ctx, gameID, force, source); err != nil {
		return err
	}
	c.notify("Cover updated", false)
	return c.reloadDetail(ctx, gameID)
}

// FetchScreenshots pulls screenshots for the open game.
func (c *Controller) FetchScreenshots(ctx context.Context, gameID int64, force bool) error {
	summary, err := c.repos.Assets.FetchScreenshots(ctx, gameID, force)
	if err != nil {
		return err
	}
	c.notify(fmt.Sprintf("Screenshots updated: %d", summary.Updated), false)
	return c.reloadDetail(ctx, gameID)
}

// CoverFromURL sets the open game's cover from a remote image URL.
func (c *Controller) CoverFromURL(ctx context.Context, gameID int64, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		c.notify("Image URL cannot be empty", true)
		return fmt.Errorf("%w: empty image url", domain.ErrValidation)
	}
	if _, err := c.repos.Assets.CoverFromURL(ctx, gameID, url); err != nil {
		return err
	}
	c.notify("Cover updated", false)
	return c.reloadDetail(ctx, gameID)
}

// UploadCoverFile sets the open game's cover from a local image file.
func (c *Controller) UploadCoverFile(ctx context.Context, gameID int64, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		c.notify("File path cannot be empty", true)
		return fmt.Errorf("%w: empty file path", domain.ErrValidation)
	}
	file, err := os.Open(path)
	if err != nil {
		c.notify("Cannot open "+path, true)
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	defer file.Close()

	if _, err := c.repos.Assets.UploadCover(ctx, gameID, filepath.Base(path), file); err != nil {
		return err
	}
	c.notify("Cover uploaded", false)
	return c.reloadDetail(ctx, gameID)
}

// UploadScreenshotFile adds a screenshot from a local image file.
func (c *Controller) UploadScreenshotFile(ctx context.Context, gameID int64, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		c.notify("File path cannot be empty", true)
		return fmt.Errorf("%w: empty file path", domain.ErrValidation)
	}
	file, err := os.Open(path)
	if err != nil {
		c.notify("Cannot open "+path, true)
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	defer file.Close()

	if _, err := c.repos.Assets.UploadScreenshot(ctx, gameID, filepath.Base(path), file); err != nil {
		return err
	}
	c.notify("Screenshot uploaded", false)
	return c.reloadDetail(ctx, gameID)
}

// DeleteCover removes the open game's cover art.
func (c *Controller) DeleteCover(ctx context.Context, gameID int64) error {
	if err := c.repos.Assets.DeleteCover(ctx, gameID); err != nil {
		return err
	}
	c.notify("Cover removed", false)
	return c.reloadDetail(ctx, gameID)
}

// ScreenshotFromURL adds a screenshot from a remote image URL.
func (c *Controller) ScreenshotFromURL(ctx context.Context, gameID int64, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		c.notify("Image URL cannot be empty", true)
		return fmt.Errorf("%w: empty image url", domain.ErrValidation)
	}
	if _, err := c.repos.Assets.ScreenshotFromURL(ctx, gameID, url); err != nil {
		return err
	}
	c.notify("Screenshot added", false)
	return c.reloadDetail(ctx, gameID)
}

// DeleteScreenshot removes one screenshot from the open game.
func (c *Controller) DeleteScreenshot(ctx context.Context, gameID, screenshotID int64) error {
	if err := c.repos.Assets.DeleteScreenshot(ctx, screenshotID); err != nil {
		return err
	}
	c.notify("Screenshot removed", false)
	return c.reloadDetail(ctx, gameID)
}

// FetchConsoleMetadata pulls metadata for every game in a console.
func (c *Controller) FetchConsoleMetadata(ctx context.Context, consoleID int64, force bool) error {
	summary, err := c.repos.Assets.FetchConsoleMetadata(ctx, consoleID, force)
	if err != nil {
		return err
	}
	c.notify(fmt.Sprintf("Metadata fetched: %d updated, %d skipped", summary.Updated, summary.Skipped), false)
	return c.refreshAfterMutation(ctx, consoleID)
}

// FetchConsoleCovers pulls cover art for every game in a console.
func (c *Controller) FetchConsoleCovers(ctx context.Context, consoleID int64, force bool, source string) error {
	summary, err := c.repos.Assets.FetchConsoleCovers(ctx, consoleID, force, source)
	if err != nil {
		return err
	}
	c.notify(fmt.Sprintf("Covers fetched: %d updated, %d skipped", summary.Updated, summary.Skipped), false)
	return c.refreshAfterMutation(ctx, consoleID)
}

// FetchConsoleScreenshots pulls screenshots for every game in a console.
func (c *Controller) FetchConsoleScreenshots(ctx context.Context, consoleID int64, force bool) error {
	summary, err := c.repos.Assets.FetchConsoleScreenshots(ctx, consoleID, force)
	if err != nil {
		return err
	}
	c.notify(fmt.Sprintf("Screenshots fetched: %d updated, %d skipped", summary.Updated, summary.Skipped), false)
	return c.refreshAfterMutation(ctx, consoleID)
}
