package collection

import (
	"context"
	"errors"

	"github.com/gamevault/gamevault/internal/domain"
)

// ErrStaleDetail marks a detail load whose response arrived after a
// newer load had already been issued. Callers drop the result.
var ErrStaleDetail = errors.New("stale detail response")

// OpenGame loads a game's detail and status and makes it the open
// game. Rapid navigation can leave several loads in flight at once;
// each load takes a sequence number and cancels its predecessor, and a
// response that no longer carries the latest number is discarded, so
// the screen always shows the game picked last.
func (c *Controller) OpenGame(ctx context.Context, gameID int64) (*domain.GameDetail, error) {
	c.mu.Lock()
	c.detailSeq++
	seq := c.detailSeq
	if c.detailCancel != nil {
		c.detailCancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.detailCancel = cancel
	index := indexOf(c.workingListLocked(), gameID)
	consoleID := c.detailConsoleLocked(gameID)
	c.mu.Unlock()

	detail, err := c.repos.Games.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	// The detail payload carries no console id; stamp it from the
	// cached list entry so mutation refreshes hit the right console.
	if detail.ConsoleID == 0 {
		detail.ConsoleID = consoleID
	}
	status, err := c.repos.Status.GetStatus(ctx, gameID)
	if err != nil {
		if cached, ok := c.store.GetStatus(gameID); ok {
			c.logger.Warn("serving cached status", "gameID", gameID, "error", err)
			status = cached
		} else {
			return nil, err
		}
	}

	c.mu.Lock()
	if seq != c.detailSeq {
		c.mu.Unlock()
		return nil, ErrStaleDetail
	}
	c.detail = detail
	c.detailStatus = status
	c.detailIndex = index
	c.mu.Unlock()

	if err := c.store.SaveStatus(status); err != nil {
		c.logger.Warn("failed to cache status", "gameID", gameID, "error", err)
	}

	// View tracking is best effort; the detail is already on screen.
	if err := c.repos.Games.RecordView(ctx, gameID); err != nil {
		c.logger.Debug("failed to record view", "gameID", gameID, "error", err)
	}
	return detail, nil
}

// reloadDetail re-fetches the open game's detail after a mutation. It
// is a no-op when a different game has been opened in the meantime.
func (c *Controller) reloadDetail(ctx context.Context, gameID int64) error {
	c.mu.Lock()
	open := c.detail != nil && c.detail.ID == gameID
	seq := c.detailSeq
	c.mu.Unlock()
	if !open {
		return nil
	}

	detail, err := c.repos.Games.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.detailSeq || c.detail == nil || c.detail.ID != gameID {
		return nil
	}
	if detail.ConsoleID == 0 {
		detail.ConsoleID = c.detail.ConsoleID
	}
	c.detail = detail
	return nil
}

// detailConsoleLocked resolves the console a game belongs to: the
// cached list entry when present, else the selected console.
func (c *Controller) detailConsoleLocked(gameID int64) int64 {
	for _, g := range c.games {
		if g.ID == gameID && g.ConsoleID != 0 {
			return g.ConsoleID
		}
	}
	if c.view == domain.ViewConsole {
		return c.consoleID
	}
	return 0
}

// NextGame opens the next game in the working list. At the last entry
// it is a no-op rather than wrapping around.
func (c *Controller) NextGame(ctx context.Context) (*domain.GameDetail, error) {
	return c.stepDetail(ctx, 1)
}

// PrevGame opens the previous game in the working list, clamping at
// the first entry.
func (c *Controller) PrevGame(ctx context.Context) (*domain.GameDetail, error) {
	return c.stepDetail(ctx, -1)
}

func (c *Controller) stepDetail(ctx context.Context, delta int) (*domain.GameDetail, error) {
	c.mu.Lock()
	if c.detail == nil {
		c.mu.Unlock()
		return nil, nil
	}
	list := c.workingListLocked()
	// The working list may have shifted since the detail opened;
	// re-anchor on the open game's id before stepping.
	index := indexOf(list, c.detail.ID)
	if index < 0 {
		index = c.detailIndex
	}
	target := index + delta
	if target < 0 || target >= len(list) {
		detail := c.detail
		c.mu.Unlock()
		return detail, nil
	}
	gameID := list[target].ID
	c.mu.Unlock()

	return c.OpenGame(ctx, gameID)
}

// CloseDetail clears the open game and cancels any in-flight load.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailSeq++ // Invalidate in-flight responses
	c.clearDetailLocked()
}

func (c *Controller) clearDetailLocked() {
	if c.detailCancel != nil {
		c.detailCancel()
		c.detailCancel = nil
	}
	c.detail = nil
	c.detailStatus = nil
	c.detailIndex = 0
}

// Detail returns the open game and its status document, or nils when
// no game is open.
func (c *Controller) Detail() (*domain.GameDetail, *domain.GameStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detail, c.detailStatus
}

// DetailPosition reports the open game's position within the working
// list as (index, total), for the "n of m" indicator.
func (c *Controller) DetailPosition() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return 0, 0
	}
	list := c.workingListLocked()
	index := indexOf(list, c.detail.ID)
	if index < 0 {
		index = c.detailIndex
	}
	return index, len(list)
}

func indexOf(list []*domain.Game, gameID int64) int {
	for i, g := range list {
		if g.ID == gameID {
			return i
		}
	}
	return -1
}
