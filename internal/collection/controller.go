package collection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gamevault/gamevault/internal/domain"
)

// Repositories bundles the server-side contracts the controller
// drives. In production all of them are the API client.
type Repositories struct {
	Consoles domain.ConsoleRepository
	Games    domain.GameRepository
	Status   domain.StatusRepository
	Stats    domain.StatsRepository
	Assets   domain.AssetRepository
}

// Searcher resolves title queries. The search service satisfies this
// with server-first matching and a local fuzzy fallback.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// indexer is the optional index-maintenance side of a Searcher. The
// controller feeds it console lists as they arrive so the offline
// fallback has something to match against.
type indexer interface {
	Index(consoleName string, games []*domain.Game)
	ClearIndex()
}

// suspendedView snapshots the console view context while a global
// search is active, so clearing the search restores it untouched.
type suspendedView struct {
	view      domain.ViewKind
	consoleID int64
	filters   domain.FilterState
	page      int
}

// Controller owns all client-side view state: the cached consoles and
// games, the active filters and pagination cursor, selection, and the
// refresh-after-mutation protocol. The remote server stays the source
// of truth; the cache is a short-lived mirror replaced wholesale after
// every mutation, never patched in place.
type Controller struct {
	repos    Repositories
	store    domain.Store
	notifier domain.Notifier
	logger   *slog.Logger
	pageSize int
	searcher Searcher

	mu sync.Mutex

	view      domain.ViewKind
	consoleID int64
	consoles  []domain.Console

	games      []*domain.Game // Cached list for the selected console
	statusList []*domain.Game // Server-fetched status subset
	filters    domain.FilterState
	page       int

	archiveStats *domain.ArchiveStats
	consoleStats *domain.ConsoleStats

	searchQuery   string
	searchResults []domain.SearchResult
	suspended     *suspendedView

	// Detail view state; see detail.go for the sequence guard.
	detail       *domain.GameDetail
	detailStatus *domain.GameStatus
	detailIndex  int
	detailSeq    uint64
	detailCancel context.CancelFunc
}

// NewController creates a controller over the given repositories and
// local store. notifier and logger may be nil.
func NewController(repos Repositories, store domain.Store, notifier domain.Notifier, logger *slog.Logger, pageSize int) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		repos:    repos,
		store:    store,
		notifier: notifier,
		logger:   logger,
		pageSize: pageSize,
		page:     1,
	}
}

// UseSearcher routes searches through the given resolver instead of
// the raw repository.
func (c *Controller) UseSearcher(s Searcher) {
	c.searcher = s
}

func (c *Controller) notify(text string, isErr bool) {
	if c.notifier != nil {
		c.notifier.Notify(text, isErr)
	}
}

// === Bootstrap and session ===

// Bootstrap loads consoles and archive stats, then rehydrates the last
// persisted view. A persisted console that no longer exists falls back
// to the homepage.
func (c *Controller) Bootstrap(ctx context.Context) error {
	if err := c.RefreshConsoles(ctx); err != nil {
		// Offline start: surface cached consoles and stats if any.
		c.mu.Lock()
		if cached, ok := c.store.GetConsoles(); ok {
			c.consoles = cached
		}
		if stats, ok := c.store.GetArchiveStats(); ok {
			c.archiveStats = stats
		}
		c.mu.Unlock()
		return err
	}

	session, ok := c.store.GetSession()
	if !ok || session.View != domain.ViewConsole {
		return nil
	}
	if !c.consoleExists(session.ConsoleID) {
		c.logger.Info("persisted console gone, falling back to homepage", "consoleID", session.ConsoleID)
		c.persistSession()
		return nil
	}
	return c.SelectConsole(ctx, session.ConsoleID)
}

func (c *Controller) consoleExists(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, console := range c.consoles {
		if console.ID == id {
			return true
		}
	}
	return false
}

// persistSession writes the durable view state: view kind and console
// id only. Filters are never persisted.
func (c *Controller) persistSession() {
	c.mu.Lock()
	session := &domain.Session{View: c.view, ConsoleID: c.consoleID}
	c.mu.Unlock()
	if err := c.store.SaveSession(session); err != nil {
		c.logger.Warn("failed to persist session", "error", err)
	}
}

// === Navigation state machine ===

// SelectConsole transitions Homepage -> ConsoleSelected. Filters and
// pagination reset to defaults, then the console's games and stats are
// fetched.
func (c *Controller) SelectConsole(ctx context.Context, consoleID int64) error {
	games, err := c.repos.Games.GetGames(ctx, consoleID)
	if err != nil {
		// Offline: serve the cached copy if one exists. The API
		// client has already notified about the failure.
		cached, ok := c.store.GetGames(consoleID)
		if !ok {
			return err
		}
		c.logger.Warn("serving cached games", "consoleID", consoleID, "error", err)
		stats, _ := c.store.GetConsoleStats(consoleID)
		c.enterConsoleView(consoleID, cached, stats)
		return nil
	}
	stats, err := c.repos.Stats.ConsoleStats(ctx, consoleID)
	if err != nil {
		// Stats are secondary; fall back to the cached snapshot.
		stats, _ = c.store.GetConsoleStats(consoleID)
	}

	c.enterConsoleView(consoleID, games, stats)

	if err := c.store.SaveGames(consoleID, games); err != nil {
		c.logger.Warn("failed to cache games", "consoleID", consoleID, "error", err)
	}
	if stats != nil {
		if err := c.store.SaveConsoleStats(stats); err != nil {
			c.logger.Warn("failed to cache console stats", "consoleID", consoleID, "error", err)
		}
	}
	c.indexGames(consoleID, games)
	c.logger.Debug("console selected", "consoleID", consoleID, "games", len(games))
	return nil
}

func (c *Controller) enterConsoleView(consoleID int64, games []*domain.Game, stats *domain.ConsoleStats) {
	c.mu.Lock()
	c.view = domain.ViewConsole
	c.consoleID = consoleID
	c.games = games
	c.statusList = nil
	c.filters.Clear()
	c.page = 1
	c.consoleStats = stats
	c.clearDetailLocked()
	c.mu.Unlock()
	c.persistSession()
}

func (c *Controller) indexGames(consoleID int64, games []*domain.Game) {
	idx, ok := c.searcher.(indexer)
	if !ok {
		return
	}
	name := ""
	c.mu.Lock()
	for _, console := range c.consoles {
		if console.ID == consoleID {
			name = console.Name
			break
		}
	}
	c.mu.Unlock()
	idx.Index(name, games)
}

// GoHome transitions back to the homepage, clearing console selection
// and all filters.
func (c *Controller) GoHome() {
	c.mu.Lock()
	c.view = domain.ViewHome
	c.consoleID = 0
	c.games = nil
	c.statusList = nil
	c.filters.Clear()
	c.page = 1
	c.consoleStats = nil
	c.suspended = nil
	c.searchQuery = ""
	c.searchResults = nil
	c.clearDetailLocked()
	c.mu.Unlock()
	c.persistSession()
}

// Search transitions to SearchActive. The previously selected console's
// filter state is suspended, not cleared, so clearing the search
// restores it.
func (c *Controller) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		c.notify("Search query cannot be empty", true)
		return fmt.Errorf("%w: empty search query", domain.ErrValidation)
	}

	var results []domain.SearchResult
	var err error
	if c.searcher != nil {
		results, err = c.searcher.Search(ctx, query)
	} else {
		results, err = c.repos.Games.Search(ctx, query)
	}
	if err != nil {
		return err
	}

	c.enterSearchView(query, results)
	c.logger.Debug("search complete", "query", query, "results", len(results))
	return nil
}

// ShowCompleted lists every completed game across the archive in the
// results view, suspending the current console context like a search.
func (c *Controller) ShowCompleted(ctx context.Context) error {
	results, err := c.repos.Games.CompletedGames(ctx)
	if err != nil {
		return err
	}
	c.enterSearchView("completed games", results)
	return nil
}

func (c *Controller) enterSearchView(query string, results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != domain.ViewSearch {
		c.suspended = &suspendedView{
			view:      c.view,
			consoleID: c.consoleID,
			filters:   c.filters,
			page:      c.page,
		}
	}
	c.view = domain.ViewSearch
	c.searchQuery = query
	c.searchResults = results
}

// ClearSearch returns to the state that was active before the search,
// with its filters and pagination intact.
func (c *Controller) ClearSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != domain.ViewSearch {
		return
	}
	c.searchQuery = ""
	c.searchResults = nil
	if c.suspended != nil {
		c.view = c.suspended.view
		c.consoleID = c.suspended.consoleID
		c.filters = c.suspended.filters
		c.page = c.suspended.page
		c.suspended = nil
	} else {
		c.view = domain.ViewHome
	}
}

// === Filters ===

// SetAlphaFilter activates the alphabetical prefix filter, clearing
// any genre or status filter, and resets pagination.
func (c *Controller) SetAlphaFilter(alpha domain.AlphaFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.SetAlpha(alpha)
	c.statusList = nil
	c.page = 1
}

// SetGenreFilter activates the genre filter, clearing the others, and
// resets pagination.
func (c *Controller) SetGenreFilter(genre string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.SetGenre(genre)
	c.statusList = nil
	c.page = 1
}

// SetStatusFilter replaces the working list with the server-evaluated
// status subset for the selected console. Alphabetical and genre
// filters are cleared and bypassed while it is active. A failed fetch
// leaves the prior filter state untouched.
func (c *Controller) SetStatusFilter(ctx context.Context, kind domain.StatusKind) error {
	c.mu.Lock()
	consoleID := c.consoleID
	c.mu.Unlock()

	results, err := c.repos.Games.GamesByStatus(ctx, consoleID, kind)
	if err != nil {
		return err
	}

	statusGames := make([]*domain.Game, len(results))
	for i, r := range results {
		statusGames[i] = r.Game()
	}

	c.mu.Lock()
	c.filters.SetStatus(kind)
	c.statusList = statusGames
	c.page = 1
	c.mu.Unlock()
	return nil
}

// ClearFilters removes all filters and resets pagination.
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.Clear()
	c.statusList = nil
	c.page = 1
}

// === Pagination ===

// SetPage moves the pagination cursor; out-of-range values are clamped
// by the derivation pipeline.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = page
}

// NextPage advances one page when a later page exists.
func (c *Controller) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentPageLocked().HasNext() {
		c.page++
	}
}

// PrevPage steps back one page when possible.
func (c *Controller) PrevPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page > 1 {
		c.page--
	}
}

// === Derived views ===

func (c *Controller) workingListLocked() []*domain.Game {
	return DeriveList(c.games, c.statusList, c.filters)
}

func (c *Controller) currentPageLocked() Page {
	return DerivePage(c.workingListLocked(), c.page, c.pageSize)
}

// CurrentPage derives the exact page of games to display from the
// cached state and active filters.
func (c *Controller) CurrentPage() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPageLocked()
}

// WorkingList returns the full filtered, sorted list the detail
// navigation walks.
func (c *Controller) WorkingList() []*domain.Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.workingListLocked()
}

// View reports the active view kind.
func (c *Controller) View() domain.ViewKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Filters returns a copy of the active filter state.
func (c *Controller) Filters() domain.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Consoles returns the cached console list.
func (c *Controller) Consoles() []domain.Console {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consoles
}

// SelectedConsole returns the active console, if any.
func (c *Controller) SelectedConsole() (domain.Console, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, console := range c.consoles {
		if console.ID == c.consoleID {
			return console, true
		}
	}
	return domain.Console{}, false
}

// SearchResults returns the active search query and its results.
func (c *Controller) SearchResults() (string, []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchQuery, c.searchResults
}

// ArchiveStats returns the last fetched archive-wide snapshot.
func (c *Controller) ArchiveStats() *domain.ArchiveStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.archiveStats
}

// ConsoleStats returns the last fetched per-console snapshot.
func (c *Controller) ConsoleStats() *domain.ConsoleStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consoleStats
}

// GenreChoices lists the distinct genre tags in the cached console
// list for the filter bar.
func (c *Controller) GenreChoices() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GenreOptions(c.games)
}

// === Homepage lists ===

// RecentlyAdded fetches the newest entries across the archive.
func (c *Controller) RecentlyAdded(ctx context.Context, limit int) ([]domain.SearchResult, error) {
	return c.repos.Games.RecentlyAdded(ctx, limit)
}

// RecentlyViewed fetches the games opened most recently.
func (c *Controller) RecentlyViewed(ctx context.Context, limit int) ([]domain.SearchResult, error) {
	return c.repos.Games.RecentlyViewed(ctx, limit)
}
