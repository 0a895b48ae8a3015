package domain

import (
	"context"
	"io"
)

// ConsoleRepository provides access to console records on the server.
type ConsoleRepository interface {
	// GetConsoles returns all consoles with derived game counts
	GetConsoles(ctx context.Context) ([]Console, error)

	// CreateConsole registers a new console; path is optional
	CreateConsole(ctx context.Context, name, path string) (*Console, error)

	// UpdateConsole renames a console and/or changes its source path
	UpdateConsole(ctx context.Context, id int64, name, path string) (*Console, error)

	// DeleteConsole removes a console; the server cascades to its games
	DeleteConsole(ctx context.Context, id int64) error

	// ScanConsole walks the console's source folder server-side and
	// registers any games not yet catalogued
	ScanConsole(ctx context.Context, id int64) (*ScanSummary, error)
}

// GameRepository provides access to game records on the server.
type GameRepository interface {
	// GetGames returns every game owned by a console
	GetGames(ctx context.Context, consoleID int64) ([]*Game, error)

	// GetGame returns the full record for one game
	GetGame(ctx context.Context, gameID int64) (*GameDetail, error)

	// AddGame creates a single game by title
	AddGame(ctx context.Context, consoleID int64, title string) (*AddSummary, error)

	// AddGames creates games in bulk; duplicates are skipped server-side
	AddGames(ctx context.Context, consoleID int64, titles []string) (*AddSummary, error)

	// UpdateGame replaces title, genre and description
	UpdateGame(ctx context.Context, gameID int64, title, genre, description string) error

	// DeleteGame removes a game and its stored assets
	DeleteGame(ctx context.Context, gameID int64) error

	// Search matches game titles across all consoles
	Search(ctx context.Context, query string) ([]SearchResult, error)

	// GamesByStatus returns the server-evaluated status subset for one
	// console, or across the archive when consoleID is zero
	GamesByStatus(ctx context.Context, consoleID int64, status StatusKind) ([]SearchResult, error)

	// CompletedGames returns all completed games across the archive
	CompletedGames(ctx context.Context) ([]SearchResult, error)

	// RecentlyAdded returns the newest catalogued games
	RecentlyAdded(ctx context.Context, limit int) ([]SearchResult, error)

	// RecentlyViewed returns the most recently opened games
	RecentlyViewed(ctx context.Context, limit int) ([]SearchResult, error)

	// RecordView marks a game as viewed for the recently-viewed list
	RecordView(ctx context.Context, gameID int64) error
}

// StatusRepository reads and writes per-game play status.
type StatusRepository interface {
	GetStatus(ctx context.Context, gameID int64) (*GameStatus, error)

	// SetStatus applies a partial update. Callers re-fetch the merged
	// status; the server returns only an acknowledgement.
	SetStatus(ctx context.Context, gameID int64, update StatusUpdate) error
}

// StatsRepository reads server-computed aggregate snapshots.
type StatsRepository interface {
	ArchiveStats(ctx context.Context) (*ArchiveStats, error)
	ConsoleStats(ctx context.Context, consoleID int64) (*ConsoleStats, error)
}

// AssetRepository manages covers, screenshots and metadata fetches.
type AssetRepository interface {
	// UploadCover stores a cover image; returns the new cover URL
	UploadCover(ctx context.Context, gameID int64, filename string, data io.Reader) (string, error)

	// CoverFromURL makes the server download a cover from a URL
	CoverFromURL(ctx context.Context, gameID int64, imageURL string) (string, error)

	// FetchCover asks the server to locate a cover via its providers.
	// force overwrites an existing cover; source selects the provider.
	FetchCover(ctx context.Context, gameID int64, force bool, source string) (*FetchSummary, error)

	DeleteCover(ctx context.Context, gameID int64) error

	UploadScreenshot(ctx context.Context, gameID int64, filename string, data io.Reader) (*Screenshot, error)
	ScreenshotFromURL(ctx context.Context, gameID int64, imageURL string) (*Screenshot, error)
	DeleteScreenshot(ctx context.Context, screenshotID int64) error

	// FetchMetadata refreshes one game's metadata from the providers
	FetchMetadata(ctx context.Context, gameID int64, force bool) (*FetchSummary, error)

	// FetchScreenshots pulls provider screenshots for one game
	FetchScreenshots(ctx context.Context, gameID int64, force bool) (*FetchSummary, error)

	// Console-wide batch variants. A smart fetch (force=false) skips
	// games that already have data; a force fetch overwrites.
	FetchConsoleMetadata(ctx context.Context, consoleID int64, force bool) (*FetchSummary, error)
	FetchConsoleCovers(ctx context.Context, consoleID int64, force bool, source string) (*FetchSummary, error)
	FetchConsoleScreenshots(ctx context.Context, consoleID int64, force bool) (*FetchSummary, error)
}

// ThemeRepository manages the rotating header images.
type ThemeRepository interface {
	ListHeaders(ctx context.Context) ([]string, error)
	ActiveHeader(ctx context.Context) (*HeaderInfo, error)
	UploadHeader(ctx context.Context, filename, contentType string, data io.Reader) (string, error)
	DeleteHeader(ctx context.Context) (bool, error)
}
