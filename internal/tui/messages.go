package tui

import (
	"github.com/gamevault/gamevault/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// BootstrappedMsg signals that startup data and the persisted session
// have been loaded
type BootstrappedMsg struct{}

// ConsolesRefreshedMsg signals that the console list and archive stats
// were replaced with fresh server state
type ConsolesRefreshedMsg struct{}

// ConsoleSelectedMsg signals that a console's games and stats are ready
type ConsoleSelectedMsg struct {
	ConsoleID int64
}

// ListChangedMsg signals that the working list changed (filter, page,
// or a completed mutation) and the view should re-derive
type ListChangedMsg struct{}

// SearchResultsMsg signals that search results are ready
type SearchResultsMsg struct {
	Query string
}

// DetailLoadedMsg signals that a game's detail and status are open
type DetailLoadedMsg struct {
	Detail *domain.GameDetail
}

// DetailStaleMsg signals a superseded detail load; the result was
// discarded and the view stays as-is
type DetailStaleMsg struct{}

// RecentsLoadedMsg carries the homepage recently-added and
// recently-viewed lists
type RecentsLoadedMsg struct {
	Added  []domain.SearchResult
	Viewed []domain.SearchResult
}

// HeadersLoadedMsg carries the rotating header image names
type HeadersLoadedMsg struct {
	Headers []string
	Active  int // starting index in Headers
}

// HeaderTickMsg advances the header rotation
type HeaderTickMsg struct{}

// StatusMsg sets a temporary status bar message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// ConfirmAction identifies what a confirmation modal will trigger
type ConfirmAction int

const (
	ConfirmNone ConfirmAction = iota
	ConfirmDeleteGame
	ConfirmDeleteConsole
	ConfirmForceFetch
	ConfirmDeleteCover
	ConfirmDeleteScreenshot
)
