package domain

import (
	"fmt"
	"strings"
)

// Console represents a platform grouping for games (a retro system,
// a storefront, or any folder-backed collection).
type Console struct {
	ID        int64  `json:"id"`         // Server-assigned unique identifier
	Name      string `json:"name"`       // Display name
	Path      string `json:"path"`       // Source folder on the server (optional)
	GameCount int    `json:"game_count"` // Derived by the server
}

// ListLabel returns the console name with its game count for list rows.
func (c Console) ListLabel() string {
	if c.GameCount == 1 {
		return fmt.Sprintf("%s (1 game)", c.Name)
	}
	return fmt.Sprintf("%s (%d games)", c.Name, c.GameCount)
}

// Screenshot is a stored screenshot reference for a game.
type Screenshot struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// Game represents a single catalogued game.
type Game struct {
	ID          int64        `json:"id"`
	ConsoleID   int64        `json:"console_id"`
	FolderName  string       `json:"folder_name"`
	Title       string       `json:"title"`
	Genre       string       `json:"genre"` // Comma-separated tag string
	Description string       `json:"description"`
	CoverURL    string       `json:"cover_url"`   // Empty when no cover is set
	Screenshots []Screenshot `json:"screenshots"` // Ordered, server caps at 5
}

// GenreTags splits the comma-separated genre string into trimmed tags.
// Empty tags are dropped.
func (g Game) GenreTags() []string {
	if g.Genre == "" {
		return nil
	}
	parts := strings.Split(g.Genre, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// HasGenre reports whether the game carries the exact genre tag.
func (g Game) HasGenre(tag string) bool {
	for _, t := range g.GenreTags() {
		if t == tag {
			return true
		}
	}
	return false
}

// HasCover reports whether a cover image is set.
func (g Game) HasCover() bool { return g.CoverURL != "" }

// GameDetail is the full server record for a single game.
type GameDetail struct {
	Game
	MetadataJSON string `json:"metadata_json"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// StatusKind identifies one of the play-status flags.
type StatusKind int

const (
	StatusFavorite StatusKind = iota
	StatusPlaying
	StatusPlanToPlay
	StatusCompleted
	StatusDropped
	StatusOnHold
)

// StatusKinds lists all flags in display order.
var StatusKinds = []StatusKind{
	StatusFavorite,
	StatusPlaying,
	StatusPlanToPlay,
	StatusCompleted,
	StatusDropped,
	StatusOnHold,
}

// Param returns the wire name used by the by-status endpoints.
func (k StatusKind) Param() string {
	switch k {
	case StatusFavorite:
		return "favorite"
	case StatusPlaying:
		return "playing"
	case StatusPlanToPlay:
		return "plan_to_play"
	case StatusCompleted:
		return "completed"
	case StatusDropped:
		return "dropped"
	case StatusOnHold:
		return "on_hold"
	default:
		return "unknown"
	}
}

// String returns a human-readable label for the status flag.
func (k StatusKind) String() string {
	switch k {
	case StatusFavorite:
		return "Favorite"
	case StatusPlaying:
		return "Playing"
	case StatusPlanToPlay:
		return "Plan to Play"
	case StatusCompleted:
		return "Completed"
	case StatusDropped:
		return "Dropped"
	case StatusOnHold:
		return "On Hold"
	default:
		return "Unknown"
	}
}

// ParseStatusKind maps a wire name back to its StatusKind.
func ParseStatusKind(s string) (StatusKind, bool) {
	for _, k := range StatusKinds {
		if k.Param() == s {
			return k, true
		}
	}
	return 0, false
}

// GameStatus holds the per-game play-status flags. Flags are not
// mutually exclusive; the UI merely toggles one at a time.
type GameStatus struct {
	GameID        int64  `json:"game_id"`
	Favorite      bool   `json:"is_favorite"`
	PlanToPlay    bool   `json:"has_plan_to_play"`
	Playing       bool   `json:"is_playing"`
	Completed     bool   `json:"is_completed"`
	CompletedNote string `json:"completed_date_note"`
	Dropped       bool   `json:"is_dropped"`
	OnHold        bool   `json:"is_on_hold"`
}

// Flag returns the value of the named status flag.
func (s GameStatus) Flag(k StatusKind) bool {
	switch k {
	case StatusFavorite:
		return s.Favorite
	case StatusPlaying:
		return s.Playing
	case StatusPlanToPlay:
		return s.PlanToPlay
	case StatusCompleted:
		return s.Completed
	case StatusDropped:
		return s.Dropped
	case StatusOnHold:
		return s.OnHold
	default:
		return false
	}
}

// SetFlag sets the named status flag.
func (s *GameStatus) SetFlag(k StatusKind, v bool) {
	switch k {
	case StatusFavorite:
		s.Favorite = v
	case StatusPlaying:
		s.Playing = v
	case StatusPlanToPlay:
		s.PlanToPlay = v
	case StatusCompleted:
		s.Completed = v
	case StatusDropped:
		s.Dropped = v
	case StatusOnHold:
		s.OnHold = v
	}
}

// StatusUpdate carries a partial status change; nil fields are left
// untouched by the server.
type StatusUpdate struct {
	Favorite      *bool   `json:"is_favorite,omitempty"`
	PlanToPlay    *bool   `json:"has_plan_to_play,omitempty"`
	Playing       *bool   `json:"is_playing,omitempty"`
	Completed     *bool   `json:"is_completed,omitempty"`
	CompletedNote *string `json:"completed_date_note,omitempty"`
	Dropped       *bool   `json:"is_dropped,omitempty"`
	OnHold        *bool   `json:"is_on_hold,omitempty"`
}

// Set assigns the flag for the given status kind, leaving the other
// fields nil so the server only touches the one flag.
func (u *StatusUpdate) Set(k StatusKind, v bool) {
	switch k {
	case StatusFavorite:
		u.Favorite = &v
	case StatusPlanToPlay:
		u.PlanToPlay = &v
	case StatusPlaying:
		u.Playing = &v
	case StatusCompleted:
		u.Completed = &v
	case StatusDropped:
		u.Dropped = &v
	case StatusOnHold:
		u.OnHold = &v
	}
}

// ArchiveStats is the server's aggregate snapshot across the archive.
// The client treats it as read-only and refreshes it after mutations.
type ArchiveStats struct {
	TotalConsoles  int `json:"total_consoles"`
	TotalGames     int `json:"total_games"`
	CompletedCount int `json:"completed_count"`
	FavoritesCount int `json:"favorites_count"`
	PlayingCount   int `json:"playing_count"`
	PlanToPlay     int `json:"plan_to_play_count"`
	DroppedCount   int `json:"dropped_count"`
	OnHoldCount    int `json:"on_hold_count"`
}

// ConsoleStats is the per-console aggregate snapshot.
type ConsoleStats struct {
	ConsoleID      int64  `json:"console_id"`
	ConsoleName    string `json:"console_name"`
	CompletedCount int    `json:"completed_count"`
	FavoritesCount int    `json:"favorites_count"`
	PlayingCount   int    `json:"playing_count"`
	PlanToPlay     int    `json:"plan_to_play_count"`
	DroppedCount   int    `json:"dropped_count"`
	OnHoldCount    int    `json:"on_hold_count"`
}

// SearchResult is the flat game shape returned by search, by-status,
// completed and recently-* endpoints.
type SearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	CoverURL    string `json:"cover_url"`
	ConsoleName string `json:"console_name"`
}

// Game converts a search result into the slimmer Game shape used by the
// derivation pipeline. ConsoleID is unknown in this shape and stays zero.
func (r SearchResult) Game() *Game {
	return &Game{ID: r.ID, Title: r.Title, Genre: r.Genre, CoverURL: r.CoverURL}
}

// ScanSummary reports the outcome of a console folder scan.
type ScanSummary struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// AddSummary reports the outcome of single or bulk game creation.
type AddSummary struct {
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
	Title   string `json:"title"` // Set for single adds
}

// FetchSummary reports the outcome of a metadata/cover/screenshot fetch.
type FetchSummary struct {
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Title   string `json:"title"` // Set for single-game fetches
}

// HeaderInfo describes the active custom theme header, if any.
type HeaderInfo struct {
	Exists bool   `json:"exists"`
	URL    string `json:"url"`
}
