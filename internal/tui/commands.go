package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gamevault/gamevault/internal/collection"
	"github.com/gamevault/gamevault/internal/domain"
)

// Command factories for async operations

const requestTimeout = 30 * time.Second

// BootstrapCmd loads consoles, archive stats and the persisted session
func BootstrapCmd(ctrl *collection.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := ctrl.Bootstrap(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading archive"}
		}
		return BootstrappedMsg{}
	}
}

// RefreshConsolesCmd re-fetches the console list and archive stats
func RefreshConsolesCmd(ctrl *collection.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := ctrl.RefreshConsoles(ctx); err != nil {
			return ErrMsg{Err: err, Context: "refreshing consoles"}
		}
		return ConsolesRefreshedMsg{}
	}
}

// HardRefreshCmd drops the local cache and search index and re-fetches
// everything the current view needs
func HardRefreshCmd(ctrl *collection.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := ctrl.HardRefresh(ctx); err != nil {
			return ErrMsg{Err: err, Context: "refreshing archive"}
		}
		return ListChangedMsg{}
	}
}

// SelectConsoleCmd loads a console's games and stats and makes it active
func SelectConsoleCmd(ctrl *collection.Controller, consoleID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := ctrl.SelectConsole(ctx, consoleID); err != nil {
			return ErrMsg{Err: err, Context: "loading console"}
		}
		return ConsoleSelectedMsg{ConsoleID: consoleID}
	}
}

// StatusFilterCmd fetches the server-evaluated status subset
func StatusFilterCmd(ctrl *collection.Controller, kind domain.StatusKind) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := ctrl.SetStatusFilter(ctx, kind); err != nil {
			return ErrMsg{Err: err, Context: "applying status filter"}
		}
		return ListChangedMsg{}
	}
}

// SearchCmd runs a title search across the archive
func SearchCmd(ctrl *collection.Controller, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := ctrl.Search(ctx, query); err != nil {
			return ErrMsg{Err: err, Context: "searching"}
		}
		return SearchResultsMsg{Query: query}
	}
}

// ShowCompletedCmd lists every completed game in the results view
func ShowCompletedCmd(ctrl *collection.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := ctrl.ShowCompleted(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading completed games"}
		}
		return SearchResultsMsg{Query: "completed games"}
	}
}

// OpenGameCmd loads a game's detail and status
func OpenGameCmd(ctrl *collection.Controller, gameID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		detail, err := ctrl.OpenGame(ctx, gameID)
		if err != nil {
			if errors.Is(err, collection.ErrStaleDetail) || errors.Is(err, context.Canceled) {
				return DetailStaleMsg{}
			}
			return ErrMsg{Err: err, Context: "opening game"}
		}
		return DetailLoadedMsg{Detail: detail}
	}
}

// StepGameCmd opens the next or previous game in the working list
func StepGameCmd(ctrl *collection.Controller, forward bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var detail *domain.GameDetail
		var err error
		if forward {
			detail, err = ctrl.NextGame(ctx)
		} else {
			detail, err = ctrl.PrevGame(ctx)
		}
		if err != nil {
			if errors.Is(err, collection.ErrStaleDetail) || errors.Is(err, context.Canceled) {
				return DetailStaleMsg{}
			}
			return ErrMsg{Err: err, Context: "navigating"}
		}
		if detail == nil {
			return DetailStaleMsg{}
		}
		return DetailLoadedMsg{Detail: detail}
	}
}

// MutateCmd runs a mutation against the controller and re-derives the
// list on success. The controller refreshes all affected caches before
// this returns, so the follow-up message renders fresh state.
func MutateCmd(op func(context.Context) error, errContext string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := op(ctx); err != nil {
			return ErrMsg{Err: err, Context: errContext}
		}
		return ListChangedMsg{}
	}
}

// LoadRecentsCmd fetches the homepage recently-added and
// recently-viewed lists
func LoadRecentsCmd(ctrl *collection.Controller, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		added, err := ctrl.RecentlyAdded(ctx, limit)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading recent games"}
		}
		viewed, err := ctrl.RecentlyViewed(ctx, limit)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading recent games"}
		}
		return RecentsLoadedMsg{Added: added, Viewed: viewed}
	}
}

// LoadHeadersCmd fetches the rotating header image names
func LoadHeadersCmd(themes domain.ThemeRepository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		headers, err := themes.ListHeaders(ctx)
		if err != nil {
			// Header art is decorative; start without it.
			return HeadersLoadedMsg{}
		}

		// Start rotation at the server's active header when it is
		// still in the list.
		active := 0
		if info, err := themes.ActiveHeader(ctx); err == nil && info != nil && info.Exists {
			for i, name := range headers {
				if strings.HasSuffix(info.URL, name) {
					active = i
					break
				}
			}
		}
		return HeadersLoadedMsg{Headers: headers, Active: active}
	}
}

// HeaderTickCmd schedules the next header rotation
func HeaderTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return HeaderTickMsg{}
	})
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
