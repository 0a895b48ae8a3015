package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gamevault/gamevault/internal/collection"
	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/internal/tui/components"
	"github.com/gamevault/gamevault/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateDetail
	StateSearchInput
	StateHelp
)

const statusClearAfter = 4 * time.Second

// Options carries the UI knobs from config
type Options struct {
	RecentLimit    int
	HeaderRotation time.Duration
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState
	Ready bool

	Ctrl   *collection.Controller
	Themes domain.ThemeRepository
	Opts   Options
	Logger *slog.Logger

	// UI components
	List        components.GameList
	ConfirmM    components.ConfirmModal
	InputM      components.InputModal
	searchInput textinput.Model

	// Homepage data
	ConsoleCursor int
	RecentAdded   []domain.SearchResult
	RecentViewed  []domain.SearchResult

	// Header rotation
	Headers   []string
	headerIdx int

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	Loading     bool
}

// NewModel creates a new application model
func NewModel(ctrl *collection.Controller, themes domain.ThemeRepository, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 10
	}

	si := textinput.New()
	si.Placeholder = "search the archive..."
	si.CharLimit = 80
	si.Prompt = "search: "
	si.PromptStyle = styles.AccentStyle

	return Model{
		State:       StateBrowsing,
		Ctrl:        ctrl,
		Themes:      themes,
		Opts:        opts,
		Logger:      logger,
		List:        components.NewGameList(),
		ConfirmM:    components.NewConfirmModal(),
		InputM:      components.NewInputModal(),
		searchInput: si,
		Loading:     true,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		BootstrapCmd(m.Ctrl),
		LoadRecentsCmd(m.Ctrl, m.Opts.RecentLimit),
		LoadHeadersCmd(m.Themes),
	}
	if m.Opts.HeaderRotation > 0 {
		cmds = append(cmds, HeaderTickCmd(m.Opts.HeaderRotation))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.List.SetSize(msg.Width, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case BootstrappedMsg:
		m.Loading = false
		m.syncList()
		return m, nil

	case ConsolesRefreshedMsg:
		m.clampConsoleCursor()
		return m, nil

	case ConsoleSelectedMsg:
		m.State = StateBrowsing
		m.syncList()
		return m, nil

	case ListChangedMsg:
		m.syncList()
		return m, nil

	case SearchResultsMsg:
		m.State = StateBrowsing
		m.syncList()
		return m, nil

	case DetailLoadedMsg:
		m.State = StateDetail
		return m, nil

	case DetailStaleMsg:
		// A newer navigation superseded this load; nothing to do.
		return m, nil

	case RecentsLoadedMsg:
		m.RecentAdded = msg.Added
		m.RecentViewed = msg.Viewed
		return m, nil

	case HeadersLoadedMsg:
		m.Headers = msg.Headers
		m.headerIdx = 0
		if msg.Active > 0 && msg.Active < len(msg.Headers) {
			m.headerIdx = msg.Active
		}
		return m, nil

	case HeaderTickMsg:
		if len(m.Headers) > 1 {
			m.headerIdx = (m.headerIdx + 1) % len(m.Headers)
		}
		if m.Opts.HeaderRotation > 0 {
			return m, HeaderTickCmd(m.Opts.HeaderRotation)
		}
		return m, nil

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(statusClearAfter)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.Loading = false
		m.Logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		// The API client already surfaced server errors through the
		// notifier; only local failures need a status line here.
		if m.StatusMsg == "" {
			m.StatusMsg = msg.Error()
			m.StatusIsErr = true
			return m, ClearStatusCmd(statusClearAfter)
		}
		return m, nil
	}

	return m, nil
}

// syncList re-derives the visible rows from controller state
func (m *Model) syncList() {
	switch m.Ctrl.View() {
	case domain.ViewConsole:
		page := m.Ctrl.CurrentPage()
		items := make([]components.ListItem, len(page.Items))
		for i, g := range page.Items {
			items[i] = components.ListItem{ID: g.ID, Title: g.Title, Subtitle: g.Genre}
		}
		m.List.SetItems(items)
	case domain.ViewSearch:
		_, results := m.Ctrl.SearchResults()
		items := make([]components.ListItem, len(results))
		for i, r := range results {
			items[i] = components.ListItem{ID: r.ID, Title: r.Title, Subtitle: r.ConsoleName}
		}
		m.List.SetItems(items)
	}
}

func (m *Model) clampConsoleCursor() {
	consoles := m.Ctrl.Consoles()
	if m.ConsoleCursor >= len(consoles) {
		m.ConsoleCursor = len(consoles) - 1
	}
	if m.ConsoleCursor < 0 {
		m.ConsoleCursor = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modals capture all keys while visible.
	if m.ConfirmM.IsVisible() {
		var answered, confirmed bool
		m.ConfirmM, answered, confirmed = m.ConfirmM.Update(msg)
		if answered {
			return m.resolveConfirm(m.ConfirmM.Token(), confirmed)
		}
		return m, nil
	}
	if m.InputM.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.InputM, cmd, submitted = m.InputM.Update(msg)
		if submitted {
			value := m.InputM.Value()
			m.InputM.Hide()
			return m.resolveInput(m.InputM.Token(), value)
		}
		return m, cmd
	}

	if m.State == StateSearchInput {
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(m.searchInput.Value())
			m.searchInput.Blur()
			m.State = StateBrowsing
			if query == "" {
				return m, nil
			}
			return m, SearchCmd(m.Ctrl, query)
		case "esc":
			m.searchInput.Blur()
			m.State = StateBrowsing
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	if m.State == StateDetail {
		return m.handleDetailKey(msg)
	}

	// Quick filter captures keys until closed.
	if m.List.Filtering() {
		var cmd tea.Cmd
		m.List, cmd, _ = m.List.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.State = StateHelp
		return m, nil
	case "s":
		m.State = StateSearchInput
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, nil
	case "r":
		return m, tea.Batch(
			RefreshConsolesCmd(m.Ctrl),
			LoadRecentsCmd(m.Ctrl, m.Opts.RecentLimit),
		)
	case "R":
		return m, tea.Batch(
			HardRefreshCmd(m.Ctrl),
			LoadRecentsCmd(m.Ctrl, m.Opts.RecentLimit),
		)
	}

	switch m.Ctrl.View() {
	case domain.ViewHome:
		return m.handleHomeKey(msg)
	case domain.ViewConsole:
		return m.handleConsoleKey(msg)
	case domain.ViewSearch:
		return m.handleSearchViewKey(msg)
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	consoles := m.Ctrl.Consoles()
	switch msg.String() {
	case "up", "k":
		if m.ConsoleCursor > 0 {
			m.ConsoleCursor--
		}
	case "down", "j":
		if m.ConsoleCursor < len(consoles)-1 {
			m.ConsoleCursor++
		}
	case "enter":
		if m.ConsoleCursor < len(consoles) {
			return m, SelectConsoleCmd(m.Ctrl, consoles[m.ConsoleCursor].ID)
		}
	case "n":
		m.InputM.Show("New console name", "", inputNewConsole)
	case "e":
		if m.ConsoleCursor < len(consoles) {
			m.InputM.Show("Rename console", consoles[m.ConsoleCursor].Name, inputRenameConsole)
		}
	case "d":
		if m.ConsoleCursor < len(consoles) {
			m.ConfirmM.Show("Delete console",
				"Delete "+consoles[m.ConsoleCursor].Name+" and all of its games?",
				int(ConfirmDeleteConsole))
		}
	case "S":
		if m.ConsoleCursor < len(consoles) {
			id := consoles[m.ConsoleCursor].ID
			return m, MutateCmd(func(ctx context.Context) error {
				return m.Ctrl.ScanConsole(ctx, id)
			}, "scanning console")
		}
	case "C":
		return m, ShowCompletedCmd(m.Ctrl)
	}
	return m, nil
}

func (m Model) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Ctrl.GoHome()
		return m, nil
	case "left", "h":
		m.Ctrl.PrevPage()
		m.syncList()
		return m, nil
	case "right", "l":
		m.Ctrl.NextPage()
		m.syncList()
		return m, nil
	case "g":
		return m.cycleGenre(), nil
	case "A":
		return m.cycleAlpha(), nil
	case "1", "2", "3", "4", "5", "6":
		kind := domain.StatusKinds[int(msg.String()[0]-'1')]
		return m, StatusFilterCmd(m.Ctrl, kind)
	case "c":
		m.Ctrl.ClearFilters()
		m.syncList()
		return m, nil
	case "a":
		m.InputM.Show("Add game (folder name)", "", inputAddGame)
		return m, nil
	case "b":
		m.InputM.Show("Add games (comma-separated)", "", inputAddGames)
		return m, nil
	case "d":
		if item, ok := m.List.Selected(); ok {
			m.ConfirmM.Show("Delete game", "Delete "+item.Title+"?", int(ConfirmDeleteGame))
		}
		return m, nil
	case "M":
		if console, ok := m.Ctrl.SelectedConsole(); ok {
			id := console.ID
			return m, MutateCmd(func(ctx context.Context) error {
				return m.Ctrl.FetchConsoleMetadata(ctx, id, false)
			}, "fetching metadata")
		}
		return m, nil
	case "V":
		if console, ok := m.Ctrl.SelectedConsole(); ok {
			id := console.ID
			return m, MutateCmd(func(ctx context.Context) error {
				return m.Ctrl.FetchConsoleCovers(ctx, id, false, "")
			}, "fetching covers")
		}
		return m, nil
	case "X":
		if console, ok := m.Ctrl.SelectedConsole(); ok {
			id := console.ID
			return m, MutateCmd(func(ctx context.Context) error {
				return m.Ctrl.FetchConsoleScreenshots(ctx, id, false)
			}, "fetching screenshots")
		}
		return m, nil
	}

	var cmd tea.Cmd
	var chosen bool
	m.List, cmd, chosen = m.List.Update(msg)
	if chosen {
		if item, ok := m.List.Selected(); ok {
			return m, OpenGameCmd(m.Ctrl, item.ID)
		}
	}
	return m, cmd
}

func (m Model) handleSearchViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Ctrl.ClearSearch()
		m.syncList()
		return m, nil
	}

	var cmd tea.Cmd
	var chosen bool
	m.List, cmd, chosen = m.List.Update(msg)
	if chosen {
		if item, ok := m.List.Selected(); ok {
			return m, OpenGameCmd(m.Ctrl, item.ID)
		}
	}
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	detail, _ := m.Ctrl.Detail()
	if detail == nil {
		m.State = StateBrowsing
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		m.Ctrl.CloseDetail()
		m.State = StateBrowsing
		return m, nil
	case "left", "h":
		return m, StepGameCmd(m.Ctrl, false)
	case "right", "l":
		return m, StepGameCmd(m.Ctrl, true)
	case "f":
		return m, m.toggleStatusCmd(domain.StatusFavorite)
	case "p":
		return m, m.toggleStatusCmd(domain.StatusPlaying)
	case "t":
		return m, m.toggleStatusCmd(domain.StatusPlanToPlay)
	case "C":
		return m, m.toggleStatusCmd(domain.StatusCompleted)
	case "x":
		return m, m.toggleStatusCmd(domain.StatusDropped)
	case "o":
		return m, m.toggleStatusCmd(domain.StatusOnHold)
	case "N":
		_, status := m.Ctrl.Detail()
		initial := ""
		if status != nil {
			initial = status.CompletedNote
		}
		m.InputM.Show("Completed note", initial, inputCompletedNote)
		return m, nil
	case "e":
		m.InputM.Show("Edit title", detail.Title, inputEditTitle)
		return m, nil
	case "m":
		gameID := detail.ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.FetchMetadata(ctx, gameID, false)
		}, "fetching metadata")
	case "M":
		m.ConfirmM.Show("Re-fetch metadata", "Overwrite existing metadata for "+detail.Title+"?",
			int(ConfirmForceFetch))
		return m, nil
	case "v":
		gameID := detail.ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.FetchCover(ctx, gameID, false, "")
		}, "fetching cover")
	case "V":
		gameID := detail.ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.FetchScreenshots(ctx, gameID, false)
		}, "fetching screenshots")
	case "u":
		m.InputM.Show("Cover image URL", "", inputCoverURL)
		return m, nil
	case "U":
		m.InputM.Show("Cover image file path", "", inputCoverFile)
		return m, nil
	case "S":
		m.InputM.Show("Screenshot image URL", "", inputScreenshotURL)
		return m, nil
	case "W":
		m.InputM.Show("Screenshot file path", "", inputScreenshotFile)
		return m, nil
	case "D":
		if detail.HasCover() {
			m.ConfirmM.Show("Remove cover", "Remove the cover for "+detail.Title+"?",
				int(ConfirmDeleteCover))
		}
		return m, nil
	case "Z":
		if len(detail.Screenshots) > 0 {
			m.ConfirmM.Show("Remove screenshot", "Remove the newest screenshot?",
				int(ConfirmDeleteScreenshot))
		}
		return m, nil
	case "d":
		m.ConfirmM.Show("Delete game", "Delete "+detail.Title+"?", int(ConfirmDeleteGame))
		return m, nil
	}
	return m, nil
}

func (m Model) toggleStatusCmd(kind domain.StatusKind) tea.Cmd {
	return MutateCmd(func(ctx context.Context) error {
		return m.Ctrl.ToggleStatus(ctx, kind)
	}, "updating status")
}

// Input modal action tokens
const (
	inputNewConsole = iota + 1
	inputRenameConsole
	inputAddGame
	inputAddGames
	inputEditTitle
	inputCompletedNote
	inputCoverURL
	inputCoverFile
	inputScreenshotURL
	inputScreenshotFile
)

func (m Model) resolveInput(token int, value string) (tea.Model, tea.Cmd) {
	switch token {
	case inputNewConsole:
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.CreateConsole(ctx, value, "")
		}, "creating console")

	case inputRenameConsole:
		consoles := m.Ctrl.Consoles()
		if m.ConsoleCursor >= len(consoles) {
			return m, nil
		}
		console := consoles[m.ConsoleCursor]
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.RenameConsole(ctx, console.ID, value, console.Path)
		}, "renaming console")

	case inputAddGame:
		console, ok := m.Ctrl.SelectedConsole()
		if !ok {
			return m, nil
		}
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.AddGame(ctx, console.ID, value)
		}, "adding game")

	case inputAddGames:
		console, ok := m.Ctrl.SelectedConsole()
		if !ok {
			return m, nil
		}
		names := strings.Split(value, ",")
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.AddGames(ctx, console.ID, names)
		}, "adding games")

	case inputEditTitle:
		detail, _ := m.Ctrl.Detail()
		if detail == nil {
			return m, nil
		}
		game := detail.Game
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.UpdateGameRecord(ctx, &game, value, game.Genre, game.Description)
		}, "updating game")

	case inputCompletedNote:
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.SetCompletedNote(ctx, value)
		}, "updating status")

	case inputCoverURL:
		detail, _ := m.Ctrl.Detail()
		if detail == nil {
			return m, nil
		}
		gameID := detail.ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.CoverFromURL(ctx, gameID, value)
		}, "setting cover")

	case inputCoverFile:
		detail, _ := m.Ctrl.Detail()
		if detail == nil {
			return m, nil
		}
		gameID := detail.ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.UploadCoverFile(ctx, gameID, value)
		}, "uploading cover")

	case inputScreenshotURL:
		detail, _ := m.Ctrl.Detail()
		if detail == nil {
			return m, nil
		}
		gameID := detail.ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.ScreenshotFromURL(ctx, gameID, value)
		}, "adding screenshot")

	case inputScreenshotFile:
		detail, _ := m.Ctrl.Detail()
		if detail == nil {
			return m, nil
		}
		gameID := detail.ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.UploadScreenshotFile(ctx, gameID, value)
		}, "uploading screenshot")
	}
	return m, nil
}

func (m Model) resolveConfirm(token int, confirmed bool) (tea.Model, tea.Cmd) {
	if !confirmed {
		return m, nil
	}
	switch ConfirmAction(token) {
	case ConfirmDeleteConsole:
		consoles := m.Ctrl.Consoles()
		if m.ConsoleCursor >= len(consoles) {
			return m, nil
		}
		id := consoles[m.ConsoleCursor].ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.DeleteConsole(ctx, id)
		}, "deleting console")

	case ConfirmDeleteGame:
		var game *domain.Game
		if detail, _ := m.Ctrl.Detail(); detail != nil {
			g := detail.Game
			game = &g
		} else if item, ok := m.List.Selected(); ok {
			for _, g := range m.Ctrl.WorkingList() {
				if g.ID == item.ID {
					game = g
					break
				}
			}
		}
		if game == nil {
			return m, nil
		}
		m.State = StateBrowsing
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.DeleteGame(ctx, game)
		}, "deleting game")

	case ConfirmForceFetch:
		detail, _ := m.Ctrl.Detail()
		if detail == nil {
			return m, nil
		}
		gameID := detail.ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.FetchMetadata(ctx, gameID, true)
		}, "fetching metadata")

	case ConfirmDeleteCover:
		detail, _ := m.Ctrl.Detail()
		if detail == nil {
			return m, nil
		}
		gameID := detail.ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.DeleteCover(ctx, gameID)
		}, "removing cover")

	case ConfirmDeleteScreenshot:
		detail, _ := m.Ctrl.Detail()
		if detail == nil || len(detail.Screenshots) == 0 {
			return m, nil
		}
		gameID := detail.ID
		shotID := detail.Screenshots[len(detail.Screenshots)-1].ID
		return m, MutateCmd(func(ctx context.Context) error {
			return m.Ctrl.DeleteScreenshot(ctx, gameID, shotID)
		}, "removing screenshot")
	}
	return m, nil
}
