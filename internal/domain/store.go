package domain

// ViewKind identifies which top-level view is active.
type ViewKind int

const (
	ViewHome ViewKind = iota
	ViewConsole
	ViewSearch
)

// String returns the persisted name of the view kind.
func (v ViewKind) String() string {
	switch v {
	case ViewConsole:
		return "console"
	case ViewSearch:
		return "search"
	default:
		return "home"
	}
}

// Session is the only durable view state: the last view kind and the
// selected console. Filters are deliberately not persisted.
type Session struct {
	View      ViewKind `json:"view"`
	ConsoleID int64    `json:"console_id"`
}

// Store handles the local cache (BoltDB + memory). The view layer reads
// from Store synchronously; only fetch paths write to it.
type Store interface {
	GetConsoles() ([]Console, bool)
	SaveConsoles(consoles []Console) error

	GetGames(consoleID int64) ([]*Game, bool)
	SaveGames(consoleID int64, games []*Game) error

	GetStatus(gameID int64) (*GameStatus, bool)
	SaveStatus(status *GameStatus) error

	GetArchiveStats() (*ArchiveStats, bool)
	SaveArchiveStats(stats *ArchiveStats) error

	GetConsoleStats(consoleID int64) (*ConsoleStats, bool)
	SaveConsoleStats(stats *ConsoleStats) error

	GetSession() (*Session, bool)
	SaveSession(session *Session) error

	// RemoveConsole drops the console, its game list, per-game status
	// and its stats in one transaction so readers never observe a
	// half-deleted console.
	RemoveConsole(consoleID int64)

	// RemoveGame drops one game's status entry and invalidates the
	// owning console's game list.
	RemoveGame(consoleID, gameID int64)

	InvalidateAll()

	Close() error
}
