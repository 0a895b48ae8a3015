package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamevault/internal/domain"
)

func newDiskStore(t *testing.T) *ArchiveStore {
	t.Helper()
	s, err := NewArchiveStore(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *ArchiveStore) {
	t.Helper()
	require.NoError(t, s.SaveConsoles([]domain.Console{
		{ID: 1, Name: "SNES"},
		{ID: 2, Name: "Genesis"},
	}))
	require.NoError(t, s.SaveGames(1, []*domain.Game{
		{ID: 10, ConsoleID: 1, Title: "Axelay"},
		{ID: 11, ConsoleID: 1, Title: "Zelda"},
	}))
	require.NoError(t, s.SaveStatus(&domain.GameStatus{GameID: 10, Favorite: true}))
	require.NoError(t, s.SaveConsoleStats(&domain.ConsoleStats{ConsoleID: 1, FavoritesCount: 1}))
	require.NoError(t, s.SaveArchiveStats(&domain.ArchiveStats{TotalConsoles: 2, TotalGames: 2}))
}

func TestRoundtrip(t *testing.T) {
	s := newDiskStore(t)
	seed(t, s)

	consoles, ok := s.GetConsoles()
	require.True(t, ok)
	assert.Len(t, consoles, 2)

	games, ok := s.GetGames(1)
	require.True(t, ok)
	require.Len(t, games, 2)
	assert.Equal(t, "Axelay", games[0].Title)

	status, ok := s.GetStatus(10)
	require.True(t, ok)
	assert.True(t, status.Favorite)

	stats, ok := s.GetArchiveStats()
	require.True(t, ok)
	assert.Equal(t, 2, stats.TotalGames)

	_, ok = s.GetGames(99)
	assert.False(t, ok)
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := NewArchiveStore("", "")
	require.NoError(t, err)
	defer s.Close()

	seed(t, s)

	games, ok := s.GetGames(1)
	require.True(t, ok)
	assert.Len(t, games, 2)
}

func TestSessionRoundtrip(t *testing.T) {
	s := newDiskStore(t)

	_, ok := s.GetSession()
	assert.False(t, ok)

	require.NoError(t, s.SaveSession(&domain.Session{View: domain.ViewConsole, ConsoleID: 1}))

	session, ok := s.GetSession()
	require.True(t, ok)
	assert.Equal(t, domain.ViewConsole, session.View)
	assert.Equal(t, int64(1), session.ConsoleID)
}

func TestRemoveConsoleCascades(t *testing.T) {
	s := newDiskStore(t)
	seed(t, s)

	s.RemoveConsole(1)

	_, ok := s.GetGames(1)
	assert.False(t, ok, "game list must be gone")

	_, ok = s.GetStatus(10)
	assert.False(t, ok, "owned statuses must be gone")

	_, ok = s.GetConsoleStats(1)
	assert.False(t, ok, "console stats must be gone")

	consoles, ok := s.GetConsoles()
	require.True(t, ok)
	require.Len(t, consoles, 1)
	assert.Equal(t, int64(2), consoles[0].ID)
}

func TestRemoveGameInvalidatesConsoleList(t *testing.T) {
	s := newDiskStore(t)
	seed(t, s)

	s.RemoveGame(1, 10)

	_, ok := s.GetStatus(10)
	assert.False(t, ok)
	_, ok = s.GetGames(1)
	assert.False(t, ok, "console game list must be invalidated")
}

func TestInvalidateAllSparesSession(t *testing.T) {
	s := newDiskStore(t)
	seed(t, s)
	require.NoError(t, s.SaveSession(&domain.Session{View: domain.ViewConsole, ConsoleID: 1}))

	s.InvalidateAll()

	_, ok := s.GetConsoles()
	assert.False(t, ok)
	_, ok = s.GetGames(1)
	assert.False(t, ok)

	session, ok := s.GetSession()
	require.True(t, ok, "session must survive invalidation")
	assert.Equal(t, int64(1), session.ConsoleID)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewArchiveStore(dir, "http://localhost:8000")
	require.NoError(t, err)
	seed(t, s)
	require.NoError(t, s.SaveSession(&domain.Session{View: domain.ViewHome}))
	require.NoError(t, s.Close())

	reopened, err := NewArchiveStore(dir, "http://localhost:8000")
	require.NoError(t, err)
	defer reopened.Close()

	consoles, ok := reopened.GetConsoles()
	require.True(t, ok)
	assert.Len(t, consoles, 2)

	_, ok = reopened.GetSession()
	assert.True(t, ok)
}

func TestServerURLNamespacing(t *testing.T) {
	dir := t.TempDir()

	a, err := NewArchiveStore(dir, "http://server-a:8000")
	require.NoError(t, err)
	require.NoError(t, a.SaveConsoles([]domain.Console{{ID: 1, Name: "SNES"}}))
	require.NoError(t, a.Close())

	b, err := NewArchiveStore(dir, "http://server-b:8000")
	require.NoError(t, err)
	defer b.Close()

	_, ok := b.GetConsoles()
	assert.False(t, ok, "different servers must not share a cache")
}
