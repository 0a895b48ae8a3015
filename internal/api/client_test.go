package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamevault/internal/domain"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []string
}

func (n *recordingNotifier) Notify(text string, isError bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, text)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *recordingNotifier) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	notifier := &recordingNotifier{}
	return NewClient(server.URL, 5*time.Second, notifier, nil), notifier
}

func TestGetConsoles(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/consoles", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "name": "SNES", "game_count": 12},
		})
	}))

	consoles, err := client.GetConsoles(context.Background())

	require.NoError(t, err)
	require.Len(t, consoles, 1)
	assert.Equal(t, "SNES", consoles[0].Name)
	assert.Equal(t, 12, consoles[0].GameCount)
}

func TestServerErrorParsesDetailAndNotifiesOnce(t *testing.T) {
	client, notifier := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Console already exists"})
	}))

	_, err := client.CreateConsole(context.Background(), "SNES", "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Console already exists", apiErr.Detail)
	assert.Contains(t, apiErr.Error(), "Console already exists")

	assert.Equal(t, 1, notifier.count(), "each failure must surface exactly one notice")
}

func TestTransportFailureMapsToServerOffline(t *testing.T) {
	notifier := &recordingNotifier{}
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond, notifier, nil)

	_, err := client.GetConsoles(context.Background())

	require.ErrorIs(t, err, domain.ErrServerOffline)
	assert.Equal(t, 1, notifier.count())
	assert.Equal(t, "Server unreachable", notifier.notices[0])
}

func TestNotFoundMapsToDomainSentinel(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Console not found"})
	}))

	err := client.DeleteConsole(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrConsoleNotFound)

	_, err = client.GetGame(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestBusyFlagCoversRequestLifetime(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte("[]"))
	}))

	assert.False(t, client.Busy())

	done := make(chan struct{})
	go func() {
		defer close(done)
		client.GetConsoles(context.Background())
	}()

	<-entered
	assert.True(t, client.Busy(), "busy must be set while a request is in flight")

	close(release)
	<-done
	assert.False(t, client.Busy())
}

func TestGetGamesStampsConsoleID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/consoles/7/games", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "title": "Axelay"},
			{"id": 2, "title": "Zelda"},
		})
	}))

	games, err := client.GetGames(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, games, 2)
	for _, g := range games {
		assert.Equal(t, int64(7), g.ConsoleID)
	}
}

func TestSearchSendsQueryParam(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/games/search", r.URL.Path)
		assert.Equal(t, "mario kart", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 3, "title": "Super Mario Kart", "console_name": "SNES"},
		})
	}))

	results, err := client.Search(context.Background(), "mario kart")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "SNES", results[0].ConsoleName)
}

func TestGamesByStatusRoutesByConsole(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "favorite", r.URL.Query().Get("status"))
		w.Write([]byte("[]"))
	}))

	_, err := client.GamesByStatus(context.Background(), 3, domain.StatusFavorite)
	require.NoError(t, err)
	assert.Equal(t, "/api/consoles/3/games/by-status", gotPath)

	_, err = client.GamesByStatus(context.Background(), 0, domain.StatusFavorite)
	require.NoError(t, err)
	assert.Equal(t, "/api/games/by-status", gotPath)
}

func TestSetStatusSendsPartialUpdate(t *testing.T) {
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/games/5/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))

	favorite := true
	err := client.SetStatus(context.Background(), 5, domain.StatusUpdate{Favorite: &favorite})

	require.NoError(t, err)
	assert.Equal(t, true, gotBody["is_favorite"])
	// Untouched flags stay out of the payload so the server leaves them
	// alone.
	_, present := gotBody["is_playing"]
	assert.False(t, present)
}

func TestUploadCoverSendsMultipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/games/7/upload-cover", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "box art.png", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake png bytes", string(data))

		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "cover_url": "/covers/7.png"})
	}))

	url, err := client.UploadCover(context.Background(), 7, "box art.png", strings.NewReader("fake png bytes"))

	require.NoError(t, err)
	assert.Equal(t, "/covers/7.png", url)
}

func TestUploadScreenshotReturnsRecord(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/games/7/upload-screenshot", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok", "screenshot_id": 31, "url": "/shots/31.png",
		})
	}))

	shot, err := client.UploadScreenshot(context.Background(), 7, "shot.png", strings.NewReader("bytes"))

	require.NoError(t, err)
	assert.Equal(t, int64(31), shot.ID)
	assert.Equal(t, "/shots/31.png", shot.URL)
}

func TestUploadHeaderSetsPartContentType(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/theme/upload-header", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "url": "/theme/header.png"})
	}))

	url, err := client.UploadHeader(context.Background(), "header.png", "image/png", strings.NewReader("bytes"))

	require.NoError(t, err)
	assert.Equal(t, "/theme/header.png", url)
}

func TestHeaderLifecycle(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/theme/headers":
			json.NewEncoder(w).Encode(map[string]interface{}{"headers": []string{"a.png", "b.png"}})
		case r.URL.Path == "/api/theme/header" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{"exists": true, "url": "/theme/b.png"})
		case r.URL.Path == "/api/theme/header" && r.Method == http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "deleted": true})
		default:
			http.NotFound(w, r)
		}
	}))
	ctx := context.Background()

	headers, err := client.ListHeaders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.png"}, headers)

	info, err := client.ActiveHeader(ctx)
	require.NoError(t, err)
	assert.True(t, info.Exists)
	assert.Equal(t, "/theme/b.png", info.URL)

	deleted, err := client.DeleteHeader(ctx)
	require.NoError(t, err)
	assert.True(t, deleted)
}
