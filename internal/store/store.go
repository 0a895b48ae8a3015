package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gamevault/gamevault/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketConsoles = []byte("consoles")
	bucketGames    = []byte("games")
	bucketStatus   = []byte("status")
	bucketStats    = []byte("stats")
	bucketSession  = []byte("session")
)

// ArchiveStore implements domain.Store using BoltDB with a memory map
// in front for hot-path reads.
type ArchiveStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

// NewArchiveStore opens (or creates) the cache database under
// baseCacheDir, namespaced by server URL. An empty baseCacheDir gives a
// memory-only store with no persistence.
func NewArchiveStore(baseCacheDir, serverURL string) (*ArchiveStore, error) {
	if baseCacheDir == "" {
		return &ArchiveStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "gamevault.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketConsoles, bucketGames, bucketStatus, bucketStats, bucketSession} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ArchiveStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *ArchiveStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *ArchiveStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *ArchiveStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Consoles ===

func (s *ArchiveStore) GetConsoles() ([]domain.Console, bool) {
	var consoles []domain.Console
	ok := s.get(bucketConsoles, "list", &consoles)
	return consoles, ok
}

func (s *ArchiveStore) SaveConsoles(consoles []domain.Console) error {
	return s.set(bucketConsoles, "list", consoles)
}

// === Games ===

func gamesKey(consoleID int64) string { return fmt.Sprintf("console:%d", consoleID) }

func (s *ArchiveStore) GetGames(consoleID int64) ([]*domain.Game, bool) {
	var games []*domain.Game
	ok := s.get(bucketGames, gamesKey(consoleID), &games)
	return games, ok
}

func (s *ArchiveStore) SaveGames(consoleID int64, games []*domain.Game) error {
	return s.set(bucketGames, gamesKey(consoleID), games)
}

// === Play status ===

func statusKey(gameID int64) string { return fmt.Sprintf("game:%d", gameID) }

func (s *ArchiveStore) GetStatus(gameID int64) (*domain.GameStatus, bool) {
	var status domain.GameStatus
	if !s.get(bucketStatus, statusKey(gameID), &status) {
		return nil, false
	}
	return &status, true
}

func (s *ArchiveStore) SaveStatus(status *domain.GameStatus) error {
	return s.set(bucketStatus, statusKey(status.GameID), status)
}

// === Stats ===

func (s *ArchiveStore) GetArchiveStats() (*domain.ArchiveStats, bool) {
	var stats domain.ArchiveStats
	if !s.get(bucketStats, "archive", &stats) {
		return nil, false
	}
	return &stats, true
}

func (s *ArchiveStore) SaveArchiveStats(stats *domain.ArchiveStats) error {
	return s.set(bucketStats, "archive", stats)
}

func (s *ArchiveStore) GetConsoleStats(consoleID int64) (*domain.ConsoleStats, bool) {
	var stats domain.ConsoleStats
	if !s.get(bucketStats, gamesKey(consoleID), &stats) {
		return nil, false
	}
	return &stats, true
}

func (s *ArchiveStore) SaveConsoleStats(stats *domain.ConsoleStats) error {
	return s.set(bucketStats, gamesKey(stats.ConsoleID), stats)
}

// === Session ===

func (s *ArchiveStore) GetSession() (*domain.Session, bool) {
	var session domain.Session
	if !s.get(bucketSession, "current", &session) {
		return nil, false
	}
	return &session, true
}

func (s *ArchiveStore) SaveSession(session *domain.Session) error {
	return s.set(bucketSession, "current", session)
}

// === Cascade invalidation ===

// RemoveConsole drops the console's game list, its games' status
// entries, its stats, and the console itself from the cached console
// list. Memory and BoltDB are each updated in one step so no reader
// observes the console without its games or vice versa.
func (s *ArchiveStore) RemoveConsole(consoleID int64) {
	// Collect owned game IDs before the list entry disappears.
	games, _ := s.GetGames(consoleID)

	s.mu.Lock()
	delete(s.cache, string(bucketGames)+":"+gamesKey(consoleID))
	delete(s.cache, string(bucketStats)+":"+gamesKey(consoleID))
	for _, g := range games {
		delete(s.cache, string(bucketStatus)+":"+statusKey(g.ID))
	}
	// Drop the console from the cached list in place.
	listKey := string(bucketConsoles) + ":list"
	if data, ok := s.cache[listKey]; ok {
		var consoles []domain.Console
		if json.Unmarshal(data, &consoles) == nil {
			kept := consoles[:0]
			for _, c := range consoles {
				if c.ID != consoleID {
					kept = append(kept, c)
				}
			}
			if newData, err := json.Marshal(kept); err == nil {
				s.cache[listKey] = newData
			}
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		key := []byte(gamesKey(consoleID))
		if b := tx.Bucket(bucketGames); b != nil {
			b.Delete(key)
		}
		if b := tx.Bucket(bucketStats); b != nil {
			b.Delete(key)
		}
		if b := tx.Bucket(bucketStatus); b != nil {
			for _, g := range games {
				b.Delete([]byte(statusKey(g.ID)))
			}
		}
		if b := tx.Bucket(bucketConsoles); b != nil {
			if v := b.Get([]byte("list")); v != nil {
				var consoles []domain.Console
				if json.Unmarshal(v, &consoles) == nil {
					kept := consoles[:0]
					for _, c := range consoles {
						if c.ID != consoleID {
							kept = append(kept, c)
						}
					}
					if data, err := json.Marshal(kept); err == nil {
						b.Put([]byte("list"), data)
					}
				}
			}
		}
		return nil
	})
}

// RemoveGame drops one game's status entry and the owning console's
// cached game list, forcing a re-fetch.
func (s *ArchiveStore) RemoveGame(consoleID, gameID int64) {
	s.mu.Lock()
	delete(s.cache, string(bucketStatus)+":"+statusKey(gameID))
	delete(s.cache, string(bucketGames)+":"+gamesKey(consoleID))
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketStatus); b != nil {
			b.Delete([]byte(statusKey(gameID)))
		}
		if b := tx.Bucket(bucketGames); b != nil {
			b.Delete([]byte(gamesKey(consoleID)))
		}
		return nil
	})
}

// InvalidateAll clears every cached collection. The session entry
// survives so the last view is still restored on the next start.
func (s *ArchiveStore) InvalidateAll() {
	sessionPrefix := string(bucketSession) + ":"

	s.mu.Lock()
	for key := range s.cache {
		if !strings.HasPrefix(key, sessionPrefix) {
			delete(s.cache, key)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketConsoles, bucketGames, bucketStatus, bucketStats} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
