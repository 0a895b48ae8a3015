package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Service runs title searches. The server owns the authoritative match
// (substring against the full archive); a local fuzzy index built from
// the games browsed this session answers when the server is unreachable.
type Service struct {
	repo   domain.GameRepository
	logger *slog.Logger

	indexMu    sync.RWMutex
	titleIndex map[string]domain.SearchResult // lowercase title -> result
}

// NewService creates a search service over the given repository.
func NewService(repo domain.GameRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		logger:     logger,
		titleIndex: make(map[string]domain.SearchResult),
	}
}

// Search asks the server first and re-ranks its results locally. When
// the server call fails it falls back to the local fuzzy index, which
// only covers games already browsed this session.
func (s *Service) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	results, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Warn("server search failed, falling back to local index", "error", err)
		if local := s.localSearch(query); len(local) > 0 {
			return local, nil
		}
		return nil, err
	}

	ranked := rankResults(results, query)
	s.logger.Debug("search complete", "query", query, "results", len(ranked))
	return ranked, nil
}

// Index adds games to the local fallback index, keyed by lowercase
// title. Called from the fetch paths as console lists arrive.
func (s *Service) Index(consoleName string, games []*domain.Game) {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	for _, g := range games {
		s.titleIndex[strings.ToLower(g.Title)] = domain.SearchResult{
			ID:          g.ID,
			Title:       g.Title,
			Genre:       g.Genre,
			CoverURL:    g.CoverURL,
			ConsoleName: consoleName,
		}
	}
	s.logger.Debug("indexed games", "count", len(games), "total", len(s.titleIndex))
}

// ClearIndex drops the local index, e.g. after a full cache invalidation.
func (s *Service) ClearIndex() {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	s.titleIndex = make(map[string]domain.SearchResult)
}

func (s *Service) localSearch(query string) []domain.SearchResult {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	if len(s.titleIndex) == 0 {
		return nil
	}

	titles := make([]string, 0, len(s.titleIndex))
	for title := range s.titleIndex {
		titles = append(titles, title)
	}

	matches := fuzzy.RankFindFold(strings.ToLower(query), titles)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	results := make([]domain.SearchResult, 0, len(matches))
	for _, match := range matches {
		if r, ok := s.titleIndex[match.Target]; ok {
			results = append(results, r)
		}
	}
	return results
}

// rankResults orders server results: exact title match, then prefix,
// then substring, then by edit distance. Ties keep the server order.
func rankResults(results []domain.SearchResult, query string) []domain.SearchResult {
	if len(results) == 0 {
		return results
	}

	query = strings.ToLower(query)

	type ranked struct {
		result domain.SearchResult
		score  int
	}
	scored := make([]ranked, len(results))
	for i, r := range results {
		scored[i] = ranked{result: r, score: matchScore(strings.ToLower(r.Title), query)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score < scored[j].score
	})

	out := make([]domain.SearchResult, len(scored))
	for i, r := range scored {
		out[i] = r.result
	}
	return out
}

// matchScore ranks a title against a query; lower is better.
func matchScore(title, query string) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	default:
		return 100 + fuzzy.LevenshteinDistance(query, title)
	}
}
