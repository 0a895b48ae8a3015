package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamevault/internal/config"
	"github.com/gamevault/gamevault/internal/domain"
)

type stubRepo struct {
	domain.GameRepository

	results []domain.SearchResult
	err     error
	queries []string
}

func (r *stubRepo) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	r.queries = append(r.queries, query)
	if r.err != nil {
		return nil, r.err
	}
	return r.results, nil
}

func result(id int64, title string) domain.SearchResult {
	return domain.SearchResult{ID: id, Title: title}
}

func titles(results []domain.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Title
	}
	return out
}

func TestSearchRanksServerResults(t *testing.T) {
	repo := &stubRepo{results: []domain.SearchResult{
		result(1, "Super Mario World"),
		result(2, "Mario Kart"),
		result(3, "Mario"),
		result(4, "Dr. Mario"),
	}}
	svc := NewService(repo, config.NullLogger())

	got, err := svc.Search(context.Background(), "mario")
	require.NoError(t, err)

	// Exact match first, then prefix, then substring matches in
	// server order.
	assert.Equal(t, []string{"Mario", "Mario Kart", "Super Mario World", "Dr. Mario"}, titles(got))
}

func TestSearchTrimsQuery(t *testing.T) {
	repo := &stubRepo{results: []domain.SearchResult{result(1, "Tetris")}}
	svc := NewService(repo, config.NullLogger())

	_, err := svc.Search(context.Background(), "  tetris  ")
	require.NoError(t, err)
	require.Len(t, repo.queries, 1)
	assert.Equal(t, "tetris", repo.queries[0])
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, config.NullLogger())

	got, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, repo.queries, "server should not be called")
}

func TestSearchFallsBackToLocalIndex(t *testing.T) {
	repo := &stubRepo{err: domain.ErrServerOffline}
	svc := NewService(repo, config.NullLogger())
	svc.Index("SNES", []*domain.Game{
		{ID: 1, Title: "Chrono Trigger"},
		{ID: 2, Title: "Earthbound"},
	})

	got, err := svc.Search(context.Background(), "chrono")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Chrono Trigger", got[0].Title)
	assert.Equal(t, "SNES", got[0].ConsoleName)
}

func TestSearchPropagatesErrorWhenIndexEmpty(t *testing.T) {
	repo := &stubRepo{err: domain.ErrServerOffline}
	svc := NewService(repo, config.NullLogger())

	_, err := svc.Search(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestSearchPropagatesErrorWhenNothingMatchesLocally(t *testing.T) {
	repo := &stubRepo{err: errors.New("boom")}
	svc := NewService(repo, config.NullLogger())
	svc.Index("NES", []*domain.Game{{ID: 1, Title: "Metroid"}})

	_, err := svc.Search(context.Background(), "zzzzzzzz")
	assert.Error(t, err)
}

func TestClearIndexDropsFallback(t *testing.T) {
	repo := &stubRepo{err: domain.ErrServerOffline}
	svc := NewService(repo, config.NullLogger())
	svc.Index("NES", []*domain.Game{{ID: 1, Title: "Metroid"}})
	svc.ClearIndex()

	_, err := svc.Search(context.Background(), "metroid")
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestMatchScoreOrdering(t *testing.T) {
	exact := matchScore("zelda", "zelda")
	prefix := matchScore("zelda ii", "zelda")
	contains := matchScore("the legend of zelda", "zelda")
	fuzzyHit := matchScore("zeldo", "zelda")

	assert.Less(t, exact, prefix)
	assert.Less(t, prefix, contains)
	assert.Less(t, contains, fuzzyHit)
}
