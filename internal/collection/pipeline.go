package collection

import (
	"sort"
	"strings"
	"unicode"

	"github.com/gamevault/gamevault/internal/domain"
)

// DefaultPageSize is the fixed page size of the game list view.
const DefaultPageSize = 20

// Page is one derived page of the working game list.
type Page struct {
	Items      []*domain.Game
	Number     int // 1-based, already clamped
	TotalPages int
	TotalItems int // Items after filtering, before pagination
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// sortGames returns a copy of games ordered by case-insensitive title
// with an ID tie-break, so pagination never jitters across re-renders.
func sortGames(games []*domain.Game) []*domain.Game {
	sorted := make([]*domain.Game, len(games))
	copy(sorted, games)
	sort.Slice(sorted, func(i, j int) bool {
		a := strings.ToLower(sorted[i].Title)
		b := strings.ToLower(sorted[j].Title)
		if a != b {
			return a < b
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// matchesAlpha reports whether a title falls under the alphabetical
// filter. The digit class matches any title whose first character is a
// digit; letters match the first character case-insensitively.
func matchesAlpha(title string, alpha domain.AlphaFilter) bool {
	if title == "" {
		return false
	}
	first := []rune(title)[0]
	if alpha == domain.AlphaDigits {
		return unicode.IsDigit(first)
	}
	want := []rune(strings.ToLower(string(alpha)))
	return len(want) == 1 && unicode.ToLower(first) == want[0]
}

// applyFilters narrows the sorted list by the alphabetical and genre
// filters. Callers skip this entirely while a status filter is active.
func applyFilters(games []*domain.Game, f domain.FilterState) []*domain.Game {
	if f.Alpha == "" && f.Genre == "" {
		return games
	}
	filtered := make([]*domain.Game, 0, len(games))
	for _, g := range games {
		if f.Alpha != "" && !matchesAlpha(g.Title, f.Alpha) {
			continue
		}
		if f.Genre != "" && !g.HasGenre(f.Genre) {
			continue
		}
		filtered = append(filtered, g)
	}
	return filtered
}

// DeriveList produces the full filtered, sorted working list. The base
// list is the server-fetched status subset when a status filter is
// active; otherwise the cached console list narrowed by the
// alphabetical and genre filters. The result is deterministic for
// unchanged inputs.
func DeriveList(cached, statusList []*domain.Game, f domain.FilterState) []*domain.Game {
	if f.StatusActive {
		// Status filtering replaces the working list wholesale and
		// bypasses the local filters.
		return sortGames(statusList)
	}
	return applyFilters(sortGames(cached), f)
}

// DerivePage slices the working list to the requested page. Total
// pages is ceil(count/pageSize); an out-of-range request clamps to
// page 1.
func DerivePage(list []*domain.Game, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(list)
	totalPages := (total + pageSize - 1) / pageSize
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      list[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

// Derive runs the full pipeline: filter, sort, paginate.
func Derive(cached, statusList []*domain.Game, f domain.FilterState, page, pageSize int) Page {
	return DerivePage(DeriveList(cached, statusList, f), page, pageSize)
}

// GenreOptions collects the distinct genre tags present in the cached
// list, sorted case-insensitively, for the filter bar.
func GenreOptions(games []*domain.Game) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, g := range games {
		for _, t := range g.GenreTags() {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags
}
