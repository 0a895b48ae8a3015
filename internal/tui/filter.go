package tui

import (
	"github.com/gamevault/gamevault/internal/domain"
)

// alphaCycle is the order the A key walks the alphabetical filter:
// off, 0-9, then A through Z.
var alphaCycle = buildAlphaCycle()

func buildAlphaCycle() []domain.AlphaFilter {
	cycle := []domain.AlphaFilter{"", domain.AlphaDigits}
	for r := 'A'; r <= 'Z'; r++ {
		cycle = append(cycle, domain.AlphaFilter(r))
	}
	return cycle
}

// cycleAlpha advances the alphabetical filter to the next bucket
func (m Model) cycleAlpha() Model {
	current := m.Ctrl.Filters().Alpha
	next := alphaCycle[0]
	for i, a := range alphaCycle {
		if a == current {
			next = alphaCycle[(i+1)%len(alphaCycle)]
			break
		}
	}
	if next == "" {
		m.Ctrl.ClearFilters()
	} else {
		m.Ctrl.SetAlphaFilter(next)
	}
	m.syncList()
	return m
}

// cycleGenre advances the genre filter through the tags present in the
// cached console list, ending back at no filter
func (m Model) cycleGenre() Model {
	choices := m.Ctrl.GenreChoices()
	if len(choices) == 0 {
		return m
	}
	current := m.Ctrl.Filters().Genre
	next := ""
	if current == "" {
		next = choices[0]
	} else {
		for i, g := range choices {
			if g == current && i+1 < len(choices) {
				next = choices[i+1]
				break
			}
		}
	}
	if next == "" {
		m.Ctrl.ClearFilters()
	} else {
		m.Ctrl.SetGenreFilter(next)
	}
	m.syncList()
	return m
}
