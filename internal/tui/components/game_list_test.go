package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeRunes(l GameList, s string) GameList {
	for _, r := range s {
		l, _, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return l
}

func snesItems() []ListItem {
	return []ListItem{
		{ID: 1, Title: "Chrono Trigger"},
		{ID: 2, Title: "Secret of Mana"},
		{ID: 3, Title: "Super Metroid"},
	}
}

func TestQuickFilterNarrowsRows(t *testing.T) {
	l := NewGameList()
	l.SetSize(60, 10)
	l.SetItems(snesItems())

	l.StartFilter()
	l = typeRunes(l, "metro")

	require.Len(t, l.visibleIndexes(), 1)
	item, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(3), item.ID)

	view := l.View()
	assert.Contains(t, view, "Super Metroid")
	assert.NotContains(t, view, "Chrono Trigger")
}

func TestQuickFilterEscRestoresFullList(t *testing.T) {
	l := NewGameList()
	l.SetSize(60, 10)
	l.SetItems(snesItems())

	l.StartFilter()
	l = typeRunes(l, "metro")
	l, _, _ = l.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, l.Filtering())
	assert.Len(t, l.visibleIndexes(), 3)
}

func TestQuickFilterRecordsMatchedPositions(t *testing.T) {
	l := NewGameList()
	l.SetSize(60, 10)
	l.SetItems(snesItems())

	l.StartFilter()
	l = typeRunes(l, "mana")

	require.Contains(t, l.matchedIdx, 1)
	assert.NotEmpty(t, l.matchedIdx[1])
}

func TestMatchedRowSurvivesTruncation(t *testing.T) {
	l := NewGameList()
	l.SetSize(10, 5)
	l.SetItems([]ListItem{{ID: 1, Title: "Final Fantasy Tactics"}})

	l.StartFilter()
	l = typeRunes(l, "tactics")
	require.Contains(t, l.matchedIdx, 0)

	// The matched characters sit past the truncation cut; the row
	// still renders, with the surviving runes intact.
	row := l.renderMatchedRow(l.items[0], l.matchedIdx[0], false)
	assert.Contains(t, row, "Fin")
}
