package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/gamevault/gamevault/internal/tui/styles"
)

// ListItem is one selectable row in a GameList.
type ListItem struct {
	ID       int64
	Title    string
	Subtitle string
}

// GameList is a scrollable, quick-filterable list of games. The quick
// filter narrows the rows already on screen with fuzzy matching; it is
// separate from the archive-wide search.
type GameList struct {
	items       []ListItem
	lowerTitles []string

	cursor int
	offset int
	height int
	width  int

	filtering   bool
	filterInput textinput.Model
	filteredIdx []int         // Indexes into items while a quick filter is active
	matchedIdx  map[int][]int // Item index -> matched character positions
}

// NewGameList creates an empty list
func NewGameList() GameList {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 60
	ti.Prompt = "/"
	ti.PromptStyle = styles.AccentStyle
	return GameList{
		filterInput: ti,
		height:      20,
	}
}

// SetItems replaces the list contents and resets cursor and filter
func (l *GameList) SetItems(items []ListItem) {
	l.items = items
	l.lowerTitles = make([]string, len(items))
	for i, it := range items {
		l.lowerTitles[i] = strings.ToLower(it.Title)
	}
	l.cursor = 0
	l.offset = 0
	l.clearFilter()
}

// SetSize updates the visible area
func (l *GameList) SetSize(width, height int) {
	l.width = width
	l.height = height
	if l.height < 1 {
		l.height = 1
	}
}

// Selected returns the item under the cursor
func (l GameList) Selected() (ListItem, bool) {
	visible := l.visibleIndexes()
	if len(visible) == 0 || l.cursor >= len(visible) {
		return ListItem{}, false
	}
	return l.items[visible[l.cursor]], true
}

// Filtering reports whether the quick-filter input is capturing keys
func (l GameList) Filtering() bool {
	return l.filtering
}

// StartFilter opens the quick-filter input
func (l *GameList) StartFilter() {
	l.filtering = true
	l.filterInput.SetValue("")
	l.filterInput.Focus()
	l.filteredIdx = nil
	l.matchedIdx = nil
}

func (l *GameList) clearFilter() {
	l.filtering = false
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.filteredIdx = nil
	l.matchedIdx = nil
}

func (l *GameList) applyFilter() {
	query := strings.TrimSpace(l.filterInput.Value())
	if query == "" {
		l.filteredIdx = nil
		l.matchedIdx = nil
		return
	}
	matches := fuzzy.Find(strings.ToLower(query), l.lowerTitles)
	l.filteredIdx = make([]int, len(matches))
	l.matchedIdx = make(map[int][]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
		l.matchedIdx[match.Index] = match.MatchedIndexes
	}
	l.cursor = 0
	l.offset = 0
}

func (l GameList) visibleIndexes() []int {
	if l.filteredIdx != nil {
		return l.filteredIdx
	}
	all := make([]int, len(l.items))
	for i := range all {
		all[i] = i
	}
	return all
}

// Update handles key events. Returns (list, cmd, chosen) where chosen
// is true when the user pressed enter on a row.
func (l GameList) Update(msg tea.Msg) (GameList, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil, false
	}

	if l.filtering {
		switch keyMsg.String() {
		case "enter":
			l.filtering = false
			l.filterInput.Blur()
			return l, nil, false
		case "esc":
			l.clearFilter()
			return l, nil, false
		default:
			var cmd tea.Cmd
			l.filterInput, cmd = l.filterInput.Update(msg)
			l.applyFilter()
			return l, cmd, false
		}
	}

	switch keyMsg.String() {
	case "up", "k":
		l.moveCursor(-1)
	case "down", "j":
		l.moveCursor(1)
	case "/":
		l.StartFilter()
	case "esc":
		if l.filteredIdx != nil {
			l.clearFilter()
		}
	case "enter":
		_, ok := l.Selected()
		return l, nil, ok
	}
	return l, nil, false
}

func (l *GameList) moveCursor(delta int) {
	count := len(l.visibleIndexes())
	if count == 0 {
		return
	}
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= count {
		l.cursor = count - 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
}

// View renders the list
func (l GameList) View() string {
	var b strings.Builder

	if l.filtering || l.filterInput.Value() != "" {
		b.WriteString(l.filterInput.View())
		b.WriteString("\n")
	}

	visible := l.visibleIndexes()
	if len(visible) == 0 {
		b.WriteString(styles.DimStyle.Render("  no games"))
		return b.String()
	}

	end := l.offset + l.height
	if end > len(visible) {
		end = len(visible)
	}

	for row := l.offset; row < end; row++ {
		idx := visible[row]
		item := l.items[idx]
		if matched := l.matchedIdx[idx]; len(matched) > 0 {
			b.WriteString(l.renderMatchedRow(item, matched, row == l.cursor))
			b.WriteString("\n")
			continue
		}
		line := item.Title
		if item.Subtitle != "" {
			line = fmt.Sprintf("%s  %s", item.Title, styles.DimStyle.Render(item.Subtitle))
		}
		line = styles.Truncate(line, l.width-4)
		if row == l.cursor {
			b.WriteString(styles.SelectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if end < len(visible) {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  ↓ %d more", len(visible)-end)))
	}

	return lipgloss.NewStyle().Width(l.width).Render(b.String())
}

// renderMatchedRow draws a filtered row with the fuzzy-matched
// characters emphasized. Segments render inline, without the item
// styles' padding, so the row reads as one run of text; the padding
// is written once at the edges instead.
func (l GameList) renderMatchedRow(item ListItem, matched []int, selected bool) string {
	base := styles.NormalItemStyle.Inline(true)
	match := styles.MatchHighlightStyle.Inline(true)
	prefix := "  "
	if selected {
		base = styles.SelectedItemStyle.Inline(true)
		prefix = "> "
	}

	matchSet := make(map[int]bool, len(matched))
	for _, i := range matched {
		matchSet[i] = true
	}

	var b strings.Builder
	b.WriteString(base.Render(" " + prefix))
	// Indexes past the truncation point fall off with the runes.
	runes := []rune(styles.Truncate(item.Title, l.width-4))
	for i := 0; i < len(runes); {
		isMatch := matchSet[i]
		j := i
		for j < len(runes) && matchSet[j] == isMatch {
			j++
		}
		segment := string(runes[i:j])
		if isMatch {
			b.WriteString(match.Render(segment))
		} else {
			b.WriteString(base.Render(segment))
		}
		i = j
	}
	return b.String()
}
