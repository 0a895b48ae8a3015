package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gamevault/gamevault/internal/domain"
	"github.com/gamevault/gamevault/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "loading..."
	}

	var body string
	switch {
	case m.Loading:
		body = styles.DimStyle.Render("  connecting to archive...")
	case m.State == StateHelp:
		body = m.renderHelp()
	case m.State == StateDetail:
		body = m.renderDetail()
	default:
		switch m.Ctrl.View() {
		case domain.ViewHome:
			body = m.renderHome()
		case domain.ViewConsole:
			body = m.renderConsole()
		case domain.ViewSearch:
			body = m.renderSearch()
		}
	}

	sections := []string{m.renderHeader(), body}

	if m.State == StateSearchInput {
		sections = append(sections, styles.PanelStyle.Render(m.searchInput.View()))
	}
	if m.ConfirmM.IsVisible() {
		sections = append(sections, lipgloss.Place(m.Width, 7, lipgloss.Center, lipgloss.Center, m.ConfirmM.View()))
	}
	if m.InputM.IsVisible() {
		sections = append(sections, lipgloss.Place(m.Width, 7, lipgloss.Center, lipgloss.Center, m.InputM.View()))
	}

	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("GameVault")
	header := ""
	if len(m.Headers) > 0 {
		header = styles.DimStyle.Render("  " + m.Headers[m.headerIdx])
	}
	return styles.PanelStyle.Render(title + header)
}

func (m Model) renderHome() string {
	var b strings.Builder

	if stats := m.Ctrl.ArchiveStats(); stats != nil {
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf(
			"%d consoles · %d games · %d completed · %d playing",
			stats.TotalConsoles, stats.TotalGames, stats.CompletedCount, stats.PlayingCount)))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.TitleStyle.Render("Consoles"))
	b.WriteString("\n")
	consoles := m.Ctrl.Consoles()
	if len(consoles) == 0 {
		b.WriteString(styles.DimStyle.Render("  no consoles yet, press n to add one\n"))
	}
	for i, console := range consoles {
		line := console.ListLabel()
		if i == m.ConsoleCursor {
			b.WriteString(styles.SelectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(m.RecentAdded) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.TitleStyle.Render("Recently added"))
		b.WriteString("\n")
		for _, r := range m.RecentAdded {
			b.WriteString(styles.NormalItemStyle.Render("  " + r.Title + "  " + styles.DimStyle.Render(r.ConsoleName)))
			b.WriteString("\n")
		}
	}
	if len(m.RecentViewed) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.TitleStyle.Render("Recently viewed"))
		b.WriteString("\n")
		for _, r := range m.RecentViewed {
			b.WriteString(styles.NormalItemStyle.Render("  " + r.Title + "  " + styles.DimStyle.Render(r.ConsoleName)))
			b.WriteString("\n")
		}
	}

	return styles.PanelStyle.Render(b.String())
}

func (m Model) renderConsole() string {
	var b strings.Builder

	if console, ok := m.Ctrl.SelectedConsole(); ok {
		b.WriteString(styles.TitleStyle.Render(console.Name))
		if stats := m.Ctrl.ConsoleStats(); stats != nil {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf(
				"   %d completed · %d playing · %d favorites",
				stats.CompletedCount, stats.PlayingCount, stats.FavoritesCount)))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(m.List.View())
	b.WriteString("\n")

	page := m.Ctrl.CurrentPage()
	if page.TotalPages > 1 {
		b.WriteString(styles.DimBadgeStyle.Render(
			fmt.Sprintf("page %d/%d · %d games", page.Number, page.TotalPages, page.TotalItems)))
	} else {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d games", page.TotalItems)))
	}

	return styles.PanelStyle.Render(b.String())
}

func (m Model) renderFilterBar() string {
	f := m.Ctrl.Filters()
	var parts []string

	switch {
	case f.Alpha != "":
		parts = append(parts, styles.ActiveFilterStyle.Render("alpha: "+string(f.Alpha)))
	case f.Genre != "":
		parts = append(parts, styles.ActiveFilterStyle.Render("genre: "+f.Genre))
	case f.StatusActive:
		parts = append(parts, styles.ActiveFilterStyle.Render("status: "+f.Status.String()))
	default:
		parts = append(parts, styles.InactiveFilterStyle.Render("no filter"))
	}

	parts = append(parts, styles.HelpDescStyle.Render("  A alpha · g genre · 1-6 status · c clear"))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderSearch() string {
	var b strings.Builder
	query, results := m.Ctrl.SearchResults()
	b.WriteString(styles.TitleStyle.Render("Search: " + query))
	b.WriteString("   ")
	b.WriteString(styles.BadgeStyle.Render(fmt.Sprintf("%d results", len(results))))
	b.WriteString("\n\n")
	b.WriteString(m.List.View())
	return styles.PanelStyle.Render(b.String())
}

func (m Model) renderDetail() string {
	detail, status := m.Ctrl.Detail()
	if detail == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(detail.Title))
	index, total := m.Ctrl.DetailPosition()
	if total > 0 && index >= 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("   %d of %d", index+1, total)))
	}
	b.WriteString("\n")

	if detail.Genre != "" {
		b.WriteString(styles.SubtitleStyle.Render(detail.Genre))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if status != nil {
		b.WriteString(m.renderStatusFlags(status))
		b.WriteString("\n\n")
	}

	if detail.Description != "" {
		b.WriteString(styles.SubtitleStyle.Render(detail.Description))
		b.WriteString("\n\n")
	}

	if detail.HasCover() {
		b.WriteString(styles.DimStyle.Render("cover: " + detail.CoverURL))
		b.WriteString("\n")
	}
	if n := len(detail.Screenshots); n > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d screenshots", n)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpDescStyle.Render(
		"←/→ prev/next · f favorite · p playing · t plan · C completed · x dropped · o on hold\n" +
			"e edit title · m metadata · v cover · V screenshots · u cover URL · U cover file\n" +
			"S/W screenshot URL/file · D/Z remove cover/screenshot · d delete · esc back"))

	return styles.PanelStyle.Render(b.String())
}

func (m Model) renderStatusFlags(status *domain.GameStatus) string {
	flag := func(set bool, on lipgloss.Style, label string) string {
		if set {
			return on.Render("[" + label + "]")
		}
		return styles.DimStyle.Render("[" + label + "]")
	}
	parts := []string{
		flag(status.Favorite, styles.FavoriteStyle, "favorite"),
		flag(status.Playing, styles.PlayingStyle, "playing"),
		flag(status.PlanToPlay, styles.SubtitleStyle, "plan to play"),
		flag(status.Completed, styles.CompletedStyle, "completed"),
		flag(status.Dropped, styles.DroppedStyle, "dropped"),
		flag(status.OnHold, styles.SubtitleStyle, "on hold"),
	}
	line := strings.Join(parts, " ")
	if status.Completed && status.CompletedNote != "" {
		line += "  " + styles.DimStyle.Render(status.CompletedNote)
	}
	return line
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"enter", "open console or game"},
		{"esc", "back"},
		{"s", "search the archive"},
		{"/", "quick filter visible list"},
		{"r", "refresh from server"},
		{"R", "drop cache and refresh"},
		{"←/→", "page or prev/next game"},
		{"A / g / 1-6", "alpha, genre, status filters"},
		{"c", "clear filters"},
		{"n / e / d / S", "new, rename, delete, scan console"},
		{"C", "show completed games"},
		{"a / b / d", "add, bulk add, delete game"},
		{"M / V / X", "fetch console metadata, covers, screenshots"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(row[0], 14)))
		b.WriteString(styles.HelpDescStyle.Render(row[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("press any key to close"))
	return styles.PanelStyle.Render(b.String())
}

func (m Model) renderStatusBar() string {
	if m.StatusMsg == "" {
		return styles.HelpDescStyle.Render(" ? help · q quit")
	}
	if m.StatusIsErr {
		return styles.ErrorStyle.Render(" " + m.StatusMsg)
	}
	return styles.SuccessStyle.Render(" " + m.StatusMsg)
}
