package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gamevault/gamevault/internal/tui/styles"
)

// ConfirmModal asks a yes/no question before a destructive action.
type ConfirmModal struct {
	visible bool
	title   string
	prompt  string
	token   int // Caller-supplied tag identifying the pending action
}

// NewConfirmModal creates a hidden confirm modal
func NewConfirmModal() ConfirmModal {
	return ConfirmModal{}
}

// Show displays the modal with a question and an action token the
// caller uses to route the answer
func (m *ConfirmModal) Show(title, prompt string, token int) {
	m.visible = true
	m.title = title
	m.prompt = prompt
	m.token = token
}

// Hide dismisses the modal
func (m *ConfirmModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// Token returns the action tag given to Show
func (m ConfirmModal) Token() int {
	return m.token
}

// Update handles keys; returns (modal, answered, confirmed)
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, bool, bool) {
	if !m.visible {
		return m, false, false
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false, false
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.Hide()
		return m, true, true
	case "n", "N", "esc":
		m.Hide()
		return m, true, false
	}
	return m, false, false
}

// View renders the confirm modal
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	hint := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpKeyStyle.Render("y"),
		styles.HelpDescStyle.Render(" confirm  "),
		styles.HelpKeyStyle.Render("n"),
		styles.HelpDescStyle.Render(" cancel"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		styles.SubtitleStyle.Render(m.prompt),
		"",
		hint,
	)

	return styles.ModalStyle.Render(content)
}
