package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	VaultPurple = lipgloss.Color("#8B5CF6")
	SlateDark   = lipgloss.Color("#1F2937")
	SlateLight  = lipgloss.Color("#374151")
	DimGray     = lipgloss.Color("#6B7280")
	LightGray   = lipgloss.Color("#9CA3AF")
	White       = lipgloss.Color("#F9FAFB")
	Green       = lipgloss.Color("#10B981")
	Red         = lipgloss.Color("#EF4444")
	Blue        = lipgloss.Color("#3B82F6")
	Amber       = lipgloss.Color("#F59E0B")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(VaultPurple)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Status flag indicators shown on the detail view and list rows
var (
	FavoriteStyle  = lipgloss.NewStyle().Foreground(Amber)
	PlayingStyle   = lipgloss.NewStyle().Foreground(Blue)
	CompletedStyle = lipgloss.NewStyle().Foreground(Green)
	DroppedStyle   = lipgloss.NewStyle().Foreground(Red)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Filter bar styles
var (
	ActiveFilterStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(VaultPurple).
				Padding(0, 1)

	InactiveFilterStyle = lipgloss.NewStyle().
				Foreground(DimGray).
				Padding(0, 1)
)

// Panel and modal styles
var (
	PanelStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(VaultPurple).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(VaultPurple)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Badge styles for counts and page indicators
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(VaultPurple).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Match highlight for quick-filter results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(VaultPurple).
				Bold(true)
)

// Truncate truncates a string to the given width with ellipsis.
// Widths count runes, so multibyte titles never split mid-rune.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Pad pads a string to the given width, counting runes.
func Pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + spaces(width-len(r))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
