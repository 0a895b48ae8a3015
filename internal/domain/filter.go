package domain

// AlphaFilter is an alphabetical-prefix filter: "0-9", a single letter
// A-Z, or empty for none.
type AlphaFilter string

// AlphaDigits matches titles whose first character is a digit.
const AlphaDigits AlphaFilter = "0-9"

// FilterState holds the active list filters. At most one of the
// alphabetical, genre and status filters is active at a time: selecting
// one clears the others. The status filter replaces the working list
// with a server-fetched subset; alphabetical and genre filters operate
// on the cached console list.
type FilterState struct {
	Alpha        AlphaFilter `json:"alpha"`
	Genre        string      `json:"genre"`
	Status       StatusKind  `json:"status"`
	StatusActive bool        `json:"status_active"`
}

// SetAlpha activates the alphabetical filter and clears the rest.
func (f *FilterState) SetAlpha(a AlphaFilter) {
	*f = FilterState{Alpha: a}
}

// SetGenre activates the genre filter and clears the rest.
func (f *FilterState) SetGenre(genre string) {
	*f = FilterState{Genre: genre}
}

// SetStatus activates the status filter and clears the rest.
func (f *FilterState) SetStatus(k StatusKind) {
	*f = FilterState{Status: k, StatusActive: true}
}

// Clear deactivates all filters.
func (f *FilterState) Clear() {
	*f = FilterState{}
}

// Active reports whether any filter is set.
func (f FilterState) Active() bool {
	return f.Alpha != "" || f.Genre != "" || f.StatusActive
}
