package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramNotifier bridges notices from the API client into the Bubble
// Tea event loop. Notices raised before Attach are dropped; the only
// calls that early are during startup, where the bootstrap error path
// reports the failure itself.
type ProgramNotifier struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// Attach wires the notifier to a running program's Send function
func (n *ProgramNotifier) Attach(send func(tea.Msg)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}

// Notify publishes a status bar message
func (n *ProgramNotifier) Notify(text string, isError bool) {
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()
	if send != nil {
		send(StatusMsg{Message: text, IsError: isError})
	}
}
