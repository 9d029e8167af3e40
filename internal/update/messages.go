package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/drawerd/internal/store"
)

type SwitchScreenMsg struct {
	Screen Screen
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

// StoreEventMsg delivers an outcome of detached remote sync work.
type StoreEventMsg struct {
	Event store.Event
}

// ConnectionTestedMsg carries the result of a settings connection test.
type ConnectionTestedMsg struct {
	Summary string
	Err     error
}

// waitForStoreEvent blocks on the store's event channel and re-arms after
// every delivery.
func waitForStoreEvent(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		return StoreEventMsg{Event: <-ch}
	}
}
