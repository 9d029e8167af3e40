package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/drawerd/internal/store"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SwitchScreenMsg:
		m.screen = msg.Screen
		return m, nil

	case SetStatusMsg:
		m.status = StatusBar{Text: msg.Text, IsError: msg.IsError}
		return m, nil

	case ClearStatusMsg:
		m.status = StatusBar{}
		return m, nil

	case StoreEventMsg:
		m = m.applyStoreEvent(msg)
		return m, waitForStoreEvent(m.store.Events())

	case ConnectionTestedMsg:
		if msg.Err != nil {
			m.alert = "Connection failed: " + msg.Err.Error()
		} else {
			m.alert = msg.Summary
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) applyStoreEvent(msg StoreEventMsg) Model {
	ev := msg.Event
	switch ev.Kind {
	case store.EventRemoteLinked:
		m.status = StatusBar{Text: fmt.Sprintf("Synced %s %s to Notion", ev.Entity, ev.ID)}
	case store.EventSyncFailed:
		text := fmt.Sprintf("Notion sync failed for %s %s: %v", ev.Entity, ev.ID, ev.Err)
		if ev.Alert {
			m.alert = text
		} else {
			m.status = StatusBar{Text: text, IsError: true}
		}
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.store.Wait()
		return m, tea.Quit
	}

	// An open alert swallows the next keypress to dismiss itself.
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}

	if m.palette.active {
		return m.handlePaletteKey(msg)
	}

	if !m.typing() {
		switch msg.String() {
		case m.keys.Quit:
			m.store.Wait()
			return m, tea.Quit
		case m.keys.Drawer:
			m.screen = ScreenDrawer
			return m, nil
		case m.keys.Board:
			m.screen = ScreenBoard
			return m, nil
		case m.keys.Notes:
			m.screen = ScreenNotes
			return m, nil
		case m.keys.Settings:
			m.screen = ScreenSettings
			return m, nil
		case m.keys.Palette:
			m.palette.active = true
			m.palette.input.SetValue("")
			m.palette.input.Focus()
			return m, nil
		case m.keys.Help:
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	switch m.screen {
	case ScreenDrawer:
		return m.updateDrawer(msg)
	case ScreenBoard:
		return m.updateBoard(msg)
	case ScreenNotes:
		return m.updateNotes(msg)
	case ScreenSettings:
		return m.updateSettings(msg)
	}
	return m, nil
}

// typing reports whether the active screen currently owns the keyboard for
// text entry, which suppresses the global single-letter bindings.
func (m Model) typing() bool {
	switch m.screen {
	case ScreenDrawer:
		return m.drawer.capturing
	case ScreenBoard:
		return m.board.mode != boardBrowse
	case ScreenNotes:
		return m.notesUI.mode != notesBrowse
	case ScreenSettings:
		return m.settingsInputFocused()
	}
	return false
}
