package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/drawerd/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.palette.active = false
		m.palette.input.Blur()
		return m, nil

	case "enter":
		input := m.palette.input.Value()
		m.palette.active = false
		m.palette.input.Blur()
		return m.runPaletteCommand(input)
	}

	var cmd tea.Cmd
	m.palette.input, cmd = m.palette.input.Update(msg)
	return m, cmd
}

func (m Model) runPaletteCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		var cmdErr *commands.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == commands.ErrCodeEmptyInput {
			return m, nil
		}
		m.status = StatusBar{Text: "Command error: " + err.Error(), IsError: true}
		return m, nil
	}

	switch cmd.Type {
	case commands.TypeTask:
		task, err := m.store.AddTask(context.Background(), cmd.Task.Text)
		if err != nil {
			m.status = StatusBar{Text: "Error saving task: " + err.Error(), IsError: true}
			return m, nil
		}
		m.status = StatusBar{Text: fmt.Sprintf("Task %d added", task.ID)}

	case commands.TypeNote:
		note, err := m.store.AddNote(context.Background(), cmd.Note.Content)
		if err != nil {
			m.status = StatusBar{Text: "Error saving note: " + err.Error(), IsError: true}
			return m, nil
		}
		m.status = StatusBar{Text: fmt.Sprintf("Note %s captured", note.ID)}

	case commands.TypeShow:
		switch cmd.Show.Screen {
		case "drawer":
			m.screen = ScreenDrawer
		case "board":
			m.screen = ScreenBoard
		case "notes":
			m.screen = ScreenNotes
		case "settings":
			m.screen = ScreenSettings
		}

	case commands.TypeTag:
		m.screen = ScreenNotes
		m.notesUI.tagFilter = cmd.Tag.Tag
		m.notesUI.cursor = 0
	}
	return m, nil
}
