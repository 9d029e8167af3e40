package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/drawerd/internal/model"
	"github.com/sandeepkv93/drawerd/internal/query"
	"github.com/sandeepkv93/drawerd/internal/views"
)

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.board.mode != boardBrowse {
		return m.updateBoardInput(msg)
	}

	tasks := m.store.Tasks()
	m.board.cursor = clamp(m.board.cursor, 0, len(tasks)-1)

	switch msg.String() {
	case "j", "down":
		m.board.cursor = clamp(m.board.cursor+1, 0, len(tasks)-1)
		return m, nil
	case "k", "up":
		m.board.cursor = clamp(m.board.cursor-1, 0, len(tasks)-1)
		return m, nil

	case "a":
		m.board.mode = boardAdd
		m.board.input.SetValue("")
		m.board.input.Focus()
		return m, textinput.Blink

	case "e":
		if len(tasks) == 0 {
			return m, nil
		}
		task := tasks[m.board.cursor]
		m.board.mode = boardEdit
		m.board.editID = task.ID
		m.board.input.SetValue(task.Text)
		m.board.input.CursorEnd()
		m.board.input.Focus()
		return m, textinput.Blink

	case " ", "x":
		if len(tasks) == 0 {
			return m, nil
		}
		if err := m.store.ToggleTask(context.Background(), tasks[m.board.cursor].ID); err != nil {
			m.status = StatusBar{Text: "Error saving task: " + err.Error(), IsError: true}
		}
		return m, nil

	case "p":
		if len(tasks) == 0 {
			return m, nil
		}
		task := tasks[m.board.cursor]
		next := nextPriority(task.Priority)
		if err := m.store.UpdateTask(context.Background(), task.ID, model.TaskPatch{Priority: &next}); err != nil {
			m.status = StatusBar{Text: "Error saving task: " + err.Error(), IsError: true}
		}
		return m, nil

	case "t":
		if len(tasks) == 0 {
			return m, nil
		}
		task := tasks[m.board.cursor]
		next := nextDate(task.Date)
		if err := m.store.UpdateTask(context.Background(), task.ID, model.TaskPatch{Date: &next}); err != nil {
			m.status = StatusBar{Text: "Error saving task: " + err.Error(), IsError: true}
		}
		return m, nil

	case "d":
		if len(tasks) == 0 {
			return m, nil
		}
		if err := m.store.DeleteTask(context.Background(), tasks[m.board.cursor].ID); err != nil {
			m.status = StatusBar{Text: "Error deleting task: " + err.Error(), IsError: true}
		}
		m.board.cursor = clamp(m.board.cursor, 0, len(tasks)-2)
		return m, nil
	}
	return m, nil
}

func (m Model) updateBoardInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.board.mode = boardBrowse
		m.board.input.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.board.input.Value())
		mode := m.board.mode
		editID := m.board.editID
		m.board.mode = boardBrowse
		m.board.input.Blur()
		if text == "" {
			return m, nil
		}
		var err error
		switch mode {
		case boardAdd:
			_, err = m.store.AddTask(context.Background(), text)
			m.board.cursor = 0
		case boardEdit:
			err = m.store.UpdateTask(context.Background(), editID, model.TaskPatch{Text: &text})
		}
		if err != nil {
			m.status = StatusBar{Text: "Error saving task: " + err.Error(), IsError: true}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.board.input, cmd = m.board.input.Update(msg)
	return m, cmd
}

func (m Model) viewBoard(styles views.Styles) string {
	var b strings.Builder
	tasks := m.store.Tasks()
	cursor := clamp(m.board.cursor, 0, len(tasks)-1)

	if len(tasks) == 0 {
		b.WriteString(styles.Dim.Render("no tasks yet, press a to add one") + "\n")
	}
	for i, task := range tasks {
		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s %s  %s",
			check, styles.Accent.Render(string(task.Priority)), task.Text,
			styles.Dim.Render(query.TaskDateLabel(task, m.now())))
		if i == cursor && m.board.mode == boardBrowse {
			line = styles.Selected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	switch m.board.mode {
	case boardAdd:
		b.WriteString("\nadd: " + m.board.input.View() + "\n")
	case boardEdit:
		b.WriteString("\nedit: " + m.board.input.View() + "\n")
	default:
		b.WriteString("\n" + styles.Dim.Render("a add  e edit  space done  p priority  t date  d delete") + "\n")
	}
	return b.String()
}

func nextPriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityP1:
		return model.PriorityP2
	case model.PriorityP2:
		return model.PriorityP3
	default:
		return model.PriorityP1
	}
}

func nextDate(date string) string {
	switch date {
	case model.DateToday:
		return model.DateTomorrow
	case model.DateTomorrow:
		return model.DateNone
	default:
		return model.DateToday
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
