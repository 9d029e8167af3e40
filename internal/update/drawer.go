package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/drawerd/internal/query"
	"github.com/sandeepkv93/drawerd/internal/views"
)

func (m Model) updateDrawer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.drawer.capturing {
		return m.updateDrawerCapture(msg)
	}

	switch msg.String() {
	case "a", "enter":
		m.drawer.capturing = true
		m.drawer.input.SetValue("")
		m.drawer.input.Focus()
		m.drawer.suggestions = nil
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateDrawerCapture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.drawer.capturing = false
		m.drawer.input.Blur()
		m.drawer.suggestions = nil
		return m, nil

	case "tab":
		if len(m.drawer.suggestions) > 0 {
			tag := m.drawer.suggestions[m.drawer.suggestIdx]
			completed := query.CompleteTag(m.drawer.input.Value(), tag)
			m.drawer.input.SetValue(completed)
			m.drawer.input.CursorEnd()
			m.drawer.suggestions = nil
		}
		return m, nil

	case "down":
		if len(m.drawer.suggestions) > 0 {
			m.drawer.suggestIdx = (m.drawer.suggestIdx + 1) % len(m.drawer.suggestions)
			return m, nil
		}

	case "up":
		if n := len(m.drawer.suggestions); n > 0 {
			m.drawer.suggestIdx = (m.drawer.suggestIdx + n - 1) % n
			return m, nil
		}

	case "enter":
		content := strings.TrimSpace(m.drawer.input.Value())
		m.drawer.capturing = false
		m.drawer.input.Blur()
		m.drawer.suggestions = nil
		if content == "" {
			return m, nil
		}
		note, err := m.store.AddNote(context.Background(), content)
		if err != nil {
			m.status = StatusBar{Text: "Error saving note: " + err.Error(), IsError: true}
			return m, nil
		}
		m.status = StatusBar{Text: fmt.Sprintf("Note %s captured", note.ID)}
		return m, nil
	}

	var cmd tea.Cmd
	m.drawer.input, cmd = m.drawer.input.Update(msg)
	m.drawer.suggestions = query.TagSuggestions(m.store.Notes(), m.drawer.input.Value())
	m.drawer.suggestIdx = 0
	return m, cmd
}

func (m Model) viewDrawer(styles views.Styles) string {
	var b strings.Builder
	now := m.now()

	b.WriteString(styles.Accent.Render("Focus") + "\n")
	top := query.ActiveTasks(m.store.Tasks(), now, drawerTaskLimit)
	if len(top) == 0 {
		b.WriteString(styles.Dim.Render("  nothing queued") + "\n")
	}
	for _, task := range top {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			styles.Accent.Render(string(task.Priority)),
			task.Text,
			styles.Dim.Render(query.TaskDateLabel(task, now))))
	}

	b.WriteString("\n" + styles.Accent.Render("Recent notes") + "\n")
	notes := query.FilterNotes(m.store.Notes(), query.NoteFilter{})
	if len(notes) > drawerTaskLimit {
		notes = notes[:drawerTaskLimit]
	}
	if len(notes) == 0 {
		b.WriteString(styles.Dim.Render("  no notes yet") + "\n")
	}
	for _, note := range notes {
		created := query.FormatRelativeDate(note.CreatedAt, now)
		b.WriteString(fmt.Sprintf("  %s %s\n", firstLine(note.Content), styles.Dim.Render(created)))
	}

	if m.drawer.capturing {
		b.WriteString("\n" + m.drawer.input.View() + "\n")
		for i, tag := range m.drawer.suggestions {
			line := "#" + tag
			if i == m.drawer.suggestIdx {
				line = styles.Selected.Render(line)
			}
			b.WriteString("  " + line + "\n")
		}
	} else {
		b.WriteString("\n" + styles.Dim.Render("a: capture a note") + "\n")
	}
	return b.String()
}

func firstLine(content string) string {
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		content = content[:idx]
	}
	const max = 48
	if runes := []rune(content); len(runes) > max {
		return string(runes[:max-1]) + "…"
	}
	return content
}
