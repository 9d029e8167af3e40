package update

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/drawerd/internal/model"
	"github.com/sandeepkv93/drawerd/internal/query"
	"github.com/sandeepkv93/drawerd/internal/views"
)

func (m Model) noteFilter() query.NoteFilter {
	return query.NoteFilter{
		Query:    m.notesUI.query,
		Archived: m.notesUI.archived,
		Tag:      m.notesUI.tagFilter,
	}
}

func (m Model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.notesUI.mode {
	case notesSearch:
		return m.updateNotesSearch(msg)
	case notesCompose, notesEdit:
		return m.updateNotesEditor(msg)
	case notesTagAdd:
		return m.updateNotesTagAdd(msg)
	}

	visible := query.FilterNotes(m.store.Notes(), m.noteFilter())
	m.notesUI.cursor = clamp(m.notesUI.cursor, 0, len(visible)-1)

	switch msg.String() {
	case "j", "down":
		m.notesUI.cursor = clamp(m.notesUI.cursor+1, 0, len(visible)-1)
		return m, nil
	case "k", "up":
		m.notesUI.cursor = clamp(m.notesUI.cursor-1, 0, len(visible)-1)
		return m, nil

	case "n":
		m.notesUI.mode = notesCompose
		m.notesUI.editor.SetValue("")
		m.notesUI.editor.Focus()
		return m, textarea.Blink

	case "e":
		if len(visible) == 0 {
			return m, nil
		}
		note := visible[m.notesUI.cursor]
		m.notesUI.mode = notesEdit
		m.notesUI.editID = note.ID
		m.notesUI.editor.SetValue(note.Content)
		m.notesUI.editor.Focus()
		return m, textarea.Blink

	case "s":
		m.notesUI.mode = notesSearch
		m.notesUI.search.SetValue(m.notesUI.query)
		m.notesUI.search.CursorEnd()
		m.notesUI.search.Focus()
		return m, textinput.Blink

	case "t":
		if len(visible) == 0 {
			return m, nil
		}
		m.notesUI.mode = notesTagAdd
		m.notesUI.editID = visible[m.notesUI.cursor].ID
		m.notesUI.tagInput.SetValue("")
		m.notesUI.tagInput.Focus()
		return m, textinput.Blink

	case "f":
		m.notesUI.tagFilter = nextTagFilter(m.store.Notes(), m.notesUI.tagFilter)
		m.notesUI.cursor = 0
		return m, nil

	case "v":
		m.notesUI.archived = !m.notesUI.archived
		m.notesUI.cursor = 0
		return m, nil

	case "p":
		if len(visible) == 0 {
			return m, nil
		}
		note := visible[m.notesUI.cursor]
		pinned := !note.IsPinned
		if err := m.store.UpdateNote(context.Background(), note.ID, model.NotePatch{IsPinned: &pinned}); err != nil {
			m.status = StatusBar{Text: "Error saving note: " + err.Error(), IsError: true}
		}
		return m, nil

	case "x":
		if len(visible) == 0 {
			return m, nil
		}
		note := visible[m.notesUI.cursor]
		archived := !note.IsArchived
		if err := m.store.UpdateNote(context.Background(), note.ID, model.NotePatch{IsArchived: &archived}); err != nil {
			m.status = StatusBar{Text: "Error saving note: " + err.Error(), IsError: true}
		}
		m.notesUI.cursor = clamp(m.notesUI.cursor, 0, len(visible)-2)
		return m, nil

	case "d":
		if len(visible) == 0 {
			return m, nil
		}
		if err := m.store.DeleteNote(context.Background(), visible[m.notesUI.cursor].ID); err != nil {
			m.status = StatusBar{Text: "Error deleting note: " + err.Error(), IsError: true}
		}
		m.notesUI.cursor = clamp(m.notesUI.cursor, 0, len(visible)-2)
		return m, nil
	}
	return m, nil
}

func (m Model) updateNotesSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.notesUI.mode = notesBrowse
		m.notesUI.search.Blur()
		m.notesUI.query = ""
		m.notesUI.cursor = 0
		return m, nil
	case "enter":
		m.notesUI.mode = notesBrowse
		m.notesUI.search.Blur()
		m.notesUI.query = strings.TrimSpace(m.notesUI.search.Value())
		m.notesUI.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.notesUI.search, cmd = m.notesUI.search.Update(msg)
	m.notesUI.query = m.notesUI.search.Value()
	return m, cmd
}

func (m Model) updateNotesEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.notesUI.mode = notesBrowse
		m.notesUI.editor.Blur()
		return m, nil

	case "ctrl+s":
		content := strings.TrimSpace(m.notesUI.editor.Value())
		mode := m.notesUI.mode
		editID := m.notesUI.editID
		m.notesUI.mode = notesBrowse
		m.notesUI.editor.Blur()
		if content == "" {
			return m, nil
		}
		var err error
		switch mode {
		case notesCompose:
			_, err = m.store.AddNote(context.Background(), content)
			m.notesUI.cursor = 0
		case notesEdit:
			err = m.store.UpdateNote(context.Background(), editID, model.NotePatch{Content: &content})
		}
		if err != nil {
			m.status = StatusBar{Text: "Error saving note: " + err.Error(), IsError: true}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.notesUI.editor, cmd = m.notesUI.editor.Update(msg)
	return m, cmd
}

func (m Model) updateNotesTagAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.notesUI.mode = notesBrowse
		m.notesUI.tagInput.Blur()
		return m, nil

	case "enter":
		tag := strings.TrimPrefix(strings.TrimSpace(m.notesUI.tagInput.Value()), "#")
		m.notesUI.mode = notesBrowse
		m.notesUI.tagInput.Blur()
		if tag == "" {
			return m, nil
		}
		if err := m.store.AddNoteTag(context.Background(), m.notesUI.editID, tag); err != nil {
			m.status = StatusBar{Text: "Error saving note: " + err.Error(), IsError: true}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.notesUI.tagInput, cmd = m.notesUI.tagInput.Update(msg)
	return m, cmd
}

func (m Model) viewNotes(styles views.Styles) string {
	var b strings.Builder
	now := m.now()
	visible := query.FilterNotes(m.store.Notes(), m.noteFilter())
	cursor := clamp(m.notesUI.cursor, 0, len(visible)-1)

	header := "Notes"
	if m.notesUI.archived {
		header = "Archived notes"
	}
	if m.notesUI.tagFilter != "" {
		header += "  #" + m.notesUI.tagFilter
	}
	if m.notesUI.query != "" {
		header += "  /" + m.notesUI.query
	}
	b.WriteString(styles.Accent.Render(header) + "\n")

	if len(visible) == 0 {
		b.WriteString(styles.Dim.Render("nothing here") + "\n")
	}
	for i, note := range visible {
		marks := ""
		if note.IsPinned {
			marks += "*"
		}
		line := marks + firstLine(note.Content) + "  " +
			styles.Dim.Render(query.FormatRelativeDate(note.CreatedAt, now))
		if i == cursor && m.notesUI.mode == notesBrowse {
			line = styles.Selected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	switch m.notesUI.mode {
	case notesSearch:
		b.WriteString("\nsearch: " + m.notesUI.search.View() + "\n")
	case notesCompose, notesEdit:
		b.WriteString("\n" + m.notesUI.editor.View() + "\n")
		b.WriteString(styles.Dim.Render("ctrl+s save  esc cancel") + "\n")
	case notesTagAdd:
		b.WriteString("\ntag: " + m.notesUI.tagInput.View() + "\n")
	default:
		if len(visible) > 0 {
			note := visible[cursor]
			b.WriteString("\n" + styles.Dim.Render("tags: #"+strings.Join(note.Tags, " #")) + "\n")
			if preview := styles.RenderMarkdown(note.Content); preview != "" {
				b.WriteString(preview + "\n")
			}
		}
		b.WriteString("\n" + styles.Dim.Render("n new  e edit  s search  f tag filter  v archive view  p pin  x archive  t tag  d delete") + "\n")
	}
	return b.String()
}

// nextTagFilter cycles none -> each known tag -> none.
func nextTagFilter(notes []model.Note, current string) string {
	tags := query.AllTags(notes)
	if len(tags) == 0 {
		return ""
	}
	if current == "" {
		return tags[0]
	}
	for i, tag := range tags {
		if tag == current {
			if i+1 < len(tags) {
				return tags[i+1]
			}
			return ""
		}
	}
	return ""
}
