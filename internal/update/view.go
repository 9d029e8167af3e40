package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/drawerd/internal/views"
)

func (m Model) View() string {
	styles := m.styles()
	settings := m.store.Settings()

	var body string
	switch m.screen {
	case ScreenDrawer:
		body = m.viewDrawer(styles)
	case ScreenBoard:
		body = m.viewBoard(styles)
	case ScreenNotes:
		body = m.viewNotes(styles)
	case ScreenSettings:
		body = m.viewSettings(styles)
	}

	if m.palette.active {
		body += "\n> " + m.palette.input.View() + "\n"
	}
	if m.showHelp {
		body += "\n" + m.helpText(styles)
	}

	status := m.status.Text
	if m.status.IsError && status != "" && !strings.Contains(strings.ToLower(status), "error") {
		status = "error: " + status
	}

	return views.RenderApp(styles, views.AppData{
		Header:     "drawerd · " + string(m.screen),
		Body:       body,
		StatusLine: status,
		Footer:     m.footer(),
		Alert:      m.alert,
		Side:       settings.DrawerSide,
		Width:      m.width,
	})
}

func (m Model) footer() string {
	return fmt.Sprintf("%s drawer  %s board  %s notes  %s settings  %s palette  %s help  %s quit",
		m.keys.Drawer, m.keys.Board, m.keys.Notes, m.keys.Settings,
		m.keys.Palette, m.keys.Help, m.keys.Quit)
}

func (m Model) helpText(styles views.Styles) string {
	lines := []string{
		"drawer:   a capture note, tab completes #tags",
		"board:    a add  e edit  space done  p priority  t date  d delete",
		"notes:    n new  e edit  s search  f tag filter  v archived  p pin  x archive  t tag  d delete",
		"settings: up/down move  enter cycle  ctrl+s save  ctrl+t test",
		"palette:  task <text> | note <text> | show <screen> | tag [#t]",
	}
	return styles.Dim.Render(strings.Join(lines, "\n"))
}
