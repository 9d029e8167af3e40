package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/drawerd/internal/config"
	"github.com/sandeepkv93/drawerd/internal/model"
	"github.com/sandeepkv93/drawerd/internal/notion"
	"github.com/sandeepkv93/drawerd/internal/views"
)

const (
	settingsRowTheme = iota
	settingsRowSide
	settingsRowToken
	settingsRowTasksDB
	settingsRowNotesDB
	settingsRowCount
)

var (
	themeCycle = []model.Theme{model.ThemeDark, model.ThemeLight, model.ThemeSystem}
	sideCycle  = []model.DrawerSide{model.DrawerRight, model.DrawerLeft}
)

func newSettingsState(settings model.Settings) settingsState {
	token := textinput.New()
	token.Placeholder = "secret_..."
	token.EchoMode = textinput.EchoPassword
	token.SetValue(settings.NotionKey)

	tasksDB := textinput.New()
	tasksDB.Placeholder = "tasks database id or URL"
	tasksDB.SetValue(settings.TasksDatabaseID)

	notesDB := textinput.New()
	notesDB.Placeholder = "notes database id or URL"
	notesDB.SetValue(settings.NotesDatabaseID)

	return settingsState{
		draft: draftSettings{
			theme: string(settings.Theme),
			side:  string(settings.DrawerSide),
		},
		inputs: [3]textinput.Model{token, tasksDB, notesDB},
	}
}

func (m Model) settingsInputFocused() bool {
	for i := range m.settingsUI.inputs {
		if m.settingsUI.inputs[i].Focused() {
			return true
		}
	}
	return false
}

// draftSettingsValue assembles a Settings from the edit buffers.
func (m Model) draftSettingsValue() model.Settings {
	return model.Settings{
		Theme:           model.Theme(m.settingsUI.draft.theme),
		DrawerSide:      model.DrawerSide(m.settingsUI.draft.side),
		NotionKey:       strings.TrimSpace(m.settingsUI.inputs[0].Value()),
		TasksDatabaseID: strings.TrimSpace(m.settingsUI.inputs[1].Value()),
		NotesDatabaseID: strings.TrimSpace(m.settingsUI.inputs[2].Value()),
	}
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.blurSettingsInputs()
		return m, nil

	case "up", "shift+tab":
		m = m.focusSettingsRow(m.settingsUI.focus - 1)
		return m, nil

	case "down", "tab":
		m = m.focusSettingsRow(m.settingsUI.focus + 1)
		return m, nil

	case "enter", "right", "left":
		switch m.settingsUI.focus {
		case settingsRowTheme:
			m.settingsUI.draft.theme = string(cycleTheme(model.Theme(m.settingsUI.draft.theme)))
			return m, nil
		case settingsRowSide:
			m.settingsUI.draft.side = string(cycleSide(model.DrawerSide(m.settingsUI.draft.side)))
			return m, nil
		}

	case "ctrl+s":
		settings := m.draftSettingsValue()
		if err := config.Save(m.configPath, settings); err != nil {
			m.status = StatusBar{Text: "Error saving settings: " + err.Error(), IsError: true}
			return m, nil
		}
		m.store.UpdateSettings(settings)
		m.status = StatusBar{Text: "Settings saved"}
		return m, nil

	case "ctrl+t":
		settings := m.draftSettingsValue()
		if settings.NotionKey == "" {
			m.alert = "Please enter your Notion Integration Token"
			return m, nil
		}
		if settings.TasksDatabaseID == "" && settings.NotesDatabaseID == "" {
			m.alert = "Please enter at least one Database ID (Tasks or Notes)"
			return m, nil
		}
		return m, m.testConnectionCmd(settings)
	}

	if m.settingsInputFocused() {
		idx := m.settingsUI.focus - settingsRowToken
		var cmd tea.Cmd
		m.settingsUI.inputs[idx], cmd = m.settingsUI.inputs[idx].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) focusSettingsRow(row int) Model {
	m = m.blurSettingsInputs()
	m.settingsUI.focus = clamp(row, 0, settingsRowCount-1)
	if m.settingsUI.focus >= settingsRowToken {
		m.settingsUI.inputs[m.settingsUI.focus-settingsRowToken].Focus()
	}
	return m
}

func (m Model) blurSettingsInputs() Model {
	for i := range m.settingsUI.inputs {
		m.settingsUI.inputs[i].Blur()
	}
	return m
}

// testConnectionCmd checks every configured database with the draft token.
func (m Model) testConnectionCmd(settings model.Settings) tea.Cmd {
	newTester := m.newTester
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		tester := newTester(settings.NotionKey)
		var checked []string
		if id := notion.SanitizeDatabaseID(settings.TasksDatabaseID); id != "" {
			if err := tester.TestConnection(ctx, id); err != nil {
				return ConnectionTestedMsg{Err: fmt.Errorf("tasks database: %w", err)}
			}
			checked = append(checked, "tasks")
		}
		if id := notion.SanitizeDatabaseID(settings.NotesDatabaseID); id != "" {
			if err := tester.TestConnection(ctx, id); err != nil {
				return ConnectionTestedMsg{Err: fmt.Errorf("notes database: %w", err)}
			}
			checked = append(checked, "notes")
		}
		return ConnectionTestedMsg{
			Summary: "Connection successful (" + strings.Join(checked, ", ") + ")",
		}
	}
}

func (m Model) viewSettings(styles views.Styles) string {
	var b strings.Builder
	rows := []struct {
		label string
		value string
	}{
		{"Theme", m.settingsUI.draft.theme},
		{"Drawer side", m.settingsUI.draft.side},
		{"Notion token", m.settingsUI.inputs[0].View()},
		{"Tasks database", m.settingsUI.inputs[1].View()},
		{"Notes database", m.settingsUI.inputs[2].View()},
	}
	for i, row := range rows {
		label := fmt.Sprintf("%-15s", row.label)
		if i == m.settingsUI.focus {
			label = styles.Selected.Render(label)
		}
		b.WriteString(label + " " + row.value + "\n")
	}
	b.WriteString("\n" + styles.Dim.Render("up/down move  enter cycle  ctrl+s save  ctrl+t test connection") + "\n")
	return b.String()
}

func cycleTheme(current model.Theme) model.Theme {
	for i, theme := range themeCycle {
		if theme == current {
			return themeCycle[(i+1)%len(themeCycle)]
		}
	}
	return themeCycle[0]
}

func cycleSide(current model.DrawerSide) model.DrawerSide {
	for i, side := range sideCycle {
		if side == current {
			return sideCycle[(i+1)%len(sideCycle)]
		}
	}
	return sideCycle[0]
}
