package update

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/drawerd/internal/config"
	"github.com/sandeepkv93/drawerd/internal/model"
	"github.com/sandeepkv93/drawerd/internal/store"
)

type memRepo struct {
	mu    sync.Mutex
	tasks []model.Task
	notes []model.Note
}

func (r *memRepo) LoadTasks(ctx context.Context) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Task(nil), r.tasks...), nil
}

func (r *memRepo) SaveTasks(ctx context.Context, tasks []model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append([]model.Task(nil), tasks...)
	return nil
}

func (r *memRepo) LoadNotes(ctx context.Context) ([]model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Note(nil), r.notes...), nil
}

func (r *memRepo) SaveNotes(ctx context.Context, notes []model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append([]model.Note(nil), notes...)
	return nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	st := store.New(&memRepo{}, nil, model.DefaultSettings())
	return NewModel(st, Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		Now:        func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) },
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	if m.screen != ScreenDrawer {
		t.Fatalf("expected default screen %q, got %q", ScreenDrawer, m.screen)
	}
	if m.keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.keys.Quit)
	}
}

func TestKeySwitchesScreen(t *testing.T) {
	m := newTestModel(t)
	cases := []struct {
		key    string
		screen Screen
	}{
		{"2", ScreenBoard},
		{"3", ScreenNotes},
		{"4", ScreenSettings},
		{"1", ScreenDrawer},
	}
	for _, tc := range cases {
		updated, _ := m.Update(keyRunes(tc.key))
		m = updated.(Model)
		if m.screen != tc.screen {
			t.Fatalf("key %q: expected screen %q, got %q", tc.key, tc.screen, m.screen)
		}
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.status.Text != "ready" || next.status.IsError {
		t.Fatalf("unexpected status: %#v", next.status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.status.Text != "" {
		t.Fatalf("expected cleared status, got %#v", next.status)
	}
}

func TestStoreEventUpdatesStatus(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(StoreEventMsg{Event: store.Event{
		Kind: store.EventRemoteLinked, Entity: store.EntityTask, ID: "42", PageID: "page-1",
	}})
	next := updated.(Model)
	if !strings.Contains(next.status.Text, "Synced task 42") {
		t.Fatalf("unexpected status: %q", next.status.Text)
	}
	if cmd == nil {
		t.Fatal("expected the event listener to re-arm")
	}

	updated, _ = next.Update(StoreEventMsg{Event: store.Event{
		Kind: store.EventSyncFailed, Entity: store.EntityNote, ID: "7",
		Err: errors.New("boom"), Alert: true,
	}})
	next = updated.(Model)
	if !strings.Contains(next.alert, "boom") {
		t.Fatalf("expected alert with cause, got %q", next.alert)
	}

	next.alert = ""
	updated, _ = next.Update(StoreEventMsg{Event: store.Event{
		Kind: store.EventSyncFailed, Entity: store.EntityTask, ID: "42",
		Op: "update", Err: errors.New("offline"),
	}})
	next = updated.(Model)
	if next.alert != "" {
		t.Fatalf("update failures must not alert, got %q", next.alert)
	}
	if !next.status.IsError || !strings.Contains(next.status.Text, "offline") {
		t.Fatalf("expected error status, got %#v", next.status)
	}
}

func TestAlertDismissedByAnyKey(t *testing.T) {
	m := newTestModel(t)
	m.alert = "Notion sync failed"
	updated, _ := m.Update(keyRunes("2"))
	next := updated.(Model)
	if next.alert != "" {
		t.Fatalf("expected alert dismissed, got %q", next.alert)
	}
	if next.screen != ScreenDrawer {
		t.Fatalf("dismissal key must be swallowed, got screen %q", next.screen)
	}
}

func TestPaletteAddsTask(t *testing.T) {
	m := newTestModel(t)
	m.palette.active = true
	m.palette.input.SetValue("task write the report")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)
	if next.palette.active {
		t.Fatal("expected palette closed")
	}
	tasks := next.store.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "write the report" {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}
}

func TestPaletteShowAndTag(t *testing.T) {
	m := newTestModel(t)
	m.palette.active = true
	m.palette.input.SetValue("show board")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)
	if next.screen != ScreenBoard {
		t.Fatalf("expected board screen, got %q", next.screen)
	}

	next.palette.active = true
	next.palette.input.SetValue("tag #work")
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if next.screen != ScreenNotes || next.notesUI.tagFilter != "work" {
		t.Fatalf("expected notes screen with work filter, got %q %q", next.screen, next.notesUI.tagFilter)
	}
}

func TestPaletteUnknownCommand(t *testing.T) {
	m := newTestModel(t)
	m.palette.active = true
	m.palette.input.SetValue("frobnicate")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)
	if !next.status.IsError {
		t.Fatalf("expected error status, got %#v", next.status)
	}
}

func TestDrawerCaptureAddsNote(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	if !next.drawer.capturing {
		t.Fatal("expected capture mode")
	}

	next.drawer.input.SetValue("standup recap #work")
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if next.drawer.capturing {
		t.Fatal("expected capture mode closed")
	}
	notes := next.store.Notes()
	if len(notes) != 1 || notes[0].Tags[0] != "work" {
		t.Fatalf("unexpected notes: %#v", notes)
	}
}

func TestBoardToggleAndDelete(t *testing.T) {
	m := newTestModel(t)
	if _, err := m.store.AddTask(context.Background(), "first"); err != nil {
		t.Fatalf("add task: %v", err)
	}
	m.screen = ScreenBoard

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	next := updated.(Model)
	if tasks := next.store.Tasks(); !tasks[0].Completed {
		t.Fatalf("expected task completed, got %#v", tasks[0])
	}

	updated, _ = next.Update(keyRunes("d"))
	next = updated.(Model)
	if tasks := next.store.Tasks(); len(tasks) != 0 {
		t.Fatalf("expected task deleted, got %#v", tasks)
	}
}

func TestSettingsTestConnectionValidation(t *testing.T) {
	m := newTestModel(t)
	m.screen = ScreenSettings

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	next := updated.(Model)
	if cmd != nil || next.alert != "Please enter your Notion Integration Token" {
		t.Fatalf("expected token alert, got %q", next.alert)
	}

	next.alert = ""
	next.settingsUI.inputs[0].SetValue("secret_token")
	updated, cmd = next.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	next = updated.(Model)
	if cmd != nil || next.alert != "Please enter at least one Database ID (Tasks or Notes)" {
		t.Fatalf("expected database alert, got %q", next.alert)
	}
}

type fakeTester struct {
	mu    sync.Mutex
	err   error
	calls []string
}

func (f *fakeTester) TestConnection(ctx context.Context, databaseID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, databaseID)
	return f.err
}

func TestSettingsTestConnectionRuns(t *testing.T) {
	tester := &fakeTester{}
	var gotToken string
	st := store.New(&memRepo{}, nil, model.DefaultSettings())
	m := NewModel(st, Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		NewTester: func(token string) ConnectionTester {
			gotToken = token
			return tester
		},
	})
	m.screen = ScreenSettings
	m.settingsUI.inputs[0].SetValue("secret_token")
	m.settingsUI.inputs[1].SetValue("https://notion.so/ws/abc123?v=2")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if cmd == nil {
		t.Fatal("expected a connection test command")
	}
	msg, ok := cmd().(ConnectionTestedMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("unexpected result: %#v", msg)
	}
	if gotToken != "secret_token" {
		t.Fatalf("unexpected token: %q", gotToken)
	}
	if len(tester.calls) != 1 || tester.calls[0] != "abc123" {
		t.Fatalf("expected sanitized database id, got %#v", tester.calls)
	}

	next, _ := updated.(Model).Update(msg)
	if alert := next.(Model).alert; !strings.Contains(alert, "Connection successful") {
		t.Fatalf("unexpected alert: %q", alert)
	}
}

func TestConnectionTestedError(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(ConnectionTestedMsg{Err: errors.New("unauthorized")})
	next := updated.(Model)
	if !strings.Contains(next.alert, "Connection failed") || !strings.Contains(next.alert, "unauthorized") {
		t.Fatalf("unexpected alert: %q", next.alert)
	}
}

func TestSettingsSavePersists(t *testing.T) {
	m := newTestModel(t)
	m.screen = ScreenSettings
	m.settingsUI.draft.theme = string(model.ThemeLight)
	m.settingsUI.draft.side = string(model.DrawerLeft)
	m.settingsUI.inputs[0].SetValue("secret_token")
	m.settingsUI.inputs[1].SetValue("db-tasks")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	next := updated.(Model)
	if next.status.IsError {
		t.Fatalf("save failed: %q", next.status.Text)
	}

	got := next.store.Settings()
	if got.Theme != model.ThemeLight || got.DrawerSide != model.DrawerLeft || got.NotionKey != "secret_token" {
		t.Fatalf("store settings not updated: %#v", got)
	}

	loaded, err := config.Load(next.configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if loaded.Theme != model.ThemeLight || loaded.TasksDatabaseID != "db-tasks" {
		t.Fatalf("persisted settings wrong: %#v", loaded)
	}
}
