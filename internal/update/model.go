package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/drawerd/internal/notion"
	"github.com/sandeepkv93/drawerd/internal/store"
	"github.com/sandeepkv93/drawerd/internal/views"
)

type Screen string

const (
	ScreenDrawer   Screen = "Drawer"
	ScreenBoard    Screen = "Focus Board"
	ScreenNotes    Screen = "Notes"
	ScreenSettings Screen = "Settings"
)

// drawerTaskLimit caps the drawer's focus list at the top three active
// tasks.
const drawerTaskLimit = 3

// ConnectionTester validates Notion credentials against a database.
type ConnectionTester interface {
	TestConnection(ctx context.Context, databaseID string) error
}

type StatusBar struct {
	Text    string
	IsError bool
}

type drawerState struct {
	capturing   bool
	input       textinput.Model
	suggestions []string
	suggestIdx  int
}

type boardMode int

const (
	boardBrowse boardMode = iota
	boardAdd
	boardEdit
)

type boardState struct {
	mode   boardMode
	cursor int
	input  textinput.Model
	editID int64
}

type notesMode int

const (
	notesBrowse notesMode = iota
	notesSearch
	notesCompose
	notesEdit
	notesTagAdd
)

type notesState struct {
	mode      notesMode
	cursor    int
	search    textinput.Model
	editor    textarea.Model
	tagInput  textinput.Model
	query     string
	tagFilter string
	archived  bool
	editID    string
}

type settingsState struct {
	focus  int
	draft  draftSettings
	inputs [3]textinput.Model
}

// draftSettings mirrors model.Settings for in-progress edits; nothing is
// applied or persisted until the user saves.
type draftSettings struct {
	theme string
	side  string
}

type paletteState struct {
	active bool
	input  textinput.Model
}

// Model is the Elm-style root. It owns no entity state: tasks, notes, and
// settings live in the injected store, and the model only holds UI state
// plus projections of the store at render time.
type Model struct {
	store      *store.Store
	configPath string
	newTester  func(token string) ConnectionTester
	now        func() time.Time

	screen   Screen
	keys     GlobalKeyMap
	status   StatusBar
	alert    string
	showHelp bool
	width    int
	height   int

	drawer     drawerState
	board      boardState
	notesUI    notesState
	settingsUI settingsState
	palette    paletteState
}

type Options struct {
	ConfigPath string
	NewTester  func(token string) ConnectionTester
	Now        func() time.Time
}

func NewModel(st *store.Store, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewTester == nil {
		opts.NewTester = func(token string) ConnectionTester {
			return notion.NewClient(token)
		}
	}

	capture := textinput.New()
	capture.Placeholder = "jot a note, #tags welcome"
	capture.CharLimit = 500

	boardInput := textinput.New()
	boardInput.Placeholder = "task text"
	boardInput.CharLimit = 200

	search := textinput.New()
	search.Placeholder = "search notes"

	editor := textarea.New()
	editor.Placeholder = "note content"
	editor.SetHeight(6)

	tagInput := textinput.New()
	tagInput.Placeholder = "tag"
	tagInput.CharLimit = 50

	paletteInput := textinput.New()
	paletteInput.Placeholder = "task ... | note ... | show <screen> | tag [#t]"

	settings := st.Settings()
	m := Model{
		store:      st,
		configPath: opts.ConfigPath,
		newTester:  opts.NewTester,
		now:        opts.Now,
		screen:     ScreenDrawer,
		keys:       DefaultKeyMap(),
		drawer:     drawerState{input: capture},
		board:      boardState{input: boardInput},
		notesUI:    notesState{search: search, editor: editor, tagInput: tagInput},
		palette:    paletteState{input: paletteInput},
	}
	m.settingsUI = newSettingsState(settings)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForStoreEvent(m.store.Events()))
}

func (m Model) styles() views.Styles {
	return views.StylesFor(m.store.Settings().Theme)
}
