package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/drawerd/internal/model"
	"github.com/sandeepkv93/drawerd/internal/notion"
	"github.com/sandeepkv93/drawerd/internal/storage"
)

// Syncer is the remote mirror boundary. Calls are best-effort: the store
// never retries, never blocks a local mutation on them, and treats a failure
// as terminal for that mutation.
type Syncer interface {
	CreatePage(ctx context.Context, databaseID string, props notion.Properties) (string, error)
	UpdatePage(ctx context.Context, pageID string, patch notion.PagePatch) error
}

const eventBuffer = 64

// Store owns the in-memory task and note collections. It is constructed
// once at startup and injected into the UI. Every mutation applies in
// memory first, persists the full collection locally, then fires a detached
// remote sync whose outcome arrives on the Events channel.
type Store struct {
	mu       sync.Mutex
	repo     storage.Repository
	syncer   Syncer
	settings model.Settings
	clock    func() time.Time

	// persistMu serializes repository saves. Snapshots are taken inside
	// it, so a save that starts later always writes a state at least as
	// new as any save before it.
	persistMu sync.Mutex

	tasks  []model.Task
	notes  []model.Note
	lastID int64

	events chan Event
	wg     sync.WaitGroup
}

func New(repo storage.Repository, syncer Syncer, settings model.Settings) *Store {
	return NewWithClock(repo, syncer, settings, time.Now)
}

func NewWithClock(repo storage.Repository, syncer Syncer, settings model.Settings, clock func() time.Time) *Store {
	return &Store{
		repo:     repo,
		syncer:   syncer,
		settings: settings,
		clock:    clock,
		events:   make(chan Event, eventBuffer),
	}
}

// Events exposes outcomes of detached remote work for the UI to consume.
func (s *Store) Events() <-chan Event {
	return s.events
}

// Wait blocks until all in-flight remote sync attempts settle. Used at
// shutdown and in tests; the UI never calls it on the mutation path.
func (s *Store) Wait() {
	s.wg.Wait()
}

// LoadAll populates the collections from local storage. Run once at
// startup. The id floor is raised past every loaded identifier so new ids
// cannot collide within this load.
func (s *Store) LoadAll(ctx context.Context) error {
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	notes, err := s.repo.LoadNotes(ctx)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.notes = notes
	for _, task := range tasks {
		if task.ID > s.lastID {
			s.lastID = task.ID
		}
	}
	for _, note := range notes {
		if id, err := strconv.ParseInt(note.ID, 10, 64); err == nil && id > s.lastID {
			s.lastID = id
		}
	}
	return nil
}

// Tasks returns a copy of the task collection in canonical order
// (most-recent-first).
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Notes returns a copy of the note collection in canonical order.
func (s *Store) Notes() []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *Store) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) UpdateSettings(settings model.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// nextID returns a millisecond-epoch identifier that is strictly greater
// than every id handed out or loaded so far, even when the clock does not
// advance between calls. Caller must hold the mutex.
func (s *Store) nextID() int64 {
	id := s.clock().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// AddTask creates a task with defaults, prepends it, persists the
// collection, and fires a create sync if the mirror is configured. A
// persistence error is returned but the in-memory task stays: UI state is
// the source of truth within a session, and the sync attempt is made
// regardless.
func (s *Store) AddTask(ctx context.Context, text string) (model.Task, error) {
	s.mu.Lock()
	task := model.NewTask(s.nextID(), text, s.clock())
	s.tasks = append([]model.Task{task}, s.tasks...)
	dbID, configured := s.taskSyncTargetLocked()
	s.mu.Unlock()

	persistErr := s.persistTasks(ctx)

	if configured {
		s.spawnCreateSync(EntityTask, strconv.FormatInt(task.ID, 10), dbID,
			notion.TaskProperties(task, s.clock()))
	}
	return task, persistErr
}

// UpdateTask merges the patch into the matching task. A missing id is a
// documented soft-fail: no change, no error. Remote mirroring happens only
// for already-linked tasks and carries just the changed fields.
func (s *Store) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) error {
	s.mu.Lock()
	idx := s.taskIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.tasks[idx] = patch.Apply(s.tasks[idx])
	task := s.tasks[idx]
	key := s.settings.NotionKey
	s.mu.Unlock()

	persistErr := s.persistTasks(ctx)

	if task.NotionPageID != "" && key != "" {
		if props := notion.TaskPatchProperties(patch, s.clock()); len(props) > 0 {
			s.spawnUpdateSync(EntityTask, strconv.FormatInt(id, 10), "update",
				task.NotionPageID, notion.PagePatch{Properties: props})
		}
	}
	return persistErr
}

// ToggleTask flips the completion flag and follows the update protocol with
// a completion-only payload.
func (s *Store) ToggleTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	idx := s.taskIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	completed := !s.tasks[idx].Completed
	s.mu.Unlock()

	return s.UpdateTask(ctx, id, model.TaskPatch{Completed: &completed})
}

// DeleteTask removes the task locally and best-effort archives the linked
// remote record. The remote record is never hard-deleted.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	idx := s.taskIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	key := s.settings.NotionKey
	s.mu.Unlock()

	persistErr := s.persistTasks(ctx)

	if removed.NotionPageID != "" && key != "" {
		s.spawnUpdateSync(EntityTask, strconv.FormatInt(id, 10), "delete",
			removed.NotionPageID, notion.ArchivePatch())
	}
	return persistErr
}

// AddNote creates a note, deriving its tags from the content, and follows
// the same creation protocol as tasks.
func (s *Store) AddNote(ctx context.Context, content string) (model.Note, error) {
	s.mu.Lock()
	note := model.NewNote(strconv.FormatInt(s.nextID(), 10), content, s.clock())
	s.notes = append([]model.Note{note}, s.notes...)
	dbID, configured := s.noteSyncTargetLocked()
	s.mu.Unlock()

	persistErr := s.persistNotes(ctx)

	if configured {
		s.spawnCreateSync(EntityNote, note.ID, dbID,
			notion.NoteProperties(note, s.clock()))
	}
	return note, persistErr
}

// UpdateNote merges the patch; a content change re-derives tags, replacing
// any quick-added ones. Only content changes are mirrored remotely.
func (s *Store) UpdateNote(ctx context.Context, id string, patch model.NotePatch) error {
	s.mu.Lock()
	idx := s.noteIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.notes[idx] = patch.Apply(s.notes[idx])
	note := s.notes[idx]
	key := s.settings.NotionKey
	s.mu.Unlock()

	persistErr := s.persistNotes(ctx)

	if patch.Content != nil && note.NotionPageID != "" && key != "" {
		s.spawnUpdateSync(EntityNote, id, "update", note.NotionPageID,
			notion.PagePatch{Properties: notion.NoteContentProperties(*patch.Content)})
	}
	return persistErr
}

// AddNoteTag appends a tag without altering the note content. The appended
// tag lives only until the next content edit re-derives the tag list, and
// is never mirrored remotely.
func (s *Store) AddNoteTag(ctx context.Context, id string, tag string) error {
	s.mu.Lock()
	idx := s.noteIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	for _, existing := range s.notes[idx].Tags {
		if existing == tag {
			s.mu.Unlock()
			return nil
		}
	}
	s.notes[idx].Tags = append(s.notes[idx].Tags, tag)
	s.mu.Unlock()

	return s.persistNotes(ctx)
}

// DeleteNote removes the note locally and best-effort archives the linked
// remote record.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.noteIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.notes[idx]
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	key := s.settings.NotionKey
	s.mu.Unlock()

	persistErr := s.persistNotes(ctx)

	if removed.NotionPageID != "" && key != "" {
		s.spawnUpdateSync(EntityNote, id, "delete", removed.NotionPageID, notion.ArchivePatch())
	}
	return persistErr
}

func (s *Store) taskIndexLocked(id int64) int {
	for i, task := range s.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) noteIndexLocked(id string) int {
	for i, note := range s.notes {
		if note.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistTasks(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	s.mu.Lock()
	snapshot := s.taskSnapshotLocked()
	s.mu.Unlock()
	return s.repo.SaveTasks(ctx, snapshot)
}

func (s *Store) persistNotes(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	s.mu.Lock()
	snapshot := s.noteSnapshotLocked()
	s.mu.Unlock()
	return s.repo.SaveNotes(ctx, snapshot)
}

func (s *Store) taskSnapshotLocked() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) noteSnapshotLocked() []model.Note {
	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *Store) taskSyncTargetLocked() (string, bool) {
	return syncTarget(s.settings.NotionKey, s.settings.TasksDatabaseID)
}

func (s *Store) noteSyncTargetLocked() (string, bool) {
	return syncTarget(s.settings.NotionKey, s.settings.NotesDatabaseID)
}

func syncTarget(key, databaseID string) (string, bool) {
	dbID := notion.SanitizeDatabaseID(databaseID)
	if strings.TrimSpace(key) == "" || dbID == "" {
		return "", false
	}
	return dbID, true
}
