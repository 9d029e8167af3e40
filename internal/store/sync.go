package store

import (
	"context"
	"strconv"

	"github.com/sandeepkv93/drawerd/internal/notion"
)

// spawnCreateSync runs the create-record call as a detached unit of work.
// On a usable page id the linkage is re-applied through the normal local
// persistence path; on failure an alerting event is emitted. Either way the
// original mutation has already returned.
func (s *Store) spawnCreateSync(entity EntityKind, id, databaseID string, props notion.Properties) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.Background()

		pageID, err := s.syncer.CreatePage(ctx, databaseID, props)
		if err != nil {
			s.emit(Event{Kind: EventSyncFailed, Entity: entity, Op: "create", ID: id, Err: err, Alert: true})
			return
		}
		if !notion.UsablePageID(pageID) {
			return
		}
		applied, err := s.applyLink(ctx, entity, id, pageID)
		if err != nil {
			s.emit(Event{Kind: EventSyncFailed, Entity: entity, Op: "link", ID: id, Err: err})
			return
		}
		if applied {
			s.emit(Event{Kind: EventRemoteLinked, Entity: entity, ID: id, PageID: pageID})
		}
	}()
}

// spawnUpdateSync runs an update or archive call as a detached unit of
// work. Failures are reported without alerting; the next mutation on the
// same entity gets its own independent attempt.
func (s *Store) spawnUpdateSync(entity EntityKind, id, op, pageID string, patch notion.PagePatch) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.syncer.UpdatePage(context.Background(), pageID, patch); err != nil {
			s.emit(Event{Kind: EventSyncFailed, Entity: entity, Op: op, ID: id, Err: err})
		}
	}()
}

// applyLink stores the linkage id on the entity and persists the collection
// again. The entity may have been deleted while the create call was in
// flight; that is not an error, the linkage is simply dropped.
func (s *Store) applyLink(ctx context.Context, entity EntityKind, id, pageID string) (bool, error) {
	switch entity {
	case EntityTask:
		taskID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return false, err
		}
		s.mu.Lock()
		idx := s.taskIndexLocked(taskID)
		if idx < 0 {
			s.mu.Unlock()
			return false, nil
		}
		s.tasks[idx].NotionPageID = pageID
		s.mu.Unlock()
		return true, s.persistTasks(ctx)
	case EntityNote:
		s.mu.Lock()
		idx := s.noteIndexLocked(id)
		if idx < 0 {
			s.mu.Unlock()
			return false, nil
		}
		s.notes[idx].NotionPageID = pageID
		s.mu.Unlock()
		return true, s.persistNotes(ctx)
	}
	return false, nil
}

// emit never blocks a sync goroutine; if the UI is not draining events the
// oldest information is simply lost.
func (s *Store) emit(event Event) {
	select {
	case s.events <- event:
	default:
	}
}
