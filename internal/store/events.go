package store

type EventKind string

const (
	// EventRemoteLinked fires after a create sync succeeded and the linkage
	// id was stored and persisted locally.
	EventRemoteLinked EventKind = "remote_linked"
	// EventSyncFailed fires when any remote call fails. Alert marks the
	// failures that should interrupt the user (initial create sync only).
	EventSyncFailed EventKind = "sync_failed"
)

type EntityKind string

const (
	EntityTask EntityKind = "task"
	EntityNote EntityKind = "note"
)

// Event is the store's side channel for outcomes of detached remote work.
// Local mutations never report through here; their errors return directly.
type Event struct {
	Kind   EventKind
	Entity EntityKind
	Op     string
	ID     string
	PageID string
	Err    error
	Alert  bool
}
