package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidPriority = errors.New("model: invalid task priority")

type Priority string

const (
	PriorityP1 Priority = "p1"
	PriorityP2 Priority = "p2"
	PriorityP3 Priority = "p3"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityP1, PriorityP2, PriorityP3:
		return true
	default:
		return false
	}
}

// Rank orders priorities for the active-task projection: p1 sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityP1:
		return 1
	case PriorityP2:
		return 2
	case PriorityP3:
		return 3
	default:
		return 4
	}
}

// Sentinel date values a task can carry instead of an absolute date.
const (
	DateToday    = "Today"
	DateTomorrow = "Tomorrow"
	DateNone     = "No Date"
)

// Task is a drawer task. Date holds either a sentinel value or a formatted
// absolute date; NotionPageID is set only after a successful first sync and
// is never cleared by local edits.
type Task struct {
	ID           int64    `json:"id"`
	Text         string   `json:"text"`
	Priority     Priority `json:"priority"`
	Date         string   `json:"date"`
	Completed    bool     `json:"completed"`
	CreatedAt    string   `json:"createdAt"`
	NotionPageID string   `json:"notionPageId,omitempty"`
}

// NewTask applies creation defaults: priority p2, date Today.
func NewTask(id int64, text string, createdAt time.Time) Task {
	return Task{
		ID:        id,
		Text:      text,
		Priority:  PriorityP2,
		Date:      DateToday,
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
	}
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if strings.TrimSpace(t.CreatedAt) == "" {
		return errors.New("model: task created_at is required")
	}
	return nil
}

// TaskPatch is a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Text      *string
	Priority  *Priority
	Date      *string
	Completed *bool
}

func (p TaskPatch) IsZero() bool {
	return p.Text == nil && p.Priority == nil && p.Date == nil && p.Completed == nil
}

// Apply merges the patch into the task.
func (p TaskPatch) Apply(t Task) Task {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
