package notion

import (
	"strings"
	"time"

	"github.com/sandeepkv93/drawerd/internal/model"
)

// Column names in the mirrored databases.
const (
	colName     = "Name"
	colDate     = "date"
	colPriority = "Priority"
	colDone     = "Done"
	colTags     = "Tags"
)

// TaskProperties builds the create payload for a task: title, today's date,
// upper-cased priority code, and an unchecked Done box.
func TaskProperties(task model.Task, now time.Time) Properties {
	return Properties{
		colName:     titleProperty(task.Text),
		colDate:     dateProperty(now.Format(dayLayout)),
		colPriority: selectProperty(strings.ToUpper(string(task.Priority))),
		colDone:     checkboxProperty(false),
	}
}

// TaskPatchProperties builds an update payload containing only the fields
// the patch changes. An empty map means there is nothing to mirror.
func TaskPatchProperties(patch model.TaskPatch, now time.Time) Properties {
	props := Properties{}
	if patch.Text != nil {
		props[colName] = titleProperty(*patch.Text)
	}
	if patch.Priority != nil {
		props[colPriority] = selectProperty(strings.ToUpper(string(*patch.Priority)))
	}
	if patch.Date != nil {
		props[colDate] = dateProperty(ResolveTaskDate(*patch.Date, now))
	}
	if patch.Completed != nil {
		props[colDone] = checkboxProperty(*patch.Completed)
	}
	return props
}

// ResolveTaskDate maps a task date string to the outbound YYYY-MM-DD form.
// "No Date" resolves to the empty string, which clears the remote field;
// an unparseable absolute date falls back to today.
func ResolveTaskDate(value string, now time.Time) string {
	switch value {
	case model.DateToday:
		return now.Format(dayLayout)
	case model.DateTomorrow:
		return now.AddDate(0, 0, 1).Format(dayLayout)
	case model.DateNone:
		return ""
	}
	if t, ok := parseAbsoluteDate(value); ok {
		return t.Format(dayLayout)
	}
	return now.Format(dayLayout)
}

// NoteProperties builds the create payload for a note: the content with tag
// markers stripped as the title, today's date, and the first extracted tag
// as a single-select.
func NoteProperties(note model.Note, now time.Time) Properties {
	return Properties{
		colName: titleProperty(model.StripTagMarkers(note.Content)),
		colDate: dateProperty(now.Format(dayLayout)),
		colTags: selectProperty(firstTag(note.Tags)),
	}
}

// NoteContentProperties builds the update payload for a content change:
// recomputed title and first tag. Flag-only note edits mirror nothing.
func NoteContentProperties(content string) Properties {
	return Properties{
		colName: titleProperty(model.StripTagMarkers(content)),
		colTags: selectProperty(firstTag(model.ExtractTags(content))),
	}
}

func firstTag(tags []string) string {
	if len(tags) == 0 {
		return model.UntaggedTag
	}
	return tags[0]
}
