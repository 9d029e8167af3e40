package query

import (
	"fmt"
	"math"
	"time"

	"github.com/sandeepkv93/drawerd/internal/model"
)

// AbsoluteDateLayout is the compact form the drawer uses for picked dates,
// e.g. "15 Mar 26".
const AbsoluteDateLayout = "2 Jan 06"

var taskDateLayouts = []string{
	AbsoluteDateLayout,
	"2006-01-02",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseTaskDate parses the accepted absolute-date forms, most specific
// first.
func ParseTaskDate(value string) (time.Time, bool) {
	for _, layout := range taskDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TaskDateLabel renders a task's date for list rows: sentinels verbatim,
// absolute dates relative to now.
func TaskDateLabel(task model.Task, now time.Time) string {
	switch task.Date {
	case model.DateToday, model.DateTomorrow, model.DateNone, "":
		return task.Date
	}
	return FormatRelativeDate(task.Date, now)
}

// FormatRelativeDate renders a timestamp relative to now: Today, Yesterday,
// Tomorrow, "N days ago/ahead" inside a week, "N weeks ago/ahead" inside a
// month, and an absolute date beyond that. Both sides are truncated to
// local midnight before the whole-day difference is taken. An unparseable
// value renders as Today.
func FormatRelativeDate(value string, now time.Time) string {
	date, ok := ParseTaskDate(value)
	if !ok {
		return "Today"
	}

	d1 := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d2 := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	diff := int(math.Round(d1.Sub(d2).Hours() / 24))

	switch diff {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	case -1:
		return "Tomorrow"
	}

	if diff > 0 {
		if diff < 7 {
			return fmt.Sprintf("%d days ago", diff)
		}
		if diff < 30 {
			return fmt.Sprintf("%d weeks ago", diff/7)
		}
		return date.Format("Jan 2, 2006")
	}

	ahead := -diff
	if ahead < 7 {
		return fmt.Sprintf("%d days ahead", ahead)
	}
	if ahead < 30 {
		return fmt.Sprintf("%d weeks ahead", ahead/7)
	}
	return date.Format("Jan 2, 2006")
}
