// Package query holds the pure projections the UI renders from: no mutable
// state, no hidden clock. "Now" is always an explicit argument.
package query

import (
	"math"
	"sort"
	"time"

	"github.com/sandeepkv93/drawerd/internal/model"
)

// dateRankMax sorts unparseable dates and "No Date" after every real date.
const dateRankMax = int64(math.MaxInt64)

// ActiveTasks projects the drawer's task list: incomplete tasks ordered by
// priority rank, ties broken by date rank, truncated to limit. The input
// slice is not modified.
func ActiveTasks(tasks []model.Task, now time.Time, limit int) []model.Task {
	active := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if !task.Completed {
			active = append(active, task)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		pi, pj := active[i].Priority.Rank(), active[j].Priority.Rank()
		if pi != pj {
			return pi < pj
		}
		return taskDateRank(active[i], now) < taskDateRank(active[j], now)
	})
	if limit >= 0 && len(active) > limit {
		active = active[:limit]
	}
	return active
}

// taskDateRank orders sentinel dates before absolute ones: Today, then
// Tomorrow, then parseable dates by timestamp, with "No Date" last. An empty
// date falls back to the creation timestamp.
func taskDateRank(task model.Task, now time.Time) int64 {
	value := task.Date
	if value == "" {
		value = task.CreatedAt
	}
	switch value {
	case model.DateToday:
		return 0
	case model.DateTomorrow:
		return 1
	case model.DateNone:
		return dateRankMax
	}
	if t, ok := ParseTaskDate(value); ok {
		return t.UnixMilli()
	}
	return dateRankMax
}
