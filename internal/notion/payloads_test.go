package notion

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/drawerd/internal/model"
)

func marshalProps(t *testing.T, props Properties) map[string]any {
	t.Helper()
	raw, err := json.Marshal(props)
	if err != nil {
		t.Fatalf("marshal properties: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal properties: %v", err)
	}
	return out
}

func TestTaskPropertiesMapping(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	task := model.NewTask(1, "File taxes", now)
	task.Priority = model.PriorityP1

	got := marshalProps(t, TaskProperties(task, now))

	name := got["Name"].(map[string]any)["title"].([]any)[0].(map[string]any)
	if name["text"].(map[string]any)["content"] != "File taxes" {
		t.Fatalf("unexpected Name mapping: %#v", got["Name"])
	}
	start, _ := got["date"].(map[string]any)["date"].(map[string]any)["start"].(string)
	if !strings.HasPrefix(start, "2026-03-10") {
		t.Fatalf("unexpected date mapping: %#v", got["date"])
	}
	prio := got["Priority"].(map[string]any)["select"].(map[string]any)
	if prio["name"] != "P1" {
		t.Fatalf("priority code not upper-cased: %#v", got["Priority"])
	}
	if got["Done"].(map[string]any)["checkbox"] != false {
		t.Fatalf("Done must start unchecked: %#v", got["Done"])
	}
}

func TestTaskPatchPropertiesOnlyChangedFields(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	done := true
	props := TaskPatchProperties(model.TaskPatch{Completed: &done}, now)
	if len(props) != 1 {
		t.Fatalf("expected only the Done field, got %d fields", len(props))
	}
	got := marshalProps(t, props)
	if got["Done"].(map[string]any)["checkbox"] != true {
		t.Fatalf("unexpected Done mapping: %#v", got)
	}
}

func TestTaskPatchClearsDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	date := model.DateNone
	got := marshalProps(t, TaskPatchProperties(model.TaskPatch{Date: &date}, now))
	if got["date"].(map[string]any)["date"] != nil {
		t.Fatalf("No Date must clear the remote field: %#v", got["date"])
	}
}

func TestResolveTaskDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want string
	}{
		{model.DateToday, "2026-03-10"},
		{model.DateTomorrow, "2026-03-11"},
		{model.DateNone, ""},
		{"15 Mar 26", "2026-03-15"},
		{"2026-04-01", "2026-04-01"},
		{"not a date", "2026-03-10"}, // unparseable falls back to today
	}
	for _, tc := range cases {
		if got := ResolveTaskDate(tc.in, now); got != tc.want {
			t.Fatalf("ResolveTaskDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNotePropertiesMapping(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	note := model.NewNote("n1", "grocery run #errand #weekend", now)

	got := marshalProps(t, NoteProperties(note, now))

	name := got["Name"].(map[string]any)["title"].([]any)[0].(map[string]any)
	if name["text"].(map[string]any)["content"] != "grocery run" {
		t.Fatalf("tag markers not stripped from title: %#v", got["Name"])
	}
	tags := got["Tags"].(map[string]any)["select"].(map[string]any)
	if tags["name"] != "errand" {
		t.Fatalf("expected first tag only, got: %#v", got["Tags"])
	}
}

func TestNoteContentPropertiesRecomputes(t *testing.T) {
	got := marshalProps(t, NoteContentProperties("now about #cooking instead"))
	name := got["Name"].(map[string]any)["title"].([]any)[0].(map[string]any)
	if name["text"].(map[string]any)["content"] != "now about instead" {
		t.Fatalf("unexpected recomputed title: %#v", got["Name"])
	}
	tags := got["Tags"].(map[string]any)["select"].(map[string]any)
	if tags["name"] != "cooking" {
		t.Fatalf("unexpected recomputed tag: %#v", got["Tags"])
	}
}

func TestNotePropertiesUntaggedFallsBack(t *testing.T) {
	got := marshalProps(t, NoteContentProperties("no markers at all"))
	tags := got["Tags"].(map[string]any)["select"].(map[string]any)
	if tags["name"] != model.UntaggedTag {
		t.Fatalf("expected untag sentinel, got: %#v", got["Tags"])
	}
}
