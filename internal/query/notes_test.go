package query

import (
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/drawerd/internal/model"
)

func testNote(id, content string) model.Note {
	return model.NewNote(id, content, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
}

func TestFilterNotesSearch(t *testing.T) {
	notes := []model.Note{
		testNote("1", "Grocery list #errand"),
		testNote("2", "meeting agenda #work"),
	}
	got := FilterNotes(notes, NoteFilter{Query: "GROCERY"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("case-insensitive search failed: %#v", got)
	}
}

func TestFilterNotesArchiveView(t *testing.T) {
	archived := testNote("1", "old #done")
	archived.IsArchived = true
	notes := []model.Note{archived, testNote("2", "current #now")}

	active := FilterNotes(notes, NoteFilter{})
	if len(active) != 1 || active[0].ID != "2" {
		t.Fatalf("active view wrong: %#v", active)
	}
	archivedView := FilterNotes(notes, NoteFilter{Archived: true})
	if len(archivedView) != 1 || archivedView[0].ID != "1" {
		t.Fatalf("archived view wrong: %#v", archivedView)
	}
}

func TestFilterNotesByTag(t *testing.T) {
	notes := []model.Note{
		testNote("1", "a #work"),
		testNote("2", "b #home"),
		testNote("3", "c #work #home"),
	}
	got := FilterNotes(notes, NoteFilter{Tag: "work"})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("tag filter wrong: %#v", got)
	}
}

func TestAllTagsDeduplicatedSorted(t *testing.T) {
	notes := []model.Note{
		testNote("1", "a #zeta #alpha"),
		testNote("2", "b #alpha"),
		testNote("3", "untagged"),
	}
	got := AllTags(notes)
	want := []string{"alpha", model.UntaggedTag, "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AllTags = %v, want %v", got, want)
	}
}

func TestTagSuggestions(t *testing.T) {
	notes := []model.Note{
		testNote("1", "a #work"),
		testNote("2", "b #workshop #home"),
	}
	cases := []struct {
		draft string
		want  []string
	}{
		{"remember to #wo", []string{"work", "workshop"}},
		{"remember to #WORK", []string{"work", "workshop"}},
		{"remember to #shop", []string{"workshop"}},
		{"remember to #", []string{"home", "work", "workshop"}},
		{"no marker here", nil},
		{"trailing space #wo ", nil}, // token ended, suggestions close
		{"", nil},
		{"#xyz", nil},
	}
	for _, tc := range cases {
		got := TagSuggestions(notes, tc.draft)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("TagSuggestions(%q) = %v, want %v", tc.draft, got, tc.want)
		}
	}
}

func TestCompleteTag(t *testing.T) {
	cases := []struct {
		draft string
		tag   string
		want  string
	}{
		{"buy milk #err", "errand", "buy milk #errand "},
		{"#wo", "work", "#work "},
	}
	for _, tc := range cases {
		if got := CompleteTag(tc.draft, tc.tag); got != tc.want {
			t.Fatalf("CompleteTag(%q, %q) = %q, want %q", tc.draft, tc.tag, got, tc.want)
		}
	}
}
