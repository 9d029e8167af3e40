package model

import (
	"reflect"
	"testing"
	"time"
)

func TestExtractTags(t *testing.T) {
	cases := []struct {
		content string
		want    []string
	}{
		{"call dentist #health #todo", []string{"health", "todo"}},
		{"#a#b joined markers", []string{"a", "b"}},
		{"no markers here", []string{UntaggedTag}},
		{"", []string{UntaggedTag}},
		{"dup #go and #go again", []string{"go", "go"}},
		{"# space after marker", []string{UntaggedTag}},
	}
	for _, tc := range cases {
		got := ExtractTags(tc.content)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ExtractTags(%q) = %v, want %v", tc.content, got, tc.want)
		}
	}
}

func TestExtractTagsIdempotent(t *testing.T) {
	content := "refactor #go #cleanup later"
	first := ExtractTags(content)
	second := ExtractTags(content)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction not idempotent: %v vs %v", first, second)
	}
}

func TestStripTagMarkers(t *testing.T) {
	cases := []struct {
		content string
		want    string
	}{
		{"buy milk #errand", "buy milk"},
		{"  #a   spaced   out  #b  ", "spaced out"},
		{"#only #tags", "#only #tags"}, // stripping empties the string, fall back to raw
		{"plain text", "plain text"},
	}
	for _, tc := range cases {
		if got := StripTagMarkers(tc.content); got != tc.want {
			t.Fatalf("StripTagMarkers(%q) = %q, want %q", tc.content, got, tc.want)
		}
	}
}

func TestNewNoteDerivesTags(t *testing.T) {
	created := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	note := NewNote("1741599000000", "meeting notes #work", created)
	if !reflect.DeepEqual(note.Tags, []string{"work"}) {
		t.Fatalf("unexpected tags: %v", note.Tags)
	}
	if note.IsArchived || note.IsPinned {
		t.Fatal("expected archive and pin defaults to be false")
	}
	if err := note.Validate(); err != nil {
		t.Fatalf("expected valid note, got error: %v", err)
	}
}

func TestNotePatchRederivesTagsOnContentChange(t *testing.T) {
	note := NewNote("n1", "draft #old", time.Now())
	note.Tags = append(note.Tags, "manual") // quick-added tag

	content := "rewritten #new"
	patched := NotePatch{Content: &content}.Apply(note)
	if !reflect.DeepEqual(patched.Tags, []string{"new"}) {
		t.Fatalf("content edit must replace the whole tags slice, got %v", patched.Tags)
	}
}

func TestNotePatchFlagsOnly(t *testing.T) {
	note := NewNote("n2", "keep #these", time.Now())
	archived := true
	patched := NotePatch{IsArchived: &archived}.Apply(note)
	if !patched.IsArchived {
		t.Fatal("archive flag not applied")
	}
	if !reflect.DeepEqual(patched.Tags, []string{"these"}) {
		t.Fatalf("flag-only patch must not touch tags, got %v", patched.Tags)
	}
}
