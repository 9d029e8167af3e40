package query

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sandeepkv93/drawerd/internal/model"
)

// NoteFilter selects notes for the browser. Zero value means "all active
// notes".
type NoteFilter struct {
	Query    string
	Archived bool
	Tag      string
}

// FilterNotes applies search, archive-view, and tag filters in sequence.
func FilterNotes(notes []model.Note, filter NoteFilter) []model.Note {
	query := strings.ToLower(filter.Query)
	out := make([]model.Note, 0, len(notes))
	for _, note := range notes {
		if query != "" && !strings.Contains(strings.ToLower(note.Content), query) {
			continue
		}
		if note.IsArchived != filter.Archived {
			continue
		}
		if filter.Tag != "" && !containsTag(note.Tags, filter.Tag) {
			continue
		}
		out = append(out, note)
	}
	return out
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AllTags returns the de-duplicated, sorted set of tags across all notes.
func AllTags(notes []model.Note) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, note := range notes {
		for _, tag := range note.Tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	sort.Strings(out)
	return out
}

// TagSuggestions matches the draft's trailing token against the known tag
// set. Suggestions appear only while the last whitespace-delimited token
// starts with the tag marker; the match is a case-insensitive substring
// test. Nil means no suggestions.
func TagSuggestions(notes []model.Note, draft string) []string {
	last := lastToken(draft)
	if !strings.HasPrefix(last, "#") {
		return nil
	}
	partial := strings.ToLower(last[1:])
	var out []string
	for _, tag := range AllTags(notes) {
		if strings.Contains(strings.ToLower(tag), partial) {
			out = append(out, tag)
		}
	}
	return out
}

// CompleteTag replaces the draft's trailing partial tag with the chosen one,
// leaving a trailing space so typing continues naturally.
func CompleteTag(draft, tag string) string {
	idx := strings.LastIndexFunc(draft, unicode.IsSpace)
	return draft[:idx+1] + "#" + tag + " "
}

func lastToken(draft string) string {
	idx := strings.LastIndexFunc(draft, unicode.IsSpace)
	return draft[idx+1:]
}
