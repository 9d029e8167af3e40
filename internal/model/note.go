package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// UntaggedTag is the sentinel tag a note gets when its content carries no
// tag markers.
const UntaggedTag = "untag"

var tagMarkerPattern = regexp.MustCompile(`#(\w+)`)

// Note is a drawer note. Tags are derived from Content on every content
// change; the only exception is quick-added tags, which are appended without
// being reflected back into Content.
type Note struct {
	ID           string   `json:"id"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"createdAt"`
	IsArchived   bool     `json:"isArchived"`
	IsPinned     bool     `json:"isPinned"`
	NotionPageID string   `json:"notionPageId,omitempty"`
}

// NewNote derives tags from content and applies creation defaults.
func NewNote(id string, content string, createdAt time.Time) Note {
	return Note{
		ID:        id,
		Content:   content,
		Tags:      ExtractTags(content),
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
	}
}

func (n Note) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: note id is required")
	}
	if strings.TrimSpace(n.CreatedAt) == "" {
		return errors.New("model: note created_at is required")
	}
	if len(n.Tags) == 0 {
		return errors.New("model: note tags must never be empty")
	}
	return nil
}

// ExtractTags pulls every #word marker out of content, in order of
// appearance. Duplicates are kept. No markers yields the untag sentinel.
func ExtractTags(content string) []string {
	matches := tagMarkerPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return []string{UntaggedTag}
	}
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// StripTagMarkers removes all #word markers from content and collapses the
// remaining whitespace. If stripping leaves nothing, the raw content is
// returned so the remote record still gets a usable title.
func StripTagMarkers(content string) string {
	stripped := tagMarkerPattern.ReplaceAllString(content, "")
	stripped = strings.TrimSpace(strings.Join(strings.Fields(stripped), " "))
	if stripped == "" {
		return content
	}
	return stripped
}

// NotePatch is a partial note update. A non-nil Content re-derives Tags.
type NotePatch struct {
	Content    *string
	IsArchived *bool
	IsPinned   *bool
}

func (p NotePatch) IsZero() bool {
	return p.Content == nil && p.IsArchived == nil && p.IsPinned == nil
}

// Apply merges the patch into the note. Tag derivation always runs on a
// content change, replacing any quick-added tags.
func (p NotePatch) Apply(n Note) Note {
	if p.Content != nil {
		n.Content = *p.Content
		n.Tags = ExtractTags(*p.Content)
	}
	if p.IsArchived != nil {
		n.IsArchived = *p.IsArchived
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	return n
}
