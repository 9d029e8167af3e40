package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
)

// Placeholder page ids the sync layer can hand back when a create call
// succeeded but no usable id could be read from the response.
const (
	PageIDSuccess = "Success"
	PageIDUnknown = "Unknown ID"
)

// UsablePageID reports whether id can be stored as a linkage id and used to
// target later update calls.
func UsablePageID(id string) bool {
	return id != "" && id != PageIDSuccess && id != PageIDUnknown
}

// SanitizeDatabaseID accepts either a bare database id or a full workspace
// URL and returns the id alone: the substring after the last slash, with any
// trailing query string dropped.
func SanitizeDatabaseID(id string) string {
	if id == "" {
		return ""
	}
	if !strings.Contains(id, "/") {
		return strings.TrimSpace(id)
	}
	last := id[strings.LastIndex(id, "/")+1:]
	if q := strings.Index(last, "?"); q >= 0 {
		last = last[:q]
	}
	return strings.TrimSpace(last)
}

// Client wraps the Notion SDK behind the narrow surface the store needs.
type Client struct {
	api *notionapi.Client
}

func NewClient(token string, opts ...notionapi.ClientOption) *Client {
	return &Client{api: notionapi.NewClient(notionapi.Token(token), opts...)}
}

// CreatePage inserts a record into the database and returns the new page id.
// A success response without a readable id yields the PageIDUnknown
// placeholder rather than an error.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props Properties) (string, error) {
	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: props,
	})
	if err != nil {
		return "", fmt.Errorf("create page (notion): %w", err)
	}
	if page == nil || page.ID == "" {
		return PageIDUnknown, nil
	}
	return page.ID.String(), nil
}

// PagePatch is an update-page body: an archive flag, a partial properties
// map, or both.
type PagePatch struct {
	Archived   bool
	Properties Properties
}

// ArchivePatch soft-deletes a page. Records are never hard-deleted remotely.
func ArchivePatch() PagePatch {
	return PagePatch{Archived: true}
}

func (c *Client) UpdatePage(ctx context.Context, pageID string, patch PagePatch) error {
	req := &notionapi.PageUpdateRequest{
		Properties: patch.Properties,
		Archived:   patch.Archived,
	}
	if req.Properties == nil {
		req.Properties = Properties{}
	}
	if _, err := c.api.Page.Update(ctx, notionapi.PageID(pageID), req); err != nil {
		return fmt.Errorf("update page (notion): %w", err)
	}
	return nil
}

// TestConnection fetches the database metadata, surfacing a descriptive
// error on a bad credential, unknown database, or schema mismatch.
func (c *Client) TestConnection(ctx context.Context, databaseID string) error {
	if _, err := c.api.Database.Get(ctx, notionapi.DatabaseID(databaseID)); err != nil {
		return fmt.Errorf("database %s (notion): %w", databaseID, err)
	}
	return nil
}
