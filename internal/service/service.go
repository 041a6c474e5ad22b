// Package service defines the backend-agnostic interface for host
// operations.
package service

import (
	"context"

	"sytask/internal/task"
)

// Service is the host operations contract. All host API calls go through
// this interface; commands and the quick-note workflow never touch the
// wire protocol directly.
type Service interface {
	// ListTaskBlocks runs the task query for the given filter and
	// returns raw block rows with notebook names resolved. Results are
	// ordered by creation time descending, capped at 2000 rows.
	ListTaskBlocks(ctx context.Context, filter task.Filter) ([]task.TaskBlock, error)

	// ListNotebooks returns all notebooks in host order.
	ListNotebooks(ctx context.Context) ([]Notebook, error)

	// RecentDocuments returns up to limit documents ordered by update
	// time descending, skipping the excluded ids.
	RecentDocuments(ctx context.Context, limit int, excludeIDs []string) ([]Document, error)

	// GetDocument returns a single document's metadata.
	GetDocument(ctx context.Context, id string) (Document, error)

	// DailyNote returns the id of today's daily document in the given
	// notebook, creating it if absent.
	DailyNote(ctx context.Context, notebookID string) (string, error)

	// FindHeadingWithAttr returns the id of the first heading block
	// under the document that carries the marker attribute set to
	// "true", or "" when there is none.
	FindHeadingWithAttr(ctx context.Context, docID, attrName string) (string, error)

	// PrependBlock inserts a markdown block at the start of the parent
	// and returns the new block's id.
	PrependBlock(ctx context.Context, parentID, markdown string) (string, error)

	// AppendBlock inserts a markdown block at the end of the parent and
	// returns the new block's id.
	AppendBlock(ctx context.Context, parentID, markdown string) (string, error)

	// SetBlockAttrs writes custom attributes on a block.
	SetBlockAttrs(ctx context.Context, id string, attrs map[string]string) error
}
