package documents

import "context"

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	// ReplaceCurrent stores doc as the user's current document and returns
	// the one it replaced, if any.
	ReplaceCurrent(ctx context.Context, doc Document) (*Document, error)
	GetCurrentByUser(ctx context.Context, userID string) (Document, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
