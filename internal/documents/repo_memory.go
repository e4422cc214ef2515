package documents

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of DocumentsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Document // userID -> current document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Document),
	}
}

// ReplaceCurrent overwrites the current document for a user.
func (r *MemoryRepo) ReplaceCurrent(ctx context.Context, doc Document) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.data[doc.UserID]
	r.data[doc.UserID] = doc
	if !ok {
		return nil, nil
	}
	return &prev, nil
}

// GetCurrentByUser returns the current document for a user.
func (r *MemoryRepo) GetCurrentByUser(ctx context.Context, userID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[userID]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Ping always succeeds.
func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

var _ DocumentsRepo = (*MemoryRepo)(nil)
