package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when no object exists at the key.
var ErrNotFound = errors.New("object not found")

// Saved describes an object written by Save.
type Saved struct {
	Key      string
	Size     int64
	MimeType string
}

// ObjectStore saves and retrieves uploaded originals and their derived text.
type ObjectStore interface {
	// Save stores r under a fresh key in owner's namespace and sniffs its MIME type.
	Save(ctx context.Context, owner string, fileName string, r io.Reader) (Saved, error)
	// SaveWithKey stores r at an exact key, overwriting any previous object.
	SaveWithKey(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object at key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
}
