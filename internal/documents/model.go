package documents

import "time"

// Document is a user's current resume upload. Each upload replaces the
// previous one; no scores are stored alongside it.
type Document struct {
	ID             string
	UserID         string
	FileName       string
	MimeType       string
	SizeBytes      int64
	StorageKey     string
	ExtractedKey   string
	ExtractedChars int
	CreatedAt      time.Time
}
