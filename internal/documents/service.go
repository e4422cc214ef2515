package documents

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"ats-backend/internal/extract"
	"ats-backend/internal/shared/storage/object"
	"ats-backend/internal/shared/telemetry"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
	Now   func() time.Time
}

// Upload saves the original, extracts its text and makes it the user's
// current document. The replaced document's objects are removed.
func (s *Service) Upload(ctx context.Context, userID, fileName, declaredMime string, r io.Reader) (Document, string, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(fileName) == "" {
		return Document{}, "", ErrInvalidInput
	}

	saved, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Document{}, "", fmt.Errorf("save upload: %w", err)
	}

	mime := declaredMime
	if declared := strings.ToLower(strings.TrimSpace(declaredMime)); declared == "" || strings.HasPrefix(declared, "application/octet-stream") {
		mime = saved.MimeType
	}
	text, err := extract.ExtractText(ctx, s.Store, saved.Key, mime, fileName)
	if err != nil {
		s.removeObjects(ctx, saved.Key)
		return Document{}, "", err
	}

	doc := Document{
		ID:             uuid.NewString(),
		UserID:         userID,
		FileName:       fileName,
		MimeType:       extract.NormalizeMimeType(mime, fileName, nil),
		SizeBytes:      saved.Size,
		StorageKey:     saved.Key,
		ExtractedKey:   extract.ExtractedKey(saved.Key),
		ExtractedChars: utf8.RuneCountInString(text),
		CreatedAt:      s.now(),
	}

	previous, err := s.Repo.ReplaceCurrent(ctx, doc)
	if err != nil {
		s.removeObjects(ctx, doc.StorageKey, doc.ExtractedKey)
		return Document{}, "", fmt.Errorf("record document: %w", err)
	}
	if previous != nil {
		s.removeObjects(ctx, previous.StorageKey, previous.ExtractedKey)
	}

	telemetry.Info("document.uploaded", map[string]any{
		"user_id":         userID,
		"document_id":     doc.ID,
		"mime_type":       doc.MimeType,
		"size_bytes":      doc.SizeBytes,
		"extracted_chars": doc.ExtractedChars,
		"replaced":        previous != nil,
	})
	return doc, text, nil
}

// Current returns the current document for a user.
func (s *Service) Current(ctx context.Context, userID string) (Document, error) {
	if strings.TrimSpace(userID) == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetCurrentByUser(ctx, userID)
}

// CurrentText returns the current document and its extracted text.
func (s *Service) CurrentText(ctx context.Context, userID string) (Document, string, error) {
	doc, err := s.Current(ctx, userID)
	if err != nil {
		return Document{}, "", err
	}
	rc, err := s.Store.Open(ctx, doc.ExtractedKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Document{}, "", fmt.Errorf("extracted text for %s: %w", doc.ID, ErrNotFound)
		}
		return Document{}, "", fmt.Errorf("open extracted text: %w", err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return Document{}, "", fmt.Errorf("read extracted text: %w", err)
	}
	return doc, string(raw), nil
}

// ParseResume extracts text from a base64 payload without storing anything.
// fileData may carry a data URL prefix.
func (s *Service) ParseResume(ctx context.Context, fileData, fileType string) (string, error) {
	payload := strings.TrimSpace(fileData)
	if i := strings.Index(payload, ";base64,"); strings.HasPrefix(payload, "data:") && i >= 0 {
		payload = payload[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: fileData is not valid base64", ErrInvalidInput)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: fileData is empty", ErrInvalidInput)
	}
	return extract.ExtractTextFromBytes(ctx, data, fileType, "")
}

func (s *Service) removeObjects(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Warn("document.cleanup_failed", map[string]any{"key": key, "error": err})
		}
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
