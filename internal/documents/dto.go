package documents

import (
	"time"

	"ats-backend/internal/scoring"
)

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID     string    `json:"documentId"`
	FileName       string    `json:"fileName"`
	MimeType       string    `json:"mimeType"`
	SizeBytes      int64     `json:"sizeBytes"`
	ExtractedChars int       `json:"extractedChars"`
	UploadedAt     time.Time `json:"uploadedAt"`
}

// UploadResponse is returned by POST /documents. The score reflects the
// optional jobTitle/jobDescription form fields.
type UploadResponse struct {
	DocumentResponse
	Score     int               `json:"score"`
	Feedback  []string          `json:"feedback"`
	Breakdown scoring.Breakdown `json:"breakdown"`
}

// CurrentResponse is returned by GET /documents/current.
type CurrentResponse struct {
	DocumentResponse
	Text string `json:"text"`
}

type parseResumeRequest struct {
	FileData string `json:"fileData" binding:"required"`
	FileType string `json:"fileType" binding:"required"`
}

type parseResumeResponse struct {
	Text string `json:"text"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:     doc.ID,
		FileName:       doc.FileName,
		MimeType:       doc.MimeType,
		SizeBytes:      doc.SizeBytes,
		ExtractedChars: doc.ExtractedChars,
		UploadedAt:     doc.CreatedAt,
	}
}
