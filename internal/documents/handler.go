package documents

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/extract"
	"ats-backend/internal/scoring"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/telemetry"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	Engine         *scoring.Engine
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive maxUploadBytes falls back to 10MB.
func NewHandler(svc *Service, engine *scoring.Engine, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, Engine: engine, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents/current", h.current)
	rg.POST("/parse-resume", h.parseResume)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if c.Request.ContentLength > h.MaxUploadBytes {
		h.rejectTooLarge(c)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.rejectTooLarge(c)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, text, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.Set("documentId", doc.ID)

	result, err := h.Engine.Score(text, c.PostForm("jobTitle"), c.PostForm("jobDescription"))
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	metrics.ObserveScore("BASIC", result.Score)
	c.Set("mode", "BASIC")
	c.Set("score", result.Score)

	respond.JSON(c, http.StatusCreated, UploadResponse{
		DocumentResponse: toResponse(doc),
		Score:            result.Score,
		Feedback:         result.Feedback,
		Breakdown:        result.Breakdown,
	})
}

func (h *Handler) rejectTooLarge(c *gin.Context) {
	respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error",
		fmt.Sprintf("file exceeds the %d byte limit", h.MaxUploadBytes),
		map[string]any{"maxBytes": h.MaxUploadBytes})
}

func (h *Handler) current(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	doc, text, err := h.Svc.CurrentText(c.Request.Context(), userID)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusOK, CurrentResponse{DocumentResponse: toResponse(doc), Text: text})
}

func (h *Handler) parseResume(c *gin.Context) {
	var req parseResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileData and fileType are required", nil)
		return
	}

	text, err := h.Svc.ParseResume(c.Request.Context(), req.FileData, req.FileType)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_media_type", "Unsupported file type", nil)
		case errors.Is(err, extract.ErrEmptyText), errors.Is(err, extract.ErrUnreadable):
			respond.Error(c, http.StatusBadRequest, "extraction_failed", "Could not extract text from file", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to parse resume", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, parseResumeResponse{Text: text})
}

func writeDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "no document uploaded yet", nil)
	case errors.Is(err, extract.ErrUnsupportedType):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type",
			"only PDF, DOCX, plain text and markdown files are supported", nil)
	case errors.Is(err, extract.ErrEmptyText), errors.Is(err, scoring.ErrEmptyInput):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "no text could be extracted from the file", nil)
	case errors.Is(err, extract.ErrUnreadable):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "the file could not be read", nil)
	default:
		telemetry.Error("documents.request_failed", map[string]any{"path": c.FullPath(), "error": err})
		respond.Error(c, http.StatusInternalServerError, "internal", "document request failed", nil)
	}
}
