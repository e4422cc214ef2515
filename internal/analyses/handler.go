package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/scoring"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
	rg.GET("/scoring/config", h.config)
}

type analyzeRequest struct {
	Mode           string `json:"mode" binding:"required"`
	ResumeText     string `json:"resumeText"`
	JobTitle       string `json:"jobTitle" binding:"max=300"`
	JobDescription string `json:"jobDescription" binding:"max=50000"`
	PriorScore     *int   `json:"priorScore"`
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", []map[string]string{
			{"field": "body", "issue": err.Error()},
		})
		return
	}
	mode, err := ParseMode(req.Mode)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), []map[string]string{
			{"field": "mode", "issue": "invalid"},
		})
		return
	}
	c.Set("mode", string(mode))

	result, err := h.Svc.Analyze(c.Request.Context(), userID, Request{
		Mode:           mode,
		ResumeText:     req.ResumeText,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		PriorScore:     req.PriorScore,
	})
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrEmptyInput):
			respond.Error(c, http.StatusUnprocessableEntity, "empty_input",
				"resumeText is empty and no document has been uploaded", nil)
		case errors.Is(err, ErrInvalidMode):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			telemetry.Error("analysis.failed", map[string]any{"user_id": userID, "error": err})
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to analyze resume", nil)
		}
		return
	}

	if result.DocumentID != "" {
		c.Set("documentId", result.DocumentID)
	}
	c.Set("score", result.Score)
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) config(c *gin.Context) {
	respond.JSON(c, http.StatusOK, h.Svc.Config())
}
