package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"ats-backend/internal/documents"
	"ats-backend/internal/scoring"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/telemetry"
)

// DocumentSource resolves the caller's current resume text.
type DocumentSource interface {
	CurrentText(ctx context.Context, userID string) (documents.Document, string, error)
}

// Service runs the scoring engine for HTTP callers.
type Service struct {
	Engine *scoring.Engine
	Docs   DocumentSource
}

// NewService constructs a Service. docs may be nil, in which case requests
// must carry their own resume text.
func NewService(engine *scoring.Engine, docs DocumentSource) *Service {
	return &Service{Engine: engine, Docs: docs}
}

// Analyze scores the request. It returns scoring.ErrEmptyInput when no resume
// text is given and the user has no current document.
func (s *Service) Analyze(ctx context.Context, userID string, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if req.Mode != ModeBasic && req.Mode != ModeDeep {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}

	text, documentID, err := s.resumeText(ctx, userID, req.ResumeText)
	if err != nil {
		return Result{}, err
	}

	basic, err := s.Engine.Score(text, req.JobTitle, req.JobDescription)
	if err != nil {
		return Result{}, err
	}

	result := Result{Mode: req.Mode, DocumentID: documentID, Score: basic.Score}
	switch req.Mode {
	case ModeBasic:
		result.Feedback = basic.Feedback
		result.Breakdown = &basic.Breakdown
	case ModeDeep:
		prior := basic.Score
		if req.PriorScore != nil {
			prior = *req.PriorScore
		}
		deep := s.Engine.AnalyzeDeep(text, req.JobTitle, req.JobDescription, prior)
		if !deep.SufficientContext {
			metrics.IncDeepGate(s.gateReason(req.JobTitle, req.JobDescription))
		}
		result.Feedback = deep.Feedback
		result.Summary = &deep.Summary
		result.SufficientContext = &deep.SufficientContext
	}
	metrics.ObserveScore(string(req.Mode), result.Score)

	telemetry.Info("analysis.completed", map[string]any{
		"user_id":         userID,
		"document_id":     documentID,
		"mode":            string(req.Mode),
		"score":           result.Score,
		"feedback_lines":  len(result.Feedback),
		"has_job_title":   strings.TrimSpace(req.JobTitle) != "",
		"description_len": utf8.RuneCountInString(req.JobDescription),
	})
	return result, nil
}

// Config returns the engine's active configuration.
func (s *Service) Config() scoring.Config {
	return s.Engine.Config()
}

func (s *Service) resumeText(ctx context.Context, userID, inline string) (string, string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, "", nil
	}
	if s.Docs == nil || strings.TrimSpace(userID) == "" {
		return "", "", scoring.ErrEmptyInput
	}
	doc, text, err := s.Docs.CurrentText(ctx, userID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return "", "", scoring.ErrEmptyInput
		}
		return "", "", fmt.Errorf("load current document: %w", err)
	}
	return text, doc.ID, nil
}

func (s *Service) gateReason(jobTitle, jobDescription string) string {
	if strings.TrimSpace(jobTitle) == "" || strings.TrimSpace(jobDescription) == "" {
		return GateMissingContext
	}
	return GateShortDescription
}
