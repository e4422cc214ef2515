package analyses

import "ats-backend/internal/scoring"

// Request is one scoring request. An empty ResumeText means the caller's
// current document is scored instead. PriorScore only applies to DEEP and
// defaults to the basic score of the same inputs.
type Request struct {
	Mode           AnalysisMode
	ResumeText     string
	JobTitle       string
	JobDescription string
	PriorScore     *int
}

// Result is the outcome of a BASIC or DEEP analysis. Breakdown is set for
// BASIC only; Summary and SufficientContext for DEEP only.
type Result struct {
	Mode              AnalysisMode       `json:"mode"`
	DocumentID        string             `json:"documentId,omitempty"`
	Score             int                `json:"score"`
	Feedback          []string           `json:"feedback"`
	Breakdown         *scoring.Breakdown `json:"breakdown,omitempty"`
	Summary           *string            `json:"summary,omitempty"`
	SufficientContext *bool              `json:"sufficientContext,omitempty"`
}
