package analyses

import (
	"fmt"
	"strings"
)

// AnalysisMode defines the supported analysis modes.
type AnalysisMode string

const (
	ModeBasic AnalysisMode = "BASIC"
	ModeDeep  AnalysisMode = "DEEP"
)

// ParseMode normalizes and validates a mode string.
func ParseMode(raw string) (AnalysisMode, error) {
	normalized := strings.TrimSpace(raw)
	if normalized == "" {
		return "", fmt.Errorf("%w: analysis mode is required", ErrInvalidMode)
	}
	switch strings.ToUpper(normalized) {
	case string(ModeBasic):
		return ModeBasic, nil
	case string(ModeDeep):
		return ModeDeep, nil
	default:
		return "", fmt.Errorf("%w: analysis mode must be BASIC or DEEP", ErrInvalidMode)
	}
}
