package analyses

import "errors"

var (
	ErrInvalidMode = errors.New("invalid analysis mode")
)

// Gate reasons reported when a deep analysis is turned away.
const (
	GateMissingContext   = "missing_context"
	GateShortDescription = "short_description"
)
