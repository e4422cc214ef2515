package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by anything that can report its backing store reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the health payload.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
	Preset   string `json:"scoringPreset,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB     Pinger
	Preset string
}

// NewService constructs a new health service. db may be nil when documents
// live in memory.
func NewService(db Pinger, preset string) *Service {
	return &Service{DB: db, Preset: preset}
}

// Status reports whether the service can reach its database.
func (s *Service) Status(ctx context.Context) Status {
	status := Status{OK: true, Database: "memory", Preset: s.Preset}
	if s.DB == nil {
		return status
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.Ping(ctx); err != nil {
		status.OK = false
		status.Database = "unreachable"
		return status
	}
	status.Database = "ok"
	return status
}
