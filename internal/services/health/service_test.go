package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestStatus(t *testing.T) {
	cases := []struct {
		name     string
		db       Pinger
		ok       bool
		database string
	}{
		{"memory", nil, true, "memory"},
		{"reachable", pingFunc(func(context.Context) error { return nil }), true, "ok"},
		{"unreachable", pingFunc(func(context.Context) error { return errors.New("refused") }), false, "unreachable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewService(tc.db, "standard").Status(context.Background())
			assert.Equal(t, tc.ok, got.OK)
			assert.Equal(t, tc.database, got.Database)
			assert.Equal(t, "standard", got.Preset)
		})
	}
}

func TestStatusBoundsPing(t *testing.T) {
	var hadDeadline bool
	db := pingFunc(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})
	NewService(db, "").Status(context.Background())
	assert.True(t, hadDeadline)
}
