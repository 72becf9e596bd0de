package obs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"routekeeper/internal/pkg/obs"

	"github.com/stretchr/testify/assert"
)

func TestTime_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := obs.WithRequestID(context.Background(), "r-1")

	err := errors.New("reorder failed")
	obs.Time(ctx, logger, "optimize")(&err)

	out := buf.String()
	assert.Contains(t, out, "op=optimize")
	assert.Contains(t, out, "req_id=r-1")
	assert.Contains(t, out, "reorder failed")
}

func TestTime_LogsSuccessAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var err error
	obs.Time(context.Background(), logger, "scan")(&err)

	assert.Contains(t, buf.String(), "operation finished")
	assert.NotContains(t, buf.String(), "req_id")
}
