package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	}}

	logger := slog.New(h)
	logger.Info("gate evaluated", "passed", true)

	assert.Contains(t, a.String(), "gate evaluated")
	assert.Contains(t, b.String(), "gate evaluated")
}

func TestMultiHandler_EnabledIfAnyEnabled(t *testing.T) {
	var buf bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := &multiHandler{handlers: []slog.Handler{slog.NewJSONHandler(&buf, nil)}}

	withRun := base.WithAttrs([]slog.Attr{slog.String("run", "ci-42")})
	logger := slog.New(withRun)
	logger.Info("comparing")

	assert.Contains(t, buf.String(), "ci-42")
}

func TestInitLogger_FileOutput(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	logFile := t.TempDir() + "/gate.log"
	InitLogger(true, logFile)
	slog.Debug("loaded results", "count", 3)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded results")
}
