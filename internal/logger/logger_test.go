package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NotNil(t *testing.T) {
	l := New("create", "info")
	require.NotNil(t, l)
}

func TestNew_CommandField(t *testing.T) {
	var buf bytes.Buffer
	l := New("restore", "debug")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "restore", entry["command"])
}

func TestNew_ContainsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := New("create", "info")
	l.Logger = l.Output(&buf)

	l.Info().Msg("ts check")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

func TestNew_CallerFieldName(t *testing.T) {
	New("create", "info")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := New("create", "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestNew_RespectsRequestedLevel(t *testing.T) {
	l := New("create", "warn")
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestNop_NotNil(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

func TestGetChildLogger_NotNil(t *testing.T) {
	parent := New("create", "info")
	child := parent.GetChildLogger()
	require.NotNil(t, child)
}

func TestGetChildLogger_IsIndependent(t *testing.T) {
	parent := New("create", "info")
	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := New("create", "info")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	child.Logger = child.Output(&buf)
	child.Info().Msg("child message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "create", entry["command"])
}

func TestFromContext_NotNil(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("ctx-key", "ctx-value").Logger()
	ctx := zl.WithContext(context.Background())

	l := FromContext(ctx)
	require.NotNil(t, l)

	l.Info().Msg("from context")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ctx-value", entry["ctx-key"])
}
