package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContext_Attrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rc := NewRequestContextWithID(logger, "req-1", "parse")
	rc.SetResult("zh", "primary")
	rc.Error("parse failed", errors.New("boom"), slog.Int(LogFieldTextLen, 4))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line[LogFieldRequestID])
	assert.Equal(t, "parse", line[LogFieldOperation])
	assert.Equal(t, "zh", line[LogFieldLanguage])
	assert.Equal(t, "primary", line[LogFieldSource])
	assert.Equal(t, "boom", line["error"])
	assert.EqualValues(t, 4, line[LogFieldTextLen])
}

func TestRequestContext_GeneratedID(t *testing.T) {
	a := NewRequestContext(nil, "parse")
	b := NewRequestContextWithID(nil, "", "parse")
	assert.Len(t, a.RequestID, 36)
	assert.Len(t, b.RequestID, 36)
	assert.NotEqual(t, a.RequestID, b.RequestID)
}

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	rc := NewRequestContextWithID(nil, "req-2", "history")
	ctx := WithRequestContext(context.Background(), rc)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, rc, got)
	assert.Same(t, rc, FromContextOrNew(ctx, nil, "other"))
	assert.NotSame(t, rc, FromContextOrNew(context.Background(), nil, "other"))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics(3)
	m.RecordParse("zh", "primary", 10*time.Millisecond)
	m.RecordParse("en", "primary", 30*time.Millisecond)
	m.RecordParse("en", "fallback", 100*time.Millisecond)
	m.RecordParse("en", "none", 1*time.Millisecond)
	m.RecordFailure()

	s := m.Snapshot()
	assert.EqualValues(t, 5, s.RequestTotal)
	assert.EqualValues(t, 1, s.RequestFailed)
	assert.EqualValues(t, 2, s.Sources["primary"].Count)
	assert.EqualValues(t, 20, s.Sources["primary"].AverageDuration)
	assert.EqualValues(t, 3, s.Languages["en"])
	// Only the last three durations are kept: 30, 100, 1.
	assert.EqualValues(t, 30, s.P95Duration)
	assert.InDelta(t, 80.0, s.SuccessRate(), 0.001)

	m.Reset()
	assert.Equal(t, 100.0, m.Snapshot().SuccessRate())
}
