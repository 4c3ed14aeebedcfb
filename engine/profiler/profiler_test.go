package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// steppingClock returns base, then base+step, base+2*step, ... on successive calls.
func steppingClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewProfiler(WithLogger(logger), WithNow(steppingClock(250*time.Millisecond)))

	var logged []bool
	for range 4 {
		logged = append(logged, p.Tick())
	}
	assert.Equal(t, []bool{false, false, false, true}, logged)
	assert.InDelta(t, 4, p.Last().FPS, 1e-9)
	assert.Greater(t, p.Last().SysMB, 0.0)
	assert.Contains(t, buf.String(), "[Profiler]")
	assert.Contains(t, buf.String(), "fps=4")
}

func TestTickIsQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	p := NewProfiler(WithLogger(logger), WithInterval(time.Millisecond), WithNow(steppingClock(time.Second)))
	assert.True(t, p.Tick())
	assert.Empty(t, buf.String())
}
