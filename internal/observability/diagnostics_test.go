package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/pointer"
)

func TestGestureDiagnostics_LogsFailedChecks(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	diag := NewGestureDiagnostics(zap.New(core))

	tap, err := gesture.NewTap(gesture.Config{Diagnostics: diag})
	require.NoError(t, err)

	m := pointer.NewManager()
	m.Handle(pointer.Event{Type: pointer.Down, ID: 1})
	m.Handle(pointer.Event{Type: pointer.Up, ID: 1, Time: 500})
	assert.False(t, tap.Validate(m))

	entries := logs.FilterMessage("parameter checked").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "tap", ctx["gesture"])
	assert.Equal(t, "duration", ctx["key"])
	assert.Equal(t, false, ctx["passed"])
	assert.Equal(t, "500", ctx["value"])
	assert.Empty(t, logs.FilterMessage("validating").All(), "selection is verbose only")
}

func TestGestureDiagnostics_Verbose(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	diag := NewGestureDiagnostics(zap.New(core))
	diag.Verbose = true

	tap, err := gesture.NewTap(gesture.Config{Diagnostics: diag})
	require.NoError(t, err)

	m := pointer.NewManager()
	m.Handle(pointer.Event{Type: pointer.Down, ID: 1})
	m.Handle(pointer.Event{Type: pointer.Up, ID: 1, Time: 100})
	gesture.Recognize(tap, m)

	assert.Equal(t, 1, logs.FilterMessage("validating").Len())
	assert.Equal(t, 9, logs.FilterMessage("parameter checked").Len())
	changes := logs.FilterMessage("gesture state changed").All()
	require.Len(t, changes, 1)
	assert.Equal(t, "recognized", changes[0].ContextMap()["to"])
}
