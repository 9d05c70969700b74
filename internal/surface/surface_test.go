package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/pointer"
)

func newTapSurface(t *testing.T, logger *zap.Logger) (*Surface, *[]gesture.Event) {
	t.Helper()
	s := New("canvas", logger)
	tap, err := gesture.NewTap(gesture.Config{Element: "canvas"})
	require.NoError(t, err)
	s.Register(tap)

	var events []gesture.Event
	s.OnGesture(func(e gesture.Event) { events = append(events, e) })
	return s, &events
}

func TestSurface_Tap(t *testing.T) {
	s, events := newTapSurface(t, nil)

	assert.True(t, s.PointerDown(1, 0, 0, 0))
	assert.True(t, s.PointerUp(1, 5, 3, 150))

	require.Len(t, *events, 1)
	assert.Equal(t, "tap", (*events)[0].Type)
	assert.Equal(t, "canvas", (*events)[0].Element)
	assert.Equal(t, pointer.NoPointer, s.Manager().State())
}

func TestSurface_TapAgainAfterNewSession(t *testing.T) {
	s, events := newTapSurface(t, nil)

	for i := 0; i < 3; i++ {
		base := int64(i * 1000)
		s.PointerDown(1, 0, 0, base)
		s.PointerUp(1, 0, 0, base+100)
	}
	assert.Len(t, *events, 3)
}

func TestSurface_RejectedEventsSkipRecognition(t *testing.T) {
	s, events := newTapSurface(t, nil)

	assert.False(t, s.PointerUp(9, 0, 0, 10))
	assert.False(t, s.PointerMove(9, 0, 0, 10))
	assert.Empty(t, *events)
}

func TestSurface_RemoveListener(t *testing.T) {
	s, events := newTapSurface(t, nil)

	var second int
	h := s.OnGesture(func(gesture.Event) { second++ })

	s.PointerDown(1, 0, 0, 0)
	s.PointerUp(1, 0, 0, 10)
	h.Remove()
	h.Remove()
	s.PointerDown(1, 0, 0, 100)
	s.PointerUp(1, 0, 0, 110)

	assert.Equal(t, 1, second)
	assert.Len(t, *events, 2)
	Handle{}.Remove()
}

func TestSurface_ListenerRemovesItselfDuringDispatch(t *testing.T) {
	s := New("canvas", nil)
	tap, err := gesture.NewTap(gesture.Config{Element: "canvas"})
	require.NoError(t, err)
	s.Register(tap)

	var first, second int
	var h Handle
	h = s.OnGesture(func(gesture.Event) {
		first++
		h.Remove()
	})
	s.OnGesture(func(gesture.Event) { second++ })

	s.PointerDown(1, 0, 0, 0)
	s.PointerUp(1, 0, 0, 10)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second, "listener after the removed one still gets the event")

	s.PointerDown(1, 0, 0, 100)
	s.PointerUp(1, 0, 0, 110)
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

// panicky blows up on every validation.
type panicky struct {
	*gesture.SinglePointerGesture
}

func (p *panicky) Validate(*pointer.Manager) bool { panic("broken gesture") }

func TestSurface_IsolatesPanickingGesture(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s, events := newTapSurface(t, zap.New(core))

	sg, err := gesture.NewSinglePointerGesture("broken", nil, gesture.Config{})
	require.NoError(t, err)
	s.Register(&panicky{sg})
	assert.Len(t, s.Gestures(), 2)

	s.PointerDown(1, 0, 0, 0)
	s.PointerUp(1, 0, 0, 100)

	assert.Len(t, *events, 1, "tap still fires")
	entries := logs.FilterMessage("gesture recognition failed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "broken", entries[0].ContextMap()["gesture"])
}

func TestSurface_ListenerPanicDoesNotStopOtherGestures(t *testing.T) {
	s := New("canvas", nil)

	first, err := gesture.NewNamedTap("first", gesture.Config{})
	require.NoError(t, err)
	second, err := gesture.NewNamedTap("second", gesture.Config{})
	require.NoError(t, err)
	s.Register(first)
	s.Register(second)

	var got []string
	s.OnGesture(func(e gesture.Event) {
		got = append(got, e.Type)
		if e.Type == "first" {
			panic("listener")
		}
	})

	s.PointerDown(1, 0, 0, 0)
	s.PointerUp(1, 0, 0, 50)
	assert.Equal(t, []string{"first", "second"}, got)
}
