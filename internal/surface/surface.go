// Package surface binds a pointer manager and a set of gestures to one host
// element and dispatches recognized gesture events to listeners.
package surface

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/pointer"
)

type listener struct {
	id uint32
	fn func(gesture.Event)
}

type registry struct {
	listeners []listener
	nextID    uint32
}

// Handle allows removing a registered listener.
type Handle struct {
	id  uint32
	reg *registry
}

// Remove unregisters the listener. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.listeners
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.reg.listeners = s[:len(s)-1]
			return
		}
	}
}

// Surface feeds pointer events of one element to its gestures. It is not
// safe for concurrent use; see app.Pipeline for a serialized front.
type Surface struct {
	element  any
	manager  *pointer.Manager
	gestures []gesture.Gesture
	handlers registry
	logger   *zap.Logger
}

// New returns a surface for element. A nil logger disables logging.
func New(element any, logger *zap.Logger) *Surface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Surface{
		element: element,
		manager: pointer.NewManager(),
		logger:  logger.Named("surface"),
	}
}

// Element returns the host element.
func (s *Surface) Element() any { return s.element }

// Manager returns the pointer manager of the surface.
func (s *Surface) Manager() *pointer.Manager { return s.manager }

// Gestures returns the registered gestures in registration order.
func (s *Surface) Gestures() []gesture.Gesture {
	out := make([]gesture.Gesture, len(s.gestures))
	copy(out, s.gestures)
	return out
}

// Register adds g and routes its events to the surface listeners.
func (s *Surface) Register(g gesture.Gesture) {
	g.SetEmitter(gesture.EmitterFunc(s.dispatch))
	s.gestures = append(s.gestures, g)
	s.logger.Debug("gesture registered", zap.String("gesture", g.Name()))
}

// OnGesture registers fn for every gesture event.
func (s *Surface) OnGesture(fn func(gesture.Event)) Handle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.listeners = append(s.handlers.listeners, listener{id: id, fn: fn})
	return Handle{id: id, reg: &s.handlers}
}

func (s *Surface) dispatch(e gesture.Event) {
	if e.Element == nil {
		e.Element = s.element
	}
	// Listeners may remove themselves or others while the event is out.
	listeners := append([]listener(nil), s.handlers.listeners...)
	for _, l := range listeners {
		l.fn(e)
	}
}

// PointerDown handles a pointer touching the element.
func (s *Surface) PointerDown(id pointer.ID, x, y float64, t int64) bool {
	return s.Handle(pointer.Event{Type: pointer.Down, ID: id, X: x, Y: y, Time: t})
}

// PointerMove handles a held pointer moving.
func (s *Surface) PointerMove(id pointer.ID, x, y float64, t int64) bool {
	return s.Handle(pointer.Event{Type: pointer.Move, ID: id, X: x, Y: y, Time: t})
}

// PointerUp handles a pointer being released.
func (s *Surface) PointerUp(id pointer.ID, x, y float64, t int64) bool {
	return s.Handle(pointer.Event{Type: pointer.Up, ID: id, X: x, Y: y, Time: t})
}

// Handle applies e to the manager and runs recognition for every gesture.
// Events the manager rejects are dropped.
func (s *Surface) Handle(e pointer.Event) bool {
	if !s.manager.Handle(e) {
		s.logger.Debug("pointer event rejected",
			zap.Stringer("type", e.Type),
			zap.Int("id", int(e.ID)),
			zap.Int64("t", e.Time))
		return false
	}

	if e.Type == pointer.Down && s.manager.PointerCount() == 1 {
		for _, g := range s.gestures {
			g.Reset()
		}
	}

	for _, g := range s.gestures {
		if err := s.recognize(g); err != nil {
			s.logger.Error("gesture recognition failed",
				zap.String("gesture", g.Name()),
				zap.Error(err))
		}
	}
	return true
}

// recognize isolates a failing gesture from the others.
func (s *Surface) recognize(g gesture.Gesture) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	gesture.Recognize(g, s.manager)
	return nil
}
