// Package gesture validates pointer inputs against declarative thresholds
// and drives the lifecycle of each recognizer.
package gesture

import (
	"fmt"

	"github.com/ayusman/mudra/internal/pointer"
)

// State is the lifecycle state of a gesture within one pointer session.
type State uint8

const (
	// Possible is the default state: the gesture has not started yet.
	Possible State = iota
	// Active means the gesture is being performed.
	Active
	// Recognized is terminal: the gesture fired.
	Recognized
	// Failed is terminal: the gesture cannot happen in this session.
	Failed
)

func (s State) String() string {
	switch s {
	case Possible:
		return "possible"
	case Active:
		return "active"
	case Recognized:
		return "recognized"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Terminal reports whether no further transitions happen until Reset.
func (s State) Terminal() bool {
	return s == Recognized || s == Failed
}

// Gesture is a recognizer driven by a pointer.Manager.
type Gesture interface {
	Name() string
	State() State
	Arity() pointer.Arity

	// Validate reports whether the gesture's thresholds hold for the current
	// pointer session. It never changes the gesture.
	Validate(m *pointer.Manager) bool

	OnStart(m *pointer.Manager)
	OnMove(m *pointer.Manager)
	OnEnd(m *pointer.Manager)
	Fail(m *pointer.Manager)

	// Reset returns the gesture to Possible for a new session.
	Reset()
	SetEmitter(e Emitter)
}

// Recognize runs one recognition step of g after m accepted an event.
//
// A valid gesture starts or moves. An active gesture that stops validating
// ends, unless more pointers are now held than it works with, in which case
// it fails.
func Recognize(g Gesture, m *pointer.Manager) {
	valid := g.Validate(m)

	switch state := g.State(); {
	case valid && state == Possible:
		g.OnStart(m)
	case valid && state == Active:
		g.OnMove(m)
	case !valid && state == Active:
		if m.PointerCount() > int(g.Arity()) {
			g.Fail(m)
		} else {
			g.OnEnd(m)
		}
	}
}
