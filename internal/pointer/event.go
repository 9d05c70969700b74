// Package pointer tracks the pointers held on a surface and computes the
// kinematic parameters of each pointer session.
package pointer

import (
	"fmt"

	"github.com/ayusman/mudra/internal/geometry"
)

// EventType is the kind of a pointer event.
type EventType uint8

const (
	Down EventType = iota + 1
	Move
	Up
)

func (t EventType) String() string {
	switch t {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

// ParseEventType converts "down", "move" or "up" to an EventType.
func ParseEventType(s string) (EventType, error) {
	switch s {
	case "down":
		return Down, nil
	case "move":
		return Move, nil
	case "up":
		return Up, nil
	default:
		return 0, fmt.Errorf("unknown pointer event type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t EventType) MarshalText() ([]byte, error) {
	switch t {
	case Down, Move, Up:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("invalid pointer event type %d", uint8(t))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EventType) UnmarshalText(b []byte) error {
	parsed, err := ParseEventType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ID identifies a pointer while it is held. IDs may be reused after release.
type ID int

// Event is a single pointer sample delivered by the host surface.
type Event struct {
	Type EventType `json:"type"`
	ID   ID        `json:"id"`
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
	Time int64     `json:"t"` // milliseconds
}

// Point returns the position of the sample.
func (e Event) Point() geometry.Point {
	return geometry.Point{X: e.X, Y: e.Y}
}

// Arity is the number of pointers an input or gesture works with.
type Arity int

const (
	Single Arity = 1
	Dual   Arity = 2
)

// SessionState reflects how many pointers are currently held.
type SessionState uint8

const (
	NoPointer SessionState = iota
	SinglePointer
	DualPointer
)

func (s SessionState) String() string {
	switch s {
	case NoPointer:
		return "no-pointer"
	case SinglePointer:
		return "single-pointer"
	case DualPointer:
		return "dual-pointer"
	default:
		return fmt.Sprintf("SessionState(%d)", uint8(s))
	}
}

// stateFor maps a held-pointer count to a session state. Three or more
// pointers collapse into DualPointer.
func stateFor(count int) SessionState {
	switch {
	case count <= 0:
		return NoPointer
	case count == 1:
		return SinglePointer
	default:
		return DualPointer
	}
}
