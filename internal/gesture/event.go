package gesture

import (
	"github.com/ayusman/mudra/internal/geometry"
	"github.com/ayusman/mudra/internal/pointer"
)

// Data is a snapshot of a gesture's movement over one timespan.
type Data struct {
	DeltaX    float64 `json:"deltaX"`
	DeltaY    float64 `json:"deltaY"`
	Distance  float64 `json:"distance"`
	SpeedX    float64 `json:"speedX"`
	SpeedY    float64 `json:"speedY"`
	Speed     float64 `json:"speed"`
	Direction float64 `json:"direction"`
	// Scale is the relative pointer distance change, 0 when not computable.
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
}

// LiveData is Data since the previous sample plus the current center.
type LiveData struct {
	Data
	Center geometry.Point `json:"center"`
}

// Event is emitted when a gesture starts, moves, ends, fails or fires.
type Event struct {
	Type       string        `json:"type"`
	Recognizer string        `json:"recognizer"`
	Element    any           `json:"-"`
	Global     Data          `json:"global"`
	Live       LiveData      `json:"live"`
	Source     pointer.Event `json:"source"`
}

// Emitter receives gesture events.
type Emitter interface {
	Emit(e Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(e Event)

// Emit implements Emitter.
func (f EmitterFunc) Emit(e Event) { f(e) }

type nopEmitter struct{}

func (nopEmitter) Emit(Event) {}

func movementData(v geometry.Vector, elapsed float64) Data {
	return Data{
		DeltaX:    v.X,
		DeltaY:    v.Y,
		Distance:  v.Length,
		SpeedX:    geometry.Speed(v.X, elapsed),
		SpeedY:    geometry.Speed(v.Y, elapsed),
		Speed:     geometry.Speed(v.Length, elapsed),
		Direction: v.Direction,
	}
}
