package pointer

import (
	"math"

	"github.com/ayusman/mudra/internal/geometry"
	"github.com/ayusman/mudra/internal/param"
)

// SingleGlobal holds the parameters of a single pointer measured from the
// start of the session.
type SingleGlobal struct {
	Duration        float64
	HasBeenMoved    bool
	Movement        geometry.Vector // initial to current position
	Distance        float64
	MaximumDistance float64
	AverageSpeed    float64
	FinalSpeed      float64
}

// SingleLive holds the parameters of a single pointer measured from the
// previous sample.
type SingleLive struct {
	Elapsed  float64
	IsMoving bool
	Movement geometry.Vector // previous to current position
	Distance float64
	Speed    float64
}

// SinglePointerInput follows one pointer from down to up.
type SinglePointerInput struct {
	id       ID
	initial  Event
	previous Event
	current  Event

	Global SingleGlobal
	Live   SingleLive
}

// NewSinglePointerInput starts a session at the down event e. Until the next
// sample every parameter is zero.
func NewSinglePointerInput(e Event) *SinglePointerInput {
	in := &SinglePointerInput{
		id:       e.ID,
		initial:  e,
		previous: e,
		current:  e,
	}
	in.compute()
	return in
}

// Arity implements Input.
func (in *SinglePointerInput) Arity() Arity { return Single }

// ID returns the tracked pointer.
func (in *SinglePointerInput) ID() ID { return in.id }

// Tracks implements Input.
func (in *SinglePointerInput) Tracks(id ID) bool { return in.id == id }

// InitialEvent returns the event that started the session.
func (in *SinglePointerInput) InitialEvent() Event { return in.initial }

// PreviousEvent returns the sample before the current one.
func (in *SinglePointerInput) PreviousEvent() Event { return in.previous }

// CurrentEvent implements Input.
func (in *SinglePointerInput) CurrentEvent() Event { return in.current }

func (in *SinglePointerInput) update(e Event) {
	if e.ID != in.id {
		return
	}
	in.previous = in.current
	in.current = e
	in.compute()
}

func (in *SinglePointerInput) compute() {
	g := &in.Global
	g.Duration = float64(in.current.Time - in.initial.Time)
	g.Movement = geometry.NewVector(in.initial.Point(), in.current.Point())
	g.Distance = g.Movement.Length
	g.MaximumDistance = math.Max(g.MaximumDistance, g.Distance)
	g.AverageSpeed = geometry.Speed(g.Distance, g.Duration)

	l := &in.Live
	l.Elapsed = float64(in.current.Time - in.previous.Time)
	l.Movement = geometry.NewVector(in.previous.Point(), in.current.Point())
	l.Distance = l.Movement.Length
	l.Speed = geometry.Speed(l.Distance, l.Elapsed)
	l.IsMoving = l.Distance > 0

	// Sticky for the rest of the session.
	g.HasBeenMoved = g.HasBeenMoved || l.IsMoving
	g.FinalSpeed = l.Speed
}

// Lookup implements param.Source.
func (in *SinglePointerInput) Lookup(ts param.Timespan, key param.Key) (param.Value, bool) {
	switch ts {
	case param.Global:
		g := in.Global
		switch key {
		case param.Duration:
			return number(g.Duration)
		case param.HasBeenMoved:
			return flag(g.HasBeenMoved)
		case param.Distance:
			return number(g.Distance)
		case param.MaximumDistance:
			return number(g.MaximumDistance)
		case param.AverageSpeed:
			return number(g.AverageSpeed)
		case param.FinalSpeed:
			return number(g.FinalSpeed)
		}
	case param.Live:
		l := in.Live
		switch key {
		case param.IsMoving:
			return flag(l.IsMoving)
		case param.Distance:
			return number(l.Distance)
		case param.Speed:
			return number(l.Speed)
		}
	}
	return param.Unavailable(), false
}
