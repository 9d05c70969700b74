package pointer

import (
	"math"

	"github.com/ayusman/mudra/internal/geometry"
	"github.com/ayusman/mudra/internal/param"
)

// DualParameters describe how a pair of pointers changed between a reference
// instant and now. Global parameters use the session start as reference,
// live parameters the previous sample. VectorAngle is not a change: it is
// the direction of the line from the first to the second pointer now.
type DualParameters struct {
	Elapsed float64
	// CenterMoved is centerHasBeenMoved for global and centerIsMoving for live.
	CenterMoved            bool
	Center                 geometry.Point
	CenterMovement         geometry.Vector
	CenterMovementDistance float64

	AbsolutePointerDistanceChange float64
	RelativePointerDistanceChange float64
	// RelativeAvailable is false when the reference distance was zero.
	RelativeAvailable bool

	RotationAngle         float64
	AbsoluteRotationAngle float64
	VectorAngle           float64
	AbsoluteVectorAngle   float64
}

// DualPointerInput follows a pair of pointers.
type DualPointerInput struct {
	ids      [2]ID
	initial  [2]Event
	previous [2]Event
	current  [2]Event

	startTime    int64
	previousTime int64
	currentTime  int64
	last         Event
	// rotation is the sum of the live rotations since the session start.
	rotation float64

	Global DualParameters
	Live   DualParameters
}

// NewDualPointerInput starts a session for the pair a, b. trigger is the
// event that brought the second pointer in; its time is the session start.
func NewDualPointerInput(a, b, trigger Event) *DualPointerInput {
	in := &DualPointerInput{
		ids:          [2]ID{a.ID, b.ID},
		initial:      [2]Event{a, b},
		previous:     [2]Event{a, b},
		current:      [2]Event{a, b},
		startTime:    trigger.Time,
		previousTime: trigger.Time,
		currentTime:  trigger.Time,
		last:         trigger,
	}
	in.compute()
	return in
}

// Arity implements Input.
func (in *DualPointerInput) Arity() Arity { return Dual }

// IDs returns the tracked pointers.
func (in *DualPointerInput) IDs() [2]ID { return in.ids }

// Tracks implements Input.
func (in *DualPointerInput) Tracks(id ID) bool {
	return in.ids[0] == id || in.ids[1] == id
}

// CurrentEvent implements Input.
func (in *DualPointerInput) CurrentEvent() Event { return in.last }

// CurrentEvents returns the latest sample of each pointer.
func (in *DualPointerInput) CurrentEvents() [2]Event { return in.current }

func (in *DualPointerInput) update(e Event) {
	i := in.index(e.ID)
	if i < 0 {
		return
	}
	in.previous = in.current
	in.current[i] = e
	in.previousTime = in.currentTime
	in.currentTime = e.Time
	in.last = e
	in.compute()
}

func (in *DualPointerInput) index(id ID) int {
	for i, tracked := range in.ids {
		if tracked == id {
			return i
		}
	}
	return -1
}

func (in *DualPointerInput) compute() {
	wasMoved := in.Global.CenterMoved

	in.Live = measure(in.previous, in.current, float64(in.currentTime-in.previousTime))
	in.Global = measure(in.initial, in.current, float64(in.currentTime-in.startTime))
	in.Global.CenterMoved = wasMoved || in.Live.CenterMoved

	// Each live step is the short way round, so the sum keeps counting past
	// half a turn.
	in.rotation += in.Live.RotationAngle
	in.Global.RotationAngle = in.rotation
	in.Global.AbsoluteRotationAngle = math.Abs(in.rotation)
}

// measure compares the pair ref with the pair cur.
func measure(ref, cur [2]Event, elapsed float64) DualParameters {
	refA, refB := ref[0].Point(), ref[1].Point()
	curA, curB := cur[0].Point(), cur[1].Point()

	p := DualParameters{
		Elapsed: elapsed,
		Center:  geometry.Center(curA, curB),
	}

	p.CenterMovement = geometry.NewVector(geometry.Center(refA, refB), p.Center)
	p.CenterMovementDistance = p.CenterMovement.Length
	p.CenterMoved = p.CenterMovementDistance > 0

	refDist := geometry.Distance(refA, refB)
	curDist := geometry.Distance(curA, curB)
	p.AbsolutePointerDistanceChange = curDist - refDist
	p.RelativePointerDistanceChange, p.RelativeAvailable = geometry.RelativeChange(refDist, curDist)

	p.RotationAngle = geometry.Rotation(geometry.LineAngle(refA, refB), geometry.LineAngle(curA, curB))
	p.AbsoluteRotationAngle = math.Abs(p.RotationAngle)

	p.VectorAngle = geometry.LineAngle(curA, curB)
	p.AbsoluteVectorAngle = math.Abs(p.VectorAngle)

	return p
}

// Lookup implements param.Source.
func (in *DualPointerInput) Lookup(ts param.Timespan, key param.Key) (param.Value, bool) {
	var p DualParameters
	switch ts {
	case param.Global:
		p = in.Global
		switch key {
		case param.Duration:
			return number(p.Elapsed)
		case param.CenterHasBeenMoved:
			return flag(p.CenterMoved)
		}
	case param.Live:
		p = in.Live
		if key == param.CenterIsMoving {
			return flag(p.CenterMoved)
		}
	default:
		return param.Unavailable(), false
	}

	switch key {
	case param.CenterMovementDistance:
		return number(p.CenterMovementDistance)
	case param.AbsolutePointerDistanceChange:
		return number(p.AbsolutePointerDistanceChange)
	case param.RelativePointerDistanceChange:
		if !p.RelativeAvailable {
			// Known key without a computable value.
			return param.Unavailable(), true
		}
		return number(p.RelativePointerDistanceChange)
	case param.RotationAngle:
		return number(p.RotationAngle)
	case param.AbsoluteRotationAngle:
		return number(p.AbsoluteRotationAngle)
	case param.VectorAngle:
		return number(p.VectorAngle)
	case param.AbsoluteVectorAngle:
		return number(p.AbsoluteVectorAngle)
	}
	return param.Unavailable(), false
}
