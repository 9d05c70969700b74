package gesture

import (
	"github.com/ayusman/mudra/internal/param"
	"github.com/ayusman/mudra/internal/pointer"
)

// DualPointerGesture is a gesture performed with two pointers.
type DualPointerGesture struct {
	Base
}

// NewDualPointerGesture returns a two-pointer gesture that validates while
// two or more pointers are held. defaults are applied before cfg.Overrides.
func NewDualPointerGesture(name string, defaults []Override, cfg Config) (*DualPointerGesture, error) {
	g := &DualPointerGesture{
		Base: newBase(name, param.DualPointerSchema, pointer.Dual, pointer.DualPointer, cfg),
	}
	g.eventData = g.EventData
	if err := g.configure(defaults, cfg.Overrides); err != nil {
		return nil, err
	}
	return g, nil
}

// EventData builds the event snapshot from the movement of the center
// between the two pointers. Live speeds divide the last center step by the
// whole session duration. Speeds are zero when no time has elapsed.
func (g *DualPointerGesture) EventData(in pointer.Input) (Data, LiveData) {
	dp, ok := in.(*pointer.DualPointerInput)
	if !ok {
		return Data{}, LiveData{}
	}

	global := dualData(dp.Global, dp.Global.Elapsed)
	live := LiveData{
		Data:   dualData(dp.Live, dp.Global.Elapsed),
		Center: dp.Live.Center,
	}
	return global, live
}

func dualData(p pointer.DualParameters, duration float64) Data {
	d := movementData(p.CenterMovement, duration)
	d.Distance = p.CenterMovementDistance
	if p.RelativeAvailable {
		d.Scale = p.RelativePointerDistanceChange
	}
	d.Rotation = p.RotationAngle
	return d
}
