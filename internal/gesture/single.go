package gesture

import (
	"github.com/ayusman/mudra/internal/param"
	"github.com/ayusman/mudra/internal/pointer"
)

// SinglePointerGesture is a gesture performed with one pointer.
type SinglePointerGesture struct {
	Base
}

// NewSinglePointerGesture returns a one-pointer gesture that validates while
// exactly one pointer is held. defaults are applied before cfg.Overrides.
func NewSinglePointerGesture(name string, defaults []Override, cfg Config) (*SinglePointerGesture, error) {
	g := &SinglePointerGesture{
		Base: newBase(name, param.SinglePointerSchema, pointer.Single, pointer.SinglePointer, cfg),
	}
	g.eventData = g.EventData
	if err := g.configure(defaults, cfg.Overrides); err != nil {
		return nil, err
	}
	return g, nil
}

// EventData builds the event snapshot of a single-pointer input. Other
// inputs yield zero data.
func (g *SinglePointerGesture) EventData(in pointer.Input) (Data, LiveData) {
	sp, ok := in.(*pointer.SinglePointerInput)
	if !ok {
		return Data{}, LiveData{}
	}

	global := movementData(sp.Global.Movement, sp.Global.Duration)
	live := LiveData{
		Data:   movementData(sp.Live.Movement, sp.Live.Elapsed),
		Center: sp.CurrentEvent().Point(),
	}
	return global, live
}
