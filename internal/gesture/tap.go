package gesture

import (
	"github.com/ayusman/mudra/internal/param"
	"github.com/ayusman/mudra/internal/pointer"
)

// TapName is the event type a tap emits.
const TapName = "tap"

// Tap fires once a single pointer is released after a short press without
// significant movement. It is never Active.
type Tap struct {
	*SinglePointerGesture
}

// TapDefaults are the thresholds a Tap starts from.
func TapDefaults() []Override {
	return []Override{
		{InitialParameters, param.Global, param.Duration, param.AtMost(200)},
		{InitialParameters, param.Global, param.Distance, param.AtMost(30)},
		{InitialParameters, param.Live, param.Distance, param.AtMost(30)},
	}
}

// NewTap returns a tap recognizer. cfg.Overrides adjust TapDefaults.
func NewTap(cfg Config) (*Tap, error) {
	return NewNamedTap(TapName, cfg)
}

// NewNamedTap returns a tap recognizer emitting events named name.
func NewNamedTap(name string, cfg Config) (*Tap, error) {
	sg, err := NewSinglePointerGesture(name, TapDefaults(), cfg)
	if err != nil {
		return nil, err
	}
	sg.requiredState = pointer.NoPointer
	return &Tap{SinglePointerGesture: sg}, nil
}

// Validate checks the input of the session that just ended, and only if
// that session never held more than one pointer.
func (t *Tap) Validate(m *pointer.Manager) bool {
	if !t.CheckPreconditions(m) {
		return false
	}
	if m.LastSessionPointerCount() != 1 {
		return false
	}
	in := m.LastRemovedInput(pointer.Single)
	if in == nil {
		return false
	}
	return t.ValidateInput(in)
}

// OnStart emits the tap and recognizes it.
func (t *Tap) OnStart(m *pointer.Manager) {
	t.setState(Recognized)
	t.Emit(t.name, m.LastRemovedInput(pointer.Single))
}
