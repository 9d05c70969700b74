package gesture

import (
	"github.com/ayusman/mudra/internal/param"
	"github.com/ayusman/mudra/internal/pointer"
)

// Base carries the state, thresholds and emission shared by all gestures.
// Concrete gestures embed SinglePointerGesture or DualPointerGesture and
// override the hooks they need.
type Base struct {
	name          string
	state         State
	requiredState pointer.SessionState
	arity         pointer.Arity

	initial *param.Set
	active  *param.Set

	element     any
	emitter     Emitter
	diagnostics Diagnostics

	eventData func(in pointer.Input) (Data, LiveData)
}

func newBase(name string, schema param.Schema, arity pointer.Arity, required pointer.SessionState, cfg Config) Base {
	b := Base{
		name:          name,
		requiredState: required,
		arity:         arity,
		initial:       param.NewSet(schema),
		active:        param.NewSet(schema),
		element:       cfg.Element,
		emitter:       cfg.Emitter,
		diagnostics:   cfg.Diagnostics,
	}
	if b.emitter == nil {
		b.emitter = nopEmitter{}
	}
	if b.diagnostics == nil {
		b.diagnostics = NopDiagnostics{}
	}
	return b
}

// configure applies defaults and then the user overrides.
func (b *Base) configure(defaults, overrides []Override) error {
	sets := map[ParameterSet]*param.Set{
		InitialParameters: b.initial,
		ActiveParameters:  b.active,
	}
	if err := applyOverrides(sets, defaults); err != nil {
		return err
	}
	return applyOverrides(sets, overrides)
}

// Name returns the event base name, e.g. "tap".
func (b *Base) Name() string { return b.name }

// State returns the lifecycle state.
func (b *Base) State() State { return b.state }

// Arity returns how many pointers the gesture works with.
func (b *Base) Arity() pointer.Arity { return b.arity }

// RequiredSessionState returns the session state the gesture validates in.
func (b *Base) RequiredSessionState() pointer.SessionState { return b.requiredState }

// Element returns the host element given at construction.
func (b *Base) Element() any { return b.element }

// Parameters returns one of the two threshold sets. The returned set is the
// gesture's own; changes take effect on the next validation.
func (b *Base) Parameters(which ParameterSet) *param.Set {
	if which == ActiveParameters {
		return b.active
	}
	return b.initial
}

// SetEmitter replaces the event sink. A nil emitter drops events.
func (b *Base) SetEmitter(e Emitter) {
	if e == nil {
		e = nopEmitter{}
	}
	b.emitter = e
}

// Reset returns the gesture to Possible.
func (b *Base) Reset() {
	b.setState(Possible)
}

func (b *Base) setState(s State) {
	if s == b.state {
		return
	}
	from := b.state
	b.state = s
	b.diagnostics.StateChanged(b.name, from, s)
}

// CheckPreconditions reports whether the gesture may be evaluated at all:
// its state is not terminal and the session state matches.
func (b *Base) CheckPreconditions(m *pointer.Manager) bool {
	if b.state.Terminal() {
		return false
	}
	return m.State() == b.requiredState
}

// ValidateInput checks in against the active thresholds while Active, the
// initial thresholds otherwise. A nil input fails.
func (b *Base) ValidateInput(in pointer.Input) bool {
	if in == nil || in.Arity() != b.arity {
		return false
	}

	which := InitialParameters
	if b.state == Active {
		which = ActiveParameters
	}
	b.diagnostics.ParametersSelected(b.name, which)

	return b.Parameters(which).Validate(in, func(c param.Check) {
		b.diagnostics.ParameterChecked(b.name, c)
	})
}

// Validate checks the preconditions and then the running input.
func (b *Base) Validate(m *pointer.Manager) bool {
	if !b.CheckPreconditions(m) {
		return false
	}
	return b.ValidateInput(m.Input(b.arity))
}

// OnStart activates the gesture and emits "<name>start".
func (b *Base) OnStart(m *pointer.Manager) {
	b.setState(Active)
	b.Emit(b.name+"start", b.input(m))
}

// OnMove emits "<name>".
func (b *Base) OnMove(m *pointer.Manager) {
	b.Emit(b.name, b.input(m))
}

// OnEnd recognizes the gesture and emits "<name>end".
func (b *Base) OnEnd(m *pointer.Manager) {
	b.setState(Recognized)
	b.Emit(b.name+"end", b.input(m))
}

// Fail marks the gesture failed and emits "<name>cancel".
func (b *Base) Fail(m *pointer.Manager) {
	b.setState(Failed)
	b.Emit(b.name+"cancel", b.input(m))
}

// input returns the running input of the gesture's arity, falling back to
// the one that just finished.
func (b *Base) input(m *pointer.Manager) pointer.Input {
	if in := m.Input(b.arity); in != nil {
		return in
	}
	return m.LastRemovedInput(b.arity)
}

// Emit sends an event of the given type built from in.
func (b *Base) Emit(eventType string, in pointer.Input) {
	e := Event{
		Type:       eventType,
		Recognizer: b.name,
		Element:    b.element,
	}
	if in != nil {
		e.Source = in.CurrentEvent()
		if b.eventData != nil {
			e.Global, e.Live = b.eventData(in)
		}
	}
	b.emitter.Emit(e)
}
