package gesture

import "github.com/ayusman/mudra/internal/param"

// Diagnostics observes validation passes and state changes. Implementations
// must not panic; they are invoked from the event path.
type Diagnostics interface {
	// ParametersSelected is called when a validation pass picks a set.
	ParametersSelected(gesture string, which ParameterSet)
	// ParameterChecked is called once per evaluated key.
	ParameterChecked(gesture string, check param.Check)
	// StateChanged is called on every lifecycle transition.
	StateChanged(gesture string, from, to State)
}

// NopDiagnostics discards everything.
type NopDiagnostics struct{}

func (NopDiagnostics) ParametersSelected(string, ParameterSet) {}
func (NopDiagnostics) ParameterChecked(string, param.Check)    {}
func (NopDiagnostics) StateChanged(string, State, State)       {}
