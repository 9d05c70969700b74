package gesture

import (
	"fmt"

	"github.com/ayusman/mudra/internal/param"
)

// ParameterSet selects the initial or the active thresholds of a gesture.
type ParameterSet string

const (
	// InitialParameters must hold for the gesture to start.
	InitialParameters ParameterSet = "initial"
	// ActiveParameters are re-checked while the gesture is active.
	ActiveParameters ParameterSet = "active"
)

// ParseParameterSet validates s as a ParameterSet.
func ParseParameterSet(s string) (ParameterSet, error) {
	switch ParameterSet(s) {
	case InitialParameters, ActiveParameters:
		return ParameterSet(s), nil
	default:
		return "", fmt.Errorf("unknown parameter set %q", s)
	}
}

// Override replaces one threshold of a gesture.
type Override struct {
	Parameters ParameterSet
	Timespan   param.Timespan
	Key        param.Key
	Spec       param.Spec
}

func (o Override) String() string {
	return fmt.Sprintf("%s.%s.%s=%s", o.Parameters, o.Timespan, o.Key, o.Spec)
}

// Config customizes a gesture at construction.
type Config struct {
	// Element is the host surface the gesture belongs to. It is passed
	// through to emitted events untouched.
	Element any
	// Overrides are applied after the gesture's own defaults.
	Overrides   []Override
	Emitter     Emitter
	Diagnostics Diagnostics
}

// CheckOverrides reports the first override that does not fit schema.
func CheckOverrides(schema param.Schema, overrides []Override) error {
	sets := map[ParameterSet]*param.Set{
		InitialParameters: param.NewSet(schema),
		ActiveParameters:  param.NewSet(schema),
	}
	return applyOverrides(sets, overrides)
}

func applyOverrides(sets map[ParameterSet]*param.Set, overrides []Override) error {
	for _, o := range overrides {
		set, ok := sets[o.Parameters]
		if !ok {
			return fmt.Errorf("override %s: unknown parameter set %q", o, o.Parameters)
		}
		if err := set.Put(o.Timespan, o.Key, o.Spec); err != nil {
			return fmt.Errorf("override %s: %w", o, err)
		}
	}
	return nil
}
