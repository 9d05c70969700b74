package app

import (
	"fmt"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/param"
	"github.com/ayusman/mudra/internal/store"
)

// Profile is a stored profile turned into gesture overrides.
type Profile struct {
	ID        string
	Name      string
	Kind      store.ProfileKind
	Overrides []gesture.Override
}

// CompileProfile validates the thresholds of p against the schema of its kind.
func CompileProfile(p *store.Profile, thresholds []store.Threshold) (Profile, error) {
	overrides, err := ThresholdsToOverrides(p.Kind, thresholds)
	if err != nil {
		return Profile{}, err
	}
	return Profile{ID: p.ID, Name: p.Name, Kind: p.Kind, Overrides: overrides}, nil
}

// Build returns the gesture of the profile. The profile name is the event
// base name.
func (p Profile) Build(base gesture.Config) (gesture.Gesture, error) {
	cfg := base
	cfg.Overrides = p.Overrides

	var (
		g   gesture.Gesture
		err error
	)
	switch p.Kind {
	case store.ProfileKindTap:
		g, err = gesture.NewNamedTap(p.Name, cfg)
	case store.ProfileKindSingle:
		g, err = gesture.NewSinglePointerGesture(p.Name, nil, cfg)
	case store.ProfileKindDual:
		g, err = gesture.NewDualPointerGesture(p.Name, nil, cfg)
	default:
		err = fmt.Errorf("unknown profile kind %q", p.Kind)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// SchemaFor returns the parameter schema a profile kind is checked against.
func SchemaFor(kind store.ProfileKind) (param.Schema, error) {
	switch kind {
	case store.ProfileKindTap, store.ProfileKindSingle:
		return param.SinglePointerSchema, nil
	case store.ProfileKindDual:
		return param.DualPointerSchema, nil
	default:
		return param.Schema{}, fmt.Errorf("unknown profile kind %q", kind)
	}
}

// ThresholdsToOverrides converts stored thresholds into overrides and checks
// them against the schema of kind.
func ThresholdsToOverrides(kind store.ProfileKind, thresholds []store.Threshold) ([]gesture.Override, error) {
	schema, err := SchemaFor(kind)
	if err != nil {
		return nil, err
	}

	overrides := make([]gesture.Override, 0, len(thresholds))
	for i, t := range thresholds {
		o, err := thresholdToOverride(schema, t)
		if err != nil {
			return nil, fmt.Errorf("threshold %d: %w", i, err)
		}
		overrides = append(overrides, o)
	}

	if err := gesture.CheckOverrides(schema, overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

func thresholdToOverride(schema param.Schema, t store.Threshold) (gesture.Override, error) {
	which, err := gesture.ParseParameterSet(t.ParameterSet)
	if err != nil {
		return gesture.Override{}, err
	}
	ts := param.Timespan(t.Timespan)
	key := param.Key(t.Key)

	field, ok := schema.Lookup(ts, key)
	if !ok {
		return gesture.Override{}, fmt.Errorf("%s.%s: %w", ts, key, param.ErrUnknownKey)
	}

	var spec param.Spec
	switch field.Kind {
	case param.KindBool:
		if t.Min != nil || t.Max != nil {
			return gesture.Override{}, fmt.Errorf("%s.%s takes a flag, not bounds: %w", ts, key, param.ErrKindMismatch)
		}
		spec = param.AnyBool()
		if t.Flag != nil {
			spec = param.Bool(*t.Flag)
		}
	default:
		if t.Flag != nil {
			return gesture.Override{}, fmt.Errorf("%s.%s takes bounds, not a flag: %w", ts, key, param.ErrKindMismatch)
		}
		spec = param.Unbounded()
		if t.Min != nil {
			spec = spec.WithMin(*t.Min)
		}
		if t.Max != nil {
			spec = spec.WithMax(*t.Max)
		}
	}

	return gesture.Override{Parameters: which, Timespan: ts, Key: key, Spec: spec}, nil
}

// TapOverrides turns the tap section of the configuration into overrides.
func TapOverrides(cfg config.TapConfig) []gesture.Override {
	return []gesture.Override{
		{Parameters: gesture.InitialParameters, Timespan: param.Global, Key: param.Duration, Spec: param.AtMost(cfg.MaxDuration)},
		{Parameters: gesture.InitialParameters, Timespan: param.Global, Key: param.Distance, Spec: param.AtMost(cfg.MaxDistance)},
		{Parameters: gesture.InitialParameters, Timespan: param.Live, Key: param.Distance, Spec: param.AtMost(cfg.MaxLiveDistance)},
	}
}
