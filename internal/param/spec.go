// Package param declares the thresholds a gesture places on computed pointer
// parameters and checks computed values against them.
package param

import (
	"fmt"
	"math"
)

// Kind distinguishes numeric parameters from boolean ones.
type Kind uint8

const (
	KindInterval Kind = iota // closed numeric interval
	KindBool                 // tri-state boolean
)

func (k Kind) String() string {
	switch k {
	case KindInterval:
		return "interval"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Tristate is a boolean threshold that may be left unset.
type Tristate uint8

const (
	Unset Tristate = iota // any value passes
	True
	False
)

// Spec is a threshold on a single parameter: either a closed interval whose
// bounds are independently optional, or a tri-state boolean.
// The zero value is an unbounded interval.
type Spec struct {
	kind   Kind
	min    float64
	max    float64
	hasMin bool
	hasMax bool
	flag   Tristate
}

// Unbounded returns an interval spec with neither bound set.
func Unbounded() Spec {
	return Spec{kind: KindInterval}
}

// Between returns the closed interval [min, max].
func Between(min, max float64) Spec {
	return Spec{kind: KindInterval, min: min, max: max, hasMin: true, hasMax: true}
}

// AtLeast returns the interval [min, +inf).
func AtLeast(min float64) Spec {
	return Spec{kind: KindInterval, min: min, hasMin: true}
}

// AtMost returns the interval (-inf, max].
func AtMost(max float64) Spec {
	return Spec{kind: KindInterval, max: max, hasMax: true}
}

// AnyBool returns an unset boolean spec.
func AnyBool() Spec {
	return Spec{kind: KindBool}
}

// Bool returns a boolean spec requiring exactly b.
func Bool(b bool) Spec {
	if b {
		return Spec{kind: KindBool, flag: True}
	}
	return Spec{kind: KindBool, flag: False}
}

// Kind returns the kind of the spec.
func (s Spec) Kind() Kind { return s.kind }

// Min returns the lower bound and whether it is set.
func (s Spec) Min() (float64, bool) { return s.min, s.hasMin }

// Max returns the upper bound and whether it is set.
func (s Spec) Max() (float64, bool) { return s.max, s.hasMax }

// Flag returns the boolean requirement.
func (s Spec) Flag() Tristate { return s.flag }

// WithMin returns a copy of an interval spec with the lower bound set.
func (s Spec) WithMin(min float64) Spec {
	s.min, s.hasMin = min, true
	return s
}

// WithMax returns a copy of an interval spec with the upper bound set.
func (s Spec) WithMax(max float64) Spec {
	s.max, s.hasMax = max, true
	return s
}

// Constrained reports whether the spec restricts any value at all.
func (s Spec) Constrained() bool {
	if s.kind == KindBool {
		return s.flag != Unset
	}
	return s.hasMin || s.hasMax
}

// Allows reports whether v satisfies the spec. An unconstrained spec is not
// evaluated and always passes. A constrained spec fails for values that are
// unavailable, NaN, or of the wrong kind.
func (s Spec) Allows(v Value) bool {
	if !s.Constrained() {
		return true
	}
	if !v.ok || v.kind != s.kind {
		return false
	}

	if s.kind == KindBool {
		return (s.flag == True) == v.flag
	}

	if math.IsNaN(v.number) {
		return false
	}
	if s.hasMin && v.number < s.min {
		return false
	}
	if s.hasMax && v.number > s.max {
		return false
	}
	return true
}

// String renders the spec as "[min, max]" or "true"/"false"/"any".
func (s Spec) String() string {
	if s.kind == KindBool {
		switch s.flag {
		case True:
			return "true"
		case False:
			return "false"
		default:
			return "any"
		}
	}
	lo, hi := "-inf", "+inf"
	if s.hasMin {
		lo = fmt.Sprintf("%g", s.min)
	}
	if s.hasMax {
		hi = fmt.Sprintf("%g", s.max)
	}
	return "[" + lo + ", " + hi + "]"
}
