package param

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKey is returned when a key or timespan is not part of the schema.
	ErrUnknownKey = errors.New("unknown parameter")
	// ErrKindMismatch is returned when a spec's kind differs from the schema field.
	ErrKindMismatch = errors.New("parameter kind mismatch")
	// ErrMissingKey is returned when a spec map lacks a schema key.
	ErrMissingKey = errors.New("missing parameter")
)

// Source provides computed values by timespan and key.
type Source interface {
	Lookup(ts Timespan, key Key) (Value, bool)
}

// Check describes the evaluation of one key during Validate.
type Check struct {
	Timespan Timespan
	Key      Key
	Spec     Spec
	Value    Value
	Found    bool
	Passed   bool
}

// Set holds one spec for every key of a schema, no more and no less.
type Set struct {
	schema Schema
	specs  map[Timespan]map[Key]Spec
}

// NewSet returns a set for schema with every key unconstrained.
func NewSet(schema Schema) *Set {
	s := &Set{
		schema: schema,
		specs:  make(map[Timespan]map[Key]Spec, 2),
	}
	for _, ts := range Timespans() {
		group := make(map[Key]Spec, len(schema.Fields(ts)))
		for _, f := range schema.Fields(ts) {
			if f.Kind == KindBool {
				group[f.Key] = AnyBool()
			} else {
				group[f.Key] = Unbounded()
			}
		}
		s.specs[ts] = group
	}
	return s
}

// FromSpecs builds a set from explicit spec maps. Both maps must contain
// exactly the schema's keys with matching kinds.
func FromSpecs(schema Schema, global, live map[Key]Spec) (*Set, error) {
	s := NewSet(schema)
	groups := map[Timespan]map[Key]Spec{Global: global, Live: live}

	for _, ts := range Timespans() {
		group := groups[ts]
		for _, f := range schema.Fields(ts) {
			if _, ok := group[f.Key]; !ok {
				return nil, fmt.Errorf("%s %s.%s: %w", schema.Name, ts, f.Key, ErrMissingKey)
			}
		}
		for key, spec := range group {
			if err := s.Put(ts, key, spec); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// Schema returns the schema the set was built for.
func (s *Set) Schema() Schema {
	return s.schema
}

// Put replaces the spec of one key.
func (s *Set) Put(ts Timespan, key Key, spec Spec) error {
	f, ok := s.schema.Lookup(ts, key)
	if !ok {
		return fmt.Errorf("%s %s.%s: %w", s.schema.Name, ts, key, ErrUnknownKey)
	}
	if f.Kind != spec.Kind() {
		return fmt.Errorf("%s %s.%s: %w: want %s, got %s",
			s.schema.Name, ts, key, ErrKindMismatch, f.Kind, spec.Kind())
	}
	s.specs[ts][key] = spec
	return nil
}

// Spec returns the spec of one key.
func (s *Set) Spec(ts Timespan, key Key) (Spec, error) {
	spec, ok := s.specs[ts][key]
	if !ok {
		return Spec{}, fmt.Errorf("%s %s.%s: %w", s.schema.Name, ts, key, ErrUnknownKey)
	}
	return spec, nil
}

// SetMin sets the lower bound of an interval key, keeping its upper bound.
func (s *Set) SetMin(ts Timespan, key Key, min float64) error {
	spec, err := s.Spec(ts, key)
	if err != nil {
		return err
	}
	return s.Put(ts, key, spec.WithMin(min))
}

// SetMax sets the upper bound of an interval key, keeping its lower bound.
func (s *Set) SetMax(ts Timespan, key Key, max float64) error {
	spec, err := s.Spec(ts, key)
	if err != nil {
		return err
	}
	return s.Put(ts, key, spec.WithMax(max))
}

// SetBool requires a boolean key to equal b.
func (s *Set) SetBool(ts Timespan, key Key, b bool) error {
	return s.Put(ts, key, Bool(b))
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	c := &Set{
		schema: s.schema,
		specs:  make(map[Timespan]map[Key]Spec, len(s.specs)),
	}
	for ts, group := range s.specs {
		g := make(map[Key]Spec, len(group))
		for k, v := range group {
			g[k] = v
		}
		c.specs[ts] = g
	}
	return c
}

// Each calls fn for every key in validation order.
func (s *Set) Each(fn func(ts Timespan, key Key, spec Spec)) {
	for _, ts := range Timespans() {
		for _, f := range s.schema.Fields(ts) {
			fn(ts, f.Key, s.specs[ts][f.Key])
		}
	}
}

// Validate checks every key against src, global keys first, in schema order.
// It stops at the first failing key. A key src cannot provide fails even if
// its spec is unconstrained. observe may be nil.
func (s *Set) Validate(src Source, observe func(Check)) bool {
	if src == nil {
		return false
	}
	for _, ts := range Timespans() {
		for _, f := range s.schema.Fields(ts) {
			spec := s.specs[ts][f.Key]
			value, found := src.Lookup(ts, f.Key)

			passed := found && spec.Allows(value)
			if observe != nil {
				observe(Check{
					Timespan: ts,
					Key:      f.Key,
					Spec:     spec,
					Value:    value,
					Found:    found,
					Passed:   passed,
				})
			}
			if !passed {
				return false
			}
		}
	}
	return true
}
