package param

import "fmt"

// Value is a computed parameter: a number, a flag, or unavailable when the
// model cannot compute it. The zero value is unavailable.
type Value struct {
	kind   Kind
	number float64
	flag   bool
	ok     bool
}

// Number returns a numeric value.
func Number(n float64) Value {
	return Value{kind: KindInterval, number: n, ok: true}
}

// Flag returns a boolean value.
func Flag(b bool) Value {
	return Value{kind: KindBool, flag: b, ok: true}
}

// Unavailable returns a value that fails every constrained spec.
func Unavailable() Value {
	return Value{}
}

// Available reports whether the value was computed.
func (v Value) Available() bool { return v.ok }

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Float returns the numeric value; 0 for flags and unavailable values.
func (v Value) Float() float64 { return v.number }

// Bool returns the flag value; false for numbers and unavailable values.
func (v Value) Bool() bool { return v.flag }

func (v Value) String() string {
	switch {
	case !v.ok:
		return "unavailable"
	case v.kind == KindBool:
		return fmt.Sprintf("%t", v.flag)
	default:
		return fmt.Sprintf("%g", v.number)
	}
}
