package param

// Timespan selects which parameter group a key belongs to.
type Timespan string

const (
	// Global parameters are measured from the start of the pointer session.
	Global Timespan = "global"
	// Live parameters are measured from the previous sample.
	Live Timespan = "live"
)

// Key names a computed parameter.
type Key string

// Single-pointer keys.
const (
	Duration        Key = "duration"
	HasBeenMoved    Key = "hasBeenMoved"
	Distance        Key = "distance"
	MaximumDistance Key = "maximumDistance"
	AverageSpeed    Key = "averageSpeed"
	FinalSpeed      Key = "finalSpeed"
	IsMoving        Key = "isMoving"
	Speed           Key = "speed"
)

// Dual-pointer keys. Duration is shared with the single-pointer schema.
const (
	CenterHasBeenMoved            Key = "centerHasBeenMoved"
	CenterIsMoving                Key = "centerIsMoving"
	CenterMovementDistance        Key = "centerMovementDistance"
	AbsolutePointerDistanceChange Key = "absolutePointerDistanceChange"
	RelativePointerDistanceChange Key = "relativePointerDistanceChange"
	RotationAngle                 Key = "rotationAngle"
	AbsoluteRotationAngle         Key = "absoluteRotationAngle"
	VectorAngle                   Key = "vectorAngle"
	AbsoluteVectorAngle           Key = "absoluteVectorAngle"
)

// Field is one key of a schema together with the kind of spec it takes.
type Field struct {
	Key  Key
	Kind Kind
}

// Schema lists, in validation order, exactly the keys a parameter set of a
// given pointer arity holds.
type Schema struct {
	Name   string
	Global []Field
	Live   []Field
}

// Fields returns the fields of a timespan, or nil for an unknown timespan.
func (s Schema) Fields(ts Timespan) []Field {
	switch ts {
	case Global:
		return s.Global
	case Live:
		return s.Live
	default:
		return nil
	}
}

// Lookup returns the field for key within a timespan.
func (s Schema) Lookup(ts Timespan, key Key) (Field, bool) {
	for _, f := range s.Fields(ts) {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Timespans returns the timespans in validation order.
func Timespans() []Timespan {
	return []Timespan{Global, Live}
}

// SinglePointerSchema is the parameter layout of one-pointer gestures.
var SinglePointerSchema = Schema{
	Name: "single-pointer",
	Global: []Field{
		{Duration, KindInterval},
		{HasBeenMoved, KindBool},
		{Distance, KindInterval},
		{MaximumDistance, KindInterval},
		{AverageSpeed, KindInterval},
		{FinalSpeed, KindInterval},
	},
	Live: []Field{
		{IsMoving, KindBool},
		{Distance, KindInterval},
		{Speed, KindInterval},
	},
}

// DualPointerSchema is the parameter layout of two-pointer gestures.
var DualPointerSchema = Schema{
	Name: "dual-pointer",
	Global: []Field{
		{Duration, KindInterval},
		{CenterHasBeenMoved, KindBool},
		{CenterMovementDistance, KindInterval},
		{AbsolutePointerDistanceChange, KindInterval},
		{RelativePointerDistanceChange, KindInterval},
		{RotationAngle, KindInterval},
		{AbsoluteRotationAngle, KindInterval},
		{VectorAngle, KindInterval},
		{AbsoluteVectorAngle, KindInterval},
	},
	Live: []Field{
		{CenterIsMoving, KindBool},
		{CenterMovementDistance, KindInterval},
		{AbsolutePointerDistanceChange, KindInterval},
		{RelativePointerDistanceChange, KindInterval},
		{RotationAngle, KindInterval},
		{AbsoluteRotationAngle, KindInterval},
		{VectorAngle, KindInterval},
		{AbsoluteVectorAngle, KindInterval},
	},
}
