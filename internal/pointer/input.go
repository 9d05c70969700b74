package pointer

import "github.com/ayusman/mudra/internal/param"

// Input is the parameter source for one pointer session of a fixed arity.
type Input interface {
	param.Source

	// Arity returns the number of pointers the input tracks.
	Arity() Arity
	// Tracks reports whether the input follows pointer id.
	Tracks(id ID) bool
	// CurrentEvent returns the most recent event applied to the input.
	CurrentEvent() Event

	update(e Event)
}

func number(v float64) (param.Value, bool) {
	return param.Number(v), true
}

func flag(b bool) (param.Value, bool) {
	return param.Flag(b), true
}
