package varhuff

import (
	"errors"
)

// ErrMalformedContainer is returned when a container's header, dictionary, or
// payload is inconsistent or ends early.
var ErrMalformedContainer = errors.New("malformed container")

// ErrUnknownCode is returned when the payload holds a bit sequence that no
// dictionary code can match.
var ErrUnknownCode = errors.New("unknown code in payload")

// ErrInvalidWidth is returned for a symbol width outside [MinWidth, MaxWidth].
var ErrInvalidWidth = errors.New("invalid symbol width")
