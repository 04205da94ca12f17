package schema

import "errors"

// Configuration errors, matched with errors.Is.
var (
	ErrInvalidWeights     = errors.New("invalid weights")
	ErrNonMonotonicTable  = errors.New("breakpoint table is not strictly monotonic")
	ErrUnknownMajor       = errors.New("unknown major")
	ErrNoReferences       = errors.New("no reference profiles configured")
	ErrInvalidReference   = errors.New("invalid reference profile")
	ErrInvalidSignalRule  = errors.New("invalid signal rule")
	ErrInvalidRubricValue = errors.New("invalid rubric value")
)
