package core

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks structural problems with the caller's data:
// missing columns, empty tables, duplicate keys, out-of-domain parameters.
var ErrInvalidInput = errors.New("invalid input")

// ErrDegenerateComputation marks structurally valid input on which the
// metric is mathematically undefined, such as an all-zero denominator.
var ErrDegenerateComputation = errors.New("degenerate computation")

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func degeneratef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDegenerateComputation, fmt.Sprintf(format, args...))
}
