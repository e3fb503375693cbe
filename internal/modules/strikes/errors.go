package strikes

import (
	"errors"
	"fmt"
)

// InvalidInputError is the only error kind the engine returns. It names the
// offending field and the constraint it violated.
type InvalidInputError struct {
	Field      string
	Constraint string
	Value      interface{}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s must be %s, got %v", e.Field, e.Constraint, e.Value)
}

func invalidInput(field, constraint string, value interface{}) *InvalidInputError {
	return &InvalidInputError{Field: field, Constraint: constraint, Value: value}
}

// IsInvalidInput reports whether err is, or wraps, an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
