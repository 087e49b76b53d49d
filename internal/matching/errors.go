package matching

import (
	"errors"
	"fmt"
)

// ValidationError signals a malformed or out-of-policy submission. The engine
// guarantees no state was mutated when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order: %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UnknownPairError signals a query against a pair the engine was not
// configured with.
type UnknownPairError struct {
	Pair string
}

func (e *UnknownPairError) Error() string {
	return fmt.Sprintf("unknown trading pair: %q", e.Pair)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUnknownPair reports whether err is an UnknownPairError
func IsUnknownPair(err error) bool {
	var upe *UnknownPairError
	return errors.As(err, &upe)
}
