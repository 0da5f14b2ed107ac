package blackscholes

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidInput is matched by every validation failure of this module.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes a rejected value type or calibration input.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

// Is reports InputError as ErrInvalidInput so callers can use errors.Is.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InvalidInput builds an InputError with a stack trace attached.
func InvalidInput(format string, args ...interface{}) error {
	return errors.WithStack(&InputError{Msg: fmt.Sprintf(format, args...)})
}
