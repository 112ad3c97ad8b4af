package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned, wrapped, for every input that fails
// validation. No simulation runs once it is returned.
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
