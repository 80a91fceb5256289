package service

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when an operation's input fails validation.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
