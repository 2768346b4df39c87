package mutate

import (
	"errors"
	"fmt"
)

// Kinds of mutation failures. Use errors.Is to test for them.
var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNameCollision      = errors.New("name collision")
	ErrNotFound           = errors.New("element not found")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidLine        = errors.New("invalid line")
)

// Error is a rejected mutation. The text it was applied to is unchanged.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

// Unwrap returns the failure kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

func reject(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
