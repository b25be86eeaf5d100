package aelf

import (
	"errors"
	"fmt"

	"github.com/blockberries/aelf/types"
)

// ClosedError is returned by a Service that has been closed.
type ClosedError struct {
	Method string
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("aelf: %s called after Close", e.Method)
}

// NewClosedError creates a new ClosedError.
func NewClosedError(method string) *ClosedError {
	return &ClosedError{Method: method}
}

// IsClosed checks whether an error is a ClosedError.
func IsClosed(err error) bool {
	var c *ClosedError
	return errors.As(err, &c)
}

// IsDecodeError checks whether an error is an identifier decode
// failure and returns it.
func IsDecodeError(err error) (*types.DecodeError, bool) {
	var d *types.DecodeError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
