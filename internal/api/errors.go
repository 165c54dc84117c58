package api

import (
	"errors"
	"fmt"
)

// Request errors
var (
	ErrInvalidRequest = errors.New("invalid request")
)

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidRequest}, args...)...)
}
