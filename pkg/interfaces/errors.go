package interfaces

import "errors"

// Common interface errors used across components
var (
	ErrNotFound        = errors.New("not found")
	ErrStationInactive = errors.New("station is not accepting complaints")
	ErrUnauthorized    = errors.New("unauthorized access")
	ErrForbidden       = errors.New("admin role required")
)
