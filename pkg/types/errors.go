package types

import "errors"

// Validation errors surfaced to API callers as 400s
var (
	ErrInvalidStation       = errors.New("invalid station")
	ErrInvalidComplaint     = errors.New("invalid complaint")
	ErrEmptyStatusUpdate    = errors.New("status or priority is required")
	ErrInvalidStatusUpdate  = errors.New("invalid status update")
	ErrInvalidStationAction = errors.New("invalid station action")
	ErrEmptyPayload         = errors.New("frame has no payload")
)
