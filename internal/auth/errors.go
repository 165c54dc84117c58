package auth

import "errors"

// Credential errors
var (
	ErrMissingSecret = errors.New("auth secret is not configured")
	ErrMissingToken  = errors.New("missing token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
)
