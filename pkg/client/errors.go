package client

import "errors"

// Client errors
var (
	ErrHandshakeRejected = errors.New("handshake rejected")
	ErrInvalidURL        = errors.New("invalid server url")
	ErrGaveUp            = errors.New("reconnect attempts exhausted")
)
