package services

import "errors"

// Workflow error taxonomy. Handlers map these onto HTTP statuses; the
// distinctions matter because a quota rejection must stay tellable
// apart from an upstream failure.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrQuotaExceeded      = errors.New("quota exceeded")
	ErrNoCreditRecord     = errors.New("no credit record for user")
	ErrEmptyCompletion    = errors.New("empty completion")
	ErrNotFound           = errors.New("not found")
	ErrInvalidStatus      = errors.New("invalid tracking status")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
