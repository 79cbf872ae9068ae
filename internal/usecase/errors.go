package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflict")
	ErrRulesNotAccepted      = errors.New("season regulations not accepted")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
