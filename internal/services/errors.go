package services

import "errors"

// Service errors. Callers wrap them with a message via fmt.Errorf("%w: ...")
// and the API layer maps each to a fixed HTTP status with errors.Is.
var (
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("invalid credentials")
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrForbidden      = errors.New("forbidden")
)
