package domain

import "errors"

// Sentinel errors services return to the request layer. The central error
// handler maps them to HTTP responses; everything else is treated as a
// storage/internal failure.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)
