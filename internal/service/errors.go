package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrUnavailable      = errors.New("feature is not configured")
)
