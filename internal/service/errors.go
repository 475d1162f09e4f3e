package service

import "errors"

// ErrNotFound covers records that are missing or owned by someone else.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
