package entity

import "errors"

var (
	// ErrValidation marks a malformed field caught at construction or mutation.
	ErrValidation = errors.New("validation error")

	// ErrIllegalState marks a transition attempted from a state that forbids it.
	ErrIllegalState = errors.New("illegal state")
)
