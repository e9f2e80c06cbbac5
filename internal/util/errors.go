package util

import (
	"errors"
	"fmt"
)

// Error taxonomy for domain operations. Business-rule violations wrap
// ErrInvalidInput, missing sub-entities wrap ErrNotFound, and stale
// optimistic-lock saves return ErrConflict. Controllers map these to
// 400 / 404 / 409 via errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	ErrUserNotFound    = errors.New("user not found")
	ErrEmailRegistered = errors.New("email already registered")
	ErrWrongPassword   = errors.New("wrong email or password")
)

func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}
