package domain

import "errors"

var (
	// ErrAuthFailed is returned when login is rejected or its response is unusable.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrFetchFailed is returned when a read operation does not yield a payload.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrUpdateFailed is returned when a write operation is not acknowledged.
	ErrUpdateFailed = errors.New("update failed")
	// ErrInvalidInput is returned by pre-submission checks, before any network call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoSession is returned when an authorized command runs without a token.
	ErrNoSession = errors.New("no active session")
)
