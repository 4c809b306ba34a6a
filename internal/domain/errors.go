package domain

import "errors"

var (
	// ErrDataUnavailable marks a failure of the data-access layer. A feed
	// that could not be loaded is never reported as an empty feed.
	ErrDataUnavailable = errors.New("data unavailable")
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrForbidden       = errors.New("insufficient permissions")
)
