package store

import "errors"

var (
	// ErrNotFound is returned when no post exists for the given id.
	ErrNotFound = errors.New("post not found")

	// ErrInvalidTransition is returned for an illegal status change, e.g.
	// marking a pending post as posted.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPastTimestamp rejects schedule requests for a time already gone.
	ErrPastTimestamp = errors.New("scheduled timestamp is in the past")

	// ErrEmptyPlatform rejects post creation without a target platform.
	ErrEmptyPlatform = errors.New("platform is required")
)
