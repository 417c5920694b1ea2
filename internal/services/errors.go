package services

import "errors"

// Curve service errors
var (
	ErrInvalidDateKey  = errors.New("invalid release date key")
	ErrReleaseNotFound = errors.New("release not found")
	ErrNoReleasesFound = errors.New("no releases found")
)
