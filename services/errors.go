package services

import "errors"

var (
	// ErrInvalidURL rejects malformed or missing original URLs at creation.
	ErrInvalidURL = errors.New("invalid original URL")
	// ErrLinkNotFound indicates an unknown short code.
	ErrLinkNotFound = errors.New("link not found")
	// ErrCodeSpaceExhausted is returned when every salted code candidate
	// collided with a different URL.
	ErrCodeSpaceExhausted = errors.New("short code space exhausted")
)
