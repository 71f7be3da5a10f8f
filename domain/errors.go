package domain

import "errors"

var (
	// ErrNotFound indicates the requested post, shard or resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedResponse indicates the API returned a body that could not be parsed.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInvalidPage indicates a page number that is not a non-negative integer.
	ErrInvalidPage = errors.New("invalid page number")

	// ErrEmptyTag indicates the user tried to search for an empty tag.
	ErrEmptyTag = errors.New("tag cannot be empty")
)
