package fetcher

import "errors"

var (
	// ErrFetch is returned when the fallback page cannot be retrieved,
	// either because of a transport fault or a non-200 status.
	ErrFetch = errors.New("failed to fetch thread")
)
