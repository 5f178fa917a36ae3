package pipeline

import "errors"

var (
	// ErrNoThreads is returned when a run names no thread.
	ErrNoThreads = errors.New("at least one thread URL is required")

	// ErrTooFewKeywords is returned when fewer than two keyword groups remain
	// after parsing.
	ErrTooFewKeywords = errors.New("at least two keywords are required")

	// ErrInvalidPayoutRate is returned when the payout rate is outside
	// [MinPayoutRate, MaxPayoutRate].
	ErrInvalidPayoutRate = errors.New("payout rate must be between 10% and 100%")

	// ErrNoPostsRetrieved is returned when no thread contributed any post.
	ErrNoPostsRetrieved = errors.New("no posts could be retrieved from the given threads")
)
