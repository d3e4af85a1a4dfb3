package voting

import "errors"

var (
	// ErrInvalidVote indicates a vote value outside {+1, 0, -1}.
	// Rejected before any storage round trip.
	ErrInvalidVote = errors.New("invalid vote: value must be +1, 0 or -1")

	// ErrMixedKinds indicates a bulk operation was given targets of more
	// than one kind. The grouped aggregate queries assume a single kind.
	ErrMixedKinds = errors.New("bulk request targets must share one kind")

	// ErrStoreUnavailable indicates the vote store could not be reached.
	// Retry policy is the caller's concern.
	ErrStoreUnavailable = errors.New("vote store unavailable")
)
