package voting

import "context"

// Service defines the aggregation engine consumed by the host application.
// It is stateless over the Store: all concurrency correctness is pushed to
// the storage layer's constraints.
type Service interface {
	// GetScore returns the total score and vote count for one target.
	// A target with no votes has a defined zero score, not an error.
	GetScore(ctx context.Context, target ObjectRef) (Score, error)

	// GetScoresBulk returns scores for many targets of one kind in a
	// single round trip, keyed by object id. Targets with no votes are
	// absent from the map; callers treat missing keys as zero. This
	// asymmetry with GetScore is deliberate and kept for compatibility.
	GetScoresBulk(ctx context.Context, targets []ObjectRef) (map[int64]Score, error)

	// RecordVote records a user's vote on a target. Only one vote per
	// (user, target) ever exists; re-voting overwrites, and a zero value
	// retracts any existing vote.
	RecordVote(ctx context.Context, target ObjectRef, userID int64, value int) error

	// GetTop returns up to limit objects of the given kind with strictly
	// positive scores, best first, resolved to concrete objects. Entries
	// whose object no longer exists are dropped, so the result may be
	// shorter than limit. limit <= 0 selects the default of 10.
	GetTop(ctx context.Context, kind Kind, limit int) ([]RankedObject, error)

	// GetBottom is GetTop for strictly negative scores, worst first.
	GetBottom(ctx context.Context, kind Kind, limit int) ([]RankedObject, error)

	// GetForUser returns the user's vote on the target, or nil if the
	// user has not voted. Anonymous users get nil without a store query.
	GetForUser(ctx context.Context, target ObjectRef, userID int64) (*Vote, error)

	// GetForUserBulk returns the user's votes on many targets of one
	// kind, keyed by object id. Empty input returns an empty map without
	// querying.
	GetForUserBulk(ctx context.Context, targets []ObjectRef, userID int64) (map[int64]*Vote, error)
}

// Store is the durable record of individual votes. Implementations must
// enforce the one-vote-per-(user, kind, object) invariant at the storage
// layer so concurrent writers cannot produce duplicate rows.
type Store interface {
	// Find returns the vote for (userID, target), or nil if absent.
	Find(ctx context.Context, userID int64, target ObjectRef) (*Vote, error)

	// Upsert atomically creates or overwrites the unique vote row for
	// (userID, target). value must be +1 or -1. Reports whether a new
	// row was created. Concurrent upserts for the same key never produce
	// two rows and never surface a constraint error.
	Upsert(ctx context.Context, userID int64, target ObjectRef, value int) (created bool, err error)

	// Delete removes the vote row if present. Reports whether a row was
	// removed; absence is not an error.
	Delete(ctx context.Context, userID int64, target ObjectRef) (deleted bool, err error)

	// Aggregate returns the sum and count of votes for one target, or
	// nil if the target has no votes.
	Aggregate(ctx context.Context, target ObjectRef) (*Score, error)

	// AggregateBulk returns sums and counts for many ids of one kind in
	// a single grouped query. Ids with no votes are absent from the map.
	AggregateBulk(ctx context.Context, kind Kind, ids []int64) (map[int64]Score, error)

	// Rank returns up to limit (id, sum) rows for the kind, filtered to
	// strictly positive sums ordered descending, or strictly negative
	// sums ordered ascending when bottom is set. Tie order is whatever
	// the store produces; callers must not depend on it.
	Rank(ctx context.Context, kind Kind, limit int, bottom bool) ([]RankedID, error)

	// ForUserBulk returns the user's votes on many ids of one kind in a
	// single query, keyed by object id.
	ForUserBulk(ctx context.Context, userID int64, kind Kind, ids []int64) (map[int64]Vote, error)
}

// Resolver maps object ids back to concrete host objects for ranked
// listings. Implementations return only still-existing objects, keyed by
// id, in a single round trip.
type Resolver interface {
	Resolve(ctx context.Context, kind Kind, ids []int64) (map[int64]any, error)
}

// IdentityProvider answers whether a user id denotes an authenticated
// caller. What counts as anonymous is host-defined.
type IdentityProvider interface {
	IsAuthenticated(userID int64) bool
}
