package voting

import "time"

// Kind identifies the type of a voteable object in the host system.
// It plays the role of a content-type tag: the engine never inspects
// the objects themselves, only their (kind, id) reference.
type Kind string

// ObjectRef is an opaque reference to a voteable object.
// Two refs are equal iff both fields are equal.
type ObjectRef struct {
	Kind Kind  `json:"kind"`
	ID   int64 `json:"id"`
}

// Vote represents one user's stance on one object.
// Value is always +1 or -1; a zero vote is a retraction request and is
// never persisted.
type Vote struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Target    ObjectRef `json:"target"`
	Value     int       `json:"value" db:"value"`
	UserID    int64     `json:"userId" db:"user_id"`
	ID        int64     `json:"id" db:"id"`
}

// IsUpvote reports whether this vote is a +1.
func (v *Vote) IsUpvote() bool {
	return v.Value == 1
}

// IsDownvote reports whether this vote is a -1.
func (v *Vote) IsDownvote() bool {
	return v.Value == -1
}

// Score is the aggregate voting result for a single object.
type Score struct {
	Score    int64 `json:"score"`
	NumVotes int64 `json:"numVotes"`
}

// RankedID is one row of a rank query: an object id within a kind and
// its vote sum. Produced by the store, before object resolution.
type RankedID struct {
	ID    int64 `json:"id"`
	Score int64 `json:"score"`
}

// RankedObject is one entry of a resolved top/bottom listing.
// Object is whatever the host's resolver returned for the id.
type RankedObject struct {
	Object any   `json:"object"`
	Score  int64 `json:"score"`
}
