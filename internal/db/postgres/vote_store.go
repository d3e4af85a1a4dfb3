package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"Tally/internal/core/voting"
)

type postgresVoteStore struct {
	db *sql.DB
}

// NewVoteStore creates a new PostgreSQL vote store
func NewVoteStore(db *sql.DB) voting.Store {
	return &postgresVoteStore{db: db}
}

// Find retrieves a user's vote on a specific target
// Returns nil (not an error) when the user hasn't voted
func (s *postgresVoteStore) Find(ctx context.Context, userID int64, target voting.ObjectRef) (*voting.Vote, error) {
	query := `
		SELECT id, user_id, kind, object_id, value, created_at, updated_at
		FROM votes
		WHERE user_id = $1 AND kind = $2 AND object_id = $3
	`

	vote, err := scanVote(s.db.QueryRowContext(ctx, query, userID, target.Kind, target.ID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr("failed to find vote", err)
	}

	return vote, nil
}

// Upsert creates or overwrites the unique vote row for (userID, target)
// in one atomic statement. The unique constraint resolves concurrent
// writers; no find-then-write race window exists.
func (s *postgresVoteStore) Upsert(ctx context.Context, userID int64, target voting.ObjectRef, value int) (bool, error) {
	if value != 1 && value != -1 {
		return false, voting.ErrInvalidVote
	}

	// xmax is zero only for freshly inserted rows, which distinguishes
	// a create from an overwrite without a second query.
	query := `
		INSERT INTO votes (user_id, kind, object_id, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, kind, object_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING (xmax = 0)
	`

	var created bool
	err := s.db.QueryRowContext(ctx, query, userID, target.Kind, target.ID, value).Scan(&created)
	if err != nil {
		return false, wrapStoreErr("failed to upsert vote", err)
	}

	return created, nil
}

// Delete removes a user's vote on a target
// Idempotent: reports false without error when no vote existed
func (s *postgresVoteStore) Delete(ctx context.Context, userID int64, target voting.ObjectRef) (bool, error) {
	query := `
		DELETE FROM votes
		WHERE user_id = $1 AND kind = $2 AND object_id = $3
	`

	result, err := s.db.ExecContext(ctx, query, userID, target.Kind, target.ID)
	if err != nil {
		return false, wrapStoreErr("failed to delete vote", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}

	return rowsAffected > 0, nil
}

// Aggregate returns the vote sum and count for one target, or nil when
// the target has no votes
func (s *postgresVoteStore) Aggregate(ctx context.Context, target voting.ObjectRef) (*voting.Score, error) {
	query := `
		SELECT COALESCE(SUM(value), 0), COUNT(*)
		FROM votes
		WHERE kind = $1 AND object_id = $2
	`

	var score voting.Score
	err := s.db.QueryRowContext(ctx, query, target.Kind, target.ID).Scan(&score.Score, &score.NumVotes)
	if err != nil {
		return nil, wrapStoreErr("failed to aggregate votes", err)
	}

	if score.NumVotes == 0 {
		return nil, nil
	}

	return &score, nil
}

// AggregateBulk returns vote sums and counts for many ids of one kind in
// a single grouped query. Ids with no votes are absent from the map.
func (s *postgresVoteStore) AggregateBulk(ctx context.Context, kind voting.Kind, ids []int64) (map[int64]voting.Score, error) {
	result := make(map[int64]voting.Score, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT object_id, SUM(value), COUNT(value)
		FROM votes
		WHERE kind = $1 AND object_id = ANY($2)
		GROUP BY object_id
	`

	rows, err := s.db.QueryContext(ctx, query, kind, pq.Array(ids))
	if err != nil {
		return nil, wrapStoreErr("failed to aggregate votes in bulk", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		var score voting.Score
		if err := rows.Scan(&id, &score.Score, &score.NumVotes); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		result[id] = score
	}

	if err = rows.Err(); err != nil {
		return nil, wrapStoreErr("error iterating scores", err)
	}

	return result, nil
}

// Rank returns (object_id, sum) rows for a kind, filtered to strictly
// positive sums best-first, or strictly negative sums worst-first when
// bottom is set. Ties fall in iteration order; callers must not rely on it.
func (s *postgresVoteStore) Rank(ctx context.Context, kind voting.Kind, limit int, bottom bool) ([]voting.RankedID, error) {
	query := `
		SELECT object_id, SUM(value)
		FROM votes
		WHERE kind = $1
		GROUP BY object_id
	`
	if bottom {
		query += `
		HAVING SUM(value) < 0
		ORDER BY SUM(value) ASC
		LIMIT $2`
	} else {
		query += `
		HAVING SUM(value) > 0
		ORDER BY SUM(value) DESC
		LIMIT $2`
	}

	rows, err := s.db.QueryContext(ctx, query, kind, limit)
	if err != nil {
		return nil, wrapStoreErr("failed to rank objects", err)
	}
	defer func() { _ = rows.Close() }()

	var result []voting.RankedID
	for rows.Next() {
		var ranked voting.RankedID
		if err := rows.Scan(&ranked.ID, &ranked.Score); err != nil {
			return nil, fmt.Errorf("failed to scan ranked row: %w", err)
		}
		result = append(result, ranked)
	}

	if err = rows.Err(); err != nil {
		return nil, wrapStoreErr("error iterating ranked rows", err)
	}

	return result, nil
}

// ForUserBulk returns a user's votes on many ids of one kind in a single
// query, keyed by object id
func (s *postgresVoteStore) ForUserBulk(ctx context.Context, userID int64, kind voting.Kind, ids []int64) (map[int64]voting.Vote, error) {
	result := make(map[int64]voting.Vote, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT id, user_id, kind, object_id, value, created_at, updated_at
		FROM votes
		WHERE user_id = $1 AND kind = $2 AND object_id = ANY($3)
	`

	rows, err := s.db.QueryContext(ctx, query, userID, kind, pq.Array(ids))
	if err != nil {
		return nil, wrapStoreErr("failed to get votes for user in bulk", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var vote voting.Vote
		if err := rows.Scan(
			&vote.ID, &vote.UserID, &vote.Target.Kind, &vote.Target.ID,
			&vote.Value, &vote.CreatedAt, &vote.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		result[vote.Target.ID] = vote
	}

	if err = rows.Err(); err != nil {
		return nil, wrapStoreErr("error iterating votes", err)
	}

	return result, nil
}

// scanVote scans a single vote row
func scanVote(row *sql.Row) (*voting.Vote, error) {
	var vote voting.Vote
	err := row.Scan(
		&vote.ID, &vote.UserID, &vote.Target.Kind, &vote.Target.ID,
		&vote.Value, &vote.CreatedAt, &vote.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// wrapStoreErr wraps storage failures, surfacing connection-class errors
// as voting.ErrStoreUnavailable so callers can distinguish an unreachable
// store from a bad query.
func wrapStoreErr(msg string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", msg, voting.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// isUnavailable reports whether err indicates the database could not be
// reached, as opposed to a query-level failure.
func isUnavailable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 08: connection exceptions. Class 57: operator
		// intervention (shutdown, crash).
		class := pqErr.Code.Class()
		return class == "08" || class == "57"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone)
}
