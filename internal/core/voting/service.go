package voting

import (
	"context"
	"fmt"
	"log/slog"

	"Tally/internal/monitoring"
)

// defaultRankLimit is used when a rank query is requested with no limit.
const defaultRankLimit = 10

// votingService implements the Service interface over a Store and the
// host-supplied collaborators.
type votingService struct {
	store    Store
	resolver Resolver
	identity IdentityProvider
	logger   *slog.Logger
}

// NewService creates a new aggregation engine instance. The resolver is
// only needed for GetTop/GetBottom and may be nil if the host never
// requests rankings. A nil identity provider treats every caller as
// authenticated.
func NewService(store Store, resolver Resolver, identity IdentityProvider, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &votingService{
		store:    store,
		resolver: resolver,
		identity: identity,
		logger:   logger,
	}
}

// GetScore returns the aggregate score for a single target.
// An unvoted target maps to a zero Score, mirroring the SUM(...) or 0
// behavior callers expect.
func (s *votingService) GetScore(ctx context.Context, target ObjectRef) (Score, error) {
	agg, err := s.store.Aggregate(ctx, target)
	if err != nil {
		return Score{}, fmt.Errorf("failed to aggregate score: %w", err)
	}
	if agg == nil {
		return Score{}, nil
	}
	return *agg, nil
}

// GetScoresBulk returns scores for many targets of one kind in a single
// round trip. Unvoted targets are absent from the result rather than
// zero-padded; this intentionally differs from GetScore and is kept for
// caller compatibility.
func (s *votingService) GetScoresBulk(ctx context.Context, targets []ObjectRef) (map[int64]Score, error) {
	if len(targets) == 0 {
		return map[int64]Score{}, nil
	}

	kind, ids, err := splitRefs(targets)
	if err != nil {
		return nil, err
	}

	scores, err := s.store.AggregateBulk(ctx, kind, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scores in bulk: %w", err)
	}
	return scores, nil
}

// RecordVote records, overwrites or retracts a user's vote on a target.
// The write path is a single atomic statement against the store, so
// concurrent calls for the same (user, target) serialize to one row with
// last-committed-wins semantics.
func (s *votingService) RecordVote(ctx context.Context, target ObjectRef, userID int64, value int) error {
	if value != 1 && value != 0 && value != -1 {
		return ErrInvalidVote
	}

	if value == 0 {
		deleted, err := s.store.Delete(ctx, userID, target)
		if err != nil {
			s.logger.Error("failed to retract vote",
				"error", err,
				"user_id", userID,
				"kind", target.Kind,
				"object_id", target.ID)
			return fmt.Errorf("failed to retract vote: %w", err)
		}
		// Retracting a vote that doesn't exist is a no-op, not an error.
		if deleted {
			monitoring.VotesRecorded.WithLabelValues(string(target.Kind), "retracted").Inc()
			s.logger.Info("vote retracted",
				"user_id", userID,
				"kind", target.Kind,
				"object_id", target.ID)
		}
		return nil
	}

	created, err := s.store.Upsert(ctx, userID, target, value)
	if err != nil {
		s.logger.Error("failed to record vote",
			"error", err,
			"user_id", userID,
			"kind", target.Kind,
			"object_id", target.ID,
			"value", value)
		return fmt.Errorf("failed to record vote: %w", err)
	}

	action := "updated"
	if created {
		action = "created"
	}
	monitoring.VotesRecorded.WithLabelValues(string(target.Kind), action).Inc()
	s.logger.Info("vote recorded",
		"user_id", userID,
		"kind", target.Kind,
		"object_id", target.ID,
		"value", value,
		"action", action)
	return nil
}

// GetTop returns the best-scored objects of a kind, resolved to concrete
// host objects.
func (s *votingService) GetTop(ctx context.Context, kind Kind, limit int) ([]RankedObject, error) {
	return s.ranked(ctx, kind, limit, false)
}

// GetBottom returns the worst-scored objects of a kind, resolved to
// concrete host objects.
func (s *votingService) GetBottom(ctx context.Context, kind Kind, limit int) ([]RankedObject, error) {
	return s.ranked(ctx, kind, limit, true)
}

// ranked runs a rank query and materializes the resolved listing.
// One store query plus one bulk resolver call, regardless of limit.
func (s *votingService) ranked(ctx context.Context, kind Kind, limit int, bottom bool) ([]RankedObject, error) {
	if limit <= 0 {
		limit = defaultRankLimit
	}

	rows, err := s.store.Rank(ctx, kind, limit, bottom)
	if err != nil {
		return nil, fmt.Errorf("failed to rank objects: %w", err)
	}
	if len(rows) == 0 {
		return []RankedObject{}, nil
	}
	if s.resolver == nil {
		return nil, fmt.Errorf("no resolver configured for ranked listings")
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	objects, err := s.resolver.Resolve(ctx, kind, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ranked objects: %w", err)
	}

	// Votes can outlive the objects they point at. Stale entries are
	// dropped here, so the listing may end up shorter than limit.
	result := make([]RankedObject, 0, len(rows))
	for _, row := range rows {
		obj, ok := objects[row.ID]
		if !ok {
			s.logger.Debug("dropping ranked entry for missing object",
				"kind", kind,
				"object_id", row.ID)
			continue
		}
		result = append(result, RankedObject{Object: obj, Score: row.Score})
	}
	return result, nil
}

// GetForUser returns the user's vote on a target. Anonymous callers get
// nil without a store round trip.
func (s *votingService) GetForUser(ctx context.Context, target ObjectRef, userID int64) (*Vote, error) {
	if s.identity != nil && !s.identity.IsAuthenticated(userID) {
		return nil, nil
	}

	vote, err := s.store.Find(ctx, userID, target)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote for user: %w", err)
	}
	return vote, nil
}

// GetForUserBulk returns the user's votes on many targets of one kind.
// An empty target list short-circuits to an empty map so the store never
// sees an empty IN-set.
func (s *votingService) GetForUserBulk(ctx context.Context, targets []ObjectRef, userID int64) (map[int64]*Vote, error) {
	if len(targets) == 0 {
		return map[int64]*Vote{}, nil
	}

	kind, ids, err := splitRefs(targets)
	if err != nil {
		return nil, err
	}

	votes, err := s.store.ForUserBulk(ctx, userID, kind, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes for user in bulk: %w", err)
	}

	result := make(map[int64]*Vote, len(votes))
	for id := range votes {
		vote := votes[id]
		result[id] = &vote
	}
	return result, nil
}

// splitRefs validates that all targets share one kind and extracts their
// ids. The single-kind assumption is load-bearing for the grouped
// aggregate queries.
func splitRefs(targets []ObjectRef) (Kind, []int64, error) {
	kind := targets[0].Kind
	ids := make([]int64, 0, len(targets))
	for _, target := range targets {
		if target.Kind != kind {
			return "", nil, ErrMixedKinds
		}
		ids = append(ids, target.ID)
	}
	return kind, ids, nil
}
