package vote

import (
	"errors"
	"log/slog"
	"net/http"

	"Tally/internal/api/handlers"
	"Tally/internal/core/voting"
)

// handleServiceError converts engine errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voting.ErrInvalidVote):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidVote", "Vote value must be +1, 0 or -1")
	case errors.Is(err, voting.ErrMixedKinds):
		handlers.WriteError(w, http.StatusBadRequest, "MixedKindBulkRequest", "All targets of a bulk request must share one kind")
	case errors.Is(err, voting.ErrStoreUnavailable):
		handlers.WriteError(w, http.StatusServiceUnavailable, "StoreUnavailable", "The vote store is unreachable")
	default:
		slog.Error("vote handler error", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
