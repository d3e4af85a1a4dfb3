package vote

import (
	"net/http"
	"strconv"

	"Tally/internal/api/handlers"
	"Tally/internal/api/middleware"
	"Tally/internal/core/voting"
)

// UserVotesHandler serves the caller's own votes
type UserVotesHandler struct {
	service voting.Service
}

// NewUserVotesHandler creates a new user votes handler
func NewUserVotesHandler(service voting.Service) *UserVotesHandler {
	return &UserVotesHandler{service: service}
}

// HandleGetUserVotes returns the caller's vote on one target or many
// GET /votes/mine?kind=post&id=42
// GET /votes/mine?kind=post&ids=1,2,3
//
// Anonymous callers get a null vote / empty map, not an error: no
// identity simply means no opinion expressed.
func (h *UserVotesHandler) HandleGetUserVotes(w http.ResponseWriter, r *http.Request) {
	kind := voting.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "kind is required")
		return
	}

	userID := middleware.GetUserID(r)

	if idsParam := r.URL.Query().Get("ids"); idsParam != "" {
		ids, err := parseIDs(idsParam)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "ids must be a comma-separated list of integers")
			return
		}

		votes, err := h.service.GetForUserBulk(r.Context(), makeRefs(kind, ids), userID)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		handlers.WriteJSON(w, http.StatusOK, map[string]any{"votes": votes})
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "id or ids is required")
		return
	}

	vote, err := h.service.GetForUser(r.Context(), voting.ObjectRef{Kind: kind, ID: id}, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{"vote": vote})
}
