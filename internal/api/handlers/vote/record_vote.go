package vote

import (
	"encoding/json"
	"net/http"

	"Tally/internal/api/handlers"
	"Tally/internal/api/middleware"
	"Tally/internal/core/voting"
)

// RecordVoteHandler handles vote recording and retraction
type RecordVoteHandler struct {
	service voting.Service
}

// NewRecordVoteHandler creates a new record vote handler
func NewRecordVoteHandler(service voting.Service) *RecordVoteHandler {
	return &RecordVoteHandler{service: service}
}

// RecordVoteRequest is the request body for recording a vote.
// Value is a pointer so a retraction (0) can't be confused with a
// missing field.
type RecordVoteRequest struct {
	Kind     string `json:"kind"`
	ObjectID int64  `json:"objectId"`
	Value    *int   `json:"value"`
}

// HandleRecordVote records, overwrites or retracts the caller's vote
// POST /votes
//
// Request body: { "kind": "post", "objectId": 42, "value": 1 }
func (h *RecordVoteHandler) HandleRecordVote(w http.ResponseWriter, r *http.Request) {
	var req RecordVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if req.Kind == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "kind is required")
		return
	}
	if req.ObjectID == 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "objectId is required")
		return
	}
	if req.Value == nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "value is required")
		return
	}

	// The RequireUser middleware guarantees a user id here.
	userID := middleware.GetUserID(r)

	target := voting.ObjectRef{Kind: voting.Kind(req.Kind), ID: req.ObjectID}
	if err := h.service.RecordVote(r.Context(), target, userID, *req.Value); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{
		"kind":     req.Kind,
		"objectId": req.ObjectID,
		"value":    *req.Value,
	})
}
