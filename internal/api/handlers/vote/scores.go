package vote

import (
	"net/http"
	"strconv"
	"strings"

	"Tally/internal/api/handlers"
	"Tally/internal/core/voting"
)

// ScoresHandler serves score lookups
type ScoresHandler struct {
	service voting.Service
}

// NewScoresHandler creates a new scores handler
func NewScoresHandler(service voting.Service) *ScoresHandler {
	return &ScoresHandler{service: service}
}

// HandleGetScores returns the score for one target or many targets
// GET /scores?kind=post&id=42
// GET /scores?kind=post&ids=1,2,3
//
// The bulk form omits unvoted ids from the result; the single form
// returns a zero score instead. Callers treat both as "no opinion".
func (h *ScoresHandler) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	kind := voting.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "kind is required")
		return
	}

	if idsParam := r.URL.Query().Get("ids"); idsParam != "" {
		ids, err := parseIDs(idsParam)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "ids must be a comma-separated list of integers")
			return
		}

		scores, err := h.service.GetScoresBulk(r.Context(), makeRefs(kind, ids))
		if err != nil {
			handleServiceError(w, err)
			return
		}

		handlers.WriteJSON(w, http.StatusOK, map[string]any{"scores": scores})
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "id or ids is required")
		return
	}

	score, err := h.service.GetScore(r.Context(), voting.ObjectRef{Kind: kind, ID: id})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, score)
}

// parseIDs parses a comma-separated id list
func parseIDs(param string) ([]int64, error) {
	parts := strings.Split(param, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// makeRefs builds ObjectRefs for a set of ids of one kind
func makeRefs(kind voting.Kind, ids []int64) []voting.ObjectRef {
	refs := make([]voting.ObjectRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, voting.ObjectRef{Kind: kind, ID: id})
	}
	return refs
}
