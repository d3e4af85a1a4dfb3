package vote

import (
	"net/http"
	"strconv"

	"Tally/internal/api/handlers"
	"Tally/internal/core/voting"
)

// RankingsHandler serves top and bottom listings
type RankingsHandler struct {
	service voting.Service
}

// NewRankingsHandler creates a new rankings handler
func NewRankingsHandler(service voting.Service) *RankingsHandler {
	return &RankingsHandler{service: service}
}

// HandleGetTop returns the best-scored objects of a kind
// GET /rankings/top?kind=post&limit=10
func (h *RankingsHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	h.handleRankings(w, r, false)
}

// HandleGetBottom returns the worst-scored objects of a kind
// GET /rankings/bottom?kind=post&limit=10
func (h *RankingsHandler) HandleGetBottom(w http.ResponseWriter, r *http.Request) {
	h.handleRankings(w, r, true)
}

func (h *RankingsHandler) handleRankings(w http.ResponseWriter, r *http.Request, bottom bool) {
	kind := voting.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "kind is required")
		return
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	var rankings []voting.RankedObject
	var err error
	if bottom {
		rankings, err = h.service.GetBottom(r.Context(), kind, limit)
	} else {
		rankings, err = h.service.GetTop(r.Context(), kind, limit)
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{"rankings": rankings})
}
