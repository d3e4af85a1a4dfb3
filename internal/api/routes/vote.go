package routes

import (
	"github.com/go-chi/chi/v5"

	"Tally/internal/api/handlers/vote"
	"Tally/internal/api/middleware"
	"Tally/internal/core/voting"
)

// RegisterVoteRoutes registers the voting endpoints on the router
func RegisterVoteRoutes(r chi.Router, service voting.Service) {
	recordHandler := vote.NewRecordVoteHandler(service)
	scoresHandler := vote.NewScoresHandler(service)
	rankingsHandler := vote.NewRankingsHandler(service)
	userVotesHandler := vote.NewUserVotesHandler(service)

	// Writes require an identified caller
	r.With(middleware.RequireUser).Post("/votes", recordHandler.HandleRecordVote)

	// Reads work anonymously
	r.Get("/scores", scoresHandler.HandleGetScores)
	r.Get("/rankings/top", rankingsHandler.HandleGetTop)
	r.Get("/rankings/bottom", rankingsHandler.HandleGetBottom)
	r.Get("/votes/mine", userVotesHandler.HandleGetUserVotes)
}
