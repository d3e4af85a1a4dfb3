package vote

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Tally/internal/api/middleware"
	"Tally/internal/core/voting"
)

func userVotesRequest(handler http.HandlerFunc, url, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	middleware.Identity(handler).ServeHTTP(rec, req)
	return rec
}

func TestHandleGetUserVotes_Single(t *testing.T) {
	service := new(mockService)
	target := voting.ObjectRef{Kind: "post", ID: 42}
	service.On("GetForUser", mock.Anything, target, int64(7)).
		Return(&voting.Vote{UserID: 7, Target: target, Value: 1}, nil)

	handler := NewUserVotesHandler(service)
	rec := userVotesRequest(handler.HandleGetUserVotes, "/votes/mine?kind=post&id=42", "7")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"value":1`)
}

func TestHandleGetUserVotes_AnonymousGetsNull(t *testing.T) {
	service := new(mockService)
	service.On("GetForUser", mock.Anything, voting.ObjectRef{Kind: "post", ID: 42}, int64(0)).
		Return(nil, nil)

	handler := NewUserVotesHandler(service)
	rec := userVotesRequest(handler.HandleGetUserVotes, "/votes/mine?kind=post&id=42", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"vote":null}`, rec.Body.String())
}

func TestHandleGetUserVotes_Bulk(t *testing.T) {
	service := new(mockService)
	service.On("GetForUserBulk", mock.Anything, []voting.ObjectRef{
		{Kind: "post", ID: 1},
		{Kind: "post", ID: 2},
	}, int64(7)).Return(map[int64]*voting.Vote{
		1: {UserID: 7, Target: voting.ObjectRef{Kind: "post", ID: 1}, Value: -1},
	}, nil)

	handler := NewUserVotesHandler(service)
	rec := userVotesRequest(handler.HandleGetUserVotes, "/votes/mine?kind=post&ids=1,2", "7")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"value":-1`)
}

func TestHandleGetUserVotes_MissingKind(t *testing.T) {
	handler := NewUserVotesHandler(new(mockService))
	rec := userVotesRequest(handler.HandleGetUserVotes, "/votes/mine?id=42", "7")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
