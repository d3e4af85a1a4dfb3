package vote

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Tally/internal/core/voting"
)

func TestHandleGetTop(t *testing.T) {
	service := new(mockService)
	service.On("GetTop", mock.Anything, voting.Kind("post"), 2).
		Return([]voting.RankedObject{
			{Object: map[string]any{"id": 1}, Score: 5},
			{Object: map[string]any{"id": 3}, Score: 2},
		}, nil)

	handler := NewRankingsHandler(service)
	req := httptest.NewRequest(http.MethodGet, "/rankings/top?kind=post&limit=2", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetTop(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rankings":[{"object":{"id":1},"score":5},{"object":{"id":3},"score":2}]}`, rec.Body.String())
}

func TestHandleGetTop_DefaultLimit(t *testing.T) {
	service := new(mockService)
	service.On("GetTop", mock.Anything, voting.Kind("post"), 0).
		Return([]voting.RankedObject{}, nil)

	handler := NewRankingsHandler(service)
	req := httptest.NewRequest(http.MethodGet, "/rankings/top?kind=post", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetTop(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestHandleGetBottom(t *testing.T) {
	service := new(mockService)
	service.On("GetBottom", mock.Anything, voting.Kind("post"), 0).
		Return([]voting.RankedObject{{Object: map[string]any{"id": 2}, Score: -3}}, nil)

	handler := NewRankingsHandler(service)
	req := httptest.NewRequest(http.MethodGet, "/rankings/bottom?kind=post", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetBottom(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"score":-3`)
}

func TestHandleGetTop_BadLimit(t *testing.T) {
	handler := NewRankingsHandler(new(mockService))
	req := httptest.NewRequest(http.MethodGet, "/rankings/top?kind=post&limit=zero", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetTop(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetTop_MissingKind(t *testing.T) {
	handler := NewRankingsHandler(new(mockService))
	req := httptest.NewRequest(http.MethodGet, "/rankings/top", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetTop(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
