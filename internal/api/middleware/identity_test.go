package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func identityProbe() (http.Handler, *int64) {
	var seen int64
	handler := Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seen
}

func TestIdentity_ParsesHeader(t *testing.T) {
	handler, seen := identityProbe()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), *seen)
}

func TestIdentity_MissingHeaderIsAnonymous(t *testing.T) {
	handler, seen := identityProbe()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), *seen)
}

func TestIdentity_RejectsGarbage(t *testing.T) {
	handler, _ := identityProbe()

	for _, header := range []string{"abc", "-1", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "header %q should be rejected", header)
	}
}

func TestRequireUser_BlocksAnonymous(t *testing.T) {
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/votes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPositiveIDIdentity(t *testing.T) {
	identity := PositiveIDIdentity{}

	assert.True(t, identity.IsAuthenticated(1))
	assert.False(t, identity.IsAuthenticated(0))
	assert.False(t, identity.IsAuthenticated(-5))
}
