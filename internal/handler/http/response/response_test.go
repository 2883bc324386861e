package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"state": "WORKING"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeBody(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{}, &Meta{Page: 2, Limit: 20, TotalItems: 41, TotalPages: 3})

	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, int64(41), resp.Meta.TotalItems)
}

// Test every error helper writes its status and stable code
func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad body", nil) }, http.StatusBadRequest, "invalid_request"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "no token") }, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", func(w http.ResponseWriter) { Forbidden(w, "admins only") }, http.StatusForbidden, "forbidden"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "no such day") }, http.StatusNotFound, "not_found"},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "day ended") }, http.StatusConflict, "conflict"},
		{"internal", func(w http.ResponseWriter) { InternalServerError(w, "boom") }, http.StatusInternalServerError, "internal_error"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.write(rec)

			assert.Equal(t, c.wantStatus, rec.Code)
			resp := decodeBody(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, c.wantCode, resp.Error.Code)
		})
	}
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"reason": "a correction reason is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeBody(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_failed", resp.Error.Code)
	assert.Equal(t, "a correction reason is required", resp.Error.Details["reason"])
}

// Test an unencodable payload yields one clean 500 body, not a half-written 200
func TestWriteJSON_EncodingFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, make(chan int))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeBody(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "internal_error", resp.Error.Code)
}
