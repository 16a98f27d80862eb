// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOKEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.NotContains(t, body, "token")
}

func TestCreatedWithTokenEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	CreatedWithToken(rec, "tok-123", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "tok-123", body["token"])
}

func TestJSONErrorAppError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	JSONError(rec, ConflictError("Email already in use"))

	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, float64(http.StatusConflict), body["statusCode"])
	assert.Equal(t, "Email already in use", body["message"])
}

func TestJSONErrorInternalIsGeneric(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	JSONError(rec, errors.New("pq: connection refused at 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Something went wrong", body["message"])
	assert.NotContains(t, body, "stack")
}

func TestPaginatedEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Paginated(rec, map[string]any{"users": []string{}}, 0, 2, 10, 25)

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])

	pagination, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(25), pagination["total"])
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(3), pagination["pages"])
	assert.Equal(t, float64(10), pagination["limit"])
}
