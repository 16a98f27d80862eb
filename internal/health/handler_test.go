// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) Ping(_ context.Context) error {
	return s.err
}

func newTestRouter(db, redis Checker) (chi.Router, *Handler) {
	h := NewHandler(db, redis)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, h
}

func get(router chi.Router, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(&stubChecker{}, &stubChecker{})

	rec := get(router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "Server is running", body.Message)

	ts, err := time.Parse(time.RFC3339, body.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	router, h := newTestRouter(&stubChecker{}, &stubChecker{})

	rec := get(router, "/livez")
	assert.Equal(t, http.StatusOK, rec.Code)

	h.SetShutdown(true)
	rec = get(router, "/livez")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadinessAllHealthy(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(&stubChecker{}, &stubChecker{})

	rec := get(router, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Len(t, body.Checks, 2)
}

func TestReadinessDegraded(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(
		&stubChecker{err: errors.New("connection refused")},
		&stubChecker{},
	)

	rec := get(router, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
}
