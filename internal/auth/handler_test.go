// AngelaMos | 2026
// handler_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/user-microservice/internal/middleware"
)

func (f *fakeUserProvider) ResolveIdentity(
	ctx context.Context,
	id string,
) (*middleware.Identity, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}

func testAuthRouter(t *testing.T) (chi.Router, *fakeUserProvider) {
	t.Helper()

	svc, provider := testService(t)
	handler := NewHandler(svc)

	authenticator := middleware.Authenticator(
		testTokenManager(t, time.Hour),
		provider,
	)

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		handler.RegisterRoutes(r, authenticator)
	})

	return router, provider
}

func doJSON(
	t *testing.T,
	router chi.Router,
	method, path, token, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAccount(
	t *testing.T,
	router chi.Router,
	name, email, password string,
) (string, map[string]any) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/register", "",
		`{"name":"`+name+`","email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token, body
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := testAuthRouter(t)

	_, body := registerAccount(t, router, "A", "a@x.com", "password123")

	assert.Equal(t, "success", body["status"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	userBody, ok := data["user"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "a@x.com", userBody["email"])
	assert.Equal(t, "user", userBody["role"])
	assert.NotContains(t, userBody, "password")
	assert.NotContains(t, userBody, "passwordHash")
}

func TestRegisterDuplicateEmailEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := testAuthRouter(t)

	registerAccount(t, router, "A", "a@x.com", "password123")

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/register", "",
		`{"name":"B","email":"a@x.com","password":"password456"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already in use")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	router, _ := testAuthRouter(t)

	// Name below 2 characters and password below 6.
	rec := doJSON(t, router, http.MethodPost, "/v1/auth/register", "",
		`{"name":"A","email":"not-an-email","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := testAuthRouter(t)
	registerAccount(t, router, "A", "a@x.com", "password123")

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/login", "",
		`{"email":"a@x.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])
}

func TestLoginWrongPasswordEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := testAuthRouter(t)
	registerAccount(t, router, "A", "a@x.com", "password123")

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/login", "",
		`{"email":"a@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestLoginMissingFields(t *testing.T) {
	t.Parallel()

	router, _ := testAuthRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/login", "",
		`{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please provide email and password")
}

func TestGetProfile(t *testing.T) {
	t.Parallel()

	router, _ := testAuthRouter(t)
	token, _ := registerAccount(t, router, "A", "a@x.com", "password123")

	rec := doJSON(t, router, http.MethodGet, "/v1/auth/profile", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")

	rec = doJSON(t, router, http.MethodGet, "/v1/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A self-service patch carrying role and password keys must apply the
// display fields and silently drop the privileged ones.
func TestUpdateProfileStripsPrivilegedFields(t *testing.T) {
	t.Parallel()

	router, provider := testAuthRouter(t)
	token, body := registerAccount(t, router, "A", "a@x.com", "password123")

	data := body["data"].(map[string]any)
	userID := data["user"].(map[string]any)["id"].(string)

	rec := doJSON(t, router, http.MethodPatch, "/v1/auth/profile", token,
		`{"name":"Alice","role":"admin","password":"hacked123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := provider.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, "user", stored.Role)

	// The original password still works: the patch never touched it.
	rec = doJSON(t, router, http.MethodPost, "/v1/auth/login", "",
		`{"email":"a@x.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// Deactivating an account makes its outstanding tokens unusable on the
// next request; there is no revocation list to update.
func TestDeactivationInvalidatesOutstandingToken(t *testing.T) {
	t.Parallel()

	router, provider := testAuthRouter(t)
	token, body := registerAccount(t, router, "A", "a@x.com", "password123")

	rec := doJSON(t, router, http.MethodGet, "/v1/auth/profile", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	userID := data["user"].(map[string]any)["id"].(string)
	provider.setActive(userID, false)

	rec = doJSON(t, router, http.MethodGet, "/v1/auth/profile", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "deactivated")
}
