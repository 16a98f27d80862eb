// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/user-microservice/internal/core"
)

// TokenIssuer mints a session token for a freshly created account, so
// admin create mirrors registration.
type TokenIssuer interface {
	IssueToken(userID, email, role string) (string, error)
}

type Handler struct {
	service   *Service
	tokens    TokenIssuer
	validator *validator.Validate
}

func NewHandler(service *Service, tokens TokenIssuer) *Handler {
	return &Handler{
		service:   service,
		tokens:    tokens,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the admin-only user CRUD. Every route passes
// the authentication gate and then the admin authorization gate.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.Patch("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "Email already in use")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "Role must be either user or admin")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	token, err := h.tokens.IssueToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.CreatedWithToken(w, token, UserData{User: ToUserResponse(user)})
}

// ListUsers returns a page of accounts, newest first, with the total
// count.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := ListUsersParams{
		Page:  parseIntQuery(r, "page", 1),
		Limit: parseIntQuery(r, "limit", 10),
	}
	params.Normalize()

	users, total, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		UsersData{Users: ToUserResponseList(users)},
		len(users),
		params.Page,
		params.Limit,
		total,
	)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UserData{User: ToUserResponse(user)})
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "Email already in use")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "Role must be either user or admin")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, UserData{User: ToUserResponse(user)})
}

// DeleteUser removes the account permanently and returns no body.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
