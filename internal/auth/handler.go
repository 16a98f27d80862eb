// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/user-microservice/internal/core"
	"github.com/angelamos/user-microservice/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/profile", h.GetProfile)
			r.Patch("/profile", h.UpdateProfile)
		})
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	token, view, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.Conflict(w, "Email already in use")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.CreatedWithToken(w, token, UserData{User: *view})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		core.BadRequest(w, "Please provide email and password")
		return
	}

	token, view, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			core.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, ErrAccountDeactivated):
			core.Unauthorized(w, "Your account has been deactivated")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OKWithToken(w, token, UserData{User: *view})
}

// GetProfile returns the identity the authentication gate already
// resolved; no second store lookup is needed.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "You must be logged in to access this resource.")
		return
	}

	core.OK(w, UserData{User: viewFromIdentity(identity)})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "You must be logged in to access this resource.")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	view, err := h.service.UpdateProfile(r.Context(), identity.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "Email already in use")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, UserData{User: *view})
}
