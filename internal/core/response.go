// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
)

var debugResponses atomic.Bool

// EnableDebugResponses controls whether 500 responses carry a stack
// trace. Only turned on in a development environment.
func EnableDebugResponses(enabled bool) {
	debugResponses.Store(enabled)
}

type successEnvelope struct {
	Status string `json:"status"`
	Token  string `json:"token,omitempty"`
	Data   any    `json:"data"`
}

type errorEnvelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Stack      string `json:"stack,omitempty"`
}

type paginatedEnvelope struct {
	Status     string     `json:"status"`
	Results    int        `json:"results"`
	Pagination Pagination `json:"pagination"`
	Data       any        `json:"data"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(payload)
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, successEnvelope{Status: "success", Data: data})
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(
		w,
		http.StatusCreated,
		successEnvelope{Status: "success", Data: data},
	)
}

// OKWithToken writes the auth-endpoint envelope: token at the top level
// alongside the data payload.
func OKWithToken(w http.ResponseWriter, token string, data any) {
	writeJSON(
		w,
		http.StatusOK,
		successEnvelope{Status: "success", Token: token, Data: data},
	)
}

func CreatedWithToken(w http.ResponseWriter, token string, data any) {
	writeJSON(
		w,
		http.StatusCreated,
		successEnvelope{Status: "success", Token: token, Data: data},
	)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Paginated(
	w http.ResponseWriter,
	data any,
	results, page, limit, total int,
) {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	writeJSON(w, http.StatusOK, paginatedEnvelope{
		Status:  "success",
		Results: results,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Pages: pages,
			Limit: limit,
		},
		Data: data,
	})
}

// JSONError writes the uniform error envelope. AppErrors carry their
// own status and message; anything else is coerced to a generic 500.
func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, errorEnvelope{
			Status:     "error",
			StatusCode: appErr.StatusCode,
			Message:    appErr.Message,
		})
		return
	}

	envelope := errorEnvelope{
		Status:     "error",
		StatusCode: http.StatusInternalServerError,
		Message:    "Something went wrong",
	}
	if debugResponses.Load() {
		envelope.Stack = string(debug.Stack())
		envelope.Message = err.Error()
	}

	writeJSON(w, http.StatusInternalServerError, envelope)
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, BadRequestError(message))
}

func Unauthorized(w http.ResponseWriter, message string) {
	JSONError(w, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	JSONError(w, ForbiddenError(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	message := "resource not found"
	if resource != "" {
		message = strings.Title(resource) + " not found" //nolint:staticcheck // ascii resource names only
	}
	JSONError(w, NotFoundError(message))
}

func Conflict(w http.ResponseWriter, message string) {
	JSONError(w, ConflictError(message))
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	JSONError(w, err)
}

// FormatValidationError flattens validator.ValidationErrors into a
// single human-readable message.
func FormatValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "invalid request"
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, formatFieldError(fieldErr))
	}

	return strings.Join(messages, "; ")
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	default:
		return field + " is invalid"
	}
}
