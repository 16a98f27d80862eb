// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/angelamos/user-microservice/internal/core"
)

const (
	IdentityKey contextKey = "identity"
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
)

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*TokenClaims, error)
}

// Identity is the account resolved from the store for the current
// request. It is what handlers see; it never carries the password hash.
type Identity struct {
	ID        string
	Name      string
	Email     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IdentityResolver loads the current account state for a token subject.
// Returns core.ErrNotFound when the account no longer exists.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, id string) (*Identity, error)
}

// Authenticator verifies the bearer token and re-resolves the subject
// against the store on every request. Token claims alone are never
// trusted for account state, so deactivating an account takes effect
// immediately without any token revocation list.
func Authenticator(
	verifier TokenVerifier,
	resolver IdentityResolver,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := ExtractBearerToken(r)
			if !ok {
				core.Unauthorized(
					w,
					"You are not logged in. Please log in to get access.",
				)
				return
			}

			claims, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			identity, err := resolver.ResolveIdentity(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.Unauthorized(
						w,
						"The user belonging to this token no longer exists.",
					)
					return
				}
				core.InternalServerError(w, err)
				return
			}

			if !identity.IsActive {
				core.Unauthorized(
					w,
					"This user account has been deactivated.",
				)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, IdentityKey, identity)
			ctx = context.WithValue(ctx, UserIDKey, identity.ID)
			ctx = context.WithValue(ctx, UserRoleKey, identity.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose resolved identity is not in the
// allowed role set. Composable: each route supplies its own set.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())

			if identity == nil {
				core.Unauthorized(
					w,
					"You must be logged in to access this resource.",
				)
				return
			}

			if _, ok := roleSet[identity.Role]; !ok {
				core.Forbidden(
					w,
					"You do not have permission to perform this action.",
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole("admin")(next)
}

// ExtractBearerToken returns the credential from an Authorization
// header of the exact form "Bearer <token>".
func ExtractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}

func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == "admin"
}
