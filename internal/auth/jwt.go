// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/angelamos/user-microservice/internal/config"
	"github.com/angelamos/user-microservice/internal/core"
	"github.com/angelamos/user-microservice/internal/middleware"
)

// TokenManager issues and verifies the stateless session token. The
// signing key is process-wide configuration loaded once at startup;
// rotation is out of scope.
type TokenManager struct {
	key    jwk.Key
	config config.JWTConfig
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &TokenManager{
		key:    key,
		config: cfg,
	}, nil
}

// IssueToken signs a token asserting the subject's identity, carrying
// {sub, email, role, iat, exp}.
func (m *TokenManager) IssueToken(
	userID, email, role string,
) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Issuer(m.config.Issuer).
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(m.config.TokenExpire)).
		Claim("email", email).
		Claim("role", role).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// VerifyToken parses and validates a token. Malformed, tampered, and
// expired tokens all collapse to core.ErrTokenInvalid so the boundary
// cannot be used as an oracle for why a credential was rejected.
func (m *TokenManager) VerifyToken(
	_ context.Context,
	tokenString string,
) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	var email string
	if err := token.Get("email", &email); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing email claim: %w",
			core.ErrTokenInvalid,
		)
	}

	var role string
	if err := token.Get("role", &role); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing role claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.TokenClaims{
		UserID: subject,
		Email:  email,
		Role:   role,
	}, nil
}

var _ middleware.TokenVerifier = (*TokenManager)(nil)
