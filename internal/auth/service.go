// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelamos/user-microservice/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrEmailExists        = errors.New("email already exists")
)

// UserInfo is the account as the auth layer sees it. PasswordHash is
// only ever read here for credential comparison and never leaves the
// package.
type UserInfo struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfilePatch is the self-service update surface: display fields
// only. Role and password changes have no path through it.
type ProfilePatch struct {
	Name  *string
	Email *string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		name, email, passwordHash string,
	) (*UserInfo, error)
	UpdateProfile(
		ctx context.Context,
		id string,
		patch ProfilePatch,
	) (*UserInfo, error)
}

type Service struct {
	tokens *TokenManager
	users  UserProvider
	hasher *core.Hasher
}

func NewService(
	tokens *TokenManager,
	users UserProvider,
	hasher *core.Hasher,
) *Service {
	return &Service{
		tokens: tokens,
		users:  users,
		hasher: hasher,
	}
}

// Register creates an account with the default role and active flag
// and issues a session token. A duplicate email loses atomically at
// the store and surfaces as ErrEmailExists.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (string, *UserView, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return "", nil, ErrEmailExists
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	view := viewFromUserInfo(user)
	return token, &view, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password produce the same error; the hash comparison runs
// either way so the two cases are indistinguishable by timing as well.
// A deactivated account is reported distinctly.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (string, *UserView, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.hasher.VerifyTimingSafe(req.Password, nil)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.VerifyTimingSafe(req.Password, &user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, ErrAccountDeactivated
	}

	token, err := s.tokens.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	view := viewFromUserInfo(user)
	return token, &view, nil
}

// UpdateProfile applies a self-service patch to the caller's own
// account. The patch type cannot carry role or password, so privileged
// fields in the original payload are silently ignored.
func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*UserView, error) {
	user, err := s.users.UpdateProfile(ctx, userID, ProfilePatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return nil, err
	}

	view := viewFromUserInfo(user)
	return &view, nil
}
