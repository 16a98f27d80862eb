// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelamos/user-microservice/internal/auth"
	"github.com/angelamos/user-microservice/internal/core"
	"github.com/angelamos/user-microservice/internal/middleware"
)

type Service struct {
	repo   Repository
	hasher *core.Hasher
}

func NewService(repo Repository, hasher *core.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// CreateUser is the admin create: mirrors registration but allows an
// explicit role. Role defaults to user when absent.
func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	role := RoleUser
	if req.Role != "" {
		parsed, err := ParseRole(req.Role)
		if err != nil {
			return nil, fmt.Errorf("create user: %w: %w", err, core.ErrInvalidInput)
		}
		role = parsed
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateUser is the admin patch. Role and active-flag changes are
// allowed here; the password field, if present, was already discarded.
func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.Role != nil {
		role, parseErr := ParseRole(*req.Role)
		if parseErr != nil {
			return nil, fmt.Errorf(
				"update user: %w: %w",
				parseErr,
				core.ErrInvalidInput,
			)
		}
		user.Role = role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes the account permanently.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// EmailExists reports whether an account with the normalized email is
// present.
func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, normalizeEmail(email))
}

// GetByEmail serves credential checks; the returned UserInfo carries
// the password hash and must not cross the API boundary.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create backs public registration: default role, active by default.
func (s *Service) Create(
	ctx context.Context,
	name, email, passwordHash string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         RoleUser,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// UpdateProfile applies the self-service patch: display fields only.
func (s *Service) UpdateProfile(
	ctx context.Context,
	id string,
	patch auth.ProfilePatch,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = normalizeEmail(*patch.Email)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// ResolveIdentity is the authentication gate's per-request lookup.
func (s *Service) ResolveIdentity(
	ctx context.Context,
	id string,
) (*middleware.Identity, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

var (
	_ auth.UserProvider           = (*Service)(nil)
	_ middleware.IdentityResolver = (*Service)(nil)
)
