// AngelaMos | 2026
// dto.go

package auth

import (
	"time"

	"github.com/angelamos/user-microservice/internal/middleware"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the self-service patch. It deliberately has
// no role or password fields: any such keys in the payload are dropped
// during decoding and can never reach the store.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"  validate:"omitempty,min=2,max=50"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
}

// UserView is the public account representation. There is no password
// field to leak.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserData struct {
	User UserView `json:"user"`
}

func viewFromUserInfo(u *UserInfo) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func viewFromIdentity(identity *middleware.Identity) UserView {
	return UserView{
		ID:        identity.ID,
		Name:      identity.Name,
		Email:     identity.Email,
		Role:      identity.Role,
		IsActive:  identity.IsActive,
		CreatedAt: identity.CreatedAt,
		UpdatedAt: identity.UpdatedAt,
	}
}
