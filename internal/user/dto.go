// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// UpdateUserRequest is the admin patch. Password is decoded so a
// payload carrying it still parses, but it is never applied; role
// changes are allowed here, unlike the self-service profile patch.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"      validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email,omitempty"     validate:"omitempty,email,max=255"`
	Role     *string `json:"role,omitempty"      validate:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"isActive,omitempty"`
	Password *string `json:"password,omitempty"  validate:"-"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserData struct {
	User UserResponse `json:"user"`
}

type UsersData struct {
	Users []UserResponse `json:"users"`
}

type ListUsersParams struct {
	Page  int
	Limit int
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
