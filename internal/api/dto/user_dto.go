package dto

import (
	"time"

	"github.com/soporteit/helpdesk-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     int    `json:"role"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the wire shape of an account, never carrying credentials.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      int       `json:"role"`
	RoleName  string    `json:"role_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse wraps a logged-in user with its token.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// NewUserResponse maps the domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      int(u.Role),
		RoleName:  u.Role.Name(),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// NewAuthResponse maps a login or registration outcome.
func NewAuthResponse(u *domain.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		User:      NewUserResponse(u),
		Token:     token,
		ExpiresAt: expiresAt,
	}
}
