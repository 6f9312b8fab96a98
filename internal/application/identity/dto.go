package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/identity"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult contains the tokens and user info returned after
// registration, login, or refresh
type AuthResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains user information exposed to clients
type UserInfo struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Avatar    string
	CreatedAt time.Time
}

// NewUserInfo maps a domain user to its client representation
func NewUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID      uuid.UUID
	AccessToken string // Blacklisted for its remaining lifetime
}

// UpdateProfileInput contains the input for profile updates
type UpdateProfileInput struct {
	UserID uuid.UUID
	Name   string
	Avatar string
}

// ChangePasswordInput contains the input for password changes
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}
