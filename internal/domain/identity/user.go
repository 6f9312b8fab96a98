package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/taskboard/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const (
	minNameLength     = 2
	maxNameLength     = 50
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
	bcryptCost        = 12
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is the account aggregate. Email is the login identifier and is
// stored lowercased.
type User struct {
	shared.BaseEntity
	Name         string `gorm:"size:50;not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:100;not null"`
	Avatar       string `gorm:"size:500"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// NewUser creates an active user with a bcrypt-hashed password.
func NewUser(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_FAILED", "failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	if len(name) < minNameLength || len(name) > maxNameLength {
		return shared.NewDomainError("INVALID_NAME", "name must be between 2 and 50 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "invalid email address")
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters
// with one uppercase letter, one lowercase letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "password must be between 8 and 72 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return shared.NewDomainError("INVALID_PASSWORD", "password must contain at least one uppercase letter, one lowercase letter and one digit")
	}
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword verifies the old password before setting the new one.
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.CheckPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "current password is incorrect")
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_FAILED", "failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// UpdateProfile changes the display name and avatar. Empty values leave
// the corresponding field untouched.
func (u *User) UpdateProfile(name, avatar string) error {
	if name != "" {
		name = strings.TrimSpace(name)
		if err := validateName(name); err != nil {
			return err
		}
		u.Name = name
	}
	if avatar != "" {
		u.Avatar = avatar
	}
	u.Touch()
	return nil
}

// RecordLogin stamps the last successful login time.
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

// Deactivate soft-disables the account.
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}
