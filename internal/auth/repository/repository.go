package repository

import (
	"context"
	"errors"
	"time"

	authdomain "tasknet-backend/internal/auth/domain"

	"golang.org/x/crypto/bcrypt"
)

// ErrCodeInvalid is returned when a one-time login code is unknown, expired
// or already redeemed.
var ErrCodeInvalid = errors.New("invalid or expired code")

// UserRepository is the storage port for users and refresh tokens.
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	Update(ctx context.Context, user *authdomain.User) error
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)

	// UpsertByGoogleID creates the user on first login and refreshes
	// email/name/avatar from the profile on every later one.
	UpsertByGoogleID(ctx context.Context, googleID string, profile authdomain.User) (*authdomain.User, error)

	SaveRefreshToken(ctx context.Context, token *authdomain.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// LoginCodeStore holds short-lived single-use codes. A code is consumed by
// Redeem; a second redeem of the same code fails.
type LoginCodeStore interface {
	Save(ctx context.Context, code, value string, ttl time.Duration) error
	Redeem(ctx context.Context, code string) (string, error)
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
