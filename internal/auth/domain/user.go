package domain

import "time"

type User struct {
	ID string `json:"id" gorm:"primaryKey"`
	// GoogleID is the identity provider's subject id. Nullable so that
	// password accounts exist without one; unique among those that have it.
	GoogleID  *string   `json:"-" gorm:"uniqueIndex"`
	Email     string    `json:"email" gorm:"index"`
	Password  string    `json:"-"` // Never return password in JSON
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Provider  string    `json:"provider"` // "email" or "google"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}
