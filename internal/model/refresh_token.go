package model

import "time"

// RefreshToken is an outstanding refresh token row. Rows persist so logout can
// enumerate and blacklist every token issued to a user individually.
type RefreshToken struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	JTI           string     `json:"jti" gorm:"uniqueIndex;size:36;not null"`
	UserID        uint       `json:"user_id" gorm:"not null;index"`
	Token         string     `json:"-" gorm:"type:text;not null"`
	ExpiresAt     time.Time  `json:"expires_at" gorm:"not null"`
	BlacklistedAt *time.Time `json:"blacklisted_at"`
	CreatedAt     time.Time  `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the historical table name.
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Blacklisted reports whether the token has reached its terminal state.
func (t *RefreshToken) Blacklisted() bool {
	return t.BlacklistedAt != nil
}
