package models

import "time"

// Session binds a browser to the backend token issued at login.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:64;index;not null" json:"user_id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the session is no longer usable at the reference time.
func (s Session) IsExpired(reference time.Time) bool {
	return !s.ExpiresAt.IsZero() && !reference.Before(s.ExpiresAt)
}
