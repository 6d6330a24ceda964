package domain

import "time"

// User represents a registered member of the system. A user participates in
// rooms through UserRoom memberships.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	// RefreshTokenHash stores the SHA-256 hash of the active refresh token,
	// empty when the user has none outstanding.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
}
