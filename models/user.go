package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes, credential data and the optional
// professional profile fields collected at registration.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique login identifier. It is normalised to lower case
	// at registration and compared verbatim afterwards.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a salted hash, never plaintext.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Coren is the optional professional registry number of the user.
	Coren string `json:"coren,omitempty"`

	// Specialty is the optional medical specialty of the user.
	Specialty string `json:"specialty,omitempty"`

	// Institution is the optional institution the user is affiliated with.
	Institution string `json:"institution,omitempty"`

	// IsStaff marks the user as an administrator. Staff users may access the
	// /admin endpoints and modify classifications authored by other users.
	IsStaff bool `json:"is_staff"`

	// IsActive marks whether the account may authenticate. Deactivated users
	// are rejected by the auth middleware even while holding a valid token.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// LastLogin is the timestamp of the most recent successful login.
	// Nil until the user logs in for the first time.
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
