// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// UserName and Email are unique login identifiers and are stored lowercased.
type User struct {
	ID            uuid.UUID // The Global Unique Identifier (GUID) for the user.
	UserName      string    // Unique handle, doubles as the channel name.
	Email         string    // The user's primary contact email, also usable as a login identifier.
	FullName      string    // The user's display name.
	AvatarURL     string    // URL of the uploaded avatar image. Always present.
	CoverImageURL string    // URL of the uploaded cover image. May be empty.
	PasswordHash  string    // bcrypt hash of the password. Never exposed to callers.
	RefreshToken  string    // The single currently-valid refresh token. Empty when logged out.
	CreatedAt     time.Time // Timestamp of when this user account was created.
	UpdatedAt     time.Time // Timestamp of the last modification to this user's data.
}

// Sanitized returns a copy of the user with credential and session fields
// cleared. Every user value handed back to a caller goes through this.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}

	clone := *u
	clone.PasswordHash = ""
	clone.RefreshToken = ""

	return &clone
}
