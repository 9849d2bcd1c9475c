package model

import (
	"strings"
	"time"
)

// UserID uniquely identifies a user across the system
type UserID string

// Role is a user's permission level
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a raw role string case-insensitively.
// Unknown or empty values default to the least-privileged role.
func ParseRole(s string) Role {
	if strings.EqualFold(s, string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// User represents a pool participant or administrator
type User struct {
	ID           UserID
	FirstName    string // optional
	LastName     string // optional
	Email        string // unique login identity
	Role         Role
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName composes the user's name from its optional parts.
// Falls back to a placeholder when both parts are absent.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return "(no name)"
	}
	return name
}
