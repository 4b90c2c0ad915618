package domain

import "time"

// Role classifies a user's authorization level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanModify reports whether the user may mutate the given book.
// Only the owner or an admin qualifies.
func (u *User) CanModify(b *Book) bool {
	if u == nil || b == nil {
		return false
	}
	return u.Role == RoleAdmin || b.UserID == u.ID
}
