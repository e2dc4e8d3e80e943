package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// NormalizeEmail lower-cases and trims an address so uniqueness is
// case-insensitive at every store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User models a dashboard account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserPatch is a partial update as seen by the store. The password has
// already been hashed by the time a patch reaches a repository.
type UserPatch struct {
	Email        *string
	Name         *string
	Role         *string
	PasswordHash *string
}

func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.Role == nil && p.PasswordHash == nil
}

// Apply returns a copy of base with the patch applied.
func (p UserPatch) Apply(base User) User {
	out := base
	if p.Email != nil {
		out.Email = NormalizeEmail(*p.Email)
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Role != nil {
		out.Role = *p.Role
	}
	if p.PasswordHash != nil {
		out.PasswordHash = *p.PasswordHash
	}
	return out
}
