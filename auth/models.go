package auth

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	// MinNameLength and MaxNameLength bound the display name.
	MinNameLength = 4
	MaxNameLength = 20
)

// NamePattern is the display name charset rule.
var NamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// User is the user model. The storage layer owns it; the Manager reads and
// writes records through UserStore but never manages their lifecycle
// beyond field updates.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name         string     `bun:"name,notnull" json:"name,omitempty"`
	Email        string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	IsActive     bool       `bun:"is_active" json:"is_active"`
	IsSuperuser  bool       `bun:"is_superuser" json:"is_superuser"`
	IsVerified   bool       `bun:"is_verified" json:"is_verified"`
	CreatedAt    *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt    *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// PublicUser is the outward view of a user record; it never carries the
// password hash.
type PublicUser struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	IsVerified  bool       `json:"is_verified"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Public projects the record into its outward view.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ValidName reports whether name satisfies the length and charset rule.
func ValidName(name string) bool {
	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return false
	}
	return NamePattern.MatchString(name)
}
