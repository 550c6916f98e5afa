package domain

import (
	"errors"
	"time"
)

// Role is the permission level of an agent account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

var (
	ErrInvalidCredentials = errors.New("the email or password is incorrect")
	ErrDuplicateEmail     = errors.New("email address already registered")
	ErrInvalidToken       = errors.New("invalid or expired session token")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts")
)

// AgentView is the public projection of an agent. It has no password field,
// so it can be returned from any read path.
type AgentView struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgentCredentials is only produced by the sign-in lookup.
type AgentCredentials struct {
	Agent        AgentView
	PasswordHash string
}

// NewAgent carries an agent that is about to be persisted. PasswordHash must
// already be hashed.
type NewAgent struct {
	Name         string
	Email        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// AgentChanges is a partial update; nil fields are left untouched.
type AgentChanges struct {
	Name         *string
	Email        *string
	Role         *Role
	PasswordHash *string
	UpdatedAt    time.Time
}

// Empty reports whether no field is being changed.
func (c AgentChanges) Empty() bool {
	return c.Name == nil && c.Email == nil && c.Role == nil && c.PasswordHash == nil
}
