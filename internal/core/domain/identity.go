package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string coming from outside the trust boundary
// (token claims, signup requests). Everything downstream can assume a Role
// value is one of the two known constants.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Identity is the authenticated caller as produced by token verification.
// It is immutable for the duration of a request and never persisted.
type Identity struct {
	Username string
	Role     Role
}

func (id Identity) IsAnonymous() bool {
	return id.Username == ""
}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
