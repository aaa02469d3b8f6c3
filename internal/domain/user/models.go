package user

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// User is keyed by email; created on first successful auth exchange or
// local registration. PasswordHash is only set for local accounts.
type User struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Picture      *string   `json:"picture,omitempty"`
	PasswordHash *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateParams struct {
	Email        string
	Name         string
	Picture      *string
	PasswordHash *string
}

func (p CreateParams) Validate() error {
	if p.Email == "" {
		return errors.New("email is required")
	}
	return nil
}
