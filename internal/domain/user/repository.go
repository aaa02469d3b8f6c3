package user

import "context"

// Repository defines the interface for user data access.
// Implemented in the infrastructure layer.
type Repository interface {
	// Create inserts a new user; ErrUserExists on a duplicate email.
	Create(ctx context.Context, params CreateParams) (*User, error)

	// GetByEmail retrieves a user by email; ErrUserNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*User, error)
}
