package userRepo

import (
	"context"

	"panditseva/models"
)

// UserRepository defines methods for user data access. The booking core only
// reads user records; writes happen in the registration flow.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByRole retrieves all users with the given pandit flag.
	GetByRole(ctx context.Context, isPandit bool) ([]models.User, error)
}
