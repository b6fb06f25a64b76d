package user

import (
	"context"

	userRepo "panditseva/database/repository/user"
	"panditseva/models"

	"go.uber.org/zap"
)

// AuthResponse carries a signed-in user's profile and session token.
type AuthResponse struct {
	User  models.UserPublic `json:"user"`
	Token string            `json:"token"`
}

// UserService manages registration, authentication and profile reads.
type UserService interface {
	// InitiateRegistration validates the input, stashes a pending registration
	// and emails an OTP. Returns the registration session ID.
	InitiateRegistration(ctx context.Context, input models.UserRegistrationInput) (string, error)
	// VerifyRegistrationOTP checks the OTP, creates the user record and signs
	// the new user in.
	VerifyRegistrationOTP(ctx context.Context, sessionID, otp string) (*AuthResponse, error)
	// Authenticate signs an existing user in with email and password.
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	// SignOut revokes the user's cached session token.
	SignOut(ctx context.Context, userID string) error
	// GetByID returns a user's public profile.
	GetByID(ctx context.Context, id string) (*models.UserPublic, error)
	// ListPandits returns the public profiles of all pandits.
	ListPandits(ctx context.Context) ([]models.UserPublic, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}
