package user

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"panditseva/models"
	"panditseva/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// pendingRegistration is the registration payload parked in Redis between
// OTP initiation and verification. The password is hashed before parking.
type pendingRegistration struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	PasswordHash string `json:"passwordHash"`
	IsPandit     bool   `json:"isPandit"`
}

// InitiateRegistration checks the email is unused, hashes the password, parks
// the registration in Redis and mails an OTP. No user record exists until the
// OTP is verified.
func (s *DefaultUserService) InitiateRegistration(ctx context.Context, input models.UserRegistrationInput) (string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" || input.FirstName == "" {
		return "", utils.ValidationError("first name, email and password are required")
	}
	if len(input.Password) < 8 {
		return "", utils.ValidationError("password must be at least 8 characters")
	}

	existing, err := s.Repo.GetByEmail(ctx, input.Email)
	if err != nil {
		s.Logger.Error("registration: email lookup failed", zap.Error(err))
		return "", utils.UnavailableError("registration failed, please try again", err)
	}
	if existing != nil {
		return "", utils.ConflictError("a user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", utils.UnavailableError("registration failed, please try again", err)
	}

	pending := pendingRegistration{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: string(hash),
		IsPandit:     input.IsPandit,
	}
	payload, err := json.Marshal(pending)
	if err != nil {
		return "", utils.UnavailableError("registration failed, please try again", err)
	}

	sessionID := uuid.New().String()
	regKey := utils.RegistrationPrefix + sessionID
	if err := utils.GetOTPCacheClient().Set(ctx, regKey, payload, utils.OTPTTL).Err(); err != nil {
		s.Logger.Error("registration: failed to park session", zap.Error(err))
		return "", utils.UnavailableError("registration failed, please try again", err)
	}

	if err := utils.InitiateOTP(ctx, sessionID, input.Email); err != nil {
		return "", utils.UnavailableError("failed to send verification code", err)
	}
	return sessionID, nil
}

// VerifyRegistrationOTP consumes the OTP, creates the user record and issues
// a session token.
func (s *DefaultUserService) VerifyRegistrationOTP(ctx context.Context, sessionID, otp string) (*AuthResponse, error) {
	ok, err := utils.VerifyOTP(ctx, sessionID, otp)
	if err != nil {
		return nil, utils.InvalidStateError("verification code expired, start over")
	}
	if !ok {
		return nil, utils.ValidationError("incorrect verification code")
	}

	client := utils.GetOTPCacheClient()
	regKey := utils.RegistrationPrefix + sessionID
	payload, err := client.Get(ctx, regKey).Result()
	if err != nil {
		return nil, utils.InvalidStateError("registration session expired, start over")
	}
	var pending pendingRegistration
	if err := json.Unmarshal([]byte(payload), &pending); err != nil {
		return nil, utils.UnavailableError("registration failed, please try again", err)
	}

	now := time.Now()
	rec := &models.User{
		ID:           uuid.New().String(),
		FirstName:    pending.FirstName,
		LastName:     pending.LastName,
		Email:        pending.Email,
		PhoneNumber:  pending.PhoneNumber,
		PasswordHash: pending.PasswordHash,
		IsPandit:     pending.IsPandit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		s.Logger.Error("registration: failed to create user", zap.Error(err))
		return nil, utils.UnavailableError("registration failed, please try again", err)
	}
	client.Del(ctx, regKey)

	return s.issueSession(ctx, rec)
}
