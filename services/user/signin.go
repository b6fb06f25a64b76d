package user

import (
	"context"
	"strings"

	"panditseva/models"
	"panditseva/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies the credentials and issues a session token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	rec, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		s.Logger.Error("authenticate: failed to fetch user", zap.Error(err))
		return nil, utils.UnavailableError("authentication failed, please try again", err)
	}
	if rec == nil {
		return nil, utils.ForbiddenError("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ForbiddenError("invalid email or password")
	}

	return s.issueSession(ctx, rec)
}

// SignOut drops the cached token hash so the current token stops validating.
func (s *DefaultUserService) SignOut(ctx context.Context, userID string) error {
	if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		return utils.UnavailableError("failed to sign out", err)
	}
	return nil
}

// issueSession signs a JWT for the user and caches its hash. Auth middleware
// accepts only tokens whose hash matches the cached one, so issuing a new
// session invalidates the previous token.
func (s *DefaultUserService) issueSession(ctx context.Context, rec *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(rec.ID, rec.Email, utils.AuthCacheTTL)
	if err != nil {
		return nil, utils.UnavailableError("failed to issue session token", err)
	}
	authKey := utils.AuthCachePrefix + rec.ID
	if err := utils.GetAuthCacheClient().Set(ctx, authKey, utils.HashToken(token), utils.AuthCacheTTL).Err(); err != nil {
		s.Logger.Error("failed to cache session token", zap.Error(err))
		return nil, utils.UnavailableError("failed to issue session token", err)
	}
	return &AuthResponse{User: rec.PublicProfile(), Token: token}, nil
}
