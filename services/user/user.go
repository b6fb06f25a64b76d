package user

import (
	"context"

	"panditseva/models"
	"panditseva/utils"
)

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.UserPublic, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.UnavailableError("failed to fetch user", err)
	}
	if rec == nil {
		return nil, utils.NotFoundError("user not found")
	}
	profile := rec.PublicProfile()
	return &profile, nil
}

func (s *DefaultUserService) ListPandits(ctx context.Context) ([]models.UserPublic, error) {
	pandits, err := s.Repo.GetByRole(ctx, true)
	if err != nil {
		return nil, utils.UnavailableError("failed to list pandits", err)
	}
	profiles := make([]models.UserPublic, 0, len(pandits))
	for i := range pandits {
		profiles = append(profiles, pandits[i].PublicProfile())
	}
	return profiles, nil
}
