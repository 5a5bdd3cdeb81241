package service

import (
	"context"
	"strings"

	"flock/internal/cache"
	"flock/internal/models"
	"flock/internal/repository"
	"flock/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID      uint
	DisplayName *string
	Bio         *string
	Avatar      *string
	Website     *string
	IsPrivate   *bool
}

type SearchUsersInput struct {
	Query  string
	Limit  int
	Offset int
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns a user's public profile with follower counts and the
// viewer's follow relationship.
func (s *UserService) GetProfile(ctx context.Context, viewer models.Viewer, userID uint) (*models.User, error) {
	return s.userRepo.GetProfile(ctx, userID, viewer.UserID())
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) SearchUsers(ctx context.Context, in SearchUsersInput) ([]models.User, int64, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, 0, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query, in.Limit, in.Offset)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxDisplayNameLen = 50

	if in.DisplayName != nil {
		if len(*in.DisplayName) > maxDisplayNameLen {
			return nil, models.NewValidationError("Display name too long (max 50 characters)")
		}
		user.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.Website != nil {
		if *in.Website != "" {
			if err := validation.ValidateURL(*in.Website); err != nil {
				return nil, models.NewValidationError("Website must be a valid URL")
			}
		}
		user.Website = *in.Website
	}
	if in.IsPrivate != nil {
		user.IsPrivate = *in.IsPrivate
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, cache.UserKey(user.ID))
	return user, nil
}
