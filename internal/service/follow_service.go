package service

import (
	"context"
	"log/slog"

	"flock/internal/models"
	"flock/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifs     *NotificationService
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifs *NotificationService,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifs:     notifs,
	}
}

// Follow creates a directed follow edge. Following yourself is an invalid
// action, following a missing user is NotFound, and following someone twice
// is a conflict.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewInvalidActionError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	follow := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return err
	}

	if s.notifs != nil {
		if err := s.notifs.Notify(ctx, NotifyInput{
			Type:      models.NotificationTypeFollow,
			Recipient: followeeID,
			Actor:     followerID,
			Message:   "started following you",
		}); err != nil {
			slog.Warn("follow notification failed", "followee_id", followeeID, "error", err)
		}
	}
	return nil
}

// Unfollow removes a follow edge. Removing an edge that does not exist is
// NotFound.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewInvalidActionError("You cannot unfollow yourself")
	}
	return s.followRepo.Delete(ctx, followerID, followeeID)
}

func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.followRepo.Followers(ctx, userID, limit, offset)
}

func (s *FollowService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.followRepo.Following(ctx, userID, limit, offset)
}
