// Package service holds the application's business rules on top of the
// repository layer. Services validate input, enforce access rules, and
// translate outcomes into the shared error taxonomy.
package service

import (
	"context"

	"flock/internal/models"
	"flock/internal/repository"
)

// AccessResolver decides whether a viewer may read or modify a resource.
// Read access to a post depends on its visibility; write access is always
// author-only. A denied request on an existing resource is a Forbidden error,
// never NotFound: existence checks run before access checks.
type AccessResolver struct {
	followRepo repository.FollowRepository
}

func NewAccessResolver(followRepo repository.FollowRepository) *AccessResolver {
	return &AccessResolver{followRepo: followRepo}
}

// CanViewPost returns nil when the viewer may read the post.
func (a *AccessResolver) CanViewPost(ctx context.Context, viewer models.Viewer, post *models.Post) error {
	if viewer.Is(post.UserID) {
		return nil
	}
	switch post.Visibility {
	case models.VisibilityPublic:
		return nil
	case models.VisibilityPrivate:
		return models.NewForbiddenError("This post is private")
	case models.VisibilityFriends:
		viewerID, ok := viewer.ID()
		if !ok {
			return models.NewForbiddenError("This post is only visible to followers")
		}
		follows, err := a.followRepo.Exists(ctx, viewerID, post.UserID)
		if err != nil {
			return err
		}
		if !follows {
			return models.NewForbiddenError("This post is only visible to followers")
		}
		return nil
	default:
		return models.NewForbiddenError("This post is not visible")
	}
}

// CanModifyPost returns nil when the viewer is the post's author.
func (a *AccessResolver) CanModifyPost(viewer models.Viewer, post *models.Post) error {
	if !viewer.Is(post.UserID) {
		return models.NewForbiddenError("You can only modify your own posts")
	}
	return nil
}

// VisibleByAuthor returns the visibility levels of the author's posts the
// viewer may list. Used when browsing a single user's posts.
func (a *AccessResolver) VisibleByAuthor(ctx context.Context, viewer models.Viewer, authorID uint) ([]models.Visibility, error) {
	if viewer.Is(authorID) {
		return []models.Visibility{models.VisibilityPublic, models.VisibilityFriends, models.VisibilityPrivate}, nil
	}
	viewerID, ok := viewer.ID()
	if !ok {
		return []models.Visibility{models.VisibilityPublic}, nil
	}
	follows, err := a.followRepo.Exists(ctx, viewerID, authorID)
	if err != nil {
		return nil, err
	}
	if follows {
		return []models.Visibility{models.VisibilityPublic, models.VisibilityFriends}, nil
	}
	return []models.Visibility{models.VisibilityPublic}, nil
}
