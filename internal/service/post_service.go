package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"flock/internal/cache"
	"flock/internal/models"
	"flock/internal/repository"
)

const (
	maxPostContentLen = 10000
	maxTagLen         = 50
	maxMediaPerPost   = 10
)

type PostService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	access     *AccessResolver
	notifs     *NotificationService
}

type CreatePostInput struct {
	UserID     uint
	Content    string
	Visibility string
	Location   string
	Tags       []string
	MediaURLs  []string
}

type UpdatePostInput struct {
	Viewer     models.Viewer
	PostID     uint
	Content    *string
	Visibility *string
	Location   *string
	Tags       []string
}

type FeedInput struct {
	UserID uint
	Limit  int
	Offset int
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	access *AccessResolver,
	notifs *NotificationService,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		access:     access,
		notifs:     notifs,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" && len(in.MediaURLs) == 0 {
		return nil, models.NewValidationError("Post must have content or media")
	}
	if len(content) > maxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	visibility := models.Visibility(in.Visibility)
	if in.Visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !visibility.Valid() {
		return nil, models.NewValidationError("Invalid visibility")
	}

	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	if len(in.MediaURLs) > maxMediaPerPost {
		return nil, models.NewValidationError("Too many media attachments (max 10)")
	}
	media := make([]models.PostMedia, 0, len(in.MediaURLs))
	for i, raw := range in.MediaURLs {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, models.NewValidationError("Media URL must be a valid URL")
		}
		media = append(media, models.PostMedia{URL: raw, Position: i})
	}

	post := &models.Post{
		UserID:     in.UserID,
		Content:    content,
		Visibility: visibility,
		Location:   strings.TrimSpace(in.Location),
		Tags:       tags,
		Media:      media,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// GetPost fetches a post the viewer is allowed to read. Missing posts return
// NotFound; existing posts the viewer cannot see return Forbidden.
func (s *PostService) GetPost(ctx context.Context, viewer models.Viewer, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewer.UserID())
	if err != nil {
		return nil, err
	}
	if err := s.access.CanViewPost(ctx, viewer, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetFeed assembles the home feed: the viewer's own posts plus public and
// followers-only posts from accounts they follow, newest first. hasMore is
// true exactly when the page came back full.
func (s *PostService) GetFeed(ctx context.Context, in FeedInput) ([]*models.Post, bool, error) {
	followeeIDs, err := s.followRepo.FolloweeIDs(ctx, in.UserID)
	if err != nil {
		return nil, false, err
	}

	posts, err := s.postRepo.ListFeed(ctx, in.UserID, followeeIDs, in.Limit, in.Offset)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(posts) == in.Limit
	return posts, hasMore, nil
}

// GetUserPosts lists one author's posts, filtered to the visibility levels the
// viewer may see.
func (s *PostService) GetUserPosts(ctx context.Context, viewer models.Viewer, authorID uint, limit, offset int) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	visible, err := s.access.VisibleByAuthor(ctx, viewer, authorID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByAuthor(ctx, authorID, visible, viewer.UserID(), limit, offset)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.Viewer.UserID())
	if err != nil {
		return nil, err
	}
	if err := s.access.CanModifyPost(in.Viewer, post); err != nil {
		return nil, err
	}

	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" && len(post.Media) == 0 {
			return nil, models.NewValidationError("Post must have content or media")
		}
		if len(content) > maxPostContentLen {
			return nil, models.NewValidationError("Content too long (max 10000 characters)")
		}
		post.Content = content
	}
	if in.Visibility != nil {
		visibility := models.Visibility(*in.Visibility)
		if !visibility.Valid() {
			return nil, models.NewValidationError("Invalid visibility")
		}
		post.Visibility = visibility
	}
	if in.Location != nil {
		post.Location = strings.TrimSpace(*in.Location)
	}
	if in.Tags != nil {
		tags, err := normalizeTags(in.Tags)
		if err != nil {
			return nil, err
		}
		post.Tags = tags
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	return s.postRepo.GetByID(ctx, post.ID, in.Viewer.UserID())
}

func (s *PostService) DeletePost(ctx context.Context, viewer models.Viewer, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, viewer.UserID())
	if err != nil {
		return err
	}
	if err := s.access.CanModifyPost(viewer, post); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}

// ToggleLike likes a post the viewer can read, or removes an existing like.
// A new like on someone else's post produces a best-effort notification.
func (s *PostService) ToggleLike(ctx context.Context, viewer models.Viewer, postID uint) (*models.Post, error) {
	userID, ok := viewer.ID()
	if !ok {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	post, err := s.GetPost(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
		if s.notifs != nil {
			subjectID := post.ID
			if err := s.notifs.Notify(ctx, NotifyInput{
				Type:      models.NotificationTypeLike,
				Recipient: post.UserID,
				Actor:     userID,
				SubjectID: &subjectID,
				Message:   "liked your post",
			}); err != nil {
				slog.Warn("like notification failed", "post_id", post.ID, "error", err)
			}
		}
	}

	cache.Invalidate(ctx, cache.PostKey(postID))
	return s.postRepo.GetByID(ctx, postID, userID)
}

func normalizeTags(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if len(raw) > models.MaxPostTags {
		return nil, models.NewValidationError(fmt.Sprintf("Too many tags (max %d)", models.MaxPostTags))
	}
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag == "" {
			continue
		}
		if len(tag) > maxTagLen {
			return nil, models.NewValidationError("Tag too long (max 50 characters)")
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}
