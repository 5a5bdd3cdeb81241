package service

import (
	"context"
	"log/slog"
	"strings"

	"flock/internal/models"
	"flock/internal/repository"
)

const maxCommentLen = 2000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	access      *AccessResolver
	notifs      *NotificationService
}

type CreateCommentInput struct {
	UserID   uint
	PostID   uint
	ParentID *uint
	Content  string
}

type UpdateCommentInput struct {
	Viewer    models.Viewer
	CommentID uint
	Content   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	access *AccessResolver,
	notifs *NotificationService,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		access:      access,
		notifs:      notifs,
	}
}

// CreateComment adds a comment to a post the author can read. Comment access
// is governed entirely by the parent post's visibility.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	viewer := models.IdentifiedViewer(in.UserID)
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.access.CanViewPost(ctx, viewer, post); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		UserID:   in.UserID,
		ParentID: in.ParentID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		subjectID := post.ID
		if err := s.notifs.Notify(ctx, NotifyInput{
			Type:      models.NotificationTypeComment,
			Recipient: post.UserID,
			Actor:     in.UserID,
			SubjectID: &subjectID,
			Message:   "commented on your post",
		}); err != nil {
			slog.Warn("comment notification failed", "post_id", post.ID, "error", err)
		}
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the top-level comments of a post the viewer can read,
// newest first.
func (s *CommentService) ListComments(ctx context.Context, viewer models.Viewer, postID uint, limit, offset int) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewer.UserID())
	if err != nil {
		return nil, err
	}
	if err := s.access.CanViewPost(ctx, viewer, post); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

// ListReplies returns the direct replies of a comment, oldest first. Access
// follows the owning post.
func (s *CommentService) ListReplies(ctx context.Context, viewer models.Viewer, commentID uint, limit, offset int) ([]*models.Comment, error) {
	parent, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, parent.PostID, viewer.UserID())
	if err != nil {
		return nil, err
	}
	if err := s.access.CanViewPost(ctx, viewer, post); err != nil {
		return nil, err
	}
	return s.commentRepo.ListReplies(ctx, commentID, limit, offset)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if !in.Viewer.Is(comment.UserID) {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, viewer models.Viewer, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !viewer.Is(comment.UserID) {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
