package service

import (
	"context"
	"testing"

	"flock/internal/models"
)

func newCommentService(commentRepo *commentRepoStub, postRepo *postRepoStub, followRepo *followRepoStub, notifs *NotificationService) *CommentService {
	return NewCommentService(commentRepo, postRepo, NewAccessResolver(followRepo), notifs)
}

func TestCreateCommentRequiresContent(t *testing.T) {
	svc := newCommentService(noopCommentRepo(), noopPostRepo(), noopFollowRepo(), nil)
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 1, Content: "  "})
	expectCode(t, err, models.CodeValidation)
}

func TestCreateCommentOnUnreadablePostForbidden(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 7, Visibility: models.VisibilityPrivate}, nil
	}

	svc := newCommentService(noopCommentRepo(), postRepo, noopFollowRepo(), nil)
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 8, PostID: 1, Content: "hi"})
	expectCode(t, err, models.CodeForbidden)
}

func TestCreateCommentParentMustBelongToPost(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, PostID: 99}, nil
	}

	svc := newCommentService(commentRepo, noopPostRepo(), noopFollowRepo(), nil)
	parentID := uint(5)
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID:   8,
		PostID:   1,
		ParentID: &parentID,
		Content:  "hi",
	})
	expectCode(t, err, models.CodeValidation)
}

func TestCreateCommentNotifiesPostAuthor(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 7, Visibility: models.VisibilityPublic}, nil
	}

	notifRepo := noopNotificationRepo()
	var stored *models.Notification
	notifRepo.createFn = func(_ context.Context, n *models.Notification) error {
		stored = n
		return nil
	}
	notifs := NewNotificationService(notifRepo, newPushRecorder())

	svc := newCommentService(noopCommentRepo(), postRepo, noopFollowRepo(), notifs)
	if _, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 8, PostID: 1, Content: "nice"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil || stored.Type != models.NotificationTypeComment || stored.RecipientID != 7 {
		t.Fatalf("expected comment notification for user 7, got %#v", stored)
	}
}

func TestListCommentsFollowsPostAccess(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 7, Visibility: models.VisibilityFriends}, nil
	}

	svc := newCommentService(noopCommentRepo(), postRepo, noopFollowRepo(), nil)
	_, err := svc.ListComments(context.Background(), models.AnonymousViewer(), 1, 20, 0)
	expectCode(t, err, models.CodeForbidden)
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 7, PostID: 1}, nil
	}

	svc := newCommentService(commentRepo, noopPostRepo(), noopFollowRepo(), nil)
	_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
		Viewer:    models.IdentifiedViewer(8),
		CommentID: 1,
		Content:   "edited",
	})
	expectCode(t, err, models.CodeForbidden)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 7, PostID: 1}, nil
	}

	svc := newCommentService(commentRepo, noopPostRepo(), noopFollowRepo(), nil)
	expectCode(t, svc.DeleteComment(context.Background(), models.IdentifiedViewer(8), 1), models.CodeForbidden)

	if err := svc.DeleteComment(context.Background(), models.IdentifiedViewer(7), 1); err != nil {
		t.Fatalf("expected author delete to succeed, got %v", err)
	}
}
