package service

import (
	"context"

	"flock/internal/models"
)

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getProfileFn    func(context.Context, uint, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	searchFn        func(context.Context, string, int, int) ([]models.User, int64, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetProfile(ctx context.Context, id, viewerID uint) (*models.User, error) {
	return s.getProfileFn(ctx, id, viewerID)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, int64, error) {
	return s.searchFn(ctx, q, limit, offset)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getProfileFn:    func(_ context.Context, id, _ uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		searchFn:        func(context.Context, string, int, int) ([]models.User, int64, error) { return nil, 0, nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
	}
}

type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint, uint) (*models.Post, error)
	listFeedFn     func(context.Context, uint, []uint, int, int) ([]*models.Post, error)
	listByAuthorFn func(context.Context, uint, []models.Visibility, uint, int, int) ([]*models.Post, error)
	updateFn       func(context.Context, *models.Post) error
	deleteFn       func(context.Context, uint) error
	isLikedFn      func(context.Context, uint, uint) (bool, error)
	likeFn         func(context.Context, uint, uint) error
	unlikeFn       func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) ListFeed(ctx context.Context, viewerID uint, followeeIDs []uint, limit, offset int) ([]*models.Post, error) {
	return s.listFeedFn(ctx, viewerID, followeeIDs, limit, offset)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, visible []models.Visibility, viewerID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, visible, viewerID, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, Visibility: models.VisibilityPublic}, nil
		},
		listFeedFn: func(context.Context, uint, []uint, int, int) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn: func(context.Context, uint, []models.Visibility, uint, int, int) ([]*models.Post, error) {
			return nil, nil
		},
		updateFn: func(context.Context, *models.Post) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
		isLikedFn: func(context.Context, uint, uint) (bool, error) {
			return false, nil
		},
		likeFn:   func(context.Context, uint, uint) error { return nil },
		unlikeFn: func(context.Context, uint, uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByPostFn  func(context.Context, uint, int, int) ([]*models.Comment, error)
	listRepliesFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, parentID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(context.Context, *models.Comment) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn:  func(context.Context, uint, int, int) ([]*models.Comment, error) { return nil, nil },
		listRepliesFn: func(context.Context, uint, int, int) ([]*models.Comment, error) { return nil, nil },
		updateFn:      func(context.Context, *models.Comment) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
	}
}

type followRepoStub struct {
	createFn      func(context.Context, *models.Follow) error
	deleteFn      func(context.Context, uint, uint) error
	existsFn      func(context.Context, uint, uint) (bool, error)
	followeeIDsFn func(context.Context, uint) ([]uint, error)
	followersFn   func(context.Context, uint, int, int) ([]models.User, int64, error)
	followingFn   func(context.Context, uint, int, int) ([]models.User, int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.followeeIDsFn(ctx, followerID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	return s.followersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	return s.followingFn(ctx, userID, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:      func(context.Context, *models.Follow) error { return nil },
		deleteFn:      func(context.Context, uint, uint) error { return nil },
		existsFn:      func(context.Context, uint, uint) (bool, error) { return false, nil },
		followeeIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
		followersFn:   func(context.Context, uint, int, int) ([]models.User, int64, error) { return nil, 0, nil },
		followingFn:   func(context.Context, uint, int, int) ([]models.User, int64, error) { return nil, 0, nil },
	}
}

type messageRepoStub struct {
	createFn      func(context.Context, *models.Message) error
	listBetweenFn func(context.Context, uint, uint, int, int) ([]*models.Message, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) ListBetween(ctx context.Context, userID, peerID uint, limit, offset int) ([]*models.Message, error) {
	return s.listBetweenFn(ctx, userID, peerID, limit, offset)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:      func(context.Context, *models.Message) error { return nil },
		listBetweenFn: func(context.Context, uint, uint, int, int) ([]*models.Message, error) { return nil, nil },
	}
}

type notificationRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	listByRecipientFn func(context.Context, uint, int, int) ([]*models.Notification, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	return s.createFn(ctx, notification)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, recipientID uint, limit, offset int) ([]*models.Notification, error) {
	return s.listByRecipientFn(ctx, recipientID, limit, offset)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn:          func(context.Context, *models.Notification) error { return nil },
		listByRecipientFn: func(context.Context, uint, int, int) ([]*models.Notification, error) { return nil, nil },
	}
}

// pushRecorder captures realtime pushes for assertions.
type pushRecorder struct {
	userPushes map[uint][][]byte
	postPushes map[uint][][]byte
}

func newPushRecorder() *pushRecorder {
	return &pushRecorder{
		userPushes: make(map[uint][][]byte),
		postPushes: make(map[uint][][]byte),
	}
}

func (p *pushRecorder) PushUser(_ context.Context, userID uint, payload []byte) {
	p.userPushes[userID] = append(p.userPushes[userID], payload)
}

func (p *pushRecorder) PushPost(_ context.Context, postID uint, payload []byte) {
	p.postPushes[postID] = append(p.postPushes[postID], payload)
}
