// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"flock/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password assigned to every seeded user.
const DefaultPassword = "Password123!x"

var visibilityMix = []models.Visibility{
	models.VisibilityPublic, models.VisibilityPublic, models.VisibilityPublic,
	models.VisibilityFriends, models.VisibilityFriends,
	models.VisibilityPrivate,
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a realistic profile.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	username := strings.ToLower(gofakeit.Username())
	if len(username) < 3 {
		username = username + gofakeit.DigitN(3)
	}

	user := &models.User{
		Username:    username,
		Email:       fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
		Password:    string(hashed),
		DisplayName: gofakeit.Name(),
		Bio:         gofakeit.Sentence(8),
		Avatar:      fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post for the user with a random visibility and a
// created_at spread over the past 90 days.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:     user.ID,
		Content:    gofakeit.Paragraph(1, 3, 8, "\n"),
		Visibility: visibilityMix[f.rng.Intn(len(visibilityMix))],
		Tags:       f.tags(),
	}

	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	if f.rng.Intn(4) == 0 {
		post.Media = []models.PostMedia{
			{URL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()), Position: 0},
		}
	}
	if f.rng.Intn(5) == 0 {
		post.Location = gofakeit.City()
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment, optionally as a reply.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parentID *uint) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   post.ID,
		UserID:   user.ID,
		ParentID: parentID,
		Content:  gofakeit.Sentence(f.rng.Intn(12) + 3),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateFollow persists a follow edge, ignoring duplicates.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	if follower.ID == followee.ID {
		return nil
	}
	follow := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
	err := f.db.Create(follow).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}

// CreateLike persists a like, ignoring duplicates.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Create(like).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}

// CreateMessage persists a direct message between two users.
func (f *Factory) CreateMessage(sender, receiver *models.User) (*models.Message, error) {
	message := &models.Message{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    gofakeit.Sentence(f.rng.Intn(10) + 2),
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func (f *Factory) tags() []string {
	n := f.rng.Intn(4)
	if n == 0 {
		return nil
	}
	tags := make([]string, 0, n)
	for i := 0; i < n; i++ {
		tags = append(tags, strings.ToLower(gofakeit.BuzzWord()))
	}
	return tags
}
