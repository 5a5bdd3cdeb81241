package seed

import (
	"testing"

	"flock/internal/database"
	"flock/internal/models"

	"gorm.io/gorm"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectSQLite()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestFactory_CreateUserOverrides(t *testing.T) {
	db := seedTestDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser(func(u *models.User) {
		u.Username = "pinned_name"
		u.IsPrivate = true
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected persisted user with an ID")
	}
	if user.Username != "pinned_name" || !user.IsPrivate {
		t.Fatalf("overrides not applied: %+v", user)
	}
	if user.Email == "" || user.Password == "" {
		t.Fatal("generated fields must be populated")
	}
}

func TestFactory_CreatePostVisibilityMix(t *testing.T) {
	db := seedTestDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	seen := map[models.Visibility]int{}
	for i := 0; i < 60; i++ {
		post, err := factory.CreatePost(user)
		if err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
		if !post.Visibility.Valid() {
			t.Fatalf("invalid visibility %q", post.Visibility)
		}
		seen[post.Visibility]++
	}
	for _, v := range []models.Visibility{models.VisibilityPublic, models.VisibilityFriends, models.VisibilityPrivate} {
		if seen[v] == 0 {
			t.Fatalf("expected some %s posts in the mix, got %v", v, seen)
		}
	}
}

func TestFactory_DuplicateEdgesTolerated(t *testing.T) {
	db := seedTestDB(t)
	factory := NewFactory(db)

	a, err := factory.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	b, err := factory.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := factory.CreateFollow(a, b); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	if err := factory.CreateFollow(a, b); err != nil {
		t.Fatalf("duplicate follow must be tolerated: %v", err)
	}

	var count int64
	if err := db.Model(&models.Follow{}).Where("follower_id = ? AND followee_id = ?", a.ID, b.ID).Count(&count).Error; err != nil {
		t.Fatalf("count follows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 follow edge, got %d", count)
	}
}

func TestSeed_SmallMesh(t *testing.T) {
	db := seedTestDB(t)

	if err := Seed(db, Options{NumUsers: 4, NumPosts: 8}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var users, posts int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if err := db.Model(&models.Post{}).Count(&posts).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if users != 4 {
		t.Fatalf("expected 4 users, got %d", users)
	}
	if posts < 8 {
		t.Fatalf("expected at least 8 posts, got %d", posts)
	}
}
