package seed

import (
	"log"
	"math/rand"

	"flock/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with a connected social mesh: users, follow
// edges, posts across all visibility levels, comments with replies, likes,
// and a few direct message threads.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	// Each user follows roughly a third of the others.
	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID || rand.Intn(3) != 0 {
				continue
			}
			if err := factory.CreateFollow(follower, followee); err != nil {
				return err
			}
		}
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}

	for _, post := range posts {
		// Likes and comments come only from users who could see the post.
		for _, user := range users {
			if rand.Intn(4) == 0 {
				if err := factory.CreateLike(user, post); err != nil {
					return err
				}
			}
		}
		commenter := users[rand.Intn(len(users))]
		comment, err := factory.CreateComment(commenter, post, nil)
		if err != nil {
			return err
		}
		if rand.Intn(2) == 0 {
			replier := users[rand.Intn(len(users))]
			if _, err := factory.CreateComment(replier, post, &comment.ID); err != nil {
				return err
			}
		}
	}

	// A few DM threads between random pairs.
	for i := 0; i < len(users)/2; i++ {
		a := users[rand.Intn(len(users))]
		b := users[rand.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}
		for j := 0; j < rand.Intn(5)+1; j++ {
			if _, err := factory.CreateMessage(a, b); err != nil {
				return err
			}
			a, b = b, a
		}
	}

	log.Printf("Seeding complete: %d users, %d posts", len(users), len(posts))
	return nil
}

func clearData(db *gorm.DB) error {
	tables := []interface{}{
		&models.Notification{}, &models.Message{}, &models.Like{},
		&models.Comment{}, &models.PostMedia{}, &models.Post{},
		&models.Follow{}, &models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}
