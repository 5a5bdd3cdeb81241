package server

import (
	"flock/internal/models"
	"flock/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content    string   `json:"content"`
		Visibility string   `json:"visibility"`
		Location   string   `json:"location"`
		Tags       []string `json:"tags"`
		MediaURLs  []string `json:"media_urls"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:     currentUserID(c),
		Content:    req.Content,
		Visibility: req.Visibility,
		Location:   req.Location,
		Tags:       req.Tags,
		MediaURLs:  req.MediaURLs,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": post})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), viewerFromCtx(c), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"data": post})
}

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p := parsePage(c, 20)

	posts, hasMore, err := s.postService.GetFeed(c.Context(), service.FeedInput{
		UserID: currentUserID(c),
		Limit:  p.Limit,
		Offset: p.Offset(),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(listWithHasMore(posts, p, hasMore))
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePage(c, 20)

	posts, err := s.postService.GetUserPosts(c.Context(), viewerFromCtx(c), userID, p.Limit, p.Offset())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(listWithHasMore(posts, p, len(posts) == p.Limit))
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content    *string  `json:"content"`
		Visibility *string  `json:"visibility"`
		Location   *string  `json:"location"`
		Tags       []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		Viewer:     viewerFromCtx(c),
		PostID:     postID,
		Content:    req.Content,
		Visibility: req.Visibility,
		Location:   req.Location,
		Tags:       req.Tags,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"data": post})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), viewerFromCtx(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike handles POST /api/posts/:id/like. Liking an already-liked post
// removes the like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.ToggleLike(c.Context(), viewerFromCtx(c), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"data": post})
}
