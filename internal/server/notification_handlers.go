package server

import (
	"flock/internal/models"
	"flock/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	p := parsePage(c, 20)

	items, err := s.notificationService.ListNotifications(c.Context(), service.ListNotificationsInput{
		RecipientID: currentUserID(c),
		Limit:       p.Limit,
		Offset:      p.Offset(),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(listWithHasMore(items, p, len(items) == p.Limit))
}
