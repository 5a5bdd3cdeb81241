// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"flock/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const maxPageLimit = 100

// Page holds parsed page/limit query parameters.
type Page struct {
	Page  int
	Limit int
}

// Offset converts the 1-based page number into a row offset.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// parsePage extracts page and limit query parameters with the given default
// limit. Page numbers start at 1; limit is clamped to 1-100.
func parsePage(c *fiber.Ctx, defaultLimit int) Page {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return Page{Page: page, Limit: limit}
}

// listWithTotal builds the standard list envelope for endpoints with an exact
// total count.
func listWithTotal(items interface{}, p Page, total int64) fiber.Map {
	pages := int(math.Ceil(float64(total) / float64(p.Limit)))
	return fiber.Map{
		"data": fiber.Map{
			"items": items,
			"pagination": fiber.Map{
				"page":  p.Page,
				"limit": p.Limit,
				"total": total,
				"pages": pages,
			},
		},
	}
}

// listWithHasMore builds the list envelope for endpoints that report only
// whether another page exists.
func listWithHasMore(items interface{}, p Page, hasMore bool) fiber.Map {
	return fiber.Map{
		"data": fiber.Map{
			"items": items,
			"pagination": fiber.Map{
				"page":    p.Page,
				"limit":   p.Limit,
				"hasMore": hasMore,
			},
		},
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// currentUserID returns the authenticated user set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

// viewerFromCtx resolves the request's viewer identity. Routes behind
// OptionalAuth yield an anonymous viewer when no valid token was sent.
func viewerFromCtx(c *fiber.Ctx) models.Viewer {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return models.IdentifiedViewer(userID)
	}
	return models.AnonymousViewer()
}
