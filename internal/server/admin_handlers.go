package server

import (
	"quill/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// ClearPageCache handles POST /api/admin/cache/clear, flushing every cached
// page at once. Individual entries otherwise only fall out by TTL.
func (s *Server) ClearPageCache(c *fiber.Ctx) error {
	if err := s.pageCache.Clear(c.Context()); err != nil {
		return respondAppError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "page cache cleared",
		"user_id", c.Locals("userID"))
	return c.JSON(fiber.Map{"status": "cleared"})
}
