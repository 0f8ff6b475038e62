package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetGroups handles GET /api/groups, the group directory ordered by title.
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}
