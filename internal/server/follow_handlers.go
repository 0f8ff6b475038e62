package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:username/follow. Following is
// idempotent and a self-follow is silently suppressed; either way the caller
// is sent back to the target author's profile feed.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	target, err := s.followService.Follow(c.Context(), userID, c.Params("username"))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Redirect("/api/users/"+target.Username+"/posts", fiber.StatusFound)
}

// UnfollowUser handles POST /api/users/:username/unfollow. Unfollowing an
// author who was never followed is a no-op.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	target, err := s.followService.Unfollow(c.Context(), userID, c.Params("username"))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Redirect("/api/users/"+target.Username+"/posts", fiber.StatusFound)
}
