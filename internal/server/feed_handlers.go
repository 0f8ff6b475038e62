package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts, the global public listing. Responses pass
// through the page cache middleware, so within the cache TTL repeated hits on
// the same URL are served verbatim without touching the database.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, w, err := s.feedService.Global(c.Context(), parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(postPage{Posts: posts, Pagination: w})
}

// GetGroupPosts handles GET /api/groups/:slug/posts
func (s *Server) GetGroupPosts(c *fiber.Ctx) error {
	group, posts, w, err := s.feedService.Group(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"group":      group,
		"posts":      posts,
		"pagination": w,
	})
}

// GetUserPosts handles GET /api/users/:username/posts. For an authenticated
// viewer the response reports whether they follow the author.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	author, posts, w, following, err := s.feedService.Profile(
		c.Context(), c.Params("username"), currentUserID(c), parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"author":     author,
		"following":  following,
		"posts":      posts,
		"pagination": w,
	})
}

// GetFollowingFeed handles GET /api/feed/following: posts authored by anyone
// the viewer follows, newest first. A viewer who follows nobody gets an empty
// first page.
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	posts, w, err := s.feedService.Following(c.Context(), userID, parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(postPage{Posts: posts, Pagination: w})
}
