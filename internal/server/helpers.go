package server

import (
	"errors"

	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePage extracts the 1-indexed ?page query parameter. Missing, malformed
// and non-positive values all read as the first page; a page past the end is
// clamped later, once the total is known.
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the authenticated viewer's id, or zero for anonymous
// requests that passed through OptionalAuth.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// postPage is the envelope shared by every post listing.
type postPage struct {
	Posts      []*models.Post    `json:"posts"`
	Pagination pagination.Window `json:"pagination"`
}

// respondAppError maps an AppError code to its HTTP status. Unknown errors
// surface as 500.
func respondAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusForbidden, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
