package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// postRequest is the write payload for posts, accepted as JSON or as
// multipart form fields alongside an optional image attachment.
type postRequest struct {
	Text    string `json:"text" form:"text"`
	GroupID *uint  `json:"group_id" form:"group_id"`
}

func parsePostRequest(c *fiber.Ctx) (*postRequest, *multipart.FileHeader, error) {
	var req postRequest

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		req.Text = c.FormValue("text")
		if gid := c.FormValue("group_id"); gid != "" {
			id, err := strconv.ParseUint(gid, 10, 32)
			if err != nil {
				return nil, nil, models.NewValidationError("Invalid group id")
			}
			groupID := uint(id)
			req.GroupID = &groupID
		}
		// The attachment is optional.
		file, err := c.FormFile("image")
		if err != nil {
			file = nil
		}
		return &req, file, nil
	}

	if err := c.BodyParser(&req); err != nil {
		return nil, nil, models.NewValidationError("Invalid request body")
	}
	return &req, nil, nil
}

// saveImage stores an uploaded attachment under the media dir with a
// generated name and returns its served URL.
func (s *Server) saveImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", models.NewValidationError("Unsupported image type")
	}

	if err := os.MkdirAll(s.config.MediaDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(s.config.MediaDir, name)); err != nil {
		return "", models.NewInternalError(err)
	}
	return "/media/" + name, nil
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	req, file, err := parsePostRequest(c)
	if err != nil {
		return respondAppError(c, err)
	}

	imageURL := ""
	if file != nil {
		imageURL, err = s.saveImage(c, file)
		if err != nil {
			return respondAppError(c, err)
		}
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:   userID,
		Text:     req.Text,
		GroupID:  req.GroupID,
		ImageURL: imageURL,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	// Clients follow the Location to the author's profile feed after creating.
	c.Set(fiber.HeaderLocation, "/api/users/"+post.User.Username+"/posts")
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id, returning the post together with its
// comments, oldest first.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	comments, err := s.commentRepo.ListByPost(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// UpdatePost handles PUT /api/posts/:id. Only the author may edit; anyone
// else is sent back to the read-only detail view.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req, file, err := parsePostRequest(c)
	if err != nil {
		return respondAppError(c, err)
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:  userID,
		PostID:  postID,
		Text:    req.Text,
		GroupID: req.GroupID,
	})
	if errors.Is(err, service.ErrNotAuthor) {
		return c.Redirect(postDetailPath(postID), fiber.StatusFound)
	}
	if err != nil {
		return respondAppError(c, err)
	}

	if file != nil {
		imageURL, imgErr := s.saveImage(c, file)
		if imgErr != nil {
			return respondAppError(c, imgErr)
		}
		post.ImageURL = imageURL
		if updErr := s.postRepo.Update(c.Context(), post); updErr != nil {
			return respondAppError(c, updErr)
		}
	}

	c.Set(fiber.HeaderLocation, postDetailPath(postID))
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Only the author may delete;
// anyone else is sent back to the read-only detail view.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.DeletePost(c.Context(), userID, postID)
	if errors.Is(err, service.ErrNotAuthor) {
		return c.Redirect(postDetailPath(postID), fiber.StatusFound)
	}
	if err != nil {
		return respondAppError(c, err)
	}

	c.Set(fiber.HeaderLocation, "/api/users/"+post.User.Username+"/posts")
	return c.SendStatus(fiber.StatusNoContent)
}

func postDetailPath(id uint) string {
	return fmt.Sprintf("/api/posts/%d", id)
}
