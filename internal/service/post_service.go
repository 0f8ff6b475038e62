package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/repository"
)

// ErrNotAuthor signals that the caller attempted to mutate a post they do not
// own. Handlers translate it into a redirect to the read-only detail view
// rather than an error response.
var ErrNotAuthor = errors.New("viewer is not the post author")

const maxPostLen = 20000

// PostService provides post business logic.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

// CreatePostInput is the validated, typed mapping from a create request to a
// post entity.
type CreatePostInput struct {
	UserID   uint
	Text     string
	GroupID  *uint
	ImageURL string
}

// UpdatePostInput carries an author's edit of an existing post.
type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Text    string
	GroupID *uint
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
	}
}

// CreatePost validates the input and stores a new post. The creation
// timestamp is server-assigned and never supplied by the caller.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostText(in.Text); err != nil {
		return nil, err
	}
	if in.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *in.GroupID); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Text:     in.Text,
		UserID:   in.UserID,
		GroupID:  in.GroupID,
		ImageURL: in.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns the post with the given id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost applies an author's edit. A non-author gets ErrNotAuthor; text
// and group are the only mutable fields, the creation timestamp is untouched.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return post, ErrNotAuthor
	}

	if err := validatePostText(in.Text); err != nil {
		return nil, err
	}
	if in.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *in.GroupID); err != nil {
			return nil, err
		}
	}

	post.Text = in.Text
	post.GroupID = in.GroupID
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post. A non-author gets ErrNotAuthor.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return post, ErrNotAuthor
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return nil, err
	}
	return post, nil
}

func validatePostText(text string) error {
	if text == "" {
		return models.NewValidationError("Text is required")
	}
	if len(text) > maxPostLen {
		return models.NewValidationError("Post too long (max 20000 characters)")
	}
	return nil
}
