package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

const maxCommentLen = 2000

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a comment to an existing post. The post must exist and
// the text must be non-empty.
func (s *CommentService) AddComment(ctx context.Context, userID, postID uint, text string) (*models.Comment, error) {
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   text,
		PostID: postID,
		UserID: userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments, oldest first. The post must exist.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
