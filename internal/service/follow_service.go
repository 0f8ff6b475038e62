// Package service contains the business logic between handlers and repositories.
package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

// FollowService provides follow-edge business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge from the viewer to the named author. The
// operation is idempotent: following twice leaves a single edge, and a
// self-follow is silently suppressed. The resolved target is returned so the
// caller can redirect to the author's profile.
func (s *FollowService) Follow(ctx context.Context, viewerID uint, targetUsername string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if viewerID == target.ID {
		return target, nil
	}

	exists, err := s.followRepo.Exists(ctx, viewerID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return target, nil
	}

	if err := s.followRepo.Create(ctx, &models.Follow{
		FollowerID: viewerID,
		FolloweeID: target.ID,
	}); err != nil {
		return nil, err
	}

	return target, nil
}

// Unfollow deletes the viewer's follow edge to the named author. Unfollowing
// an author who was never followed is a no-op, not an error.
func (s *FollowService) Unfollow(ctx context.Context, viewerID uint, targetUsername string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Delete(ctx, viewerID, target.ID); err != nil {
		return nil, err
	}

	return target, nil
}

// IsFollowing reports whether the viewer follows the given author. Anonymous
// viewers (id zero) never follow anyone.
func (s *FollowService) IsFollowing(ctx context.Context, viewerID, authorID uint) (bool, error) {
	if viewerID == 0 {
		return false, nil
	}
	return s.followRepo.Exists(ctx, viewerID, authorID)
}
