package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/repository"
)

// FeedService composes the post listings: global, per group, per author and
// the personalized follow feed. All listings share the same newest-first
// order and the same clamped pagination.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	paginator  *pagination.Paginator
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	paginator *pagination.Paginator,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		paginator:  paginator,
	}
}

// Global returns one page of the public post listing.
func (s *FeedService) Global(ctx context.Context, page int) ([]*models.Post, pagination.Window, error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, pagination.Window{}, err
	}
	w := s.paginator.Window(total, page)
	posts, err := s.postRepo.List(ctx, w.Limit, w.Offset)
	if err != nil {
		return nil, pagination.Window{}, err
	}
	return posts, w, nil
}

// Group resolves the group by slug and returns one page of its posts.
func (s *FeedService) Group(ctx context.Context, slug string, page int) (*models.Group, []*models.Post, pagination.Window, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, pagination.Window{}, err
	}
	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, pagination.Window{}, err
	}
	w := s.paginator.Window(total, page)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, w.Limit, w.Offset)
	if err != nil {
		return nil, nil, pagination.Window{}, err
	}
	return group, posts, w, nil
}

// Profile resolves the author by username and returns one page of their
// posts, along with whether the viewer follows the author.
func (s *FeedService) Profile(ctx context.Context, username string, viewerID uint, page int) (*models.User, []*models.Post, pagination.Window, bool, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, pagination.Window{}, false, err
	}

	following := false
	if viewerID != 0 {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, nil, pagination.Window{}, false, err
		}
	}

	total, err := s.postRepo.CountByUser(ctx, author.ID)
	if err != nil {
		return nil, nil, pagination.Window{}, false, err
	}
	w := s.paginator.Window(total, page)
	posts, err := s.postRepo.ListByUser(ctx, author.ID, w.Limit, w.Offset)
	if err != nil {
		return nil, nil, pagination.Window{}, false, err
	}
	return author, posts, w, following, nil
}

// Following returns one page of the viewer's personalized feed: posts by
// every author the viewer follows, newest first. A viewer who follows nobody
// gets a single empty page.
func (s *FeedService) Following(ctx context.Context, viewerID uint, page int) ([]*models.Post, pagination.Window, error) {
	total, err := s.postRepo.CountFollowed(ctx, viewerID)
	if err != nil {
		return nil, pagination.Window{}, err
	}
	w := s.paginator.Window(total, page)
	posts, err := s.postRepo.ListFollowed(ctx, viewerID, w.Limit, w.Offset)
	if err != nil {
		return nil, pagination.Window{}, err
	}
	return posts, w, nil
}
