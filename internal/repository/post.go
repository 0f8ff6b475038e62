// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"quill/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context) (int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	ListFollowed(ctx context.Context, followerID uint, limit, offset int) ([]*models.Post, error)
	CountFollowed(ctx context.Context, followerID uint) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// followedAuthors is the subquery resolving a viewer's follow edges to the
// set of followed author ids.
const followedAuthors = "posts.user_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)"

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withCommentsCount(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return r.list(r.db.WithContext(ctx), limit, offset)
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	return r.count(r.db.WithContext(ctx))
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	return r.list(r.db.WithContext(ctx).Where("group_id = ?", groupID), limit, offset)
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	return r.count(r.db.WithContext(ctx).Where("group_id = ?", groupID))
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID), limit, offset)
}

func (r *postRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return r.count(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// ListFollowed returns posts authored by anyone the viewer follows, in the
// same newest-first order as every other listing.
func (r *postRepository) ListFollowed(ctx context.Context, followerID uint, limit, offset int) ([]*models.Post, error) {
	return r.list(r.db.WithContext(ctx).Where(followedAuthors, followerID), limit, offset)
}

func (r *postRepository) CountFollowed(ctx context.Context, followerID uint) (int64, error) {
	return r.count(r.db.WithContext(ctx).Where(followedAuthors, followerID))
}

func (r *postRepository) list(db *gorm.DB, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withCommentsCount(db).
		Preload("User").
		Preload("Group").
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) count(db *gorm.DB) (int64, error) {
	var total int64
	if err := db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

// withCommentsCount adds a subquery fetching the comment count in the same query.
func (r *postRepository) withCommentsCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comments_count")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the post and its comments.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
