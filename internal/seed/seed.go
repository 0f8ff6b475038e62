// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password shared by all seeded users.
const DefaultPassword = "SeededPass123!"

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	NumComments int
	ShouldClean bool
}

// Seeder populates the database with generated users, groups, posts,
// comments and follow edges.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Comment{}, &models.Follow{}, &models.Post{}, &models.Group{}, &models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}
	return nil
}

// Run seeds the database according to the options.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	groups, err := s.seedGroups(opts.NumGroups)
	if err != nil {
		return err
	}
	posts, err := s.seedPosts(users, groups, opts.NumPosts)
	if err != nil {
		return err
	}
	if err := s.seedComments(users, posts, opts.NumComments); err != nil {
		return err
	}
	return s.seedFollows(users)
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			Password: string(hash),
			Bio:      gofakeit.Sentence(8),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedGroups(n int) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, n)
	for i := 0; i < n; i++ {
		noun := gofakeit.NounAbstract()
		group := &models.Group{
			Title:       gofakeit.HackerAdjective() + " " + noun,
			Slug:        fmt.Sprintf("%s-%d", noun, i),
			Description: gofakeit.Sentence(12),
		}
		if err := s.db.Create(group).Error; err != nil {
			return nil, fmt.Errorf("seeding group %d: %w", i, err)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *Seeder) seedPosts(users []*models.User, groups []*models.Group, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := &models.Post{
			Text:   gofakeit.Paragraph(1, 3, 8, "\n"),
			UserID: users[s.rand.Intn(len(users))].ID,
		}
		// roughly half the posts belong to a group
		if len(groups) > 0 && s.rand.Intn(2) == 0 {
			groupID := groups[s.rand.Intn(len(groups))].ID
			post.GroupID = &groupID
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("seeding post %d: %w", i, err)
		}
		// spread creation times so listings have a meaningful order
		createdAt := time.Now().Add(-time.Duration(s.rand.Intn(90*24)) * time.Hour)
		if err := s.db.Model(post).UpdateColumn("created_at", createdAt).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedComments(users []*models.User, posts []*models.Post, n int) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}

	for i := 0; i < n; i++ {
		comment := &models.Comment{
			Text:   gofakeit.Sentence(10),
			PostID: posts[s.rand.Intn(len(posts))].ID,
			UserID: users[s.rand.Intn(len(users))].ID,
		}
		if err := s.db.Create(comment).Error; err != nil {
			return fmt.Errorf("seeding comment %d: %w", i, err)
		}
	}
	return nil
}

// seedFollows gives each user a handful of followees. Duplicate and
// self-follow candidates are simply skipped.
func (s *Seeder) seedFollows(users []*models.User) error {
	for _, user := range users {
		for i := 0; i < 3 && len(users) > 1; i++ {
			target := users[s.rand.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			follow := &models.Follow{FollowerID: user.ID, FolloweeID: target.ID}
			if err := s.db.Create(follow).Error; err != nil {
				// unique violation means the edge already exists
				continue
			}
		}
	}
	return nil
}
