package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateComment(t *testing.T) {
	app := fiber.New()
	mockComments := new(MockCommentRepository)
	mockPosts := new(MockPostRepository)
	s := &Server{commentService: service.NewCommentService(mockComments, mockPosts)}

	asViewer(app, 7)
	app.Post("/posts/:id/comments", s.CreateComment)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"text": "nice"},
			mockSetup: func() {
				mockPosts.On("GetByID", mock.Anything, uint(3)).Return(
					&models.Post{ID: 3, Text: "hello"}, nil)
				mockComments.On("Create", mock.Anything, mock.Anything).Return(nil)
				mockComments.On("GetByID", mock.Anything, mock.Anything).Return(
					&models.Comment{ID: 1, Text: "nice", PostID: 3, UserID: 7}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Empty Text",
			body:           map[string]string{"text": ""},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts/3/comments", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, "/api/posts/3", resp.Header.Get("Location"))
			}
		})
	}
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	app := fiber.New()
	mockComments := new(MockCommentRepository)
	mockPosts := new(MockPostRepository)
	mockPosts.On("GetByID", mock.Anything, uint(99)).Return(
		nil, models.NewNotFoundError("Post"))
	s := &Server{commentService: service.NewCommentService(mockComments, mockPosts)}

	asViewer(app, 7)
	app.Post("/posts/:id/comments", s.CreateComment)

	body, _ := json.Marshal(map[string]string{"text": "nice"})
	req := httptest.NewRequest(http.MethodPost, "/posts/99/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	mockComments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteOthersComment(t *testing.T) {
	app := fiber.New()
	mockComments := new(MockCommentRepository)
	mockComments.On("GetByID", mock.Anything, uint(5)).Return(
		&models.Comment{ID: 5, UserID: 10}, nil)
	s := &Server{commentService: service.NewCommentService(mockComments, new(MockPostRepository))}

	asViewer(app, 11)
	app.Delete("/posts/:id/comments/:commentId", s.DeleteComment)

	req := httptest.NewRequest(http.MethodDelete, "/posts/3/comments/5", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockComments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
