package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newFollowServer(users *MockUserRepository, follows *MockFollowRepository) *Server {
	return &Server{followService: service.NewFollowService(follows, users)}
}

func TestFollowUserRedirectsToProfile(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByUsername", mock.Anything, "sage").Return(
		&models.User{ID: 8, Username: "sage"}, nil)
	mockFollows := new(MockFollowRepository)
	mockFollows.On("Exists", mock.Anything, uint(3), uint(8)).Return(false, nil)
	mockFollows.On("Create", mock.Anything, mock.Anything).Return(nil)

	app := fiber.New()
	asViewer(app, 3)
	app.Post("/users/:username/follow", newFollowServer(mockUsers, mockFollows).FollowUser)

	req := httptest.NewRequest(http.MethodPost, "/users/sage/follow", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/api/users/sage/posts", resp.Header.Get("Location"))
	mockFollows.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollowUnknownUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByUsername", mock.Anything, "ghost").Return(
		nil, models.NewNotFoundError("User"))

	app := fiber.New()
	asViewer(app, 3)
	app.Post("/users/:username/follow", newFollowServer(mockUsers, new(MockFollowRepository)).FollowUser)

	req := httptest.NewRequest(http.MethodPost, "/users/ghost/follow", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSelfFollowRedirectsWithoutEdge(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByUsername", mock.Anything, "sage").Return(
		&models.User{ID: 3, Username: "sage"}, nil)
	mockFollows := new(MockFollowRepository)

	app := fiber.New()
	asViewer(app, 3)
	app.Post("/users/:username/follow", newFollowServer(mockUsers, mockFollows).FollowUser)

	req := httptest.NewRequest(http.MethodPost, "/users/sage/follow", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/api/users/sage/posts", resp.Header.Get("Location"))
	mockFollows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUnfollowUserRedirectsToProfile(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByUsername", mock.Anything, "sage").Return(
		&models.User{ID: 8, Username: "sage"}, nil)
	mockFollows := new(MockFollowRepository)
	mockFollows.On("Delete", mock.Anything, uint(3), uint(8)).Return(nil)

	app := fiber.New()
	asViewer(app, 3)
	app.Post("/users/:username/unfollow", newFollowServer(mockUsers, mockFollows).UnfollowUser)

	req := httptest.NewRequest(http.MethodPost, "/users/sage/unfollow", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/api/users/sage/posts", resp.Header.Get("Location"))
}
