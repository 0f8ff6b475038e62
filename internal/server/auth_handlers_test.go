package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/config"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		Env:       "test",
		PageSize:  10,
	}
}

func TestSignup(t *testing.T) {
	app := fiber.New()
	mockUsers := new(MockUserRepository)
	s := &Server{config: testConfig(), userRepo: mockUsers}

	app.Post("/signup", s.Signup)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "newuser",
				"email":    "new@example.com",
				"password": "SecurePass12!@",
			},
			mockSetup: func() {
				mockUsers.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
				mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"username": "newuser",
				"email":    "new@example.com",
				"password": "short",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"username": "newuser",
				"email":    "taken@example.com",
				"password": "SecurePass12!@",
			},
			mockSetup: func() {
				mockUsers.On("GetByEmail", mock.Anything, "taken@example.com").Return(
					&models.User{ID: 1, Email: "taken@example.com"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var got map[string]any
				data, _ := io.ReadAll(resp.Body)
				assert.NoError(t, json.Unmarshal(data, &got))
				assert.NotEmpty(t, got["token"])
			}
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("SecurePass12!@"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	app := fiber.New()
	mockUsers := new(MockUserRepository)
	s := &Server{config: testConfig(), userRepo: mockUsers}

	app.Post("/login", s.Login)

	mockUsers.On("GetByEmail", mock.Anything, "known@example.com").Return(
		&models.User{ID: 1, Username: "known", Email: "known@example.com", Password: string(hash)}, nil)
	mockUsers.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, nil)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           map[string]string{"email": "known@example.com", "password": "SecurePass12!@"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Wrong Password",
			body:           map[string]string{"email": "known@example.com", "password": "WrongPass12!@"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown Email",
			body:           map[string]string{"email": "unknown@example.com", "password": "SecurePass12!@"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLoginEntryEchoesNext(t *testing.T) {
	app := fiber.New()
	s := &Server{config: testConfig()}
	app.Get("/auth/login", s.LoginEntry)

	req := httptest.NewRequest(http.MethodGet, "/auth/login?next=%2Fapi%2Ffeed%2Ffollowing", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	data, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "/api/feed/following", got["next"])
}
