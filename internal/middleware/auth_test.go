package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"quill/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	str, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return str
}

func newAuthApp() *fiber.App {
	InitMiddleware(&config.Config{JWTSecret: testSecret, Env: "test"})

	app := fiber.New()
	app.Get("/api/feed/following", AuthRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	return app
}

func TestAuthRequiredRedirectsAnonymous(t *testing.T) {
	app := newAuthApp()

	req := httptest.NewRequest(http.MethodGet, "/api/feed/following?page=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login?next=%2Fapi%2Ffeed%2Ffollowing%3Fpage%3D2",
		resp.Header.Get("Location"))
}

func TestAuthRequiredRedirectsInvalidToken(t *testing.T) {
	app := newAuthApp()

	req := httptest.NewRequest(http.MethodGet, "/api/feed/following", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	app := newAuthApp()

	req := httptest.NewRequest(http.MethodGet, "/api/feed/following", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 7))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalAuthNeverRedirects(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: testSecret, Env: "test"})

	app := fiber.New()
	app.Get("/api/users/sage/posts", OptionalAuth, func(c *fiber.Ctx) error {
		if id, ok := c.Locals("userID").(uint); ok {
			return c.JSON(fiber.Map{"viewer": id})
		}
		return c.JSON(fiber.Map{"viewer": nil})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users/sage/posts", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
