// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"net/url"
	"strconv"
	"strings"

	"quill/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LoginPath is the authentication entry point anonymous viewers are sent to.
const LoginPath = "/auth/login"

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// userIDFromToken validates the token string and extracts the user ID from
// the "sub" claim (subject claim per RFC 7519).
func userIDFromToken(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(userID), true
}

// bearerToken extracts the token from the Authorization header, falling back
// to the "token" cookie for browser clients.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies("token")
}

// AuthRequired enforces authentication for protected routes. Anonymous
// callers are not handed an error: they are redirected to the login entry
// point with a return path pointing back at the requested URL.
func AuthRequired(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return redirectToLogin(c)
	}

	userID, ok := userIDFromToken(token)
	if !ok {
		return redirectToLogin(c)
	}

	c.Locals("userID", userID)
	return c.Next()
}

// OptionalAuth decodes the viewer identity when a token is present but never
// gates the request. Listings use it to compute viewer-specific flags.
func OptionalAuth(c *fiber.Ctx) error {
	if token := bearerToken(c); token != "" {
		if userID, ok := userIDFromToken(token); ok {
			c.Locals("userID", userID)
		}
	}
	return c.Next()
}

func redirectToLogin(c *fiber.Ctx) error {
	next := url.QueryEscape(c.OriginalURL())
	return c.Redirect(LoginPath+"?next="+next, fiber.StatusFound)
}
