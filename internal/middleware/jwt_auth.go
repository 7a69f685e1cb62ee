package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"velarias-backend/internal/models"
)

// AuthCookieName is the cookie carrying the admin session token.
const AuthCookieName = "auth_token"

// UsernameKey is the context local under which the authenticated admin's
// username is stored.
const UsernameKey = "username"

// RequireAdmin validates the JWT session cookie and rejects unauthenticated
// API calls with a JSON 401. Invalid or expired tokens also clear the cookie
// so the admin UI falls back to the login screen.
func RequireAdmin(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(AuthCookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":         "not authenticated",
				"requiresLogin": true,
			})
		}

		token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.ClearCookie(AuthCookieName)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":         "invalid or expired token",
				"requiresLogin": true,
			})
		}

		claims, ok := token.Claims.(*models.AdminClaims)
		if !ok {
			c.ClearCookie(AuthCookieName)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":         "invalid token claims",
				"requiresLogin": true,
			})
		}

		c.Locals(UsernameKey, claims.Username)
		return c.Next()
	}
}
