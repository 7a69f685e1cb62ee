package handlers

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"velarias-backend/internal/config"
	"velarias-backend/internal/middleware"
	"velarias-backend/internal/models"
)

const (
	sessionTTL  = 24 * time.Hour
	rememberTTL = 30 * 24 * time.Hour
)

// AuthHandler implements the admin login/logout endpoints. There is a single
// admin account configured from the environment; sessions are JWTs in an
// HttpOnly cookie.
type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "invalid request format",
		})
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		log.Warn().Str("username", req.Username).Str("ip", c.IP()).Msg("failed login attempt")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false, "error": "invalid username or password",
		})
	}

	ttl := sessionTTL
	if req.Remember {
		ttl = rememberTTL
	}
	claims := models.AdminClaims{
		Username: req.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		log.Error().Err(err).Msg("signing session token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": "could not create session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{"success": true, "message": "login successful"})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(middleware.AuthCookieName)
	return c.JSON(fiber.Map{"success": true, "message": "logout successful"})
}
