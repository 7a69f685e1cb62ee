package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velarias-backend/internal/config"
	"velarias-backend/internal/middleware"
)

func newAuthApp() *fiber.App {
	cfg := &config.Config{
		AdminUsername: "admin",
		AdminPassword: "hunter2",
		JWTSecret:     "test-secret-that-is-long-enough-123",
		Environment:   "test",
	}
	h := NewAuthHandler(cfg)
	app := fiber.New()
	app.Post("/api/login", h.Login)
	app.Post("/api/logout", h.Logout)
	return app
}

func postJSON(t *testing.T, app *fiber.App, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.AuthCookieName {
			return c
		}
	}
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/api/login", map[string]interface{}{
		"username": "admin", "password": "hunter2",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "login must set the auth cookie")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Expires.Before(time.Now().Add(25*time.Hour)))
}

func TestLoginRememberExtendsSession(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/api/login", map[string]interface{}{
		"username": "admin", "password": "hunter2", "remember": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Expires.After(time.Now().Add(29*24*time.Hour)))
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/api/login", map[string]interface{}{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/api/logout", map[string]interface{}{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Expires.Before(time.Now()), "logout must expire the cookie")
}
