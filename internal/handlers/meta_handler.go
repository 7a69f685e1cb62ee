package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"velarias-backend/internal/config"
)

// MetaHandler serves the config and health endpoints.
type MetaHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewMetaHandler(cfg *config.Config, db *gorm.DB) *MetaHandler {
	return &MetaHandler{cfg: cfg, db: db}
}

// GetConfig handles GET /api/config, consumed by the admin panel.
func (h *MetaHandler) GetConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"frontendUrl": h.cfg.FrontendURL,
		"backendUrl":  h.cfg.BackendURL,
		"environment": h.cfg.Environment,
	})
}

// Health handles GET /health with a quick DB ping.
func (h *MetaHandler) Health(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":      "error",
			"environment": h.cfg.Environment,
			"database":    "disconnected",
		})
	}
	return c.JSON(fiber.Map{
		"status":      "ok",
		"environment": h.cfg.Environment,
		"database":    "connected",
	})
}
