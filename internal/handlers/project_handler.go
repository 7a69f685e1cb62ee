package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"velarias-backend/internal/models"
	"velarias-backend/internal/services"
)

// ProjectHandler defines handlers for managing project records.
type ProjectHandler struct {
	service *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler with the given service.
func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListProjects handles GET /api/projects.
// @Summary List all projects grouped by site
// @Description Returns residential and industrial projects, newest first
// @Tags projects
// @Produce json
// @Success 200 {object} map[string]interface{} "residentialProjects and industrialProjects arrays"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	residential, industrial, err := h.service.ListGrouped()
	if err != nil {
		log.Error().Err(err).Msg("listing projects")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if residential == nil {
		residential = []models.Project{}
	}
	if industrial == nil {
		industrial = []models.Project{}
	}
	return c.JSON(fiber.Map{
		"residentialProjects": residential,
		"industrialProjects":  industrial,
	})
}

// CreateProject handles POST /api/projects?type=<type>.
// @Summary Create a new project
// @Tags projects
// @Accept json
// @Produce json
// @Param type query string false "Project type (residential|industrial)"
// @Param project body models.Project true "Project data"
// @Success 200 {object} map[string]interface{} "success and the created project"
// @Failure 400 {object} map[string]interface{} "Missing required field or empty gallery"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request format: " + err.Error(),
		})
	}

	created, err := h.service.Create(c.Query("type"), &project)
	if err != nil {
		if errors.Is(err, services.ErrMissingField) || errors.Is(err, services.ErrEmptyGallery) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Error().Err(err).Msg("creating project")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true, "project": created})
}

// UpdateProject handles PUT /api/projects/:id. Absent fields keep their
// stored values.
// @Summary Update an existing project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param project body models.Project true "Fields to update"
// @Success 200 {object} map[string]interface{} "success and the updated project"
// @Failure 400 {object} map[string]interface{} "Invalid ID or empty gallery"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid project id",
		})
	}

	var patch models.Project
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request format: " + err.Error(),
		})
	}

	updated, err := h.service.Update(uint(id), &patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "project not found",
			})
		}
		if errors.Is(err, services.ErrEmptyGallery) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Error().Err(err).Int("id", id).Msg("updating project")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true, "project": updated})
}

// DeleteProject handles DELETE /api/projects/:id.
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} map[string]interface{} "success"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid project id",
		})
	}

	if err := h.service.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "project not found",
			})
		}
		log.Error().Err(err).Int("id", id).Msg("deleting project")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
