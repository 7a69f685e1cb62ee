package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"velarias-backend/internal/models"
	"velarias-backend/internal/services"
	"velarias-backend/internal/storage"
)

// UploadHandler exposes the image ingestion pipeline over multipart HTTP.
type UploadHandler struct {
	ingest     *services.IngestService
	production bool
}

// NewUploadHandler creates an UploadHandler. production suppresses
// diagnostic detail in error responses.
func NewUploadHandler(ingest *services.IngestService, production bool) *UploadHandler {
	return &UploadHandler{ingest: ingest, production: production}
}

// UploadImages handles POST /api/upload?type=<category>.
// @Summary Upload and optimize project images
// @Description Accepts repeated multipart "images" fields, optimizes each to display and thumbnail variants and returns their URLs in submission order
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param type query string false "Project category (residential|industrial)"
// @Param images formData file true "Image files (jpeg, jpg, png, gif, webp; max 50MB each)"
// @Success 200 {object} map[string]interface{} "success, paths, optimizedPaths, thumbnailPaths"
// @Failure 400 {object} map[string]interface{} "No files or file over the size limit"
// @Failure 500 {object} map[string]interface{} "Unsupported file type or storage failure"
// @Router /upload [post]
func (h *UploadHandler) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "invalid multipart form: " + err.Error(),
		})
	}

	headers := form.File["images"]
	files := make([]storage.UploadFile, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return h.fail(c, fiber.StatusInternalServerError, errors.Wrap(err, "opening uploaded file"))
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return h.fail(c, fiber.StatusInternalServerError, errors.Wrap(err, "reading uploaded file"))
		}
		files = append(files, storage.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	category := c.Query("type", models.TypeResidential)
	results, err := h.ingest.Ingest(c.Context(), category, files)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFiles):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false, "error": err.Error(),
			})
		case errors.Is(err, services.ErrFileTooLarge):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false, "error": err.Error(),
			})
		case errors.Is(err, services.ErrUnsupportedType):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "error": err.Error(),
			})
		}
		return h.fail(c, fiber.StatusInternalServerError, err)
	}

	paths := make([]string, 0, len(results))
	thumbnails := make([]string, 0, len(results))
	for _, r := range results {
		paths = append(paths, r.DisplayURL)
		thumbnails = append(thumbnails, r.ThumbnailURL)
	}

	// paths and optimizedPaths are intentionally identical, kept as two
	// fields for backward API compatibility with the admin UI.
	return c.JSON(fiber.Map{
		"success":        true,
		"paths":          paths,
		"optimizedPaths": paths,
		"thumbnailPaths": thumbnails,
	})
}

func (h *UploadHandler) fail(c *fiber.Ctx, status int, err error) error {
	log.Error().Err(err).Msg("upload failed")
	body := fiber.Map{"success": false, "error": "error uploading images"}
	if !h.production {
		body["details"] = err.Error()
	}
	return c.Status(status).JSON(body)
}
