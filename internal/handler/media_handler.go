package handler

import (
	"github.com/gofiber/fiber/v2"

	"forum-backend/internal/middleware"
	"forum-backend/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload stores an image and returns its public URL. The caller attaches
// the URL to whatever it is creating (e.g. a topic's image_url).
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Cannot read file")
	}
	defer file.Close()

	url, err := h.mediaService.Upload(c.Context(), fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
