package handlers

import (
	"errors"
	"fmt"
	"log"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UploadField is the multipart field carrying the image.
const UploadField = "product"

// ImageHandler handles image upload and retrieval.
type ImageHandler struct {
	service *services.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(service *services.ImageService) *ImageHandler {
	return &ImageHandler{
		service: service,
	}
}

// RegisterRoutes registers the image routes with the Fiber app.
func (h *ImageHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", h.HandleUpload)
	router.Get("/image/:filename", h.HandleGetImage)
	router.Get("/images/:filename", h.HandleGetImage)
}

// HandleUpload stores the multipart file and returns its public path.
func (h *ImageHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile(UploadField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": 0,
			"message": fmt.Sprintf("Multipart field '%s' is required", UploadField),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	name, err := h.service.Upload(c.UserContext(), UploadField, fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType), file, fileHeader.Size)
	if err != nil {
		return fmt.Errorf("upload %s: %w", fileHeader.Filename, err)
	}
	log.Printf("Stored upload %s as %s", fileHeader.Filename, name)

	return c.JSON(fiber.Map{
		"success":   1,
		"image_url": "/image/" + name,
	})
}

// HandleGetImage streams a stored image. Missing files and files that are
// not images both answer 404.
func (h *ImageHandler) HandleGetImage(c *fiber.Ctx) error {
	obj, err := h.service.Open(c.UserContext(), c.Params("filename"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrImageNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": 0, "message": "File not found"})
		case errors.Is(err, services.ErrNotImage):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": 0, "message": "Not an image"})
		}
		return fmt.Errorf("get image: %w", err)
	}

	c.Set(fiber.HeaderContentType, obj.ContentType)
	return c.SendStream(obj.Body, int(obj.Size))
}
