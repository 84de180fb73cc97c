package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/sticker-orders/internal/application/dto"
	"github.com/tu-usuario/sticker-orders/internal/infrastructure/storage"
)

// UploadsHandler sirve las imágenes subidas desde el almacén de objetos.
type UploadsHandler struct {
	images ImageStore
}

// NewUploadsHandler construye el handler.
func NewUploadsHandler(images ImageStore) *UploadsHandler {
	return &UploadsHandler{images: images}
}

// Serve godoc
// @Summary      Servir imagen subida
// @Tags         uploads
// @Produce      octet-stream
// @Param        key  path  string  true  "Clave de la imagen"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /uploads/{key} [get]
func (h *UploadsHandler) Serve(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_KEY", Message: "clave requerida"})
	}
	obj, contentType, err := h.images.Open(c.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "imagen no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.SendStream(obj)
}
