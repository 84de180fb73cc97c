package http

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/sticker-orders/internal/application/catalog"
	"github.com/tu-usuario/sticker-orders/internal/application/dto"
	"github.com/tu-usuario/sticker-orders/internal/domain"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	uc     *catalog.CatalogUseCase
	images ImageStore
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.CatalogUseCase, images ImageStore) *ProductHandler {
	return &ProductHandler{uc: uc, images: images}
}

// Create godoc
// @Summary      Crear producto (multipart con imagen opcional)
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name               formData  string  true   "Nombre"
// @Param        description        formData  string  false  "Descripción"
// @Param        cost               formData  string  true   "Costo unitario"
// @Param        procedure          formData  string  false  "Pasos del procedimiento (array JSON)"
// @Param        procedure_enabled  formData  bool    false  "Procedimiento habilitado"
// @Param        image              formData  file    false  "Imagen del producto"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, errResp := h.parseCreateForm(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(*errResp)
	}
	out, err := h.uc.Create(GetActor(c), *in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y cost son requeridos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "no se pudo generar un SKU único"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// parseCreateForm lee el formulario multipart (o JSON) de creación de producto
// y sube la imagen si viene adjunta.
func (h *ProductHandler) parseCreateForm(c *fiber.Ctx) (*dto.CreateProductRequest, *dto.ErrorResponse) {
	var in dto.CreateProductRequest
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&in); err != nil {
			return nil, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
		}
		return &in, nil
	}

	in.Name = c.FormValue("name")
	in.Description = c.FormValue("description")
	if costStr := c.FormValue("cost"); costStr != "" {
		cost, err := decimal.NewFromString(costStr)
		if err != nil {
			return nil, &dto.ErrorResponse{Code: "VALIDATION", Message: "cost inválido"}
		}
		in.Cost = &cost
	}
	if proc := c.FormValue("procedure"); proc != "" {
		if err := json.Unmarshal([]byte(proc), &in.ProcedureSteps); err != nil {
			return nil, &dto.ErrorResponse{Code: "VALIDATION", Message: "procedure debe ser un array JSON de strings"}
		}
	}
	in.ProcedureEnabled = c.FormValue("procedure_enabled") == "true"

	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return nil, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer la imagen"}
		}
		defer src.Close()
		ref, err := h.images.Save(c.Context(), file.Filename, src, file.Size, file.Header.Get("Content-Type"))
		if err != nil {
			return nil, &dto.ErrorResponse{Code: "UPLOAD_FAILED", Message: "no se pudo guardar la imagen"}
		}
		in.ImageRef = ref
	}
	return &in, nil
}

// ListPublic godoc
// @Summary      Catálogo público de productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products/public [get]
func (h *ProductHandler) ListPublic(c *fiber.Ctx) error {
	out, err := h.uc.ListPublic()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Listar mis productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListOwn(GetActor(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto del catálogo público por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/public/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetPublicByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (parcial, solo el dueño)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetActor(c), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "solo el dueño puede actualizar el producto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar producto (solo el dueño)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      204  "Sin contenido"
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(GetActor(c), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "solo el dueño puede borrar el producto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CustomShowcase godoc
// @Summary      Catálogo público derivado de órdenes personalizadas en curso
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.CustomCatalogEntry
// @Router       /api/products/custom-orders [get]
func (h *ProductHandler) CustomShowcase(c *fiber.Ctx) error {
	out, err := h.uc.CustomShowcase()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
