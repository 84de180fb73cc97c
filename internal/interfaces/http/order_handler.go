package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/sticker-orders/internal/application/dto"
	"github.com/tu-usuario/sticker-orders/internal/application/orders"
	"github.com/tu-usuario/sticker-orders/internal/domain"
)

// OrderHandler maneja las peticiones HTTP de órdenes y su flujo de revisión.
type OrderHandler struct {
	uc      *orders.OrderUseCase
	receipt *orders.ReceiptUseCase
	images  ImageStore
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, receipt *orders.ReceiptUseCase, images ImageStore) *OrderHandler {
	return &OrderHandler{uc: uc, receipt: receipt, images: images}
}

// orderError traduce los errores de dominio del flujo de órdenes a HTTP.
// El conflicto de estado responde 400 con código propio para que el cliente
// lo distinga de un error de validación.
func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrStateConflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "STATE_CONFLICT", Message: "la orden no está en el estado requerido para esta transición"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "operación reservada al dueño de la orden"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Colocar orden (líneas de catálogo y/o personalizadas)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Líneas y notas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetActor(c), in)
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateCustom godoc
// @Summary      Colocar orden de un sticker personalizado (multipart con imagen)
// @Tags         orders
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name        formData  string  true   "Nombre del sticker"
// @Param        description formData  string  false  "Descripción"
// @Param        color       formData  string  false  "Color"
// @Param        finish      formData  string  false  "Acabado"
// @Param        background  formData  string  false  "Fondo"
// @Param        size        formData  string  false  "Tamaño"
// @Param        unit_price  formData  string  false  "Precio unitario (por defecto el precio base)"
// @Param        quantity    formData  int     true   "Cantidad"
// @Param        notes       formData  string  false  "Notas"
// @Param        image       formData  file    false  "Diseño del sticker"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders/custom [post]
func (h *OrderHandler) CreateCustom(c *fiber.Ctx) error {
	in := dto.CreateCustomOrderRequest{
		Custom: dto.CustomOrderItemRequest{
			Name:        c.FormValue("name"),
			Description: c.FormValue("description"),
			Color:       c.FormValue("color"),
			Finish:      c.FormValue("finish"),
			Background:  c.FormValue("background"),
			Size:        c.FormValue("size"),
		},
		Notes: c.FormValue("notes"),
	}
	if priceStr := c.FormValue("unit_price"); priceStr != "" {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unit_price inválido"})
		}
		in.Custom.UnitPrice = &price
	}
	qtyStr := c.FormValue("quantity")
	if qtyStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity es requerido"})
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity inválido"})
	}
	in.Quantity = qty

	if file, fErr := c.FormFile("image"); fErr == nil && file != nil {
		src, oErr := file.Open()
		if oErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer la imagen"})
		}
		defer src.Close()
		ref, sErr := h.images.Save(c.Context(), file.Filename, src, file.Size, file.Header.Get("Content-Type"))
		if sErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPLOAD_FAILED", Message: "no se pudo guardar la imagen"})
		}
		in.ImageRef = ref
	}

	out, err := h.uc.CreateCustom(GetActor(c), in)
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Listar mis órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/my [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(GetActor(c))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// ReviewQueue godoc
// @Summary      Cola de revisión de ventas (todas las órdenes)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReviewQueueEntry
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/review-queue [get]
func (h *OrderHandler) ReviewQueue(c *fiber.Ctx) error {
	out, err := h.uc.ReviewQueue()
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// Review godoc
// @Summary      Aplicar revisión de ventas a una orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ReviewOrderRequest  true  "Comentario y nombre del revisor"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/review [put]
func (h *OrderHandler) Review(c *fiber.Ctx) error {
	var in dto.ReviewOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Review(GetActor(c), c.Params("id"), in)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmación del dueño tras la revisión de ventas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse  "STATE_CONFLICT si la orden no está revisada"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/user-confirm [put]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(GetActor(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// SendToProduction godoc
// @Summary      Enviar orden confirmada a producción (estado terminal)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse  "STATE_CONFLICT si la orden no está confirmada"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/send-to-production [put]
func (h *OrderHandler) SendToProduction(c *fiber.Ctx) error {
	out, err := h.uc.SendToProduction(GetActor(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar recibo PDF de la orden
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    file
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receipt.DownloadReceipt(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
