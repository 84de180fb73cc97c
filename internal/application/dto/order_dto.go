package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest línea de orden entrante: product_id XOR custom.
type CreateOrderItemRequest struct {
	ProductID string                  `json:"product_id"`
	Custom    *CustomOrderItemRequest `json:"custom"`
	Quantity  int                     `json:"quantity" validate:"required,min=1"`
}

// CustomOrderItemRequest atributos de un sticker personalizado.
// UnitPrice nulo aplica el precio base del servidor.
type CustomOrderItemRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Color       string           `json:"color"`
	Finish      string           `json:"finish"`
	Background  string           `json:"background"`
	Size        string           `json:"size"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest entrada para colocar una orden.
type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items" validate:"required,min=1"`
	Notes string                   `json:"notes"`
}

// CreateCustomOrderRequest entrada para colocar una orden de un solo item
// personalizado (los campos llegan como form multipart; la imagen por ImageRef).
type CreateCustomOrderRequest struct {
	Custom   CustomOrderItemRequest
	Quantity int
	Notes    string
	ImageRef string
}

// ReviewOrderRequest entrada de la revisión de ventas.
type ReviewOrderRequest struct {
	ReviewComment string `json:"review_comment"`
	ReviewedBy    string `json:"reviewed_by"`
}

// CustomItemResponse salida de una línea personalizada.
type CustomItemResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Color       string          `json:"color"`
	Finish      string          `json:"finish"`
	Background  string          `json:"background"`
	Size        string          `json:"size"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ImageRef    string          `json:"image_ref,omitempty"`
}

// OrderItemResponse salida de una línea con la referencia de producto resuelta.
type OrderItemResponse struct {
	Product  *ProductResponse    `json:"product,omitempty"`
	Custom   *CustomItemResponse `json:"custom,omitempty"`
	Quantity int                 `json:"quantity"`
	Subtotal decimal.Decimal     `json:"subtotal"`
}

// OrderResponse salida de una orden con total derivado.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Items           []OrderItemResponse `json:"items"`
	Status          string              `json:"status"`
	Notes           string              `json:"notes,omitempty"`
	SalesReviewerID string              `json:"sales_reviewer_id,omitempty"`
	ReviewComment   string              `json:"review_comment,omitempty"`
	ReviewedBy      string              `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time          `json:"reviewed_at,omitempty"`
	Total           decimal.Decimal     `json:"total"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ReviewQueueEntry orden de la cola de revisión con el solicitante resuelto.
type ReviewQueueEntry struct {
	OrderResponse
	Requester *UserSummary `json:"requester,omitempty"`
}
