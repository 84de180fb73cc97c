package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El SKU se genera en el
// servidor; la imagen llega como archivo multipart y se referencia por ImageRef.
type CreateProductRequest struct {
	Name             string           `json:"name" validate:"required,min=1,max=200"`
	Description      string           `json:"description"`
	Cost             *decimal.Decimal `json:"cost" validate:"required"`
	ProcedureSteps   []string         `json:"procedure"`
	ProcedureEnabled bool             `json:"procedure_enabled"`
	ImageRef         string           `json:"-"`
}

// UpdateProductRequest entrada para actualización parcial: campo ausente
// significa sin cambio, no borrado.
type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string          `json:"description"`
	Cost             *decimal.Decimal `json:"cost"`
	ProcedureSteps   []string         `json:"procedure"`
	ProcedureEnabled *bool            `json:"procedure_enabled"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	OwnerID          string          `json:"owner_id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Cost             decimal.Decimal `json:"cost"`
	ProcedureSteps   []string        `json:"procedure"`
	ProcedureEnabled bool            `json:"procedure_enabled"`
	ImageRef         string          `json:"image_ref,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CustomCatalogDetails atributos denormalizados de la orden origen de una
// entrada del catálogo sintético.
type CustomCatalogDetails struct {
	Color      string `json:"color"`
	Finish     string `json:"finish"`
	Background string `json:"background"`
	Size       string `json:"size"`
	Quantity   int    `json:"quantity"`
	Customer   string `json:"customer"`
}

// CustomCatalogEntry entrada del catálogo público derivado de órdenes
// personalizadas en curso. Se recalcula en cada petición.
type CustomCatalogEntry struct {
	ID           string               `json:"id"`
	SKU          string               `json:"sku"` // CUSTOM- + últimos 6 del id de la orden
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Cost         decimal.Decimal      `json:"cost"`
	ImageRef     string               `json:"image_ref"`
	IsCustom     bool                 `json:"is_custom"`
	OrderDetails CustomCatalogDetails `json:"order_details"`
}
