package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un sticker del catálogo de un usuario.
// SKU es único por (SKU, OwnerID); solo el dueño puede mutar o borrar el producto.
type Product struct {
	ID               string
	OwnerID          string
	SKU              string
	Name             string
	Description      string
	Cost             decimal.Decimal // costo unitario; también es el precio usado en totales de órdenes
	ProcedureSteps   []string        // pasos de producción, en orden
	ProcedureEnabled bool
	ImageRef         string // ruta estable en el almacén de imágenes (ej. uploads/imagen-...)
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
