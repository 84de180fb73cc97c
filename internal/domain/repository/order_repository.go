package repository

import (
	"time"

	"github.com/tu-usuario/sticker-orders/internal/domain/entity"
)

// ReviewPatch son los campos que fija la transición de revisión de ventas.
type ReviewPatch struct {
	SalesReviewerID string
	ReviewComment   string
	ReviewedBy      string
	ReviewedAt      time.Time
}

// OrderRepository define el puerto de persistencia para Order (DIP).
// No existe Delete: las órdenes nunca se borran.
type OrderRepository interface {
	Create(order *entity.Order) error
	// GetByID devuelve (nil, nil) cuando la orden no existe.
	GetByID(id string) (*entity.Order, error)
	// ListByUser lista las órdenes de un usuario, más recientes primero.
	ListByUser(userID string) ([]*entity.Order, error)
	// ListAll lista todas las órdenes (cola de revisión), más recientes primero.
	ListAll() ([]*entity.Order, error)
	// ListCustomInStatuses lista órdenes con al menos una línea personalizada
	// cuyo estado esté en statuses, más recientes primero (catálogo sintético).
	ListCustomInStatuses(statuses []entity.OrderStatus) ([]*entity.Order, error)

	// SetReview aplica la revisión de ventas sin precondición de estado
	// (la revisión puede re-aplicarse). Devuelve false si la orden no existe.
	SetReview(id string, patch ReviewPatch) (bool, error)

	// Transition fija el estado en un único UPDATE condicional comparando el
	// estado actual (compare-and-set). Devuelve false si la orden no está en
	// from al momento del write; en ese caso no se aplica ninguna mutación.
	Transition(id string, from, to entity.OrderStatus) (bool, error)
}
