package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/sticker-orders/internal/domain"
)

// OrderStatus es el estado de una orden dentro del flujo de revisión.
// La progresión es lineal y monótona: no hay saltos, regresiones ni rama de
// rechazo (toda orden revisada se asume aceptada).
type OrderStatus string

const (
	StatusPlaced           OrderStatus = "placed"
	StatusReviewedBySales  OrderStatus = "reviewed_by_sales"
	StatusUserConfirmed    OrderStatus = "user_confirmed"
	StatusSentToProduction OrderStatus = "sent_to_production" // terminal
)

// statusOrder define la posición de cada estado en la progresión lineal.
var statusOrder = map[OrderStatus]int{
	StatusPlaced:           0,
	StatusReviewedBySales:  1,
	StatusUserConfirmed:    2,
	StatusSentToProduction: 3,
}

// Valid indica si el estado pertenece al conjunto soportado.
func (s OrderStatus) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// CanTransitionTo indica si next es exactamente el paso siguiente de s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return statusOrder[next] == statusOrder[s]+1
}

// Roles habilitados por transición. Confirmar la orden no usa rol: se valida
// por igualdad directa con el dueño (Order.UserID).
var (
	ReviewerRoles   = []string{RoleSales, RoleAdmin}
	ProductionRoles = []string{RoleSales, RoleAdmin}
)

// DefaultCustomUnitPrice es el precio base de un sticker personalizado cuando
// el cliente no indica uno.
var DefaultCustomUnitPrice = decimal.NewFromInt(10)

// CustomItem describe un sticker a medida dentro de una orden (sin producto
// de catálogo asociado).
type CustomItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Color       string          `json:"color"`
	Finish      string          `json:"finish"`
	Background  string          `json:"background"`
	Size        string          `json:"size"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ImageRef    string          `json:"image_ref,omitempty"`
}

// OrderItem es una línea de orden: referencia a producto de catálogo XOR item
// personalizado. Usar NewProductItem / NewCustomItem; Validate garantiza que
// exactamente una variante está poblada y Quantity >= 1.
type OrderItem struct {
	ProductID string      `json:"product_id,omitempty"`
	Custom    *CustomItem `json:"custom,omitempty"`
	Quantity  int         `json:"quantity"`
}

// NewProductItem construye una línea que referencia un producto del catálogo.
func NewProductItem(productID string, quantity int) (OrderItem, error) {
	item := OrderItem{ProductID: productID, Quantity: quantity}
	if err := item.Validate(); err != nil {
		return OrderItem{}, err
	}
	return item, nil
}

// NewCustomItem construye una línea personalizada. Si el precio unitario viene
// en cero se aplica DefaultCustomUnitPrice.
func NewCustomItem(custom CustomItem, quantity int) (OrderItem, error) {
	if custom.UnitPrice.IsZero() {
		custom.UnitPrice = DefaultCustomUnitPrice
	}
	item := OrderItem{Custom: &custom, Quantity: quantity}
	if err := item.Validate(); err != nil {
		return OrderItem{}, err
	}
	return item, nil
}

// IsCustom indica si la línea es personalizada.
func (i OrderItem) IsCustom() bool { return i.Custom != nil }

// Validate verifica el invariante estructural de la unión: exactamente una
// variante poblada y cantidad mínima 1.
func (i OrderItem) Validate() error {
	if i.Quantity < 1 {
		return fmt.Errorf("%w: quantity debe ser al menos 1", domain.ErrInvalidInput)
	}
	hasProduct := i.ProductID != ""
	hasCustom := i.Custom != nil
	if hasProduct == hasCustom {
		return fmt.Errorf("%w: la línea debe tener product_id o custom, no ambos ni ninguno", domain.ErrInvalidInput)
	}
	return nil
}

// Order es una orden de stickers de un usuario. Se crea en placed y avanza
// solo mediante las transiciones del flujo de revisión; nunca se borra.
type Order struct {
	ID              string
	UserID          string
	Items           []OrderItem
	Status          OrderStatus
	Notes           string
	SalesReviewerID string     // id del actor de ventas que revisó
	ReviewComment   string     // comentario libre de la revisión
	ReviewedBy      string     // nombre visible del revisor
	ReviewedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate verifica los invariantes de creación: al menos una línea y cada
// línea válida.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: la orden debe tener al menos un item", domain.ErrInvalidInput)
	}
	for idx, item := range o.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}
	return nil
}

// HasCustomItem indica si alguna línea de la orden es personalizada.
func (o *Order) HasCustomItem() bool {
	for _, item := range o.Items {
		if item.IsCustom() {
			return true
		}
	}
	return false
}

// FirstCustomItem devuelve la primera línea personalizada de la orden.
func (o *Order) FirstCustomItem() (OrderItem, bool) {
	for _, item := range o.Items {
		if item.IsCustom() {
			return item, true
		}
	}
	return OrderItem{}, false
}

// CostResolver resuelve el costo unitario de un producto referenciado.
// El segundo valor indica si el producto existe.
type CostResolver func(productID string) (decimal.Decimal, bool)

// Total calcula el total de la orden: suma de precio unitario × cantidad por
// línea. Para líneas personalizadas el precio es Custom.UnitPrice; para
// referencias de catálogo es el costo del producto resuelto (cero si la
// referencia no resuelve, igual que la vista original). Es una función pura
// del registro más los productos resueltos y debe usarse en todo punto donde
// se muestre el total.
func (o *Order) Total(resolve CostResolver) decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal(resolve))
	}
	return total
}

// Subtotal calcula precio unitario × cantidad de una línea.
func (i OrderItem) Subtotal(resolve CostResolver) decimal.Decimal {
	qty := decimal.NewFromInt(int64(i.Quantity))
	if i.IsCustom() {
		return i.Custom.UnitPrice.Mul(qty)
	}
	cost, ok := resolve(i.ProductID)
	if !ok {
		return decimal.Zero
	}
	return cost.Mul(qty)
}
