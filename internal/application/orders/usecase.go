// Package orders implementa el motor de ciclo de vida de las órdenes: alta,
// listados y las transiciones del flujo de revisión con sus reglas de acceso.
package orders

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/sticker-orders/internal/application/dto"
	"github.com/tu-usuario/sticker-orders/internal/domain"
	"github.com/tu-usuario/sticker-orders/internal/domain/entity"
	"github.com/tu-usuario/sticker-orders/internal/domain/repository"
)

// OrderUseCase casos de uso de órdenes.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, productRepo: productRepo, userRepo: userRepo}
}

// Create coloca una orden del actor con líneas de catálogo y/o personalizadas.
// La orden nace en placed. Items vacíos o cantidades < 1 rechazan sin escribir.
func (uc *OrderUseCase) Create(actor entity.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items es requerido", domain.ErrInvalidInput)
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		item, err := buildItem(it)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return uc.place(actor, items, in.Notes)
}

// CreateCustom coloca una orden de un único sticker personalizado (flujo del
// formulario con imagen). Sin precio indicado aplica el precio base.
func (uc *OrderUseCase) CreateCustom(actor entity.Actor, in dto.CreateCustomOrderRequest) (*dto.OrderResponse, error) {
	custom := toCustomItem(in.Custom)
	custom.ImageRef = in.ImageRef
	item, err := entity.NewCustomItem(custom, in.Quantity)
	if err != nil {
		return nil, err
	}
	return uc.place(actor, []entity.OrderItem{item}, in.Notes)
}

func (uc *OrderUseCase) place(actor entity.Actor, items []entity.OrderItem, notes string) (*dto.OrderResponse, error) {
	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		Items:     items,
		Status:    entity.StatusPlaced,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return uc.toResponse(order)
}

// ListMine lista las órdenes del actor, más recientes primero, con las
// referencias de producto resueltas.
func (uc *OrderUseCase) ListMine(actor entity.Actor) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByUser(actor.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(orders)
}

// ReviewQueue lista todas las órdenes para revisión de ventas, más recientes
// primero, con producto y solicitante resueltos. El acceso por rol se exige en
// la ruta (ReviewerRoles).
func (uc *OrderUseCase) ReviewQueue() ([]dto.ReviewQueueEntry, error) {
	orders, err := uc.orderRepo.ListAll()
	if err != nil {
		return nil, err
	}
	entries := make([]dto.ReviewQueueEntry, 0, len(orders))
	for _, order := range orders {
		resp, err := uc.toResponse(order)
		if err != nil {
			return nil, err
		}
		entry := dto.ReviewQueueEntry{OrderResponse: *resp}
		if user, uErr := uc.userRepo.GetByID(order.UserID); uErr == nil && user != nil {
			entry.Requester = &dto.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Review aplica la revisión de ventas: fija reviewed_by_sales y registra
// revisor, comentario, nombre visible y timestamp. Solo exige que la orden
// exista; la revisión puede re-aplicarse sobre cualquier estado.
func (uc *OrderUseCase) Review(actor entity.Actor, orderID string, in dto.ReviewOrderRequest) (*dto.OrderResponse, error) {
	if !actor.HasRole(entity.ReviewerRoles...) {
		return nil, domain.ErrForbidden
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	reviewedBy := in.ReviewedBy
	if reviewedBy == "" {
		if reviewer, uErr := uc.userRepo.GetByID(actor.ID); uErr == nil && reviewer != nil {
			reviewedBy = reviewer.Name
		}
	}
	patch := repository.ReviewPatch{
		SalesReviewerID: actor.ID,
		ReviewComment:   in.ReviewComment,
		ReviewedBy:      reviewedBy,
		ReviewedAt:      time.Now(),
	}
	found, err := uc.orderRepo.SetReview(orderID, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return uc.reload(orderID)
}

// Confirm es la confirmación del dueño tras la revisión de ventas. Solo el
// dueño puede confirmar y solo desde reviewed_by_sales. La escritura es un
// compare-and-set sobre el estado: si otra petición lo movió primero, no se
// aplica nada y se reporta conflicto de estado.
func (uc *OrderUseCase) Confirm(actor entity.Actor, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.UserID != actor.ID {
		return nil, domain.ErrUnauthorized
	}
	if !order.Status.CanTransitionTo(entity.StatusUserConfirmed) {
		return nil, domain.ErrStateConflict
	}
	ok, err := uc.orderRepo.Transition(orderID, order.Status, entity.StatusUserConfirmed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrStateConflict
	}
	return uc.reload(orderID)
}

// SendToProduction mueve una orden confirmada al estado terminal. Restringido
// a ReviewerRoles y al estado user_confirmed, con compare-and-set.
func (uc *OrderUseCase) SendToProduction(actor entity.Actor, orderID string) (*dto.OrderResponse, error) {
	if !actor.HasRole(entity.ProductionRoles...) {
		return nil, domain.ErrForbidden
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !order.Status.CanTransitionTo(entity.StatusSentToProduction) {
		return nil, domain.ErrStateConflict
	}
	ok, err := uc.orderRepo.Transition(orderID, order.Status, entity.StatusSentToProduction)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrStateConflict
	}
	return uc.reload(orderID)
}

func (uc *OrderUseCase) reload(orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(order)
}

func buildItem(in dto.CreateOrderItemRequest) (entity.OrderItem, error) {
	if in.Custom != nil {
		return entity.NewCustomItem(toCustomItem(*in.Custom), in.Quantity)
	}
	return entity.NewProductItem(in.ProductID, in.Quantity)
}

func toCustomItem(in dto.CustomOrderItemRequest) entity.CustomItem {
	custom := entity.CustomItem{
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Finish:      in.Finish,
		Background:  in.Background,
		Size:        in.Size,
	}
	if in.UnitPrice != nil {
		custom.UnitPrice = *in.UnitPrice
	}
	return custom
}

// resolveProducts carga los productos referenciados por las líneas de la orden.
// Una referencia que no resuelve se omite (la vista la trata como costo cero).
func (uc *OrderUseCase) resolveProducts(order *entity.Order) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product)
	for _, item := range order.Items {
		if item.IsCustom() || item.ProductID == "" {
			continue
		}
		if _, seen := products[item.ProductID]; seen {
			continue
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			products[item.ProductID] = product
		}
	}
	return products, nil
}

func (uc *OrderUseCase) toResponse(order *entity.Order) (*dto.OrderResponse, error) {
	products, err := uc.resolveProducts(order)
	if err != nil {
		return nil, err
	}
	return buildOrderResponse(order, products), nil
}

func (uc *OrderUseCase) toResponses(orders []*entity.Order) ([]dto.OrderResponse, error) {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp, err := uc.toResponse(order)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// buildOrderResponse arma la respuesta con subtotales y total derivados del
// mismo cálculo puro del dominio, para que toda vista muestre lo mismo.
func buildOrderResponse(order *entity.Order, products map[string]*entity.Product) *dto.OrderResponse {
	resolve := costResolver(products)
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		out := dto.OrderItemResponse{
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(resolve),
		}
		if item.IsCustom() {
			out.Custom = &dto.CustomItemResponse{
				Name:        item.Custom.Name,
				Description: item.Custom.Description,
				Color:       item.Custom.Color,
				Finish:      item.Custom.Finish,
				Background:  item.Custom.Background,
				Size:        item.Custom.Size,
				UnitPrice:   item.Custom.UnitPrice,
				ImageRef:    item.Custom.ImageRef,
			}
		} else if product, ok := products[item.ProductID]; ok {
			out.Product = &dto.ProductResponse{
				ID:               product.ID,
				OwnerID:          product.OwnerID,
				SKU:              product.SKU,
				Name:             product.Name,
				Description:      product.Description,
				Cost:             product.Cost,
				ProcedureSteps:   product.ProcedureSteps,
				ProcedureEnabled: product.ProcedureEnabled,
				ImageRef:         product.ImageRef,
				CreatedAt:        product.CreatedAt,
				UpdatedAt:        product.UpdatedAt,
			}
		}
		items = append(items, out)
	}
	return &dto.OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		Items:           items,
		Status:          string(order.Status),
		Notes:           order.Notes,
		SalesReviewerID: order.SalesReviewerID,
		ReviewComment:   order.ReviewComment,
		ReviewedBy:      order.ReviewedBy,
		ReviewedAt:      order.ReviewedAt,
		Total:           order.Total(resolve),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func costResolver(products map[string]*entity.Product) entity.CostResolver {
	return func(productID string) (decimal.Decimal, bool) {
		product, ok := products[productID]
		if !ok {
			return decimal.Zero, false
		}
		return product.Cost, true
	}
}
