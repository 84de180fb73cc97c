package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/sticker-orders/internal/domain"
	"github.com/tu-usuario/sticker-orders/internal/domain/entity"
	"github.com/tu-usuario/sticker-orders/internal/domain/repository"
)

// ReceiptLine línea de detalle lista para el PDF, con el nombre ya resuelto.
type ReceiptLine struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptGenerator puerto del generador PDF del recibo de orden.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order, owner *entity.User, lines []ReceiptLine, total decimal.Decimal) ([]byte, error)
}

// ReceiptUseCase genera el recibo PDF de una orden. Puede descargarlo el dueño
// de la orden o un actor de ventas/admin.
type ReceiptUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	generator   ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		generator:   generator,
	}
}

// DownloadReceipt recupera la orden, resuelve productos y dueño, y genera el
// PDF. Retorna (pdf, filename, nil); domain.ErrNotFound si la orden no existe;
// domain.ErrUnauthorized si el actor no es el dueño ni ventas/admin.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, actor entity.Actor, orderID string) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	if order.UserID != actor.ID && !actor.HasRole(entity.ReviewerRoles...) {
		return nil, "", domain.ErrUnauthorized
	}

	owner, err := uc.userRepo.GetByID(order.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener dueño de la orden: %w", err)
	}
	if owner == nil {
		return nil, "", domain.ErrNotFound
	}

	products := make(map[string]*entity.Product)
	for _, item := range order.Items {
		if item.IsCustom() {
			continue
		}
		if _, seen := products[item.ProductID]; seen {
			continue
		}
		if product, pErr := uc.productRepo.GetByID(item.ProductID); pErr == nil && product != nil {
			products[item.ProductID] = product
		}
	}
	resolve := costResolver(products)

	lines := make([]ReceiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		line := ReceiptLine{
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(resolve),
		}
		if item.IsCustom() {
			line.Description = item.Custom.Name
			if line.Description == "" {
				line.Description = "Sticker personalizado"
			}
			line.UnitPrice = item.Custom.UnitPrice
		} else {
			line.Description = "Producto " + item.ProductID // fallback
			if product, ok := products[item.ProductID]; ok {
				line.Description = product.Name
				line.UnitPrice = product.Cost
			}
		}
		lines = append(lines, line)
	}

	pdfBytes, err = uc.generator.GenerateOrderReceipt(ctx, order, owner, lines, order.Total(resolve))
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("orden_%s.pdf", shortID(order.ID))
	return pdfBytes, filename, nil
}

// shortID devuelve los últimos 6 caracteres del id de la orden.
func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
