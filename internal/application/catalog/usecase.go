// Package catalog implementa el catálogo de productos: CRUD con dueño, vista
// pública global y el catálogo sintético derivado de órdenes personalizadas.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/sticker-orders/internal/application/dto"
	"github.com/tu-usuario/sticker-orders/internal/domain"
	"github.com/tu-usuario/sticker-orders/internal/domain/entity"
	"github.com/tu-usuario/sticker-orders/internal/domain/repository"
	"github.com/tu-usuario/sticker-orders/pkg/sku"
)

// showcasePlaceholderImage se usa cuando la orden personalizada no subió imagen.
const showcasePlaceholderImage = "uploads/custom-placeholder.png"

// skuAttempts reintentos ante colisión de SKU con el mismo dueño.
const skuAttempts = 5

// CatalogUseCase casos de uso del catálogo de productos.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, orderRepo: orderRepo, userRepo: userRepo}
}

// Create crea un producto del actor con SKU generado por el servidor.
// Requiere name y cost; devuelve ErrInvalidInput si faltan.
func (uc *CatalogUseCase) Create(actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Cost == nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		OwnerID:          actor.ID,
		Name:             in.Name,
		Description:      in.Description,
		Cost:             *in.Cost,
		ProcedureSteps:   in.ProcedureSteps,
		ProcedureEnabled: in.ProcedureEnabled,
		ImageRef:         in.ImageRef,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := domain.ErrDuplicate
	for i := 0; i < skuAttempts && err == domain.ErrDuplicate; i++ {
		product.SKU = sku.New()
		if existing, _ := uc.productRepo.GetByOwnerAndSKU(actor.ID, product.SKU); existing != nil {
			continue
		}
		err = uc.productRepo.Create(product)
	}
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListOwn lista los productos del actor, más recientes primero.
func (uc *CatalogUseCase) ListOwn(actor entity.Actor) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListByOwner(actor.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListPublic lista todos los productos sin filtrar por dueño, más recientes
// primero. El catálogo es global a propósito: cada producto creado queda
// visible para todos los usuarios.
func (uc *CatalogUseCase) ListPublic() ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// GetPublicByID obtiene un producto del catálogo público.
func (uc *CatalogUseCase) GetPublicByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial: campo ausente queda sin cambio.
// Solo el dueño puede actualizar; devuelve ErrUnauthorized en caso contrario.
func (uc *CatalogUseCase) Update(actor entity.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.OwnerID != actor.ID {
		return nil, domain.ErrUnauthorized
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.ProcedureSteps != nil {
		product.ProcedureSteps = in.ProcedureSteps
	}
	if in.ProcedureEnabled != nil {
		product.ProcedureEnabled = *in.ProcedureEnabled
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete borra un producto del dueño.
func (uc *CatalogUseCase) Delete(actor entity.Actor, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.OwnerID != actor.ID {
		return domain.ErrUnauthorized
	}
	return uc.productRepo.Delete(id)
}

// showcaseStatuses: órdenes aún no enviadas a producción.
var showcaseStatuses = []entity.OrderStatus{
	entity.StatusPlaced,
	entity.StatusReviewedBySales,
	entity.StatusUserConfirmed,
}

// CustomShowcase deriva el catálogo público de inspiración desde las órdenes
// personalizadas en curso. Se recalcula en cada petición; no se materializa.
func (uc *CatalogUseCase) CustomShowcase() ([]dto.CustomCatalogEntry, error) {
	orders, err := uc.orderRepo.ListCustomInStatuses(showcaseStatuses)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.CustomCatalogEntry, 0, len(orders))
	for _, order := range orders {
		item, ok := order.FirstCustomItem()
		if !ok {
			continue
		}
		customer := ""
		if user, uErr := uc.userRepo.GetByID(order.UserID); uErr == nil && user != nil {
			customer = user.Name
		}
		image := item.Custom.ImageRef
		if image == "" {
			image = showcasePlaceholderImage
		}
		entries = append(entries, dto.CustomCatalogEntry{
			ID:          order.ID,
			SKU:         "CUSTOM-" + shortID(order.ID),
			Name:        item.Custom.Name,
			Description: item.Custom.Description,
			Cost:        item.Custom.UnitPrice,
			ImageRef:    image,
			IsCustom:    true,
			OrderDetails: dto.CustomCatalogDetails{
				Color:      item.Custom.Color,
				Finish:     item.Custom.Finish,
				Background: item.Custom.Background,
				Size:       item.Custom.Size,
				Quantity:   item.Quantity,
				Customer:   customer,
			},
		})
	}
	return entries, nil
}

// shortID devuelve los últimos 6 caracteres del id de la orden.
func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		OwnerID:          p.OwnerID,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		Cost:             p.Cost,
		ProcedureSteps:   p.ProcedureSteps,
		ProcedureEnabled: p.ProcedureEnabled,
		ImageRef:         p.ImageRef,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}
