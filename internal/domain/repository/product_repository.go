package repository

import "github.com/tu-usuario/sticker-orders/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByOwnerAndSKU(ownerID, sku string) (*entity.Product, error)
	// Update persiste todos los campos mutables del producto.
	Update(product *entity.Product) error
	Delete(id string) error
	// ListByOwner lista los productos de un dueño, más recientes primero.
	ListByOwner(ownerID string) ([]*entity.Product, error)
	// ListAll lista todos los productos (catálogo público), más recientes primero.
	ListAll() ([]*entity.Product, error)
}
