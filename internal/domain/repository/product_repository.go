package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create devuelve domain.ErrDuplicate si el SKU ya existe; las consultas
// devuelven (nil, nil) cuando no hay fila.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	UpdatePrice(productID string, price decimal.Decimal) error
	List(limit int) ([]*entity.Product, error)
}
