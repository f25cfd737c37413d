package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// Create devuelve domain.ErrDuplicate si el nombre ya existe.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	GetByName(name string) (*entity.Warehouse, error)
	List(limit int) ([]*entity.Warehouse, error)
}
