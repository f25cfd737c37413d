package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// MovementRepository define el puerto del libro de movimientos.
// Append-only: solo inserción y lecturas; no existen Update ni Delete.
// Las lecturas devuelven el más reciente primero (created_at descendente,
// desempate por secuencia de inserción).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	Recent(limit int) ([]*entity.Movement, error)
	ListByProduct(productID string, limit int) ([]*entity.Movement, error)
	ListByWarehouse(warehouseID string, limit int) ([]*entity.Movement, error)
}
