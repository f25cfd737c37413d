package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// InventoryBatchRepository define el puerto para las filas de batch
// (producto, bodega, lote). Usado dentro de transacciones para garantizar
// consistencia: dos ApplyDelta concurrentes sobre la misma fila serializan
// (bloqueo de fila en la implementación).
type InventoryBatchRepository interface {
	// Get obtiene la fila exacta, incluido el bucket sin lote (batchTag "").
	// Devuelve (nil, nil) si no existe.
	Get(productID, warehouseID, batchTag string) (*entity.InventoryBatch, error)

	// ListByWarehouse lista los batches de un par (producto, bodega) en orden
	// FIFO: updated_at ascendente, desempate por etiqueta de lote.
	ListByWarehouse(productID, warehouseID string) ([]*entity.InventoryBatch, error)

	// ListByWarehouseForUpdate es la variante transaccional: bloquea todas
	// las filas del par (SELECT FOR UPDATE) para que el chequeo de total y el
	// plan FIFO del motor serialicen frente a deducciones concurrentes.
	ListByWarehouseForUpdate(productID, warehouseID string) ([]*entity.InventoryBatch, error)

	// ListByProduct lista los batches de un producto en todas las bodegas
	// (totales globales).
	ListByProduct(productID string) ([]*entity.InventoryBatch, error)

	// ListBelowThreshold lista filas con cantidad <= reorder_level o
	// <= safety_stock.
	ListBelowThreshold(limit int) ([]*entity.InventoryBatch, error)

	// ApplyDelta bloquea la fila y le suma delta, creándola si no existe
	// (solo con delta positivo; delta negativo sobre fila ausente devuelve
	// domain.ErrNotFound). Devuelve la fila ya mutada. El repositorio NO
	// prohíbe resultados negativos: el invariante quantity >= 0 lo verifica
	// el motor, que decide el orden FIFO antes de fallar la operación.
	ApplyDelta(product *entity.Product, warehouse *entity.Warehouse, batchTag string, delta int64) (*entity.InventoryBatch, error)
}
