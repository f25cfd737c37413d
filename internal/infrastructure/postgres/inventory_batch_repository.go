package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// InventoryBatchRepository implementa repository.InventoryBatchRepository
// sobre PostgreSQL. Las listas por par (producto, bodega) salen en orden FIFO
// (updated_at ascendente, desempate por batch_tag) para que el motor pueda
// planificar deducciones sin reordenar.
type InventoryBatchRepository struct {
	q Querier
}

var _ repository.InventoryBatchRepository = (*InventoryBatchRepository)(nil)

func NewInventoryBatchRepository(q Querier) *InventoryBatchRepository {
	return &InventoryBatchRepository{q: q}
}

const batchColumns = `id, product_id, product_sku, product_name, warehouse_id, warehouse_name,
	batch_tag, quantity, reorder_level, safety_stock, updated_at`

func (r *InventoryBatchRepository) Get(productID, warehouseID, batchTag string) (*entity.InventoryBatch, error) {
	ctx := context.Background()
	row := r.q.QueryRow(ctx, `
		SELECT `+batchColumns+`
		FROM inventory_batches
		WHERE product_id = $1 AND warehouse_id = $2 AND batch_tag = $3`,
		productID, warehouseID, batchTag,
	)
	b, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar batch: %w", err)
	}
	return b, nil
}

func (r *InventoryBatchRepository) ListByWarehouse(productID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return r.list(`
		SELECT `+batchColumns+`
		FROM inventory_batches
		WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY updated_at ASC, batch_tag ASC`,
		productID, warehouseID,
	)
}

func (r *InventoryBatchRepository) ListByWarehouseForUpdate(productID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return r.list(`
		SELECT `+batchColumns+`
		FROM inventory_batches
		WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY updated_at ASC, batch_tag ASC
		FOR UPDATE`,
		productID, warehouseID,
	)
}

func (r *InventoryBatchRepository) ListByProduct(productID string) ([]*entity.InventoryBatch, error) {
	return r.list(`
		SELECT `+batchColumns+`
		FROM inventory_batches
		WHERE product_id = $1
		ORDER BY warehouse_name ASC, updated_at ASC, batch_tag ASC`,
		productID,
	)
}

func (r *InventoryBatchRepository) ListBelowThreshold(limit int) ([]*entity.InventoryBatch, error) {
	return r.list(`
		SELECT `+batchColumns+`
		FROM inventory_batches
		WHERE (reorder_level IS NOT NULL AND quantity <= reorder_level)
		   OR (safety_stock IS NOT NULL AND quantity <= safety_stock)
		ORDER BY quantity ASC
		LIMIT $1`,
		limit,
	)
}

func (r *InventoryBatchRepository) ApplyDelta(product *entity.Product, warehouse *entity.Warehouse, batchTag string, delta int64) (*entity.InventoryBatch, error) {
	ctx := context.Background()

	// Bloquea la fila del par antes de mutarla: deducciones concurrentes
	// sobre el mismo batch serializan aquí.
	row := r.q.QueryRow(ctx, `
		SELECT `+batchColumns+`
		FROM inventory_batches
		WHERE product_id = $1 AND warehouse_id = $2 AND batch_tag = $3
		FOR UPDATE`,
		product.ID, warehouse.ID, batchTag,
	)
	existing, err := scanBatch(row)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("bloquear batch: %w", err)
		}
		if delta < 0 {
			return nil, domain.ErrNotFound
		}
		// Primera entrada del lote: crea la fila con los nombres
		// desnormalizados del catálogo.
		created := r.q.QueryRow(ctx, `
			INSERT INTO inventory_batches
				(id, product_id, product_sku, product_name, warehouse_id, warehouse_name, batch_tag, quantity, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
			RETURNING `+batchColumns,
			uuid.New().String(), product.ID, product.SKU, product.Name,
			warehouse.ID, warehouse.Name, batchTag, delta,
		)
		b, err := scanBatch(created)
		if err != nil {
			return nil, fmt.Errorf("crear batch: %w", err)
		}
		return b, nil
	}

	updated := r.q.QueryRow(ctx, `
		UPDATE inventory_batches
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+batchColumns,
		existing.ID, delta,
	)
	b, err := scanBatch(updated)
	if err != nil {
		return nil, fmt.Errorf("actualizar batch: %w", err)
	}
	return b, nil
}

func (r *InventoryBatchRepository) list(query string, args ...any) ([]*entity.InventoryBatch, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar batches: %w", err)
	}
	defer rows.Close()

	var batches []*entity.InventoryBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("leer batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.InventoryBatch, error) {
	var b entity.InventoryBatch
	err := row.Scan(&b.ID, &b.ProductID, &b.ProductSKU, &b.ProductName,
		&b.WarehouseID, &b.WarehouseName, &b.BatchTag, &b.Quantity,
		&b.ReorderLevel, &b.SafetyStock, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
