package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// MovementRepository implementa repository.MovementRepository sobre
// PostgreSQL. La tabla es append-only: aquí no hay UPDATE ni DELETE.
type MovementRepository struct {
	q Querier
}

var _ repository.MovementRepository = (*MovementRepository)(nil)

func NewMovementRepository(q Querier) *MovementRepository {
	return &MovementRepository{q: q}
}

const movementColumns = `id, seq, product_id, product_sku, product_name,
	warehouse_id, warehouse_name, movement_type, quantity, unit_price, total_value,
	before_qty, after_qty, reference_num, damage_reason, batch_tag,
	dest_warehouse_id, dest_warehouse_name, created_at`

func (r *MovementRepository) Create(movement *entity.Movement) error {
	ctx := context.Background()
	// seq lo asigna la secuencia de la tabla: desempata movimientos con el
	// mismo created_at dentro de una transacción.
	row := r.q.QueryRow(ctx, `
		INSERT INTO movements
			(id, product_id, product_sku, product_name, warehouse_id, warehouse_name,
			 movement_type, quantity, unit_price, total_value, before_qty, after_qty,
			 reference_num, damage_reason, batch_tag, dest_warehouse_id, dest_warehouse_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING seq`,
		movement.ID, movement.ProductID, movement.ProductSKU, movement.ProductName,
		movement.WarehouseID, movement.WarehouseName, movement.Type, movement.Quantity,
		movement.UnitPrice, movement.TotalValue, movement.BeforeQty, movement.AfterQty,
		movement.ReferenceNum, movement.DamageReason, movement.BatchTag,
		movement.DestWarehouseID, movement.DestWarehouseName, movement.CreatedAt,
	)
	if err := row.Scan(&movement.Seq); err != nil {
		return fmt.Errorf("insertar movimiento: %w", err)
	}
	return nil
}

func (r *MovementRepository) Recent(limit int) ([]*entity.Movement, error) {
	return r.list(`
		SELECT `+movementColumns+`
		FROM movements
		ORDER BY created_at DESC, seq DESC
		LIMIT $1`,
		limit,
	)
}

func (r *MovementRepository) ListByProduct(productID string, limit int) ([]*entity.Movement, error) {
	return r.list(`
		SELECT `+movementColumns+`
		FROM movements
		WHERE product_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2`,
		productID, limit,
	)
}

func (r *MovementRepository) ListByWarehouse(warehouseID string, limit int) ([]*entity.Movement, error) {
	return r.list(`
		SELECT `+movementColumns+`
		FROM movements
		WHERE warehouse_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2`,
		warehouseID, limit,
	)
}

func (r *MovementRepository) list(query string, args ...any) ([]*entity.Movement, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()

	var movements []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("leer movimiento: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.Seq, &m.ProductID, &m.ProductSKU, &m.ProductName,
		&m.WarehouseID, &m.WarehouseName, &m.Type, &m.Quantity, &m.UnitPrice,
		&m.TotalValue, &m.BeforeQty, &m.AfterQty, &m.ReferenceNum, &m.DamageReason,
		&m.BatchTag, &m.DestWarehouseID, &m.DestWarehouseName, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
