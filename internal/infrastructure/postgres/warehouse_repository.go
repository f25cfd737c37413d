package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// WarehouseRepository implementa repository.WarehouseRepository sobre PostgreSQL.
type WarehouseRepository struct {
	q Querier
}

var _ repository.WarehouseRepository = (*WarehouseRepository)(nil)

func NewWarehouseRepository(q Querier) *WarehouseRepository {
	return &WarehouseRepository{q: q}
}

const warehouseColumns = `id, name, location, region, capacity, latitude, longitude, created_at, updated_at`

func (r *WarehouseRepository) Create(warehouse *entity.Warehouse) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO warehouses (id, name, location, region, capacity, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		warehouse.ID, warehouse.Name, warehouse.Location, warehouse.Region,
		warehouse.Capacity, warehouse.Latitude, warehouse.Longitude,
		warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar bodega: %w", err)
	}
	return nil
}

func (r *WarehouseRepository) GetByID(id string) (*entity.Warehouse, error) {
	return r.getBy(`id = $1`, id)
}

func (r *WarehouseRepository) GetByName(name string) (*entity.Warehouse, error) {
	return r.getBy(`name = $1`, name)
}

func (r *WarehouseRepository) getBy(where string, arg any) (*entity.Warehouse, error) {
	ctx := context.Background()
	row := r.q.QueryRow(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE `+where, arg)
	w, err := scanWarehouse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar bodega: %w", err)
	}
	return w, nil
}

func (r *WarehouseRepository) List(limit int) ([]*entity.Warehouse, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT `+warehouseColumns+` FROM warehouses ORDER BY name LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listar bodegas: %w", err)
	}
	defer rows.Close()

	var warehouses []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("leer bodega: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(&w.ID, &w.Name, &w.Location, &w.Region, &w.Capacity,
		&w.Latitude, &w.Longitude, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
