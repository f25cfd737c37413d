package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// ProductRepository implementa repository.ProductRepository sobre PostgreSQL.
type ProductRepository struct {
	q Querier
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(q Querier) *ProductRepository {
	return &ProductRepository{q: q}
}

const productColumns = `id, sku, name, category, unit_price, unit, created_at, updated_at`

func (r *ProductRepository) Create(product *entity.Product) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, sku, name, category, unit_price, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		product.ID, product.SKU, product.Name, product.Category,
		product.UnitPrice, product.Unit, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar producto: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	return r.getBy(`id = $1`, id)
}

func (r *ProductRepository) GetBySKU(sku string) (*entity.Product, error) {
	return r.getBy(`sku = $1`, sku)
}

func (r *ProductRepository) getBy(where string, arg any) (*entity.Product, error) {
	ctx := context.Background()
	row := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE `+where, arg)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar producto: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) UpdatePrice(productID string, price decimal.Decimal) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET unit_price = $2, updated_at = NOW() WHERE id = $1`,
		productID, price,
	)
	if err != nil {
		return fmt.Errorf("actualizar precio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) List(limit int) ([]*entity.Product, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products ORDER BY sku LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("leer producto: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.UnitPrice, &p.Unit, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
