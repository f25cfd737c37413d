// Package catalog implementa los casos de uso de catálogo: productos y
// bodegas. Solo resolución de identidad y unicidad; las reglas de negocio de
// stock viven en el motor de movimientos.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ledger/internal/application/audit"
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// UseCase casos de uso de catálogo.
type UseCase struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	sink          audit.Sink
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository, warehouseRepo repository.WarehouseRepository, sink audit.Sink) *UseCase {
	if sink == nil {
		sink = audit.NopSink{}
	}
	return &UseCase{productRepo: productRepo, warehouseRepo: warehouseRepo, sink: sink}
}

// CreateProduct crea un producto nuevo. Devuelve domain.ErrDuplicate si el
// SKU ya existe.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Category:  in.Category,
		UnitPrice: in.UnitPrice,
		Unit:      in.Unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	details := map[string]any{"name": in.Name, "category": in.Category, "unit": in.Unit}
	if in.UnitPrice != nil {
		details["unit_price"] = in.UnitPrice.String()
	}
	uc.sink.CatalogEvent(ctx, audit.CatalogEvent{
		EventID:    uuid.New().String(),
		Timestamp:  now,
		ActionType: "create_product",
		EntityType: "product",
		EntityID:   product.SKU,
		Details:    details,
	})
	return product, nil
}

// GetProductBySKU obtiene un producto por su SKU.
func (uc *UseCase) GetProductBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	product, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista productos (limit <= 0 usa el valor por defecto).
func (uc *UseCase) ListProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.productRepo.List(limit)
}

// CreateWarehouse crea una bodega nueva. Devuelve domain.ErrDuplicate si el
// nombre ya existe.
func (uc *UseCase) CreateWarehouse(ctx context.Context, in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	wh := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		Region:    in.Region,
		Capacity:  in.Capacity,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(wh); err != nil {
		return nil, err
	}

	uc.sink.CatalogEvent(ctx, audit.CatalogEvent{
		EventID:    uuid.New().String(),
		Timestamp:  now,
		ActionType: "create_warehouse",
		EntityType: "warehouse",
		EntityID:   wh.Name,
		Details:    map[string]any{"location": in.Location, "region": in.Region, "capacity": in.Capacity},
	})
	return wh, nil
}

// GetWarehouseByName obtiene una bodega por su nombre.
func (uc *UseCase) GetWarehouseByName(ctx context.Context, name string) (*entity.Warehouse, error) {
	wh, err := uc.warehouseRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return wh, nil
}

// ListWarehouses lista bodegas.
func (uc *UseCase) ListWarehouses(ctx context.Context, limit int) ([]*entity.Warehouse, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.warehouseRepo.List(limit)
}
