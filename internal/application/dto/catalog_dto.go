package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU       string           `json:"sku" validate:"required,min=1,max=64"`
	Name      string           `json:"name" validate:"required,min=1,max=200"`
	Category  string           `json:"category"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Unit      string           `json:"unit"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string           `json:"id"`
	SKU       string           `json:"sku"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Unit      string           `json:"unit"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  p.Category,
		UnitPrice: p.UnitPrice,
		Unit:      p.Unit,
		CreatedAt: p.CreatedAt,
	}
}

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=200"`
	Location  string   `json:"location"`
	Region    string   `json:"region"`
	Capacity  int64    `json:"capacity"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Region    string    `json:"region"`
	Capacity  int64     `json:"capacity"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToWarehouseResponse convierte la entidad a DTO.
func ToWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		Region:    w.Region,
		Capacity:  w.Capacity,
		Latitude:  w.Latitude,
		Longitude: w.Longitude,
		CreatedAt: w.CreatedAt,
	}
}
