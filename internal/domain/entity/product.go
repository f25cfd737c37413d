package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// Inmutable una vez referenciado por inventario; el precio puede actualizarse
// por una operación de catálogo aparte. UnitPrice nil = precio desconocido
// (los movimientos registran total_value nulo en ese caso).
type Product struct {
	ID        string
	SKU       string // código único legible
	Name      string
	Category  string
	UnitPrice *decimal.Decimal
	Unit      string // unidad de medida ("unit", "case", "kg", ...)
	CreatedAt time.Time
	UpdatedAt time.Time
}
