package entity

import "time"

// UntaggedBatch es la clave del bucket sin lote: la ausencia de etiqueta es
// en sí misma una clave de batch válida.
const UntaggedBatch = ""

// InventoryBatch representa la cantidad física de un producto en una bodega
// para un lote concreto. Puede haber varias filas por (producto, bodega), una
// por etiqueta de lote; el stock total del par es la suma de sus filas.
//
// Invariante: Quantity >= 0 después de toda operación confirmada. La fila se
// crea perezosamente con la primera entrada y nunca se borra (un lote agotado
// queda en 0 y puede reutilizarse).
//
// ProductSKU, ProductName y WarehouseName son desnormalizados: se copian del
// catálogo al escribir, como caché de lectura.
type InventoryBatch struct {
	ID            string
	ProductID     string
	ProductSKU    string
	ProductName   string
	WarehouseID   string
	WarehouseName string
	BatchTag      string // "" = bucket sin lote
	Quantity      int64
	ReorderLevel  *int64
	SafetyStock   *int64
	UpdatedAt     time.Time // orden FIFO: el más antiguo primero
}
