package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. La cantidad registrada es siempre
// positiva; el signo lo implica el tipo.
const (
	MovementTypeInbound     = "inbound"      // entrada
	MovementTypeOutbound    = "outbound"     // salida
	MovementTypeDamage      = "damage"       // baja por anomalía (daño, robo, vencido)
	MovementTypeTransferOut = "transfer_out" // traslado, lado origen
	MovementTypeTransferIn  = "transfer_in"  // traslado, lado destino
)

// IsDeduction indica si el tipo descuenta stock en la bodega del movimiento.
func IsDeduction(movementType string) bool {
	return movementType == MovementTypeOutbound || movementType == MovementTypeDamage
}

// Movement es el registro inmutable de auditoría de un cambio de cantidad.
// Append-only: nunca se actualiza ni se borra. Cada mutación confirmada tiene
// exactamente un movimiento (inbound/outbound/damage) o exactamente dos
// (transfer_out + transfer_in, uno por lado).
//
// Nombres de producto y bodega desnormalizados: reflejan el catálogo al
// momento de la escritura, no al de la lectura.
type Movement struct {
	ID            string
	Seq           int64 // secuencia de inserción, desempate del orden temporal
	ProductID     string
	ProductSKU    string
	ProductName   string
	WarehouseID   string
	WarehouseName string
	Type          string
	Quantity      int64            // siempre positiva
	UnitPrice     *decimal.Decimal // precio del producto al momento del movimiento
	TotalValue    *decimal.Decimal // UnitPrice * Quantity; nil si no hay precio
	BeforeQty     int64            // cantidad del batch afectado antes de mutar
	AfterQty      int64            // cantidad del batch afectado después de mutar
	ReferenceNum  string           // correlación del caller (orden, factura, ...)
	DamageReason  string           // obligatorio solo en damage
	BatchTag      string
	// Solo traslados: referencia cruzada a la otra bodega del par.
	DestWarehouseID   string
	DestWarehouseName string
	CreatedAt         time.Time
}

// ComputeTotalValue calcula UnitPrice * Quantity, o nil si no hay precio.
func ComputeTotalValue(unitPrice *decimal.Decimal, quantity int64) *decimal.Decimal {
	if unitPrice == nil {
		return nil
	}
	total := unitPrice.Mul(decimal.NewFromInt(quantity))
	return &total
}
