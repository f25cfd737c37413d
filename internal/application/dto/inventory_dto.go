package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// MoveStockRequest body para POST /api/inventory/movements.
// BatchTag nil = inbound al bucket sin lote / deducción FIFO entre todos los
// lotes; "" apunta explícitamente al bucket sin lote.
type MoveStockRequest struct {
	SKU          string  `json:"sku" validate:"required"`
	Warehouse    string  `json:"warehouse" validate:"required"`
	Type         string  `json:"type" validate:"required,oneof=inbound outbound damage"`
	Quantity     int64   `json:"quantity" validate:"required,gt=0"`
	BatchTag     *string `json:"batch_tag,omitempty"`
	ReferenceNum string  `json:"reference_number,omitempty"`
	DamageReason string  `json:"damage_reason,omitempty"` // obligatorio si type=damage
}

// TransferStockRequest body para POST /api/inventory/transfers.
type TransferStockRequest struct {
	SKU             string  `json:"sku" validate:"required"`
	SourceWarehouse string  `json:"source_warehouse" validate:"required"`
	DestWarehouse   string  `json:"destination_warehouse" validate:"required"`
	Quantity        int64   `json:"quantity" validate:"required,gt=0"`
	BatchTag        *string `json:"batch_tag,omitempty"`
	ReferenceNum    string  `json:"reference_number,omitempty"`
}

// StockResponse respuesta de GET /api/inventory/stock.
type StockResponse struct {
	SKU       string `json:"sku"`
	Warehouse string `json:"warehouse,omitempty"` // vacío = total global
	Quantity  int64  `json:"quantity"`
}

// BatchResponse una fila de inventario por lote.
type BatchResponse struct {
	ProductSKU    string    `json:"product_sku"`
	ProductName   string    `json:"product_name"`
	WarehouseName string    `json:"warehouse_name"`
	BatchTag      string    `json:"batch_tag"`
	Quantity      int64     `json:"quantity"`
	ReorderLevel  *int64    `json:"reorder_level,omitempty"`
	SafetyStock   *int64    `json:"safety_stock,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToBatchResponse convierte la entidad a DTO.
func ToBatchResponse(b *entity.InventoryBatch) BatchResponse {
	return BatchResponse{
		ProductSKU:    b.ProductSKU,
		ProductName:   b.ProductName,
		WarehouseName: b.WarehouseName,
		BatchTag:      b.BatchTag,
		Quantity:      b.Quantity,
		ReorderLevel:  b.ReorderLevel,
		SafetyStock:   b.SafetyStock,
		UpdatedAt:     b.UpdatedAt,
	}
}

// MovementResponse un registro del libro de movimientos.
type MovementResponse struct {
	ID                string           `json:"id"`
	ProductSKU        string           `json:"product_sku"`
	ProductName       string           `json:"product_name"`
	WarehouseName     string           `json:"warehouse_name"`
	Type              string           `json:"type"`
	Quantity          int64            `json:"quantity"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	TotalValue        *decimal.Decimal `json:"total_value,omitempty"`
	BeforeQty         int64            `json:"before_quantity"`
	AfterQty          int64            `json:"after_quantity"`
	ReferenceNum      string           `json:"reference_number,omitempty"`
	DamageReason      string           `json:"damage_reason,omitempty"`
	BatchTag          string           `json:"batch_tag"`
	DestWarehouseName string           `json:"destination_warehouse,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// ToMovementResponse convierte la entidad a DTO.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                m.ID,
		ProductSKU:        m.ProductSKU,
		ProductName:       m.ProductName,
		WarehouseName:     m.WarehouseName,
		Type:              m.Type,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		TotalValue:        m.TotalValue,
		BeforeQty:         m.BeforeQty,
		AfterQty:          m.AfterQty,
		ReferenceNum:      m.ReferenceNum,
		DamageReason:      m.DamageReason,
		BatchTag:          m.BatchTag,
		DestWarehouseName: m.DestWarehouseName,
		CreatedAt:         m.CreatedAt,
	}
}
