// Package audit define el puerto del sink de auditoría: un espejo best-effort
// de cada cambio de inventario y de catálogo hacia un log store aparte.
// El único contrato con el dominio es "mejor esfuerzo, nunca bloqueante,
// nunca acoplado a la transacción": se invoca después del commit y sus fallas
// jamás se propagan como falla de la operación.
package audit

import (
	"context"
	"time"
)

// InventoryEvent es el evento de cambio de inventario (registro inmutable).
// QuantityChange lleva signo: positivo entradas, negativo salidas.
type InventoryEvent struct {
	EventID        string    `json:"event_id"`
	Timestamp      time.Time `json:"timestamp"`
	ActionType     string    `json:"action_type"` // inbound, outbound, damage, transfer_out, transfer_in
	ProductSKU     string    `json:"product_sku"`
	Warehouse      string    `json:"warehouse"`
	QuantityChange int64     `json:"quantity_change"`
	BeforeQuantity int64     `json:"before_quantity"`
	AfterQuantity  int64     `json:"after_quantity"`
	ReferenceID    string    `json:"reference_id"` // ID del movimiento en el ledger
}

// CatalogEvent es el evento de cambio de catálogo (creación de producto/bodega).
type CatalogEvent struct {
	EventID    string         `json:"event_id"`
	Timestamp  time.Time      `json:"timestamp"`
	ActionType string         `json:"action_type"` // create_product, create_warehouse
	EntityType string         `json:"entity_type"` // product, warehouse
	EntityID   string         `json:"entity_id"`   // SKU o nombre de bodega
	Details    map[string]any `json:"details"`
}

// Sink acepta eventos fire-and-forget. Las implementaciones aíslan sus
// propias fallas (log interno, sin error de retorno) para que el caller no
// pueda acoplarlas a su transacción.
type Sink interface {
	InventoryEvent(ctx context.Context, ev InventoryEvent)
	CatalogEvent(ctx context.Context, ev CatalogEvent)
}

// NopSink descarta todos los eventos. Útil cuando no hay log store
// configurado y en tests.
type NopSink struct{}

func (NopSink) InventoryEvent(context.Context, InventoryEvent) {}
func (NopSink) CatalogEvent(context.Context, CatalogEvent)     {}
