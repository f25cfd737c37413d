// Package inventory contiene la lógica de dominio pura del motor de
// inventario: la planificación FIFO de deducciones por batch.
package inventory

import (
	"sort"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// Allocation es un par (lote, cantidad) de un plan de deducción o traslado.
type Allocation struct {
	BatchTag string
	Quantity int64
}

// TotalQuantity suma las cantidades de un conjunto de batches.
func TotalQuantity(batches []*entity.InventoryBatch) int64 {
	var total int64
	for _, b := range batches {
		total += b.Quantity
	}
	return total
}

// SortFIFO ordena los batches en orden de salida: updated_at ascendente (el
// tocado hace más tiempo primero, proxy de "recibido primero" ya que el orden
// real de recepción no se registra aparte), desempate por etiqueta de lote
// para que el plan sea determinista.
func SortFIFO(batches []*entity.InventoryBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		if !batches[i].UpdatedAt.Equal(batches[j].UpdatedAt) {
			return batches[i].UpdatedAt.Before(batches[j].UpdatedAt)
		}
		return batches[i].BatchTag < batches[j].BatchTag
	})
}

// PlanFIFO construye el plan de deducción para `requested` unidades: recorre
// los batches en orden FIFO descontando min(cantidad del batch, restante) de
// cada batch no vacío hasta cubrir lo pedido. Devuelve las asignaciones y el
// restante sin cubrir (0 si el plan está completo). No muta los batches.
func PlanFIFO(batches []*entity.InventoryBatch, requested int64) ([]Allocation, int64) {
	ordered := make([]*entity.InventoryBatch, len(batches))
	copy(ordered, batches)
	SortFIFO(ordered)

	var plan []Allocation
	remaining := requested
	for _, b := range ordered {
		if remaining <= 0 {
			break
		}
		if b.Quantity <= 0 {
			continue
		}
		take := b.Quantity
		if remaining < take {
			take = remaining
		}
		plan = append(plan, Allocation{BatchTag: b.BatchTag, Quantity: take})
		remaining -= take
	}
	return plan, remaining
}
