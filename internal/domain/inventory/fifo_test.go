package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
)

// batch construye un batch de test con su timestamp de orden FIFO.
func batch(tag string, qty int64, updatedAt time.Time) *entity.InventoryBatch {
	return &entity.InventoryBatch{
		ID:        "batch-" + tag,
		BatchTag:  tag,
		Quantity:  qty,
		UpdatedAt: updatedAt,
	}
}

func TestTotalQuantity(t *testing.T) {
	now := time.Now()
	assert.Equal(t, int64(0), inventory.TotalQuantity(nil))
	assert.Equal(t, int64(12), inventory.TotalQuantity([]*entity.InventoryBatch{
		batch("A", 5, now),
		batch("B", 7, now),
		batch("C", 0, now),
	}))
}

// El lote tocado hace más tiempo sale primero; a igual timestamp desempata la
// etiqueta.
func TestSortFIFO_OrdenaPorAntiguedadYEtiqueta(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	batches := []*entity.InventoryBatch{
		batch("C", 1, t0.Add(2*time.Hour)),
		batch("B", 1, t0),
		batch("A", 1, t0.Add(time.Hour)),
		batch("D", 1, t0),
	}

	inventory.SortFIFO(batches)

	tags := []string{batches[0].BatchTag, batches[1].BatchTag, batches[2].BatchTag, batches[3].BatchTag}
	assert.Equal(t, []string{"B", "D", "A", "C"}, tags)
}

// Tres lotes de 5 con t1 < t2 < t3; pedir 7 debe agotar el primero (5) y
// tomar 2 del segundo, sin tocar el tercero.
func TestPlanFIFO_AgotaElMasAntiguoPrimero(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	batches := []*entity.InventoryBatch{
		batch("L3", 5, t0.Add(2*time.Minute)),
		batch("L1", 5, t0),
		batch("L2", 5, t0.Add(time.Minute)),
	}

	plan, remaining := inventory.PlanFIFO(batches, 7)

	require.Len(t, plan, 2)
	assert.Equal(t, int64(0), remaining)
	assert.Equal(t, inventory.Allocation{BatchTag: "L1", Quantity: 5}, plan[0])
	assert.Equal(t, inventory.Allocation{BatchTag: "L2", Quantity: 2}, plan[1])
}

func TestPlanFIFO_SaltaLotesVacios(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	batches := []*entity.InventoryBatch{
		batch("vacio", 0, t0),
		batch("lleno", 4, t0.Add(time.Minute)),
	}

	plan, remaining := inventory.PlanFIFO(batches, 3)

	require.Len(t, plan, 1)
	assert.Equal(t, int64(0), remaining)
	assert.Equal(t, "lleno", plan[0].BatchTag)
}

func TestPlanFIFO_ReportaRestanteSiNoAlcanza(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	batches := []*entity.InventoryBatch{
		batch("unico", 4, t0),
	}

	plan, remaining := inventory.PlanFIFO(batches, 10)

	require.Len(t, plan, 1)
	assert.Equal(t, int64(6), remaining)
	assert.Equal(t, int64(4), plan[0].Quantity)
}

// PlanFIFO no debe reordenar ni mutar el slice de entrada.
func TestPlanFIFO_NoMutaLaEntrada(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	batches := []*entity.InventoryBatch{
		batch("B", 5, t0.Add(time.Minute)),
		batch("A", 5, t0),
	}

	_, _ = inventory.PlanFIFO(batches, 8)

	assert.Equal(t, "B", batches[0].BatchTag, "el orden del slice original no debe cambiar")
	assert.Equal(t, int64(5), batches[0].Quantity, "las cantidades no deben mutarse")
	assert.Equal(t, int64(5), batches[1].Quantity)
}
