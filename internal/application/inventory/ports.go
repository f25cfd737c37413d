package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad de cada operación del
// motor: mutación de batches y escritura en el ledger confirman o revierten
// juntas. Una operación de negocio = una transacción; nunca se reparte entre
// varias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.InventoryBatchRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// MovementReportGenerator genera la representación PDF del historial de
// movimientos.
type MovementReportGenerator interface {
	MovementsPDF(ctx context.Context, title string, movements []*entity.Movement) ([]byte, error)
}
