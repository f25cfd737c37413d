package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ledger/internal/application/audit"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	invdomain "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// MovementUseCase es el motor de movimientos de inventario: entradas, salidas
// (con selección FIFO de lotes), traslados entre bodegas y bajas por anomalía,
// cada uno en una transacción con su registro de auditoría en el ledger.
//
// Todas las operaciones siguen el mismo patrón: validar → resolver identidades
// → planear → mutar → registrar → commit. Después del commit se notifica el
// sink de auditoría (best effort, nunca acoplado a la transacción).
type MovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	batchRepo     repository.InventoryBatchRepository // lecturas fuera de tx
	movementRepo  repository.MovementRepository       // lecturas fuera de tx
	sink          audit.Sink
}

// NewMovementUseCase construye el motor.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	batchRepo repository.InventoryBatchRepository,
	movementRepo repository.MovementRepository,
	sink audit.Sink,
) *MovementUseCase {
	if sink == nil {
		sink = audit.NopSink{}
	}
	return &MovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		batchRepo:     batchRepo,
		movementRepo:  movementRepo,
		sink:          sink,
	}
}

// MoveStockInput entrada para MoveStock. BatchTag nil significa "sin lote
// indicado": inbound opera sobre el bucket sin etiqueta y las deducciones
// hacen FIFO sobre todos los lotes; un puntero a "" apunta explícitamente al
// bucket sin etiqueta.
type MoveStockInput struct {
	SKU          string
	Warehouse    string
	Type         string // inbound | outbound | damage
	Quantity     int64
	BatchTag     *string
	ReferenceNum string
	DamageReason string // obligatorio en damage, mínimo 3 caracteres
}

// TransferStockInput entrada para TransferStock.
type TransferStockInput struct {
	SKU             string
	SourceWarehouse string
	DestWarehouse   string
	Quantity        int64
	BatchTag        *string
	ReferenceNum    string
}

// GetStock devuelve el stock actual de un producto: la suma de las cantidades
// de sus batches en la bodega indicada, o en todas las bodegas si
// warehouseName es vacío. Un producto existente sin batches devuelve 0.
// Leer dos veces sin mutaciones intermedias devuelve el mismo valor.
func (uc *MovementUseCase) GetStock(ctx context.Context, sku, warehouseName string) (int64, error) {
	product, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}

	var rows []*entity.InventoryBatch
	if warehouseName != "" {
		wh, err := uc.warehouseRepo.GetByName(warehouseName)
		if err != nil {
			return 0, err
		}
		if wh == nil {
			return 0, domain.ErrNotFound
		}
		rows, err = uc.batchRepo.ListByWarehouse(product.ID, wh.ID)
		if err != nil {
			return 0, err
		}
	} else {
		rows, err = uc.batchRepo.ListByProduct(product.ID)
		if err != nil {
			return 0, err
		}
	}
	return invdomain.TotalQuantity(rows), nil
}

// GetInventoryRecord devuelve las filas de inventario por lote de un producto.
// Con bodega: todos los batches del par (error si el par no tiene ninguno).
// Sin bodega: todos los batches del producto (lista vacía es válida si el
// producto existe).
func (uc *MovementUseCase) GetInventoryRecord(ctx context.Context, sku, warehouseName string) ([]*entity.InventoryBatch, error) {
	product, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if warehouseName != "" {
		wh, err := uc.warehouseRepo.GetByName(warehouseName)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
		rows, err := uc.batchRepo.ListByWarehouse(product.ID, wh.ID)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, domain.ErrNotFound
		}
		return rows, nil
	}
	return uc.batchRepo.ListByProduct(product.ID)
}

// GetLowStock devuelve las filas en o por debajo de su punto de reorden o
// stock de seguridad.
func (uc *MovementUseCase) GetLowStock(ctx context.Context, limit int) ([]*entity.InventoryBatch, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.batchRepo.ListBelowThreshold(limit)
}

// RecentMovements devuelve los últimos movimientos del ledger.
func (uc *MovementUseCase) RecentMovements(ctx context.Context, limit int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.movementRepo.Recent(limit)
}

// MovementsByProduct devuelve el historial de movimientos de un SKU.
func (uc *MovementUseCase) MovementsByProduct(ctx context.Context, sku string, limit int) ([]*entity.Movement, error) {
	product, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 100
	}
	return uc.movementRepo.ListByProduct(product.ID, limit)
}

// MovementsByWarehouse devuelve el historial de movimientos de una bodega.
func (uc *MovementUseCase) MovementsByWarehouse(ctx context.Context, warehouseName string, limit int) ([]*entity.Movement, error) {
	wh, err := uc.warehouseRepo.GetByName(warehouseName)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 100
	}
	return uc.movementRepo.ListByWarehouse(wh.ID, limit)
}

// MoveStock mueve stock dentro de una bodega y registra los movimientos.
//
//   - inbound: suma al lote indicado (o al bucket sin etiqueta), creándolo si
//     no existe. Un movimiento.
//   - outbound / damage: chequeo de total por adelantado, luego deducción del
//     lote indicado, o FIFO (updated_at más antiguo primero) con un movimiento
//     por lote tocado. damage exige una razón de al menos 3 caracteres.
//
// Devuelve el último movimiento creado cuando se tocaron varios lotes; el
// conjunto completo queda en el historial de movimientos.
func (uc *MovementUseCase) MoveStock(ctx context.Context, in MoveStockInput) (*entity.Movement, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeInbound, entity.MovementTypeOutbound:
	case entity.MovementTypeDamage:
		if len(strings.TrimSpace(in.DamageReason)) < 3 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	// Resolver identidades: para inbound, un producto inexistente es error de
	// usuario explícito (crear el producto antes de recibir stock).
	product, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByName(in.Warehouse)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	var created []*entity.Movement

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.InventoryBatchRepository,
		movRepo repository.MovementRepository,
	) error {
		if in.Type == entity.MovementTypeInbound {
			tag := entity.UntaggedBatch
			if in.BatchTag != nil {
				tag = *in.BatchTag
			}
			row, err := batchRepo.ApplyDelta(product, wh, tag, in.Quantity)
			if err != nil {
				return err
			}
			m := uc.newMovement(product, wh, in.Type, in.Quantity, row.Quantity-in.Quantity, row.Quantity, tag, in, now)
			if err := movRepo.Create(m); err != nil {
				return err
			}
			created = append(created, m)
			return nil
		}

		// outbound / damage: bloquear las filas del par y chequear el total
		// antes de mutar nada.
		rows, err := batchRepo.ListByWarehouseForUpdate(product.ID, wh.ID)
		if err != nil {
			return err
		}
		if invdomain.TotalQuantity(rows) < in.Quantity {
			return domain.ErrInsufficientStock
		}

		plan := []invdomain.Allocation{}
		if in.BatchTag != nil {
			// Deducción dirigida: todo de un solo lote. Guardia secundaria a
			// nivel de lote aunque el total haya pasado, porque total y lote
			// pueden divergir.
			plan = append(plan, invdomain.Allocation{BatchTag: *in.BatchTag, Quantity: in.Quantity})
		} else {
			var remaining int64
			plan, remaining = invdomain.PlanFIFO(rows, in.Quantity)
			if remaining > 0 {
				// El chequeo de total ya pasó: esto solo puede ser un bug de
				// lógica o de bloqueo.
				return domain.ErrInconsistency
			}
		}

		for _, alloc := range plan {
			row, err := batchRepo.ApplyDelta(product, wh, alloc.BatchTag, -alloc.Quantity)
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrInsufficientStock
			}
			if err != nil {
				return err
			}
			if row.Quantity < 0 {
				return domain.ErrInsufficientStock
			}
			m := uc.newMovement(product, wh, in.Type, alloc.Quantity, row.Quantity+alloc.Quantity, row.Quantity, alloc.BatchTag, in, now)
			if err := movRepo.Create(m); err != nil {
				return err
			}
			created = append(created, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishInventoryEvents(ctx, created)
	return created[len(created)-1], nil
}

// TransferStock traslada stock entre bodegas preservando la identidad de lote:
// cada par (lote, cantidad) del plan se descuenta en origen y se suma en
// destino bajo la misma etiqueta, con un transfer_out y un transfer_in que se
// referencian mutuamente. Todo el plan ocurre en una transacción: si un paso
// falla, ambas bodegas quedan en sus cantidades previas.
//
// Devuelve el último transfer_out registrado (misma convención por lote que
// MoveStock).
func (uc *MovementUseCase) TransferStock(ctx context.Context, in TransferStockInput) (*entity.Movement, error) {
	if in.Quantity <= 0 || in.SourceWarehouse == in.DestWarehouse {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	src, err := uc.warehouseRepo.GetByName(in.SourceWarehouse)
	if err != nil {
		return nil, err
	}
	dst, err := uc.warehouseRepo.GetByName(in.DestWarehouse)
	if err != nil {
		return nil, err
	}
	if src == nil || dst == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	var created []*entity.Movement
	var lastOut *entity.Movement

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.InventoryBatchRepository,
		movRepo repository.MovementRepository,
	) error {
		rows, err := batchRepo.ListByWarehouseForUpdate(product.ID, src.ID)
		if err != nil {
			return err
		}
		if invdomain.TotalQuantity(rows) < in.Quantity {
			return domain.ErrInsufficientStock
		}

		plan := []invdomain.Allocation{}
		if in.BatchTag != nil {
			plan = append(plan, invdomain.Allocation{BatchTag: *in.BatchTag, Quantity: in.Quantity})
		} else {
			var remaining int64
			plan, remaining = invdomain.PlanFIFO(rows, in.Quantity)
			if remaining > 0 {
				return domain.ErrInconsistency
			}
		}

		for _, alloc := range plan {
			srcRow, err := batchRepo.ApplyDelta(product, src, alloc.BatchTag, -alloc.Quantity)
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrInsufficientStock
			}
			if err != nil {
				return err
			}
			if srcRow.Quantity < 0 {
				return domain.ErrInsufficientStock
			}
			dstRow, err := batchRepo.ApplyDelta(product, dst, alloc.BatchTag, alloc.Quantity)
			if err != nil {
				return err
			}

			out := uc.newTransferMovement(product, src, dst, entity.MovementTypeTransferOut,
				alloc, srcRow.Quantity+alloc.Quantity, srcRow.Quantity, in.ReferenceNum, now)
			if err := movRepo.Create(out); err != nil {
				return err
			}
			inMov := uc.newTransferMovement(product, dst, src, entity.MovementTypeTransferIn,
				alloc, dstRow.Quantity-alloc.Quantity, dstRow.Quantity, in.ReferenceNum, now)
			if err := movRepo.Create(inMov); err != nil {
				return err
			}
			created = append(created, out, inMov)
			lastOut = out
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishInventoryEvents(ctx, created)
	return lastOut, nil
}

func (uc *MovementUseCase) newMovement(
	product *entity.Product, wh *entity.Warehouse,
	movType string, qty, before, after int64, batchTag string,
	in MoveStockInput, now time.Time,
) *entity.Movement {
	return &entity.Movement{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		ProductSKU:    product.SKU,
		ProductName:   product.Name,
		WarehouseID:   wh.ID,
		WarehouseName: wh.Name,
		Type:          movType,
		Quantity:      qty,
		UnitPrice:     product.UnitPrice,
		TotalValue:    entity.ComputeTotalValue(product.UnitPrice, qty),
		BeforeQty:     before,
		AfterQty:      after,
		ReferenceNum:  in.ReferenceNum,
		DamageReason:  in.DamageReason,
		BatchTag:      batchTag,
		CreatedAt:     now,
	}
}

func (uc *MovementUseCase) newTransferMovement(
	product *entity.Product, wh, other *entity.Warehouse,
	movType string, alloc invdomain.Allocation,
	before, after int64, referenceNum string, now time.Time,
) *entity.Movement {
	return &entity.Movement{
		ID:                uuid.New().String(),
		ProductID:         product.ID,
		ProductSKU:        product.SKU,
		ProductName:       product.Name,
		WarehouseID:       wh.ID,
		WarehouseName:     wh.Name,
		Type:              movType,
		Quantity:          alloc.Quantity,
		UnitPrice:         product.UnitPrice,
		TotalValue:        entity.ComputeTotalValue(product.UnitPrice, alloc.Quantity),
		BeforeQty:         before,
		AfterQty:          after,
		ReferenceNum:      referenceNum,
		BatchTag:          alloc.BatchTag,
		DestWarehouseID:   other.ID,
		DestWarehouseName: other.Name,
		CreatedAt:         now,
	}
}

// publishInventoryEvents notifica el sink después del commit, un evento por
// movimiento registrado. El sink aísla sus propias fallas; aquí no hay nada
// que propagar.
func (uc *MovementUseCase) publishInventoryEvents(ctx context.Context, movements []*entity.Movement) {
	for _, m := range movements {
		change := m.Quantity
		if entity.IsDeduction(m.Type) || m.Type == entity.MovementTypeTransferOut {
			change = -change
		}
		uc.sink.InventoryEvent(ctx, audit.InventoryEvent{
			EventID:        uuid.New().String(),
			Timestamp:      m.CreatedAt,
			ActionType:     m.Type,
			ProductSKU:     m.ProductSKU,
			Warehouse:      m.WarehouseName,
			QuantityChange: change,
			BeforeQuantity: m.BeforeQty,
			AfterQuantity:  m.AfterQty,
			ReferenceID:    m.ID,
		})
	}
}
