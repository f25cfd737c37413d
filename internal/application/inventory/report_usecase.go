package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF del historial de movimientos.
type ReportUseCase struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	movementRepo  repository.MovementRepository
	generator     MovementReportGenerator
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	movementRepo repository.MovementRepository,
	generator MovementReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		movementRepo:  movementRepo,
		generator:     generator,
	}
}

// MovementsPDF arma el historial filtrado por SKU o por bodega (o los últimos
// movimientos globales si no hay filtro) y lo renderiza como PDF.
func (uc *ReportUseCase) MovementsPDF(ctx context.Context, sku, warehouseName string, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = 100
	}

	var (
		movements []*entity.Movement
		title     string
		err       error
	)
	switch {
	case sku != "":
		product, perr := uc.productRepo.GetBySKU(sku)
		if perr != nil {
			return nil, perr
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		movements, err = uc.movementRepo.ListByProduct(product.ID, limit)
		title = fmt.Sprintf("Historial de movimientos — %s (%s)", product.Name, product.SKU)
	case warehouseName != "":
		wh, werr := uc.warehouseRepo.GetByName(warehouseName)
		if werr != nil {
			return nil, werr
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
		movements, err = uc.movementRepo.ListByWarehouse(wh.ID, limit)
		title = fmt.Sprintf("Historial de movimientos — bodega %s", wh.Name)
	default:
		movements, err = uc.movementRepo.Recent(limit)
		title = "Historial de movimientos"
	}
	if err != nil {
		return nil, err
	}
	return uc.generator.MovementsPDF(ctx, title, movements)
}
