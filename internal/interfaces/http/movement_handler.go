package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// MovementHandler maneja lecturas del libro de movimientos y el reporte PDF
// (protegido).
type MovementHandler struct {
	uc       *inventory.MovementUseCase
	reportUC *inventory.ReportUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase, reportUC *inventory.ReportUseCase) *MovementHandler {
	return &MovementHandler{uc: uc, reportUC: reportUC}
}

// Recent godoc
// @Summary      Movimientos recientes
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/recent [get]
func (h *MovementHandler) Recent(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 50))
	movements, err := h.uc.RecentMovements(c.UserContext(), limit)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(toMovementResponses(movements))
}

// List godoc
// @Summary      Movimientos por producto o bodega
// @Description  Filtra por sku o por warehouse (exactamente uno).
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        sku        query  string  false  "SKU del producto"
// @Param        warehouse  query  string  false  "Nombre de la bodega"
// @Param        limit      query  int     false  "Límite"  default(50)
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	sku := c.Query("sku")
	warehouse := c.Query("warehouse")
	limit := clampLimit(c.QueryInt("limit", 50))

	switch {
	case sku != "" && warehouse != "":
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "indique sku o warehouse, no ambos"})
	case sku != "":
		movements, err := h.uc.MovementsByProduct(c.UserContext(), sku, limit)
		if err != nil {
			return handleDomainError(c, err)
		}
		return c.JSON(toMovementResponses(movements))
	case warehouse != "":
		movements, err := h.uc.MovementsByWarehouse(c.UserContext(), warehouse, limit)
		if err != nil {
			return handleDomainError(c, err)
		}
		return c.JSON(toMovementResponses(movements))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku o warehouse es requerido"})
	}
}

// Report godoc
// @Summary      Reporte PDF de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        sku        query  string  false  "SKU del producto"
// @Param        warehouse  query  string  false  "Nombre de la bodega"
// @Param        limit      query  int     false  "Límite"  default(100)
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/report [get]
func (h *MovementHandler) Report(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 100))
	pdfBytes, err := h.reportUC.MovementsPDF(c.UserContext(), c.Query("sku"), c.Query("warehouse"), limit)
	if err != nil {
		return handleDomainError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="movimientos.pdf"`)
	return c.Send(pdfBytes)
}

func toMovementResponses(movements []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementResponse(m))
	}
	return out
}
