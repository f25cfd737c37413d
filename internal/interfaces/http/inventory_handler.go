package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
)

// InventoryHandler maneja consultas de stock y registro de movimientos
// (protegido).
type InventoryHandler struct {
	uc *inventory.MovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.MovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetStock godoc
// @Summary      Consultar stock de un producto
// @Description  Suma de los batches del producto en la bodega indicada, o en
// @Description  todas las bodegas si se omite warehouse.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku        query  string  true   "SKU del producto"
// @Param        warehouse  query  string  false  "Nombre de la bodega"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	sku := c.Query("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	warehouse := c.Query("warehouse")
	qty, err := h.uc.GetStock(c.UserContext(), sku, warehouse)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(dto.StockResponse{SKU: sku, Warehouse: warehouse, Quantity: qty})
}

// GetRecords godoc
// @Summary      Consultar filas de inventario por lote
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku        query  string  true   "SKU del producto"
// @Param        warehouse  query  string  false  "Nombre de la bodega"
// @Success      200  {array}   dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/records [get]
func (h *InventoryHandler) GetRecords(c *fiber.Ctx) error {
	sku := c.Query("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	rows, err := h.uc.GetInventoryRecord(c.UserContext(), sku, c.Query("warehouse"))
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, dto.ToBatchResponse(b))
	}
	return c.JSON(out)
}

// GetLowStock godoc
// @Summary      Listar filas en o bajo su punto de reorden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 50))
	rows, err := h.uc.GetLowStock(c.UserContext(), limit)
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, dto.ToBatchResponse(b))
	}
	return c.JSON(out)
}

// MoveStock godoc
// @Summary      Registrar un movimiento de inventario
// @Description  Entrada, salida o baja por anomalía. Las salidas sin lote
// @Description  indicado descuentan en orden FIFO entre los lotes del par.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveStockRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) MoveStock(c *fiber.Ctx) error {
	var in dto.MoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.MoveStock(c.UserContext(), inventory.MoveStockInput{
		SKU:          in.SKU,
		Warehouse:    in.Warehouse,
		Type:         in.Type,
		Quantity:     in.Quantity,
		BatchTag:     in.BatchTag,
		ReferenceNum: in.ReferenceNum,
		DamageReason: in.DamageReason,
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(movement))
}

// TransferStock godoc
// @Summary      Trasladar stock entre bodegas
// @Description  Descuenta en la bodega origen (FIFO si no hay lote indicado)
// @Description  y acredita en la destino preservando la identidad del lote.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "Traslado"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) TransferStock(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.TransferStock(c.UserContext(), inventory.TransferStockInput{
		SKU:             in.SKU,
		SourceWarehouse: in.SourceWarehouse,
		DestWarehouse:   in.DestWarehouse,
		Quantity:        in.Quantity,
		BatchTag:        in.BatchTag,
		ReferenceNum:    in.ReferenceNum,
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(movement))
}
