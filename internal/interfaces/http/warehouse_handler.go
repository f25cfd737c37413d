package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/catalog"
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
)

// WarehouseHandler maneja las peticiones HTTP del catálogo de bodegas
// (protegido).
type WarehouseHandler struct {
	uc *catalog.UseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *catalog.UseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateWarehouse(c.UserContext(), in)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWarehouseResponse(out))
}

// GetByName godoc
// @Summary      Obtener bodega por nombre
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre de la bodega"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{name} [get]
func (h *WarehouseHandler) GetByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_NAME", Message: "name es requerido"})
	}
	out, err := h.uc.GetWarehouseByName(c.UserContext(), name)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponse(out))
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 50))
	warehouses, err := h.uc.ListWarehouses(c.UserContext(), limit)
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, dto.ToWarehouseResponse(w))
	}
	return c.JSON(out)
}
