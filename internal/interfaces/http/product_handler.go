package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/catalog"
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos
// (protegido).
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateProduct(c.UserContext(), in)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(out))
}

// GetBySKU godoc
// @Summary      Obtener producto por SKU
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku} [get]
func (h *ProductHandler) GetBySKU(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	out, err := h.uc.GetProductBySKU(c.UserContext(), sku)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(dto.ToProductResponse(out))
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 50))
	products, err := h.uc.ListProducts(c.UserContext(), limit)
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return c.JSON(out)
}

// clampLimit normaliza el límite de paginación.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 200 {
		return 200
	}
	return limit
}
