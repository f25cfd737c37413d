package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/auth"
	"github.com/jhoicas/Inventario-ledger/internal/application/catalog"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC  *catalog.UseCase
	MovementUC *inventory.MovementUseCase
	ReportUC   *inventory.ReportUseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Las mutaciones requieren además rol de operación.
	operator := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", operator, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:sku", productHandler.GetBySKU)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.CatalogUC)
	warehouses.Post("/", operator, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:name", warehouseHandler.GetByName)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC)
	invGroup.Get("/stock", inventoryHandler.GetStock)
	invGroup.Get("/records", inventoryHandler.GetRecords)
	invGroup.Get("/low-stock", inventoryHandler.GetLowStock)
	invGroup.Post("/movements", operator, inventoryHandler.MoveStock)
	invGroup.Post("/transfers", operator, inventoryHandler.TransferStock)

	// Movements ledger (protegido, solo lectura)
	movGroup := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.ReportUC)
	movGroup.Get("/recent", movementHandler.Recent)
	movGroup.Get("/report", movementHandler.Report)
	movGroup.Get("/", movementHandler.List)
}
