package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Recorder    movementRecorder
	Movements   movementQuerier
	Stock       stockQuerier
	Idempotency idempotencyStore // nil = sin Redis, la cabecera Idempotency-Key se ignora
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Movimientos
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Recorder, deps.Movements)
	if deps.Idempotency != nil {
		movements.Post("/", Idempotency(deps.Idempotency), movementHandler.Create)
	} else {
		movements.Post("/", movementHandler.Create)
	}
	movements.Get("/", RequireRole(entity.RoleAdmin), movementHandler.List)
	movements.Get("/user/:user_id", movementHandler.ListByUser)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Delete("/:id", movementHandler.Delete)

	// Stock
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Stock)
	stock.Get("/low", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), stockHandler.LowStock)
	stock.Get("/valuation", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), stockHandler.Valuation)
	stock.Get("/totals/products", stockHandler.ProductTotals)
	stock.Get("/totals/warehouses", stockHandler.WarehouseTotals)
	stock.Get("/product/:product_id", stockHandler.ByProduct)
	stock.Get("/:product_id/:warehouse_id", stockHandler.Get)
}
