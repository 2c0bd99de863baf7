package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// stockQuerier lo implementa *inventory.StockQueryUseCase.
type stockQuerier interface {
	GetStock(ctx context.Context, actor entity.Actor, productID, warehouseID string) (*dto.StockLevelResponse, error)
	LowStockReport(ctx context.Context, actor entity.Actor, warehouseID string) (*dto.LowStockReportResponse, error)
	ProductTotals(ctx context.Context, actor entity.Actor) (*dto.ProductTotalsResponse, error)
	WarehouseTotals(ctx context.Context, actor entity.Actor, warehouseID string) (*dto.WarehouseTotalsResponse, error)
	StockByProduct(ctx context.Context, actor entity.Actor, productID string) (*dto.ProductStockResponse, error)
	Valuation(ctx context.Context, actor entity.Actor, warehouseID string) (*dto.StockValuationResponse, error)
}

// StockHandler consultas de stock por almacén (protegido).
type StockHandler struct {
	uc stockQuerier
}

// NewStockHandler construye el handler.
func NewStockHandler(uc stockQuerier) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Stock de un producto en un almacén
// @Description  Un par sin movimientos devuelve ceros.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    path  string  true  "Producto"
// @Param        warehouse_id  path  string  true  "Almacén"
// @Success      200  {object}  dto.StockLevelResponse
// @Router       /api/stock/{product_id}/{warehouse_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetStock(c.UserContext(), GetActor(c), c.Params("product_id"), c.Params("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  Pares con disponible por debajo del mínimo, ordenados por severidad (CRITICO, URGENTE, BAJO).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por almacén. Vacío = todos."
// @Success      200  {object}  dto.LowStockReportResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStockReport(c.UserContext(), GetActor(c), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProductTotals godoc
// @Summary      Stock total por producto
// @Description  Disponible y reservado de cada producto activo sumados en todos los almacenes.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductTotalsResponse
// @Router       /api/stock/totals/products [get]
func (h *StockHandler) ProductTotals(c *fiber.Ctx) error {
	out, err := h.uc.ProductTotals(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WarehouseTotals godoc
// @Summary      Stock total por almacén
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por almacén. Vacío = todos."
// @Success      200  {object}  dto.WarehouseTotalsResponse
// @Router       /api/stock/totals/warehouses [get]
func (h *StockHandler) WarehouseTotals(c *fiber.Ctx) error {
	out, err := h.uc.WarehouseTotals(c.UserContext(), GetActor(c), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByProduct godoc
// @Summary      Stock de un producto en cada almacén
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "Producto"
// @Success      200  {object}  dto.ProductStockResponse
// @Router       /api/stock/product/{product_id} [get]
func (h *StockHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.uc.StockByProduct(c.UserContext(), GetActor(c), c.Params("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Valuation godoc
// @Summary      Inventario valorizado
// @Description  Valor de cada fila = disponible * precio. Incluye totales generales.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por almacén. Vacío = todos."
// @Success      200  {object}  dto.StockValuationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/valuation [get]
func (h *StockHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.uc.Valuation(c.UserContext(), GetActor(c), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
