package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/access"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// StockQueryUseCase consultas de stock: nivel de un par, totales, stock bajo e inventario valorizado.
type StockQueryUseCase struct {
	stockRepo repository.StockRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stockRepo repository.StockRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo}
}

// GetStock devuelve el stock del par; un par que nunca tuvo stock devuelve ceros.
func (uc *StockQueryUseCase) GetStock(ctx context.Context, actor entity.Actor, productID, warehouseID string) (*dto.StockLevelResponse, error) {
	if !access.Authorize(access.ActionViewStock, actor, access.Target{}) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(productID) == "" || strings.TrimSpace(warehouseID) == "" {
		return nil, fmt.Errorf("%w: product_id y warehouse_id son requeridos", domain.ErrInvalidInput)
	}
	s, err := uc.stockRepo.Get(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	out := &dto.StockLevelResponse{ProductID: productID, WarehouseID: warehouseID}
	if s != nil {
		out.Available = s.Available
		out.Reserved = s.Reserved
		if !s.UpdatedAt.IsZero() {
			updated := s.UpdatedAt
			out.UpdatedAt = &updated
		}
	}
	return out, nil
}

// LowStockReport lista los pares con disponible por debajo del mínimo del producto.
// warehouseID vacío considera todos los almacenes.
func (uc *StockQueryUseCase) LowStockReport(ctx context.Context, actor entity.Actor, warehouseID string) (*dto.LowStockReportResponse, error) {
	if !access.Authorize(access.ActionViewLowStock, actor, access.Target{}) {
		return nil, fmt.Errorf("%w: el reporte de stock bajo es para administradores y bodegueros", domain.ErrForbidden)
	}

	// 1. Pares bajo el mínimo
	raw, err := uc.stockRepo.ListBelowMinimum(ctx, strings.TrimSpace(warehouseID))
	if err != nil {
		return nil, err
	}

	// 2. Déficit, valorización y estado
	report := &dto.LowStockReportResponse{Items: make([]dto.LowStockItemDTO, 0, len(raw))}
	for _, it := range raw {
		deficit := inventory.Deficit(it.Available, it.MinStock)
		status := inventory.ClassifyLowStock(it.Available, it.MinStock)
		switch status {
		case inventory.StatusCritico:
			report.Critical++
		case inventory.StatusUrgente:
			report.Urgent++
		default:
			report.Low++
		}
		report.Items = append(report.Items, dto.LowStockItemDTO{
			ProductID:     it.ProductID,
			ProductCode:   it.ProductCode,
			ProductName:   it.ProductName,
			WarehouseID:   it.WarehouseID,
			WarehouseName: it.WarehouseName,
			Available:     it.Available,
			MinStock:      it.MinStock,
			Deficit:       deficit,
			DeficitValue:  it.Price.Mul(decimal.NewFromInt(int64(deficit))).Round(2),
			Status:        status,
		})
	}
	report.Total = len(report.Items)

	// 3. Ordenar: severidad, luego almacén y producto
	sort.SliceStable(report.Items, func(i, j int) bool {
		a, b := report.Items[i], report.Items[j]
		if ra, rb := inventory.StatusRank(a.Status), inventory.StatusRank(b.Status); ra != rb {
			return ra < rb
		}
		if a.WarehouseName != b.WarehouseName {
			return a.WarehouseName < b.WarehouseName
		}
		return a.ProductName < b.ProductName
	})
	return report, nil
}

// ProductTotals suma el stock de cada producto activo en todos los almacenes.
func (uc *StockQueryUseCase) ProductTotals(ctx context.Context, actor entity.Actor) (*dto.ProductTotalsResponse, error) {
	if !access.Authorize(access.ActionViewStock, actor, access.Target{}) {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.stockRepo.TotalsByProduct(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductTotalsResponse{Items: make([]dto.ProductStockTotalDTO, 0, len(rows))}
	for _, r := range rows {
		out.Items = append(out.Items, dto.ProductStockTotalDTO{
			ProductID:      r.ProductID,
			ProductCode:    r.ProductCode,
			ProductName:    r.ProductName,
			Available:      r.Available,
			Reserved:       r.Reserved,
			WarehouseCount: r.WarehouseCount,
		})
	}
	out.Total = len(out.Items)
	return out, nil
}

// WarehouseTotals suma el stock de cada almacén activo. warehouseID vacío = todos.
func (uc *StockQueryUseCase) WarehouseTotals(ctx context.Context, actor entity.Actor, warehouseID string) (*dto.WarehouseTotalsResponse, error) {
	if !access.Authorize(access.ActionViewStock, actor, access.Target{}) {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.stockRepo.TotalsByWarehouse(ctx, strings.TrimSpace(warehouseID))
	if err != nil {
		return nil, err
	}
	out := &dto.WarehouseTotalsResponse{Items: make([]dto.WarehouseStockTotalDTO, 0, len(rows))}
	for _, r := range rows {
		out.Items = append(out.Items, dto.WarehouseStockTotalDTO{
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			Available:     r.Available,
			Reserved:      r.Reserved,
			ProductCount:  r.ProductCount,
			MaxCapacity:   r.MaxCapacity,
		})
	}
	out.Total = len(out.Items)
	return out, nil
}

// StockByProduct devuelve el stock de un producto en cada almacén y su total.
// Un producto sin stock devuelve la lista vacía y totales en cero.
func (uc *StockQueryUseCase) StockByProduct(ctx context.Context, actor entity.Actor, productID string) (*dto.ProductStockResponse, error) {
	if !access.Authorize(access.ActionViewStock, actor, access.Target{}) {
		return nil, domain.ErrForbidden
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	rows, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductStockResponse{ProductID: productID, Warehouses: make([]dto.StockDetailDTO, 0, len(rows))}
	for _, r := range rows {
		out.ProductCode, out.ProductName = r.ProductCode, r.ProductName
		out.TotalAvailable += r.Available
		out.TotalReserved += r.Reserved
		out.Warehouses = append(out.Warehouses, dto.StockDetailDTO{
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			Available:     r.Available,
			Reserved:      r.Reserved,
			UpdatedAt:     r.UpdatedAt,
		})
	}
	return out, nil
}

// Valuation arma el inventario valorizado: valor = disponible * precio por fila, más los totales generales.
func (uc *StockQueryUseCase) Valuation(ctx context.Context, actor entity.Actor, warehouseID string) (*dto.StockValuationResponse, error) {
	if !access.Authorize(access.ActionViewValuation, actor, access.Target{}) {
		return nil, fmt.Errorf("%w: el inventario valorizado es para administradores y bodegueros", domain.ErrForbidden)
	}
	rows, err := uc.stockRepo.ListValuation(ctx, strings.TrimSpace(warehouseID))
	if err != nil {
		return nil, err
	}
	out := &dto.StockValuationResponse{
		Items:      make([]dto.StockValuationItemDTO, 0, len(rows)),
		TotalValue: decimal.Zero,
	}
	for _, r := range rows {
		value := r.Price.Mul(decimal.NewFromInt(int64(r.Available))).Round(2)
		out.TotalAvailable += r.Available
		out.TotalReserved += r.Reserved
		out.TotalValue = out.TotalValue.Add(value)
		out.Items = append(out.Items, dto.StockValuationItemDTO{
			ProductID:     r.ProductID,
			ProductCode:   r.ProductCode,
			ProductName:   r.ProductName,
			CategoryName:  r.CategoryName,
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			Available:     r.Available,
			Reserved:      r.Reserved,
			Total:         r.Available + r.Reserved,
			Price:         r.Price,
			StockValue:    value,
		})
	}
	return out, nil
}
