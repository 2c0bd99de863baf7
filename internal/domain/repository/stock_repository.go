package repository

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// StockRepository define el puerto del libro de stock por (producto, almacén).
// Get y GetForUpdate devuelven un StockLevel en cero cuando el par nunca tuvo stock.
type StockRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila del par hasta el fin de la transacción (SELECT FOR UPDATE).
	// Si la fila no existe la crea en cero antes de bloquearla.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error)
	// Upsert fija el disponible; si la fila no existe la inserta con reservado = 0.
	Upsert(ctx context.Context, productID, warehouseID string, available int) error
	ListBelowMinimum(ctx context.Context, warehouseID string) ([]entity.LowStockItem, error)

	// Reportes agregados. warehouseID vacío = todos los almacenes.
	TotalsByProduct(ctx context.Context) ([]entity.ProductStockTotal, error)
	TotalsByWarehouse(ctx context.Context, warehouseID string) ([]entity.WarehouseStockTotal, error)
	ListByProduct(ctx context.Context, productID string) ([]entity.StockDetail, error)
	ListValuation(ctx context.Context, warehouseID string) ([]entity.StockValuationRow, error)
}
