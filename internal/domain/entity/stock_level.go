package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel es la proyección mutable del historial de movimientos para un par (producto, almacén).
// Available y Reserved nunca son negativos.
type StockLevel struct {
	ProductID   string    `db:"product_id"`
	WarehouseID string    `db:"warehouse_id"`
	Available   int       `db:"available"`
	Reserved    int       `db:"reserved"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// LowStockItem es una fila del reporte de stock bajo (disponible < stock mínimo del producto).
type LowStockItem struct {
	ProductID     string          `db:"product_id"`
	ProductCode   string          `db:"product_code"`
	ProductName   string          `db:"product_name"`
	WarehouseID   string          `db:"warehouse_id"`
	WarehouseName string          `db:"warehouse_name"`
	Available     int             `db:"available"`
	MinStock      int             `db:"min_stock"`
	Price         decimal.Decimal `db:"price"`
}

// ProductStockTotal suma el stock de un producto en todos sus almacenes.
type ProductStockTotal struct {
	ProductID      string `db:"product_id"`
	ProductCode    string `db:"product_code"`
	ProductName    string `db:"product_name"`
	Available      int    `db:"available"`
	Reserved       int    `db:"reserved"`
	WarehouseCount int    `db:"warehouse_count"` // almacenes con disponible > 0
}

// WarehouseStockTotal suma el stock de un almacén sobre todos sus productos.
type WarehouseStockTotal struct {
	WarehouseID   string `db:"warehouse_id"`
	WarehouseName string `db:"warehouse_name"`
	Available     int    `db:"available"`
	Reserved      int    `db:"reserved"`
	ProductCount  int    `db:"product_count"` // productos con disponible > 0
	MaxCapacity   int    `db:"max_capacity"`
}

// StockDetail es el stock de un par con los nombres de producto y almacén.
type StockDetail struct {
	ProductID     string    `db:"product_id"`
	ProductCode   string    `db:"product_code"`
	ProductName   string    `db:"product_name"`
	WarehouseID   string    `db:"warehouse_id"`
	WarehouseName string    `db:"warehouse_name"`
	Available     int       `db:"available"`
	Reserved      int       `db:"reserved"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// StockValuationRow es una fila del inventario valorizado; sólo productos activos.
type StockValuationRow struct {
	ProductID     string          `db:"product_id"`
	ProductCode   string          `db:"product_code"`
	ProductName   string          `db:"product_name"`
	CategoryName  string          `db:"category_name"`
	WarehouseID   string          `db:"warehouse_id"`
	WarehouseName string          `db:"warehouse_name"`
	Available     int             `db:"available"`
	Reserved      int             `db:"reserved"`
	Price         decimal.Decimal `db:"price"`
}
