package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
// type es case-insensitive en la entrada: entrada, salida, ajuste, devolucion.
type RegisterMovementRequest struct {
	ProductID   string  `json:"product_id"`
	WarehouseID string  `json:"warehouse_id"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	Reason      *string `json:"reason,omitempty"`
	UserID      string  `json:"user_id"`
	SupplierID  *string `json:"supplier_id,omitempty"`
}

// MovementResponse salida de un movimiento persistido.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	WarehouseID    string    `json:"warehouse_id"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reason         *string   `json:"reason,omitempty"`
	UserID         string    `json:"user_id"`
	SupplierID     *string   `json:"supplier_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementListQuery filtros de GET /api/movements (todos opcionales).
type MovementListQuery struct {
	ProductID   string
	WarehouseID string
	Type        string
	From        *time.Time
	To          *time.Time
	Page        PageRequest
}

// MovementListResponse listado de movimientos, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockLevelResponse stock actual de un producto en un almacén.
type StockLevelResponse struct {
	ProductID   string     `json:"product_id"`
	WarehouseID string     `json:"warehouse_id"`
	Available   int        `json:"available"`
	Reserved    int        `json:"reserved"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"` // nil si el par nunca tuvo stock
}

// LowStockItemDTO un par (producto, almacén) por debajo del stock mínimo.
type LowStockItemDTO struct {
	ProductID     string          `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Available     int             `json:"available"`
	MinStock      int             `json:"min_stock"`
	Deficit       int             `json:"deficit"`       // MinStock - Available
	DeficitValue  decimal.Decimal `json:"deficit_value"` // Deficit * precio
	Status        string          `json:"status"`        // CRITICO, URGENTE, BAJO
}

// LowStockReportResponse resumen y detalle del stock bajo.
type LowStockReportResponse struct {
	Total    int               `json:"total"`
	Critical int               `json:"critical"`
	Urgent   int               `json:"urgent"`
	Low      int               `json:"low"`
	Items    []LowStockItemDTO `json:"items"`
}

// ProductStockTotalDTO stock de un producto sumado en todos los almacenes.
type ProductStockTotalDTO struct {
	ProductID      string `json:"product_id"`
	ProductCode    string `json:"product_code"`
	ProductName    string `json:"product_name"`
	Available      int    `json:"available"`
	Reserved       int    `json:"reserved"`
	WarehouseCount int    `json:"warehouse_count"`
}

// WarehouseStockTotalDTO stock de un almacén sumado sobre sus productos.
type WarehouseStockTotalDTO struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Available     int    `json:"available"`
	Reserved      int    `json:"reserved"`
	ProductCount  int    `json:"product_count"`
	MaxCapacity   int    `json:"max_capacity"` // 0 = sin límite
}

// ProductTotalsResponse totales por producto.
type ProductTotalsResponse struct {
	Items []ProductStockTotalDTO `json:"items"`
	Total int                    `json:"total"`
}

// WarehouseTotalsResponse totales por almacén.
type WarehouseTotalsResponse struct {
	Items []WarehouseStockTotalDTO `json:"items"`
	Total int                      `json:"total"`
}

// StockDetailDTO stock de un par con nombres.
type StockDetailDTO struct {
	WarehouseID   string    `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	Available     int       `json:"available"`
	Reserved      int       `json:"reserved"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductStockResponse stock de un producto por almacén y su total.
type ProductStockResponse struct {
	ProductID      string           `json:"product_id"`
	ProductCode    string           `json:"product_code,omitempty"`
	ProductName    string           `json:"product_name,omitempty"`
	TotalAvailable int              `json:"total_available"`
	TotalReserved  int              `json:"total_reserved"`
	Warehouses     []StockDetailDTO `json:"warehouses"`
}

// StockValuationItemDTO una fila del inventario valorizado.
type StockValuationItemDTO struct {
	ProductID     string          `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Available     int             `json:"available"`
	Reserved      int             `json:"reserved"`
	Total         int             `json:"total"` // Available + Reserved
	Price         decimal.Decimal `json:"price"`
	StockValue    decimal.Decimal `json:"stock_value"` // Available * Price
}

// StockValuationResponse inventario valorizado con totales generales.
type StockValuationResponse struct {
	Items          []StockValuationItemDTO `json:"items"`
	TotalAvailable int                     `json:"total_available"`
	TotalReserved  int                     `json:"total_reserved"`
	TotalValue     decimal.Decimal         `json:"total_value"`
}
