package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock vive por almacén en StockLevel.
type Product struct {
	ID         string
	Code       string // código único
	Name       string
	CategoryID string
	SupplierID string
	Price      decimal.Decimal // precio de venta
	MinStock   int             // stock mínimo por almacén; 0 = sin alerta
	Active     bool
	CreatedAt  time.Time
}
