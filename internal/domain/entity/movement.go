package entity

import "time"

// Tipos de movimiento de inventario. Forman parte del contrato estable: se guardan en minúsculas.
const (
	MovementTypeEntrada    = "entrada"    // recepción de mercancía, exige proveedor
	MovementTypeSalida     = "salida"     // despacho o venta
	MovementTypeAjuste     = "ajuste"     // corrección: fija el valor absoluto
	MovementTypeDevolucion = "devolucion" // devolución de un cliente
)

// Movement es un registro inmutable del libro de movimientos (solo inserción).
// QuantityBefore/QuantityAfter describen el stock disponible del par (producto, almacén)
// antes y después de aplicar el movimiento.
type Movement struct {
	ID             string    `db:"id"`
	ProductID      string    `db:"product_id"`
	WarehouseID    string    `db:"warehouse_id"`
	Type           string    `db:"type"`
	Quantity       int       `db:"quantity"`
	QuantityBefore int       `db:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after"`
	Reason         *string   `db:"reason"`
	UserID         string    `db:"user_id"`
	SupplierID     *string   `db:"supplier_id"`
	CreatedAt      time.Time `db:"created_at"`
}
