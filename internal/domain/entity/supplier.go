package entity

import "time"

// Supplier representa un proveedor. Las entradas siempre referencian uno activo.
type Supplier struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
}
