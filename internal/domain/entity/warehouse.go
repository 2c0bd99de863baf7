package entity

import "time"

// Warehouse representa un almacén donde se guarda inventario.
type Warehouse struct {
	ID          string
	Name        string
	Location    string
	MaxCapacity int // unidades (disponible + reservado) por producto; 0 = sin límite
	Active      bool
	CreatedAt   time.Time
}
