package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa un usuario del sistema.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string // admin, bodeguero, vendedor
	Active    bool
	CreatedAt time.Time
}

// Actor es el usuario que hace la petición, tal como lo describe su token.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin indica si el actor tiene el rol administrativo.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
