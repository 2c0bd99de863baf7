// Package access centraliza las reglas de autorización de los casos de uso de inventario.
// Los casos de uso no comparan roles directamente: preguntan a Authorize si una acción está permitida.
package access

import "github.com/jhoicas/inventario-movimientos/internal/domain/entity"

// Action identifica una operación protegida.
type Action string

const (
	ActionRecordMovement    Action = "movement:record"
	ActionListAllMovements  Action = "movement:list_all"
	ActionListUserMovements Action = "movement:list_user"
	ActionViewMovement      Action = "movement:view"
	ActionViewStock         Action = "stock:view"
	ActionViewLowStock      Action = "stock:view_low"
	ActionViewValuation     Action = "stock:view_valuation"
)

// Target describe sobre quién recae la acción. OwnerID es el usuario dueño del recurso
// (el usuario del movimiento o el usuario cuyos movimientos se consultan); vacío si no aplica.
type Target struct {
	OwnerID string
}

// Authorize indica si el actor puede ejecutar la acción sobre el objetivo.
func Authorize(action Action, actor entity.Actor, target Target) bool {
	if actor.ID == "" {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	switch action {
	case ActionRecordMovement, ActionListUserMovements:
		return target.OwnerID != "" && target.OwnerID == actor.ID
	case ActionViewMovement, ActionViewStock:
		return true
	case ActionViewLowStock, ActionViewValuation:
		return actor.Role == entity.RoleBodeguero
	}
	return false
}
