package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// Límites de cantidad por movimiento.
const (
	MinQuantity = 1
	MaxQuantity = 100000
)

var validTypes = map[string]struct{}{
	entity.MovementTypeEntrada:    {},
	entity.MovementTypeSalida:     {},
	entity.MovementTypeAjuste:     {},
	entity.MovementTypeDevolucion: {},
}

// NormalizeType compara sin distinguir mayúsculas contra los cuatro tipos y devuelve la forma en minúsculas.
func NormalizeType(raw string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := validTypes[t]; !ok {
		return "", fmt.Errorf("%w: tipo de movimiento %q no válido (entrada, salida, ajuste, devolucion)", domain.ErrInvalidInput, raw)
	}
	return t, nil
}

// ValidateQuantity exige MinQuantity <= q <= MaxQuantity.
func ValidateQuantity(q int) (int, error) {
	if q < MinQuantity || q > MaxQuantity {
		return 0, fmt.Errorf("%w: la cantidad debe estar entre %d y %d", domain.ErrInvalidInput, MinQuantity, MaxQuantity)
	}
	return q, nil
}

// RequireSupplier: toda entrada debe indicar proveedor.
func RequireSupplier(movementType string, supplierID *string) error {
	if movementType != entity.MovementTypeEntrada {
		return nil
	}
	if supplierID == nil || strings.TrimSpace(*supplierID) == "" {
		return fmt.Errorf("%w: las entradas requieren proveedor", domain.ErrInvalidInput)
	}
	return nil
}

// ComputeNewStock devuelve el disponible resultante de aplicar un movimiento al stock actual.
// entrada y devolucion suman, salida resta y ajuste FIJA el valor absoluto (no es un delta).
func ComputeNewStock(current, quantity int, movementType string) (int, error) {
	switch movementType {
	case entity.MovementTypeEntrada, entity.MovementTypeDevolucion:
		return current + quantity, nil
	case entity.MovementTypeSalida:
		next := current - quantity
		if next < 0 {
			return 0, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, current, quantity)
		}
		return next, nil
	case entity.MovementTypeAjuste:
		return applyAdjustment(quantity)
	}
	return 0, fmt.Errorf("%w: tipo de movimiento %q no válido", domain.ErrInvalidInput, movementType)
}

// applyAdjustment: el ajuste sobrescribe el disponible con la cantidad contada.
func applyAdjustment(quantity int) (int, error) {
	if quantity < 0 {
		return 0, fmt.Errorf("%w: el ajuste no puede ser negativo", domain.ErrInvalidInput)
	}
	return quantity, nil
}

// CheckReserved exige reservado <= disponible después de un movimiento que baja el disponible.
// Un movimiento que no baja el disponible nunca se rechaza aquí, aunque el par ya estuviera por debajo.
func CheckReserved(current, newAvailable, reserved int) error {
	if newAvailable >= current || newAvailable >= reserved {
		return nil
	}
	return fmt.Errorf("%w: disponible %d, reservado %d", domain.ErrBelowReserved, newAvailable, reserved)
}

// CheckCapacity valida el techo del almacén sobre disponible + reservado. maxCapacity 0 = sin límite.
func CheckCapacity(newAvailable, reserved, maxCapacity int) error {
	if maxCapacity <= 0 {
		return nil
	}
	if total := newAvailable + reserved; total > maxCapacity {
		return fmt.Errorf("%w: total %d supera %d", domain.ErrCapacityExceeded, total, maxCapacity)
	}
	return nil
}
