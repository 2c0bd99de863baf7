package inventory

import (
	"errors"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

// isDomainError indica si err pertenece a la taxonomía de dominio (no es una falla de infraestructura).
func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidInput,
		domain.ErrNotFound,
		domain.ErrInvalidState,
		domain.ErrForbidden,
		domain.ErrUnauthorized,
		domain.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
