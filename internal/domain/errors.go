package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los errores específicos envuelven a su categoría para que errors.Is funcione en ambos niveles.
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidState = errors.New("estado inválido")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	ErrInsufficientStock = fmt.Errorf("%w: stock insuficiente", ErrInvalidState)
	ErrInactive          = fmt.Errorf("%w: registro inactivo", ErrInvalidState)
	ErrCapacityExceeded  = fmt.Errorf("%w: capacidad máxima del almacén excedida", ErrInvalidState)
	ErrBelowReserved     = fmt.Errorf("%w: el disponible no puede quedar por debajo del reservado", ErrInvalidState)
	ErrMovementImmutable = fmt.Errorf("%w: los movimientos no se pueden eliminar; registre un ajuste para corregir", ErrInvalidInput)
)
