package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos; los campos vacíos no filtran.
type MovementFilter struct {
	UserID      string
	ProductID   string
	WarehouseID string
	Type        string
	From        *time.Time
	To          *time.Time
	Limit       int // 0 = sin límite
	Offset      int
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
// No hay Update ni Delete: el libro es solo de inserción.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// List devuelve los movimientos ordenados por fecha descendente.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// Count cuenta los movimientos que cumplen el filtro, ignorando Limit y Offset.
	Count(ctx context.Context, filter MovementFilter) (int, error)
}
