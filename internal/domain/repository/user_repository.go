package repository

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// UserRepository define el puerto de lectura de usuarios.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
