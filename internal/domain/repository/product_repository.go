package repository

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de productos que consume el motor de inventario.
// El CRUD de productos vive fuera de este servicio.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
