package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// ReferenceGateway verifica que las entidades referenciadas por un movimiento existan y estén activas.
// No existe → ErrNotFound; existe pero inactiva → ErrInactive.
type ReferenceGateway struct {
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	users      repository.UserRepository
	suppliers  repository.SupplierRepository
}

// NewReferenceGateway construye el gateway de datos de referencia.
func NewReferenceGateway(
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	users repository.UserRepository,
	suppliers repository.SupplierRepository,
) *ReferenceGateway {
	return &ReferenceGateway{products: products, warehouses: warehouses, users: users, suppliers: suppliers}
}

// RequireProduct devuelve el producto si existe y está activo.
func (g *ReferenceGateway) RequireProduct(ctx context.Context, id string) (*entity.Product, error) {
	if err := requireID("product_id", id); err != nil {
		return nil, err
	}
	p, err := g.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if !p.Active {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrInactive, id)
	}
	return p, nil
}

// RequireWarehouse devuelve el almacén si existe y está activo.
func (g *ReferenceGateway) RequireWarehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	if err := requireID("warehouse_id", id); err != nil {
		return nil, err
	}
	w, err := g.warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: almacén %s", domain.ErrNotFound, id)
	}
	if !w.Active {
		return nil, fmt.Errorf("%w: almacén %s", domain.ErrInactive, id)
	}
	return w, nil
}

// RequireUser devuelve el usuario si existe y está activo.
func (g *ReferenceGateway) RequireUser(ctx context.Context, id string) (*entity.User, error) {
	if err := requireID("user_id", id); err != nil {
		return nil, err
	}
	u, err := g.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	if !u.Active {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrInactive, id)
	}
	return u, nil
}

// RequireSupplier devuelve el proveedor si existe y está activo.
func (g *ReferenceGateway) RequireSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	if err := requireID("supplier_id", id); err != nil {
		return nil, err
	}
	s, err := g.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	if !s.Active {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrInactive, id)
	}
	return s, nil
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, field)
	}
	return nil
}
