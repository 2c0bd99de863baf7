package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/access"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el libro de movimientos.
type MovementQueryUseCase struct {
	movRepo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso de consultas.
func NewMovementQueryUseCase(movRepo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo}
}

// ListAll lista todos los movimientos (solo admin), más reciente primero.
// Sin filtros ni paginación devuelve el libro completo.
func (uc *MovementQueryUseCase) ListAll(ctx context.Context, actor entity.Actor, q dto.MovementListQuery) (*dto.MovementListResponse, error) {
	if !access.Authorize(access.ActionListAllMovements, actor, access.Target{}) {
		return nil, fmt.Errorf("%w: solo un administrador puede listar todos los movimientos", domain.ErrForbidden)
	}
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, filter)
}

// ListByUser lista los movimientos registrados por targetUserID (admin o el mismo usuario).
func (uc *MovementQueryUseCase) ListByUser(ctx context.Context, actor entity.Actor, targetUserID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if strings.TrimSpace(targetUserID) == "" {
		return nil, fmt.Errorf("%w: user_id es requerido", domain.ErrInvalidInput)
	}
	if !access.Authorize(access.ActionListUserMovements, actor, access.Target{OwnerID: targetUserID}) {
		return nil, fmt.Errorf("%w: solo puede consultar sus propios movimientos", domain.ErrForbidden)
	}
	page.Normalize()
	return uc.list(ctx, repository.MovementFilter{UserID: targetUserID, Limit: page.Limit, Offset: page.Offset})
}

// GetByID devuelve un movimiento; ErrNotFound si no existe.
func (uc *MovementQueryUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.MovementResponse, error) {
	if !access.Authorize(access.ActionViewMovement, actor, access.Target{}) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id es requerido", domain.ErrInvalidInput)
	}
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	out := toMovementResponse(m)
	return &out, nil
}

func (uc *MovementQueryUseCase) list(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}

	// Sin paginar la página ya es el total
	total := len(items)
	if filter.Limit > 0 || filter.Offset > 0 {
		if total, err = uc.movRepo.Count(ctx, filter); err != nil {
			return nil, err
		}
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

func buildFilter(q dto.MovementListQuery) (repository.MovementFilter, error) {
	q.Page.Normalize()
	f := repository.MovementFilter{
		ProductID:   strings.TrimSpace(q.ProductID),
		WarehouseID: strings.TrimSpace(q.WarehouseID),
		From:        q.From,
		To:          q.To,
		Limit:       q.Page.Limit,
		Offset:      q.Page.Offset,
	}
	if strings.TrimSpace(q.Type) != "" {
		t, err := inventory.NormalizeType(q.Type)
		if err != nil {
			return f, err
		}
		f.Type = t
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, fmt.Errorf("%w: from debe ser anterior a to", domain.ErrInvalidInput)
	}
	return f, nil
}
