package inventory

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement(ctx, actor, MovementInput)
// y devuelve la respuesta lista para serializar.
func (uc *RecordMovementUseCase) RecordMovementFromRequest(ctx context.Context, actor entity.Actor, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		UserID:      in.UserID,
		SupplierID:  in.SupplierID,
	}
	mov, err := uc.RecordMovement(ctx, actor, input)
	if err != nil {
		return nil, err
	}
	out := toMovementResponse(mov)
	return &out, nil
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		WarehouseID:    m.WarehouseID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		UserID:         m.UserID,
		SupplierID:     m.SupplierID,
		CreatedAt:      m.CreatedAt,
	}
}
