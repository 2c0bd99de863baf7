package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/access"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var tracer = otel.Tracer("inventario-movimientos/inventory")

// RecordMovementUseCase registra movimientos de inventario de forma transaccional
// (entrada, salida, ajuste, devolucion) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RecordMovementUseCase struct {
	txRunner TxRunner
	refs     *ReferenceGateway
	log      zerolog.Logger
	now      func() time.Time
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner, refs *ReferenceGateway, log zerolog.Logger) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner: txRunner,
		refs:     refs,
		log:      log.With().Str("component", "movement_recorder").Logger(),
		now:      time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
// Type se acepta sin distinguir mayúsculas; SupplierID es obligatorio en entrada.
type MovementInput struct {
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    int
	Reason      *string
	UserID      string
	SupplierID  *string
}

// RecordMovement autoriza, valida referencias y, dentro de una transacción, bloquea la fila de stock,
// calcula el nuevo disponible, inserta el movimiento y actualiza el stock. Devuelve el movimiento
// tal como quedó almacenado.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, actor entity.Actor, input MovementInput) (*entity.Movement, error) {
	ctx, span := tracer.Start(ctx, "inventory.record_movement")
	defer span.End()

	log := uc.logger(ctx)
	mov, err := uc.record(ctx, actor, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logRejected(log, actor, input, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("movement.id", mov.ID),
		attribute.String("movement.type", mov.Type),
	)
	log.Info().
		Str("movement_id", mov.ID).
		Str("type", mov.Type).
		Str("product_id", mov.ProductID).
		Str("warehouse_id", mov.WarehouseID).
		Int("quantity", mov.Quantity).
		Int("before", mov.QuantityBefore).
		Int("after", mov.QuantityAfter).
		Msg("movimiento registrado")
	return mov, nil
}

func (uc *RecordMovementUseCase) record(ctx context.Context, actor entity.Actor, input MovementInput) (*entity.Movement, error) {
	// 1. Autorización: admin o el mismo usuario del movimiento
	if !access.Authorize(access.ActionRecordMovement, actor, access.Target{OwnerID: input.UserID}) {
		return nil, fmt.Errorf("%w: solo un administrador puede registrar movimientos a nombre de otro usuario", domain.ErrForbidden)
	}

	// 2. Validaciones en orden; la primera que falla corta sin escribir nada
	movType, err := inventory.NormalizeType(input.Type)
	if err != nil {
		return nil, err
	}
	quantity, err := inventory.ValidateQuantity(input.Quantity)
	if err != nil {
		return nil, err
	}
	if _, err := uc.refs.RequireProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}
	warehouse, err := uc.refs.RequireWarehouse(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.refs.RequireUser(ctx, input.UserID); err != nil {
		return nil, err
	}
	supplierID := trimmedOrNil(input.SupplierID)
	if supplierID != nil {
		if _, err := uc.refs.RequireSupplier(ctx, *supplierID); err != nil {
			return nil, err
		}
	}
	if err := inventory.RequireSupplier(movType, supplierID); err != nil {
		return nil, err
	}

	var stored *entity.Movement
	// 3–6 en una sola transacción; TxRunner hace Rollback si algo falla
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		// Bloquea la fila del par para serializar movimientos concurrentes
		stock, err := stockRepo.GetForUpdate(ctx, input.ProductID, input.WarehouseID)
		if err != nil {
			return err
		}
		newAvailable, err := inventory.ComputeNewStock(stock.Available, quantity, movType)
		if err != nil {
			return err
		}
		if err := inventory.CheckReserved(stock.Available, newAvailable, stock.Reserved); err != nil {
			return err
		}
		if err := inventory.CheckCapacity(newAvailable, stock.Reserved, warehouse.MaxCapacity); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:             uuid.New().String(),
			ProductID:      input.ProductID,
			WarehouseID:    input.WarehouseID,
			Type:           movType,
			Quantity:       quantity,
			QuantityBefore: stock.Available,
			QuantityAfter:  newAvailable,
			Reason:         trimmedOrNil(input.Reason),
			UserID:         input.UserID,
			SupplierID:     supplierID,
			CreatedAt:      uc.now().UTC(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		if err := stockRepo.Upsert(ctx, input.ProductID, input.WarehouseID, newAvailable); err != nil {
			return err
		}

		// Relee por id para devolver la representación almacenada
		stored, err = movRepo.GetByID(ctx, mov.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("movimiento %s no encontrado tras insertarlo", mov.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// DeleteMovement siempre falla: el libro de movimientos es solo de inserción.
// La única corrección válida es registrar un ajuste.
func (uc *RecordMovementUseCase) DeleteMovement(ctx context.Context, actor entity.Actor, id string) error {
	uc.logger(ctx).Warn().Str("movement_id", id).Str("actor_id", actor.ID).Msg("intento de eliminar movimiento rechazado")
	return domain.ErrMovementImmutable
}

// logger usa el logger de la petición (con request_id) si viene en el contexto.
func (uc *RecordMovementUseCase) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		withComponent := l.With().Str("component", "movement_recorder").Logger()
		return &withComponent
	}
	return &uc.log
}

func logRejected(log *zerolog.Logger, actor entity.Actor, input MovementInput, err error) {
	ev := log.Warn()
	if !isDomainError(err) {
		ev = log.Error()
	}
	ev.Err(err).
		Str("actor_id", actor.ID).
		Str("type", input.Type).
		Str("product_id", input.ProductID).
		Str("warehouse_id", input.WarehouseID).
		Int("quantity", input.Quantity).
		Msg("movimiento rechazado")
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
