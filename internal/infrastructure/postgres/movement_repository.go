package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementsTable = "inventory_movements"

var movementColumns = []string{
	"id", "product_id", "warehouse_id", "type", "quantity",
	"quantity_before", "quantity_after", "reason", "user_id", "supplier_id", "created_at",
}

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create persiste un movimiento. El id y la fecha los asigna el caso de uso.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	sql, args, err := r.builder.Insert(movementsTable).
		Columns(movementColumns...).
		Values(m.ID, m.ProductID, m.WarehouseID, m.Type, m.Quantity,
			m.QuantityBefore, m.QuantityAfter, m.Reason, m.UserID, m.SupplierID, m.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert movement: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	sql, args, err := r.builder.Select(movementColumns...).
		From(movementsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get movement: %w", err)
	}
	var m entity.Movement
	if err := pgxscan.Get(ctx, r.q, &m, sql, args...); err != nil {
		if pgxscan.NotFound(err) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List lista movimientos aplicando los filtros presentes, más reciente primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	sql, args, err := buildMovementList(r.builder, f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list movements: %w", err)
	}
	list := []*entity.Movement{}
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		// Un id de filtro que no es UUID no puede coincidir con nada
		if isInvalidTextRepresentation(err) {
			return []*entity.Movement{}, nil
		}
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return list, nil
}

// Count cuenta las filas que cumplen el filtro, sin paginar.
func (r *MovementRepo) Count(ctx context.Context, f repository.MovementFilter) (int, error) {
	sql, args, err := buildMovementCount(r.builder, f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count movements: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		if isInvalidTextRepresentation(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func buildMovementList(b squirrel.StatementBuilderType, f repository.MovementFilter) squirrel.SelectBuilder {
	q := applyMovementFilter(b.Select(movementColumns...).From(movementsTable), f)
	// id como desempate para un orden estable entre movimientos del mismo instante
	q = q.OrderBy("created_at DESC", "id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return q
}

func buildMovementCount(b squirrel.StatementBuilderType, f repository.MovementFilter) squirrel.SelectBuilder {
	return applyMovementFilter(b.Select("COUNT(*)").From(movementsTable), f)
}

func applyMovementFilter(q squirrel.SelectBuilder, f repository.MovementFilter) squirrel.SelectBuilder {
	if f.UserID != "" {
		q = q.Where(squirrel.Eq{"user_id": f.UserID})
	}
	if f.ProductID != "" {
		q = q.Where(squirrel.Eq{"product_id": f.ProductID})
	}
	if f.WarehouseID != "" {
		q = q.Where(squirrel.Eq{"warehouse_id": f.WarehouseID})
	}
	if f.Type != "" {
		q = q.Where(squirrel.Eq{"type": f.Type})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *f.To})
	}
	return q
}
