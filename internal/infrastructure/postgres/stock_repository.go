package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = "product_id, warehouse_id, available, reserved, updated_at"

// Sin fila no hay nada que bloquear: dos primeras entradas concurrentes leerían ambas 0.
const ensureStockRowSQL = `
		INSERT INTO stock_levels (product_id, warehouse_id, available, reserved, updated_at)
		VALUES ($1, $2, 0, 0, now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`

const lockStockRowSQL = `SELECT ` + stockColumns + ` FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`

const upsertStockSQL = `
		INSERT INTO stock_levels (product_id, warehouse_id, available, reserved, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET available = EXCLUDED.available, updated_at = now()`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get obtiene el stock actual de un producto en un almacén; ceros si el par nunca tuvo stock.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.StockLevel
	if err := pgxscan.Get(ctx, r.q, &s, query, productID, warehouseID); err != nil {
		if pgxscan.NotFound(err) || isInvalidTextRepresentation(err) {
			return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate asegura que exista la fila del par (en cero) y la bloquea (SELECT FOR UPDATE)
// hasta el fin de la transacción. Debe llamarse dentro de una tx.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	if _, err := r.q.Exec(ctx, ensureStockRowSQL, productID, warehouseID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}

	var s entity.StockLevel
	if err := pgxscan.Get(ctx, r.q, &s, lockStockRowSQL, productID, warehouseID); err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert fija el disponible del par; si no existe la fila la inserta con reservado = 0.
func (r *StockRepo) Upsert(ctx context.Context, productID, warehouseID string, available int) error {
	if _, err := r.q.Exec(ctx, upsertStockSQL, productID, warehouseID, available); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListBelowMinimum lista los pares activos con disponible < stock mínimo del producto.
// warehouseID vacío = todos los almacenes.
func (r *StockRepo) ListBelowMinimum(ctx context.Context, warehouseID string) ([]entity.LowStockItem, error) {
	sql, args, err := buildLowStock(r.builder, warehouseID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build low stock query: %w", err)
	}
	var items []entity.LowStockItem
	if err := pgxscan.Select(ctx, r.q, &items, sql, args...); err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return items, nil
}

// TotalsByProduct suma disponible y reservado de cada producto activo en todos los almacenes.
func (r *StockRepo) TotalsByProduct(ctx context.Context) ([]entity.ProductStockTotal, error) {
	sql, args, err := buildTotalsByProduct(r.builder).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build product totals query: %w", err)
	}
	var rows []entity.ProductStockTotal
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("product totals: %w", err)
	}
	return rows, nil
}

// TotalsByWarehouse suma el stock de cada almacén activo. warehouseID vacío = todos.
func (r *StockRepo) TotalsByWarehouse(ctx context.Context, warehouseID string) ([]entity.WarehouseStockTotal, error) {
	sql, args, err := buildTotalsByWarehouse(r.builder, warehouseID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build warehouse totals query: %w", err)
	}
	var rows []entity.WarehouseStockTotal
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("warehouse totals: %w", err)
	}
	return rows, nil
}

// ListByProduct devuelve el stock de un producto en cada almacén, con nombres.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]entity.StockDetail, error) {
	sql, args, err := buildStockByProduct(r.builder, productID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stock by product query: %w", err)
	}
	var rows []entity.StockDetail
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stock by product: %w", err)
	}
	return rows, nil
}

// ListValuation devuelve las filas del inventario valorizado (productos activos), con precio y categoría.
func (r *StockRepo) ListValuation(ctx context.Context, warehouseID string) ([]entity.StockValuationRow, error) {
	sql, args, err := buildValuation(r.builder, warehouseID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build valuation query: %w", err)
	}
	var rows []entity.StockValuationRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stock valuation: %w", err)
	}
	return rows, nil
}

func buildLowStock(b squirrel.StatementBuilderType, warehouseID string) squirrel.SelectBuilder {
	q := b.Select(
		"s.product_id",
		"p.code AS product_code",
		"p.name AS product_name",
		"s.warehouse_id",
		"w.name AS warehouse_name",
		"s.available",
		"p.min_stock",
		"p.price",
	).From("stock_levels s").
		Join("products p ON p.id = s.product_id").
		Join("warehouses w ON w.id = s.warehouse_id").
		Where(squirrel.Eq{"p.active": true, "w.active": true}).
		Where("s.available < p.min_stock")
	if warehouseID != "" {
		q = q.Where(squirrel.Eq{"s.warehouse_id": warehouseID})
	}
	return q
}

func buildTotalsByProduct(b squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return b.Select(
		"s.product_id",
		"p.code AS product_code",
		"p.name AS product_name",
		"COALESCE(SUM(s.available), 0) AS available",
		"COALESCE(SUM(s.reserved), 0) AS reserved",
		"COUNT(*) FILTER (WHERE s.available > 0) AS warehouse_count",
	).From("stock_levels s").
		Join("products p ON p.id = s.product_id").
		Where(squirrel.Eq{"p.active": true}).
		GroupBy("s.product_id", "p.code", "p.name").
		OrderBy("p.name")
}

func buildTotalsByWarehouse(b squirrel.StatementBuilderType, warehouseID string) squirrel.SelectBuilder {
	q := b.Select(
		"s.warehouse_id",
		"w.name AS warehouse_name",
		"COALESCE(SUM(s.available), 0) AS available",
		"COALESCE(SUM(s.reserved), 0) AS reserved",
		"COUNT(*) FILTER (WHERE s.available > 0) AS product_count",
		"w.max_capacity",
	).From("stock_levels s").
		Join("warehouses w ON w.id = s.warehouse_id").
		Where(squirrel.Eq{"w.active": true})
	if warehouseID != "" {
		q = q.Where(squirrel.Eq{"s.warehouse_id": warehouseID})
	}
	return q.GroupBy("s.warehouse_id", "w.name", "w.max_capacity").OrderBy("w.name")
}

func buildStockByProduct(b squirrel.StatementBuilderType, productID string) squirrel.SelectBuilder {
	return b.Select(
		"s.product_id",
		"p.code AS product_code",
		"p.name AS product_name",
		"s.warehouse_id",
		"w.name AS warehouse_name",
		"s.available",
		"s.reserved",
		"s.updated_at",
	).From("stock_levels s").
		Join("products p ON p.id = s.product_id").
		Join("warehouses w ON w.id = s.warehouse_id").
		Where(squirrel.Eq{"s.product_id": productID}).
		OrderBy("w.name")
}

func buildValuation(b squirrel.StatementBuilderType, warehouseID string) squirrel.SelectBuilder {
	q := b.Select(
		"s.product_id",
		"p.code AS product_code",
		"p.name AS product_name",
		"COALESCE(c.name, '') AS category_name",
		"s.warehouse_id",
		"w.name AS warehouse_name",
		"s.available",
		"s.reserved",
		"p.price",
	).From("stock_levels s").
		Join("products p ON p.id = s.product_id").
		Join("warehouses w ON w.id = s.warehouse_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(squirrel.Eq{"p.active": true})
	if warehouseID != "" {
		q = q.Where(squirrel.Eq{"s.warehouse_id": warehouseID})
	}
	return q.OrderBy("w.name", "category_name", "p.name")
}
