package inventory_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// memStore simula PostgreSQL: escrituras en staging por transacción, commit al final
// y un mutex por par (producto, almacén) que hace de SELECT FOR UPDATE.
type memStore struct {
	mu        sync.Mutex
	movements []*entity.Movement
	stock     map[pairKey]entity.StockLevel
	rowLocks  map[pairKey]*sync.Mutex

	failUpsert error
}

type pairKey struct{ product, warehouse string }

func newMemStore() *memStore {
	return &memStore{
		stock:    map[pairKey]entity.StockLevel{},
		rowLocks: map[pairKey]*sync.Mutex{},
	}
}

func (s *memStore) setStock(productID, warehouseID string, available, reserved int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[pairKey{productID, warehouseID}] = entity.StockLevel{
		ProductID: productID, WarehouseID: warehouseID, Available: available, Reserved: reserved,
	}
}

func (s *memStore) available(productID, warehouseID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock[pairKey{productID, warehouseID}].Available
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

func (s *memStore) rowLock(k pairKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[k]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[k] = l
	}
	return l
}

// Run implementa inventory.TxRunner.
func (s *memStore) Run(ctx context.Context, fn func(repository.MovementRepository, repository.StockRepository) error) error {
	tx := &memTx{store: s, pendingStock: map[pairKey]int{}}
	defer tx.release()
	if err := fn(tx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, tx.pendingMovs...)
	for k, v := range tx.pendingStock {
		cur := s.stock[k]
		cur.ProductID, cur.WarehouseID, cur.Available = k.product, k.warehouse, v
		s.stock[k] = cur
	}
	return nil
}

// Vista confirmada (fuera de transacción) para el caso de uso de consultas.

func (s *memStore) Create(context.Context, *entity.Movement) error { panic("solo dentro de tx") }

func (s *memStore) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	out := s.matching(f)
	if f.Offset > len(out) {
		return []*entity.Movement{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *memStore) Count(_ context.Context, f repository.MovementFilter) (int, error) {
	return len(s.matching(f)), nil
}

func (s *memStore) matching(f repository.MovementFilter) []*entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Movement, 0, len(s.movements))
	// Recorre de atrás hacia adelante: el más reciente primero
	for i := len(s.movements) - 1; i >= 0; i-- {
		m := s.movements[i]
		if f.UserID != "" && m.UserID != f.UserID {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type memTx struct {
	store        *memStore
	held         []*sync.Mutex
	pendingMovs  []*entity.Movement
	pendingStock map[pairKey]int
}

func (t *memTx) release() {
	for _, l := range t.held {
		l.Unlock()
	}
}

func (t *memTx) read(k pairKey) *entity.StockLevel {
	t.store.mu.Lock()
	cur, ok := t.store.stock[k]
	t.store.mu.Unlock()
	if !ok {
		cur = entity.StockLevel{ProductID: k.product, WarehouseID: k.warehouse}
	}
	if v, ok := t.pendingStock[k]; ok {
		cur.Available = v
	}
	return &cur
}

func (t *memTx) Get(_ context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	return t.read(pairKey{productID, warehouseID}), nil
}

func (t *memTx) GetForUpdate(_ context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	k := pairKey{productID, warehouseID}
	l := t.store.rowLock(k)
	l.Lock()
	t.held = append(t.held, l)
	return t.read(k), nil
}

func (t *memTx) Upsert(_ context.Context, productID, warehouseID string, available int) error {
	if t.store.failUpsert != nil {
		return t.store.failUpsert
	}
	t.pendingStock[pairKey{productID, warehouseID}] = available
	return nil
}

func (t *memTx) ListBelowMinimum(context.Context, string) ([]entity.LowStockItem, error) {
	return nil, nil
}

func (t *memTx) TotalsByProduct(context.Context) ([]entity.ProductStockTotal, error) { return nil, nil }

func (t *memTx) TotalsByWarehouse(context.Context, string) ([]entity.WarehouseStockTotal, error) {
	return nil, nil
}

func (t *memTx) ListByProduct(context.Context, string) ([]entity.StockDetail, error) { return nil, nil }

func (t *memTx) ListValuation(context.Context, string) ([]entity.StockValuationRow, error) {
	return nil, nil
}

func (t *memTx) Create(_ context.Context, m *entity.Movement) error {
	cp := *m
	t.pendingMovs = append(t.pendingMovs, &cp)
	return nil
}

func (t *memTx) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	for _, m := range t.pendingMovs {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return t.store.GetByID(ctx, id)
}

func (t *memTx) List(context.Context, repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}

func (t *memTx) Count(context.Context, repository.MovementFilter) (int, error) {
	return 0, nil
}

// memRefs datos de referencia en memoria (productos, almacenes, usuarios, proveedores).
type memRefs struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	users      map[string]*entity.User
	suppliers  map[string]*entity.Supplier
}

func newMemRefs() *memRefs {
	return &memRefs{
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
		users:      map[string]*entity.User{},
		suppliers:  map[string]*entity.Supplier{},
	}
}

type productLookup struct{ r *memRefs }
type warehouseLookup struct{ r *memRefs }
type userLookup struct{ r *memRefs }
type supplierLookup struct{ r *memRefs }

func (l productLookup) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return l.r.products[id], nil
}
func (l warehouseLookup) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	return l.r.warehouses[id], nil
}
func (l userLookup) GetByID(_ context.Context, id string) (*entity.User, error) {
	return l.r.users[id], nil
}
func (l supplierLookup) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return l.r.suppliers[id], nil
}
