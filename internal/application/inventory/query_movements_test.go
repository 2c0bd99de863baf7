package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

func seedLedger(t *testing.T, f *fixture) []string {
	t.Helper()
	ctx := context.Background()
	var ids []string
	for _, step := range []struct {
		actor entity.Actor
		in    inventory.MovementInput
	}{
		{asUser(userU), input(entity.MovementTypeEntrada, 50)},
		{adminActor, func() inventory.MovementInput { in := input(entity.MovementTypeSalida, 5); in.UserID = userV; return in }()},
		{asUser(userU), input(entity.MovementTypeSalida, 10)},
	} {
		m, err := f.uc.RecordMovement(ctx, step.actor, step.in)
		require.NoError(t, err)
		ids = append(ids, m.ID)
		time.Sleep(time.Millisecond)
	}
	return ids
}

func TestListAll_SoloAdmin(t *testing.T) {
	f := newFixture()
	seedLedger(t, f)
	q := inventory.NewMovementQueryUseCase(f.store)

	_, err := q.ListAll(context.Background(), asUser(userU), dto.MovementListQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = q.ListAll(context.Background(), entity.Actor{}, dto.MovementListQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden, "sin identidad no hay acceso")
}

func TestListAll_MasRecientePrimero(t *testing.T) {
	f := newFixture()
	ids := seedLedger(t, f)
	q := inventory.NewMovementQueryUseCase(f.store)

	out, err := q.ListAll(context.Background(), adminActor, dto.MovementListQuery{})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, ids[2], out.Items[0].ID)
	assert.Equal(t, ids[0], out.Items[2].ID)
	assert.Equal(t, 3, out.Page.Total)
}

func TestListAll_Filtros(t *testing.T) {
	f := newFixture()
	seedLedger(t, f)
	q := inventory.NewMovementQueryUseCase(f.store)

	out, err := q.ListAll(context.Background(), adminActor, dto.MovementListQuery{Type: "SALIDA"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	for _, it := range out.Items {
		assert.Equal(t, entity.MovementTypeSalida, it.Type)
	}

	out, err = q.ListAll(context.Background(), adminActor, dto.MovementListQuery{Page: dto.PageRequest{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)

	_, err = q.ListAll(context.Background(), adminActor, dto.MovementListQuery{Type: "traslado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err = q.ListAll(context.Background(), adminActor, dto.MovementListQuery{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Total cuenta todas las filas que cumplen el filtro, no el tamaño de la página.
func TestListAll_TotalConPaginacion(t *testing.T) {
	f := newFixture()
	ids := seedLedger(t, f)
	q := inventory.NewMovementQueryUseCase(f.store)

	out, err := q.ListAll(context.Background(), adminActor, dto.MovementListQuery{Page: dto.PageRequest{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.Page.Total)
	assert.Equal(t, 2, out.Page.Limit)

	out, err = q.ListAll(context.Background(), adminActor, dto.MovementListQuery{Page: dto.PageRequest{Limit: 2, Offset: 2}})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, ids[0], out.Items[0].ID)
	assert.Equal(t, 3, out.Page.Total)

	own, err := q.ListByUser(context.Background(), asUser(userU), userU, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, own.Items, 1)
	assert.Equal(t, 2, own.Page.Total)
}

func TestListByUser_AdminOPropio(t *testing.T) {
	f := newFixture()
	seedLedger(t, f)
	q := inventory.NewMovementQueryUseCase(f.store)
	ctx := context.Background()

	own, err := q.ListByUser(ctx, asUser(userU), userU, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, own.Items, 2)
	assert.True(t, own.Items[0].CreatedAt.After(own.Items[1].CreatedAt) || own.Items[0].CreatedAt.Equal(own.Items[1].CreatedAt))

	_, err = q.ListByUser(ctx, asUser(userU), userV, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	other, err := q.ListByUser(ctx, adminActor, userV, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, other.Items, 1)

	empty, err := q.ListByUser(ctx, adminActor, "sin-movimientos", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}

func TestGetByID(t *testing.T) {
	f := newFixture()
	ids := seedLedger(t, f)
	q := inventory.NewMovementQueryUseCase(f.store)

	m, err := q.GetByID(context.Background(), asUser(userV), ids[0])
	require.NoError(t, err)
	assert.Equal(t, 50, m.QuantityAfter)

	_, err = q.GetByID(context.Background(), asUser(userV), "inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
