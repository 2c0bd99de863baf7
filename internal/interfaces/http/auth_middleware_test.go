package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
	apphttp "github.com/jhoicas/inventario-movimientos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventario-movimientos/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "inventario-test"
	testExpMin    = 60

	vendedorID = "00000000-0000-0000-0000-0000000000c1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios vacíos: los casos de uso reales deciden la autorización
// ──────────────────────────────────────────────────────────────────────────────

type emptyMovementRepo struct{}

func (emptyMovementRepo) Create(context.Context, *entity.Movement) error { return nil }

func (emptyMovementRepo) GetByID(context.Context, string) (*entity.Movement, error) { return nil, nil }

func (emptyMovementRepo) List(context.Context, repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}

func (emptyMovementRepo) Count(context.Context, repository.MovementFilter) (int, error) { return 0, nil }

type emptyStockRepo struct{}

func (emptyStockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	return &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID}, nil
}

func (r emptyStockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (emptyStockRepo) Upsert(context.Context, string, string, int) error { return nil }

func (emptyStockRepo) ListBelowMinimum(context.Context, string) ([]entity.LowStockItem, error) {
	return nil, nil
}

func (emptyStockRepo) TotalsByProduct(context.Context) ([]entity.ProductStockTotal, error) {
	return nil, nil
}

func (emptyStockRepo) TotalsByWarehouse(context.Context, string) ([]entity.WarehouseStockTotal, error) {
	return nil, nil
}

func (emptyStockRepo) ListByProduct(context.Context, string) ([]entity.StockDetail, error) {
	return nil, nil
}

func (emptyStockRepo) ListValuation(context.Context, string) ([]entity.StockValuationRow, error) {
	return nil, nil
}

// newRoutedApp monta el router real con los casos de uso de consulta reales.
func newRoutedApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Recorder:  new(mockRecorder),
		Movements: inventory.NewMovementQueryUseCase(emptyMovementRepo{}),
		Stock:     inventory.NewStockQueryUseCase(emptyStockRepo{}),
		JWTSecret: testJWTSecret,
	})
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// Matriz de roles sobre las rutas protegidas
// ──────────────────────────────────────────────────────────────────────────────

func TestRutas_MatrizDeRoles(t *testing.T) {
	app := newRoutedApp(t)

	tests := []struct {
		name   string
		userID string
		role   string
		path   string
		status int
	}{
		{"admin lista todo", adminID, entity.RoleAdmin, "/api/movements", http.StatusOK},
		{"bodeguero no lista todo", bodegueroID, entity.RoleBodeguero, "/api/movements", http.StatusForbidden},
		{"vendedor no lista todo", vendedorID, entity.RoleVendedor, "/api/movements", http.StatusForbidden},

		{"admin ve stock bajo", adminID, entity.RoleAdmin, "/api/stock/low", http.StatusOK},
		{"bodeguero ve stock bajo", bodegueroID, entity.RoleBodeguero, "/api/stock/low", http.StatusOK},
		{"vendedor no ve stock bajo", vendedorID, entity.RoleVendedor, "/api/stock/low", http.StatusForbidden},

		{"vendedor ve lo propio", vendedorID, entity.RoleVendedor, "/api/movements/user/" + vendedorID, http.StatusOK},
		{"bodeguero ve lo propio", bodegueroID, entity.RoleBodeguero, "/api/movements/user/" + bodegueroID, http.StatusOK},
		{"vendedor no ve lo ajeno", vendedorID, entity.RoleVendedor, "/api/movements/user/" + bodegueroID, http.StatusForbidden},
		{"bodeguero no ve lo ajeno", bodegueroID, entity.RoleBodeguero, "/api/movements/user/" + vendedorID, http.StatusForbidden},
		{"admin ve lo ajeno", adminID, entity.RoleAdmin, "/api/movements/user/" + vendedorID, http.StatusOK},

		{"vendedor no ve valorizado", vendedorID, entity.RoleVendedor, "/api/stock/valuation", http.StatusForbidden},
		{"bodeguero ve valorizado", bodegueroID, entity.RoleBodeguero, "/api/stock/valuation", http.StatusOK},
		{"vendedor ve totales", vendedorID, entity.RoleVendedor, "/api/stock/totals/products", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, http.MethodGet, tc.path, bearer(t, tc.userID, tc.role), nil)
			defer resp.Body.Close()
			require.Equal(t, tc.status, resp.StatusCode)
			if tc.status == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)
			}
		})
	}
}

func TestRutas_ListadoPropioDevuelvePaginaVacia(t *testing.T) {
	app := newRoutedApp(t)
	resp := call(t, app, http.MethodGet, "/api/movements/user/"+vendedorID, bearer(t, vendedorID, entity.RoleVendedor), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []any{}, body["items"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Token
// ──────────────────────────────────────────────────────────────────────────────

func TestRutas_Token(t *testing.T) {
	app := newRoutedApp(t)
	other, err := pkgjwt.Generate("otro-secreto", adminID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	noRole, err := pkgjwt.Generate(testJWTSecret, adminID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	tests := []struct {
		name string
		auth string
		code string
	}{
		{"sin cabecera", "", "MISSING_TOKEN"},
		{"esquema distinto de Bearer", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"firmado con otro secreto", "Bearer " + other, "INVALID_TOKEN"},
		{"sin rol en ruta con RequireRole", "Bearer " + noRole, "MISSING_ROLE"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, http.MethodGet, "/api/movements", tc.auth, nil)
			defer resp.Body.Close()
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

func TestRutas_EsquemaBearerSinDistinguirMayusculas(t *testing.T) {
	app := newRoutedApp(t)
	tok, err := pkgjwt.Generate(testJWTSecret, adminID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := call(t, app, http.MethodGet, "/api/movements", "bearer "+tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Claims
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaActorDelToken(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(apphttp.GetActor(c))
	})

	resp := call(t, app, http.MethodGet, "/me", bearer(t, bodegueroID, entity.RoleBodeguero), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var actor entity.Actor
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&actor))
	assert.Equal(t, entity.Actor{ID: bodegueroID, Role: entity.RoleBodeguero}, actor)
}
