package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// movementRecorder lo implementa *inventory.RecordMovementUseCase.
type movementRecorder interface {
	RecordMovementFromRequest(ctx context.Context, actor entity.Actor, in dto.RegisterMovementRequest) (*dto.MovementResponse, error)
	DeleteMovement(ctx context.Context, actor entity.Actor, id string) error
}

// movementQuerier lo implementa *inventory.MovementQueryUseCase.
type movementQuerier interface {
	ListAll(ctx context.Context, actor entity.Actor, q dto.MovementListQuery) (*dto.MovementListResponse, error)
	ListByUser(ctx context.Context, actor entity.Actor, targetUserID string, page dto.PageRequest) (*dto.MovementListResponse, error)
	GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.MovementResponse, error)
}

// MovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type MovementHandler struct {
	recorder movementRecorder
	queries  movementQuerier
}

// NewMovementHandler construye el handler.
func NewMovementHandler(recorder movementRecorder, queries movementQuerier) *MovementHandler {
	return &MovementHandler{recorder: recorder, queries: queries}
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Description  type: entrada, salida, ajuste o devolucion (sin distinguir mayúsculas). supplier_id obligatorio en entrada.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                       false  "Clave para reintentos seguros"
// @Param        body             body    dto.RegisterMovementRequest  true   "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.recorder.RecordMovementFromRequest(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento (siempre rechazado)
// @Description  Los movimientos son inmutables; para corregir registre un ajuste.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	return writeError(c, h.recorder.DeleteMovement(c.UserContext(), GetActor(c), c.Params("id")))
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queries.GetByID(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos (admin)
// @Description  Más reciente primero. Sin filtros ni limit devuelve todos.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Producto"
// @Param        warehouse_id  query  string  false  "Almacén"
// @Param        type          query  string  false  "entrada|salida|ajuste|devolucion"
// @Param        from          query  string  false  "Desde (RFC3339)"
// @Param        to            query  string  false  "Hasta (RFC3339)"
// @Param        limit         query  int     false  "Máximo de filas (0 = todas)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	q := dto.MovementListQuery{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Type:        c.Query("type"),
		Page:        dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)},
	}
	var err error
	if q.From, err = parseTimeQuery(c, "from"); err != nil {
		return writeError(c, err)
	}
	if q.To, err = parseTimeQuery(c, "to"); err != nil {
		return writeError(c, err)
	}
	out, err := h.queries.ListAll(c.UserContext(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByUser godoc
// @Summary      Listar movimientos de un usuario (admin o el mismo usuario)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        user_id  path   string  true   "Usuario"
// @Param        limit    query  int     false  "Máximo de filas (0 = todas)"
// @Param        offset   query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/movements/user/{user_id} [get]
func (h *MovementHandler) ListByUser(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	out, err := h.queries.ListByUser(c.UserContext(), GetActor(c), c.Params("user_id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser RFC3339", domain.ErrInvalidInput, name)
	}
	return &t, nil
}
