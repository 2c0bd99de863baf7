package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/cache"
)

// Cabeceras de idempotencia.
const (
	HeaderIdempotencyKey    = "Idempotency-Key"
	HeaderIdempotentReplay  = "Idempotent-Replay"
	maxIdempotencyKeyLength = 128
)

// idempotencyStore contrato mínimo del store (lo implementa *cache.IdempotencyStore).
type idempotencyStore interface {
	Acquire(ctx context.Context, scope, key, requestHash string) (*cache.Replay, error)
	Complete(ctx context.Context, scope, key, requestHash string, statusCode int, body []byte) error
	Release(ctx context.Context, scope, key string) error
}

// Idempotency protege POST contra reenvíos: con la misma Idempotency-Key y el mismo cuerpo
// devuelve la respuesta original sin volver a registrar. Sin cabecera la petición pasa tal cual.
// Debe usarse DESPUÉS de AuthMiddleware: las claves se aíslan por usuario.
func Idempotency(store idempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if key == "" || c.Method() != fiber.MethodPost {
			return c.Next()
		}
		if len(key) > maxIdempotencyKeyLength {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Idempotency-Key demasiado larga"})
		}

		ctx := c.UserContext()
		scope := GetUserID(c)
		sum := sha256.Sum256(c.Body())
		hash := hex.EncodeToString(sum[:])

		replay, err := store.Acquire(ctx, scope, key, hash)
		switch {
		case errors.Is(err, cache.ErrIdempotencyMismatch):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_MISMATCH", Message: err.Error()})
		case errors.Is(err, cache.ErrIdempotencyInProgress):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_IN_PROGRESS", Message: err.Error()})
		case err != nil:
			zerolog.Ctx(ctx).Error().Err(err).Msg("idempotency store")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_UNAVAILABLE", Message: "no se pudo verificar la clave de idempotencia, intente más tarde"})
		}
		if replay != nil {
			c.Set(HeaderIdempotentReplay, "true")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(replay.StatusCode).Send(replay.Body)
		}

		if err := c.Next(); err != nil {
			_ = store.Release(ctx, scope, key)
			return err
		}

		status := c.Response().StatusCode()
		if status >= 200 && status < 300 {
			body := append([]byte(nil), c.Response().Body()...)
			if err := store.Complete(ctx, scope, key, hash, status, body); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("idempotency_key", key).Msg("no se pudo guardar la respuesta idempotente")
			}
			return nil
		}
		// Un rechazo no se cachea: el reintento vuelve a leer el stock actual
		if err := store.Release(ctx, scope, key); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("idempotency_key", key).Msg("no se pudo liberar la clave de idempotencia")
		}
		return nil
	}
}
