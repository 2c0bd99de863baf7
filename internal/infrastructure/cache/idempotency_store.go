package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Errores de idempotencia; el middleware HTTP los traduce a 409.
var (
	ErrIdempotencyMismatch   = errors.New("la clave de idempotencia ya se usó con otro cuerpo")
	ErrIdempotencyInProgress = errors.New("la petición con esta clave de idempotencia sigue en curso")
)

const (
	statusPending = "pending"
	statusDone    = "done"

	// pendingTTL libera claves de peticiones que murieron sin completar.
	pendingTTL = time.Minute
)

// Replay respuesta almacenada para devolver ante un reintento con la misma clave.
type Replay struct {
	StatusCode int    `json:"status_code"`
	Body       []byte `json:"body"`
}

type record struct {
	Status      string `json:"status"`
	RequestHash string `json:"request_hash"`
	Replay
}

// IdempotencyStore guarda en Redis el resultado de POST /api/movements por (usuario, Idempotency-Key).
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewIdempotencyStore construye el store. ttl es la retención de respuestas completadas.
func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// Acquire reserva la clave para esta petición.
// Devuelve (nil, nil) si la reservó, (replay, nil) si ya se completó con el mismo cuerpo,
// ErrIdempotencyMismatch si se usó con otro cuerpo y ErrIdempotencyInProgress si sigue en curso.
func (s *IdempotencyStore) Acquire(ctx context.Context, scope, key, requestHash string) (*Replay, error) {
	k := redisKey(scope, key)
	pending, err := json.Marshal(record{Status: statusPending, RequestHash: requestHash})
	if err != nil {
		return nil, fmt.Errorf("marshal idempotency record: %w", err)
	}

	// Dos intentos: la clave puede expirar entre SETNX y GET
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.rdb.SetNX(ctx, k, pending, pendingTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire idempotency key: %w", err)
		}
		if ok {
			return nil, nil
		}

		raw, err := s.rdb.Get(ctx, k).Bytes()
		if errors.Is(err, ErrCacheMiss) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get idempotency key: %w", err)
		}
		return decideReplay(raw, requestHash)
	}
	return nil, ErrIdempotencyInProgress
}

// Complete guarda la respuesta exitosa para futuros reintentos.
func (s *IdempotencyStore) Complete(ctx context.Context, scope, key, requestHash string, statusCode int, body []byte) error {
	raw, err := json.Marshal(record{
		Status:      statusDone,
		RequestHash: requestHash,
		Replay:      Replay{StatusCode: statusCode, Body: body},
	})
	if err != nil {
		return fmt.Errorf("marshal idempotency record: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKey(scope, key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

// Release libera la clave tras un fallo para que el cliente pueda reintentar con stock fresco.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.rdb.Del(ctx, redisKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

func redisKey(scope, key string) string {
	return "idem:" + scope + ":" + key
}

func decideReplay(raw []byte, requestHash string) (*Replay, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode idempotency record: %w", err)
	}
	if rec.RequestHash != requestHash {
		return nil, ErrIdempotencyMismatch
	}
	if rec.Status != statusDone {
		return nil, ErrIdempotencyInProgress
	}
	replay := rec.Replay
	return &replay, nil
}
