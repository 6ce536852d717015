// Package cache provee una abstracción de caching con soporte multi-backend.
//
// Soporta:
//   - memory (in-process, para desarrollo/testing)
//   - redis (distribuido, para producción)
//
// Lo usan el session store (registros de sesión opacos) y el cache del
// dashboard (summary con TTL corto). El resolver de roles NUNCA cachea acá:
// cada resolución lee el backend de sesiones.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client define las operaciones de cache.
type Client interface {
	// Get obtiene un valor. Retorna ErrNotFound si no existe o expiró.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set guarda un valor con TTL. Si ttl es 0, no expira.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete elimina una key. No falla si la key no existe.
	Delete(ctx context.Context, key string) error

	// Ping verifica la conexión al backend.
	Ping(ctx context.Context) error

	// Close cierra la conexión.
	Close() error
}

// Config configuración para crear un cliente de cache.
type Config struct {
	Kind   string // "memory" | "redis"
	Prefix string // prefijo para todas las keys

	// Redis
	Addr     string
	Password string
	DB       int

	// Memory
	DefaultTTL time.Duration
}

// ErrNotFound indica que la key no existe en el cache.
var ErrNotFound = errors.New("cache: key not found")

// New crea el cliente según cfg.Kind.
func New(cfg Config) (Client, error) {
	switch cfg.Kind {
	case "", "memory":
		return NewMemory(cfg.Prefix, cfg.DefaultTTL), nil
	case "redis":
		return NewRedis(cfg)
	default:
		return nil, fmt.Errorf("cache: unknown kind %q", cfg.Kind)
	}
}
