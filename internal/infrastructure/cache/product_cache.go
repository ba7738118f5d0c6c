package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/romero-panificados/inventario-api/internal/application/ports"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/pkg/config"
)

var (
	_ ports.ProductCache = (*RedisProductCache)(nil)
	_ ports.ProductCache = Nop{}
)

// NewProductCache usa Redis si hay REDIS_ADDR; si no, un cache nulo.
func NewProductCache(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (ports.ProductCache, error) {
	if cfg.Addr == "" {
		return Nop{}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisProductCache(client, ttl), nil
}

// RedisProductCache guarda el producto serializado en JSON.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProductCache construye el cache sobre un cliente existente.
func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl}
}

func productKey(id string) string { return "producto:" + id }

// Get devuelve el producto si está en cache. Un error de Redis cuenta como fallo de cache.
func (c *RedisProductCache) Get(ctx context.Context, id string) (*entity.Product, bool) {
	val, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var p entity.Product
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, false
	}
	return &p, true
}

// Set guarda el producto; los errores se ignoran.
func (c *RedisProductCache) Set(ctx context.Context, p *entity.Product) {
	val, err := json.Marshal(p)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, productKey(p.ID), val, c.ttl).Err()
}

// Invalidate borra la entrada del producto.
func (c *RedisProductCache) Invalidate(ctx context.Context, id string) {
	_ = c.client.Del(ctx, productKey(id)).Err()
}

// Close cierra el cliente de Redis.
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

// Nop cache nulo.
type Nop struct{}

func (Nop) Get(context.Context, string) (*entity.Product, bool) { return nil, false }
func (Nop) Set(context.Context, *entity.Product)                {}
func (Nop) Invalidate(context.Context, string)                  {}
