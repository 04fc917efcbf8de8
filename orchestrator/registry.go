package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Registry remembers finished runs so identical requests reuse their
// artifact instead of re-rendering.
type Registry interface {
	Lookup(ctx context.Context, key string) (string, bool)
	Record(ctx context.Context, key, artifactPath string) error
}

// RedisRegistry is a Redis-backed Registry keyed on the run fingerprint.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisRegistryConfig configures the registry connection and entry TTL.
type RedisRegistryConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisRegistry creates a registry and verifies connectivity.
func NewRedisRegistry(cfg RedisRegistryConfig) (*RedisRegistry, error) {
	if cfg.TTL == 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisRegistry{client: client, ttl: cfg.TTL}, nil
}

// Close closes the underlying Redis client
func (r *RedisRegistry) Close() error {
	return r.client.Close()
}

// Lookup returns the recorded artifact path for a run fingerprint.
func (r *RedisRegistry) Lookup(ctx context.Context, key string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	path, err := r.client.Get(ctx, registryKey(key)).Result()
	if err != nil {
		return "", false
	}
	return path, path != ""
}

// Record stores the artifact path for a run fingerprint with a sliding TTL.
func (r *RedisRegistry) Record(ctx context.Context, key, artifactPath string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.client.Set(ctx, registryKey(key), artifactPath, r.ttl).Err()
}

func registryKey(key string) string { return "runs:artifact:" + key }
