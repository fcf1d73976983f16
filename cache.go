package sentimento

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

// CacheEntry is a trained model together with the metrics of its training run.
type CacheEntry struct {
	Model   *Model
	Metrics TrainingMetrics
}

// ModelCache stores trained models by dataset identity.
type ModelCache interface {
	Get(ctx context.Context, key string) (CacheEntry, bool, error)
	Put(ctx context.Context, key string, entry CacheEntry) error
}

// DatasetKey identifies a training run: the labeled texts in order plus the
// shuffle seed.
func DatasetKey(pairs []TextLabel, seed int64) string {
	d := xxhash.New()
	for _, p := range pairs {
		_, _ = d.WriteString(p.Text)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(string(p.Label))
		_, _ = d.Write([]byte{0x1e})
	}
	_, _ = d.WriteString(strconv.FormatInt(seed, 10))
	return fmt.Sprintf("%016x", d.Sum64())
}

// MemoryCache is an in-process ModelCache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]CacheEntry)}
}

// Get returns the entry stored under key.
func (c *MemoryCache) Get(_ context.Context, key string) (CacheEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok, nil
}

// Put stores entry under key, replacing any previous one.
func (c *MemoryCache) Put(_ context.Context, key string, entry CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// ErrEmptyAddress is returned when Redis address is not configured.
var ErrEmptyAddress = errors.New("redis address is required")

const (
	connectionTimeout = 5 * time.Second
	redisKeyPrefix    = "sentimento:model:"
)

// NewRedisClient creates a Redis client and verifies the connection.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// RedisCache is a ModelCache backed by Redis. Entries expire after the TTL;
// a zero TTL keeps them until evicted.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

type redisEntry struct {
	Snapshot Snapshot
	Metrics  TrainingMetrics
}

// Get fetches and decodes the entry stored under key.
func (c *RedisCache) Get(ctx context.Context, key string) (CacheEntry, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return CacheEntry{}, false, nil
	}
	if err != nil {
		return CacheEntry{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var stored redisEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&stored); err != nil {
		return CacheEntry{}, false, fmt.Errorf("decode cached model %s: %w", key, err)
	}
	model, err := ModelFromSnapshot(stored.Snapshot)
	if err != nil {
		return CacheEntry{}, false, fmt.Errorf("cached model %s: %w", key, err)
	}
	return CacheEntry{Model: model, Metrics: stored.Metrics}, true, nil
}

// Put encodes entry and stores it under key with the configured TTL.
func (c *RedisCache) Put(ctx context.Context, key string, entry CacheEntry) error {
	if entry.Model == nil {
		return ErrNoModel
	}
	var buf bytes.Buffer
	stored := redisEntry{Snapshot: entry.Model.Snapshot(), Metrics: entry.Metrics}
	if err := gob.NewEncoder(&buf).Encode(stored); err != nil {
		return fmt.Errorf("encode model %s: %w", key, err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, buf.Bytes(), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
