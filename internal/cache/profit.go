package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/besco/backend-go/internal/analytics"
	"github.com/besco/backend-go/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	profitKeyPrefix  = "profit"
	scanBatchSize    = 100
	defaultProfitTTL = time.Minute
)

// ProfitReportCache stores computed profit reports keyed by report name
// and date range. Entries are dropped wholesale whenever an order or a
// purchase mutates, so stale windows never survive a write.
type ProfitReportCache interface {
	Get(ctx context.Context, report string, r analytics.DateRange, dest any) (bool, error)
	Set(ctx context.Context, report string, r analytics.DateRange, payload any) error
	InvalidateAll(ctx context.Context) error
}

type redisProfitCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopProfitCache struct{}

func NewProfitCache(cfg config.CacheConfig) (ProfitReportCache, error) {
	if !cfg.Enabled {
		return &noopProfitCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.ProfitTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultProfitTTL
	}

	return &redisProfitCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopProfitCache() ProfitReportCache {
	return &noopProfitCache{}
}

func (c *redisProfitCache) Get(ctx context.Context, report string, r analytics.DateRange, dest any) (bool, error) {
	payload, err := c.client.Get(ctx, buildProfitKey(report, r)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode profit report cache: %w", err)
	}

	return true, nil
}

func (c *redisProfitCache) Set(ctx context.Context, report string, r analytics.DateRange, payload any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode profit report cache: %w", err)
	}

	if err := c.client.Set(ctx, buildProfitKey(report, r), encoded, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisProfitCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, profitKeyPrefix+":*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopProfitCache) Get(ctx context.Context, report string, r analytics.DateRange, dest any) (bool, error) {
	return false, nil
}

func (n *noopProfitCache) Set(ctx context.Context, report string, r analytics.DateRange, payload any) error {
	return nil
}

func (n *noopProfitCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildProfitKey(report string, r analytics.DateRange) string {
	raw := r.Start.Format("2006-01-02") + "|" + r.End.Format("2006-01-02")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s:%s", profitKeyPrefix, report, hex.EncodeToString(hash[:]))
}
