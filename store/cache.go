package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uber/h3-go/v4"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/routing"
)

// CacheResolution is the H3 resolution of cache keys (cells of ~9 m edge).
const CacheResolution = 12

// CacheKey buckets a request by the H3 cells of its endpoints, so requests
// a few meters apart share an entry.
func CacheKey(origin, destination geo.Coordinate, mode routing.Mode) (string, error) {
	o, err := h3.LatLngToCell(h3.NewLatLng(origin.Lat, origin.Lng), CacheResolution)
	if err != nil {
		return "", fmt.Errorf("origin cell: %w", err)
	}
	d, err := h3.LatLngToCell(h3.NewLatLng(destination.Lat, destination.Lng), CacheResolution)
	if err != nil {
		return "", fmt.Errorf("destination cell: %w", err)
	}
	return "route:" + o.String() + ":" + d.String() + ":" + string(mode), nil
}

// RedisCache keeps successful route results in Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// OpenRedis connects and pings.
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Get returns the cached result, or ok=false on a miss.
func (c *RedisCache) Get(ctx context.Context, origin, destination geo.Coordinate, mode routing.Mode) (routing.RouteResult, bool, error) {
	key, err := CacheKey(origin, destination, mode)
	if err != nil {
		return routing.RouteResult{}, false, err
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return routing.RouteResult{}, false, nil
	}
	if err != nil {
		return routing.RouteResult{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var res routing.RouteResult
	if err := json.Unmarshal(data, &res); err != nil {
		return routing.RouteResult{}, false, fmt.Errorf("decode cached route %s: %w", key, err)
	}
	return res, true, nil
}

// Put caches a successful result. Failed results are skipped so a retry
// with a different graph is not shadowed.
func (c *RedisCache) Put(ctx context.Context, res routing.RouteResult) error {
	if !res.Success {
		return nil
	}
	key, err := CacheKey(res.Origin, res.Destination, res.Mode)
	if err != nil {
		return err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode route: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
