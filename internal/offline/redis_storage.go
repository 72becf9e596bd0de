package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStorage keeps caches in Redis: a set of cache names plus one hash
// per cache mapping request keys to JSON-encoded responses.
type RedisStorage struct {
	rdb    goredis.UniversalClient
	prefix string
}

// NewRedisStorage uses prefix for every key it touches.
func NewRedisStorage(rdb goredis.UniversalClient, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "routekeeper:offline:"
	}
	return &RedisStorage{rdb: rdb, prefix: prefix}
}

func (s *RedisStorage) namesKey() string {
	return s.prefix + "caches"
}

func (s *RedisStorage) cacheKey(cache string) string {
	return s.prefix + "cache:" + cache
}

func (s *RedisStorage) Keys(ctx context.Context) ([]string, error) {
	names, err := s.rdb.SMembers(ctx, s.namesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list caches: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

func (s *RedisStorage) PutAll(ctx context.Context, cache string, entries map[string]Response) error {
	fields := make(map[string]any, len(entries))
	for key, resp := range entries {
		raw, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		fields[key] = raw
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.SAdd(ctx, s.namesKey(), cache)
		if len(fields) > 0 {
			pipe.HSet(ctx, s.cacheKey(cache), fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store cache %s: %w", cache, err)
	}
	return nil
}

func (s *RedisStorage) Match(ctx context.Context, cache, key string) (Response, bool, error) {
	raw, err := s.rdb.HGet(ctx, s.cacheKey(cache), key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return Response{}, false, nil
	}
	if err != nil {
		return Response{}, false, fmt.Errorf("match %s: %w", key, err)
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Response{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return resp, true, nil
}

func (s *RedisStorage) Delete(ctx context.Context, cache string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, s.cacheKey(cache))
		pipe.SRem(ctx, s.namesKey(), cache)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete cache %s: %w", cache, err)
	}
	return nil
}
