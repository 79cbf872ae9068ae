package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/the-gaffer/internal/platform/kvstore"
)

const DefaultKeyPrefix = "gaffer:ws:"

// KVStore maps each namespace to one Redis hash so a workspace is a single key.
type KVStore struct {
	client goredis.Cmdable
	prefix string
}

func NewKVStore(client goredis.Cmdable, prefix string) *KVStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &KVStore{client: client, prefix: prefix}
}

func (s *KVStore) hashKey(namespace string) string {
	return s.prefix + namespace
}

func (s *KVStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	if err := kvstore.ValidateNamespace(namespace); err != nil {
		return nil, false, err
	}

	value, err := s.client.HGet(ctx, s.hashKey(namespace), key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis hget key=%s: %w", key, err)
	}

	return []byte(value), true, nil
}

// SetMany writes the batch inside MULTI/EXEC.
func (s *KVStore) SetMany(ctx context.Context, namespace string, entries ...kvstore.Entry) error {
	if err := kvstore.ValidateNamespace(namespace); err != nil {
		return err
	}
	entries = kvstore.Dedupe(entries)
	if len(entries) == 0 {
		return nil
	}

	values := make([]any, 0, len(entries)*2)
	for _, e := range entries {
		if e.Key == "" {
			return fmt.Errorf("entry key is required")
		}
		values = append(values, e.Key, string(e.Value))
	}

	hashKey := s.hashKey(namespace)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, hashKey, values...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset keys=%v: %w", kvstore.Keys(entries), err)
	}

	return nil
}

func (s *KVStore) Delete(ctx context.Context, namespace string, keys ...string) error {
	if err := kvstore.ValidateNamespace(namespace); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.HDel(ctx, s.hashKey(namespace), keys...).Err(); err != nil {
		return fmt.Errorf("redis hdel keys=%v: %w", keys, err)
	}

	return nil
}

// NewClient connects and pings the server before returning.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 20,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis addr=%s: %w", addr, err)
	}

	return client, nil
}
