package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stationery-next/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "stn"
	scanBatch     = 100
)

// store 当前 Redis 连接与 key 前缀；client 为 nil 表示缓存关闭
type store struct {
	client *redis.Client
	prefix string
}

var (
	mu     sync.RWMutex
	active store
)

// InitRedis 按配置连接 Redis，未启用时保持关闭
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		Use(nil, "")
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	Use(redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}), cfg.Prefix)
	return nil
}

// Use 注入客户端，测试中配合 miniredis 使用
func Use(client *redis.Client, prefix string) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	mu.Lock()
	active = store{client: client, prefix: prefix}
	mu.Unlock()
}

func current() store {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// Close 关闭连接并停用缓存
func Close() error {
	mu.Lock()
	client := active.client
	active.client = nil
	mu.Unlock()
	if client == nil {
		return nil
	}
	return client.Close()
}

func Enabled() bool {
	return current().client != nil
}

// Client 缓存关闭时返回 nil
func Client() *redis.Client {
	return current().client
}

func (s store) key(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.prefix
	}
	return s.prefix + ":" + name
}

// GetJSON 命中时解码到 dest
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	s := current()
	if s.client == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, dest)
}

func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s := current()
	if s.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), raw, ttl).Err()
}

// Del 删除若干 key，连同以 prefixes 开头的全部 key
func Del(ctx context.Context, keys []string, prefixes ...string) error {
	s := current()
	if s.client == nil {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, s.key(key))
	}
	for _, prefix := range prefixes {
		iter := s.client.Scan(ctx, 0, s.key(prefix)+"*", scanBatch).Iterator()
		for iter.Next(ctx) {
			full = append(full, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	for start := 0; start < len(full); start += scanBatch {
		end := start + scanBatch
		if end > len(full) {
			end = len(full)
		}
		if err := s.client.Del(ctx, full[start:end]...).Err(); err != nil {
			return err
		}
	}
	return nil
}
