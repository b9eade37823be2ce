package utils

import (
	"PdfVault/internal/dto"
	"PdfVault/internal/repo"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

// Get reads a cached value.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set writes a cached value.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, string(data), expiration).Err()
}

// Delete removes a cache entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// DeleteByPattern deletes cache entries by pattern.
func (c *RedisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return nil
}

type CacheManager struct {
	cache Cache
}

var globalCacheManager *CacheManager
var cacheManagerOnce sync.Once

// GetCacheManager returns the cache manager. An explicitly installed
// cache wins; otherwise the manager is built lazily over Redis, or nil
// when Redis is not initialized.
func GetCacheManager() *CacheManager {
	if globalCacheManager != nil {
		return globalCacheManager
	}
	if repo.Redis == nil {
		return nil
	}
	cacheManagerOnce.Do(func() {
		globalCacheManager = &CacheManager{
			cache: NewRedisCache(repo.Redis),
		}
	})
	return globalCacheManager
}

// UseCache installs an explicit cache implementation and returns a
// function restoring the previous one. Tests swap in an in-memory cache
// here the same way they swap the blob store.
func UseCache(c Cache) func() {
	previous := globalCacheManager
	globalCacheManager = &CacheManager{cache: c}
	return func() { globalCacheManager = previous }
}

// BuildCacheKey builds a cache key.
func BuildCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += fmt.Sprintf(":%v", param)
	}
	return key
}

const (
	CacheKeyFileList = "file:list"
	CacheKeyTagNames = "tag:names"

	cacheListTTL = 5 * time.Minute
)

// GetFileListFromCache reads a cached scoped file list.
func GetFileListFromCache(ctx context.Context, callerID uint64, level, search, tagsKey string) ([]dto.FileItem, bool) {
	manager := GetCacheManager()
	if manager == nil {
		return nil, false
	}
	key := BuildCacheKey(CacheKeyFileList, callerID, level, search, tagsKey)

	var result []dto.FileItem
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return result, true
}

// SetFileListToCache writes a cached scoped file list.
func SetFileListToCache(ctx context.Context, callerID uint64, level, search, tagsKey string, items []dto.FileItem) {
	manager := GetCacheManager()
	if manager == nil {
		return
	}
	key := BuildCacheKey(CacheKeyFileList, callerID, level, search, tagsKey)
	_ = manager.cache.Set(ctx, key, items, cacheListTTL)
}

// InvalidateFileListCache clears every cached file list. Lists are scoped
// per caller, so any file or tag mutation invalidates them all.
func InvalidateFileListCache(ctx context.Context) {
	manager := GetCacheManager()
	if manager == nil {
		return
	}
	_ = manager.cache.DeleteByPattern(ctx, CacheKeyFileList+":*")
}

// GetTagNamesFromCache reads the cached flat tag name list.
func GetTagNamesFromCache(ctx context.Context) ([]string, bool) {
	manager := GetCacheManager()
	if manager == nil {
		return nil, false
	}
	var result []string
	if err := manager.cache.Get(ctx, CacheKeyTagNames, &result); err != nil {
		return nil, false
	}
	return result, true
}

// SetTagNamesToCache writes the cached flat tag name list.
func SetTagNamesToCache(ctx context.Context, names []string) {
	manager := GetCacheManager()
	if manager == nil {
		return
	}
	_ = manager.cache.Set(ctx, CacheKeyTagNames, names, cacheListTTL)
}

// InvalidateTagNamesCache clears the cached tag name list.
func InvalidateTagNamesCache(ctx context.Context) {
	manager := GetCacheManager()
	if manager == nil {
		return
	}
	_ = manager.cache.Delete(ctx, CacheKeyTagNames)
	InvalidateFileListCache(ctx)
}
