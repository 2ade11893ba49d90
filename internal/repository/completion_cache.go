package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const completionTTL = 14 * 24 * time.Hour

func completionKey(userID uint, date string) string {
	return fmt.Sprintf("planner:done:%d:%s", userID, date)
}

// RedisCompletionCache 用 Redis 集合记每天已完成的任务 ID，
// 计划重算后按 ID 合并回来。两周后自动过期。
type RedisCompletionCache struct {
	Client *redis.Client
}

func NewRedisCompletionCache(client *redis.Client) *RedisCompletionCache {
	return &RedisCompletionCache{Client: client}
}

func (c *RedisCompletionCache) Completed(ctx context.Context, userID uint, date string) ([]string, error) {
	ids, err := c.Client.SMembers(ctx, completionKey(userID, date)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return ids, err
}

func (c *RedisCompletionCache) Save(ctx context.Context, userID uint, date string, taskIDs []string) error {
	key := completionKey(userID, date)
	pipe := c.Client.TxPipeline()
	pipe.Del(ctx, key)
	if len(taskIDs) > 0 {
		members := make([]interface{}, len(taskIDs))
		for i, id := range taskIDs {
			members[i] = id
		}
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, completionTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCompletionCache) Clear(ctx context.Context, userID uint, date string) error {
	return c.Client.Del(ctx, completionKey(userID, date)).Err()
}

// LocalCompletionCache 进程内实现，没配 Redis 时兜底，测试也用它
type LocalCompletionCache struct {
	mu   sync.RWMutex
	sets map[string][]string
}

func NewLocalCompletionCache() *LocalCompletionCache {
	return &LocalCompletionCache{sets: make(map[string][]string)}
}

func (c *LocalCompletionCache) Completed(ctx context.Context, userID uint, date string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := c.sets[completionKey(userID, date)]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func (c *LocalCompletionCache) Save(ctx context.Context, userID uint, date string, taskIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, len(taskIDs))
	copy(ids, taskIDs)
	c.sets[completionKey(userID, date)] = ids
	return nil
}

func (c *LocalCompletionCache) Clear(ctx context.Context, userID uint, date string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sets, completionKey(userID, date))
	return nil
}
