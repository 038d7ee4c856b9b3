package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	dom "Catalog/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyList = "course:list"

// CourseCache caches the full course listing in Redis.
type CourseCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCourseCache returns a new CourseCache.
func NewCourseCache(rdb *redis.Client, ttl time.Duration) *CourseCache {
	return &CourseCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached listing, or nil on a miss.
func (c *CourseCache) GetList(ctx context.Context) ([]dom.Course, error) {
	b, err := c.rdb.Get(ctx, keyList).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := make([]dom.Course, 0)
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the listing.
func (c *CourseCache) SetList(ctx context.Context, list []dom.Course) error {
	if list == nil {
		list = []dom.Course{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyList, b, c.ttl).Err()
}

// Invalidate drops the cached listing; called after every write.
func (c *CourseCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyList).Err()
}
