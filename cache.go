package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Summary responses are cached per user. The cache is optional: when Redis
// is unavailable every lookup falls through to the database.
var redisClient *redis.Client

const summaryCacheTTL = 60 * time.Second

func initRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return fmt.Errorf("REDIS_URL not set")
	}

	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", redisURL))
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{Addr: redisURL}
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	redisClient = client
	return nil
}

// summaryCacheKey identifies a cached summary by its full window bounds, so
// a whole-year window and its first month never share an entry.
func summaryCacheKey(userID uint, kind string, start, end time.Time) string {
	return fmt.Sprintf("summary:%d:%s:%s..%s", userID, kind,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// cacheGet unmarshals a cached summary into v, reporting whether it was present.
func cacheGet(key string, v any) bool {
	if redisClient == nil {
		return false
	}
	cached, err := redisClient.Get(context.Background(), key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), v) == nil
}

func cacheSet(key string, v any) {
	if redisClient == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		redisClient.SetEx(context.Background(), key, data, summaryCacheTTL)
	}
}

// invalidateSummaryCache drops every cached summary for the user after any
// expense write. SCAN instead of KEYS keeps the walk incremental.
func invalidateSummaryCache(userID uint) {
	if redisClient == nil {
		return
	}
	ctx := context.Background()
	pattern := fmt.Sprintf("summary:%d:*", userID)
	var cursor uint64
	for {
		keys, next, err := redisClient.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			redisClient.Del(ctx, keys...)
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
