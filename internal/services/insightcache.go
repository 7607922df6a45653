package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/moodflow-ai/moodflow-backend/internal/database"
)

const (
	// InsightCacheKeyPrefix is the Redis key prefix for cached wellness insights
	InsightCacheKeyPrefix = "insights:"
	// DefaultInsightTTL is 6-12 hours (we use 8 hours as default)
	DefaultInsightTTL = 8 * time.Hour
	// MinInsightTTL is 6 hours
	MinInsightTTL = 6 * time.Hour
	// MaxInsightTTL is 12 hours
	MaxInsightTTL = 12 * time.Hour
)

// TriggerCacheKey is the cache key for a user's trigger analysis.
func TriggerCacheKey(userID string) string { return "triggers:" + userID }

// RecommendationCacheKey is the cache key for a user's self-care recommendations.
func RecommendationCacheKey(userID string) string { return "recommendations:" + userID }

// InsightCacheGet retrieves a cached insight. A miss is not an error.
func InsightCacheGet(key string, dest interface{}) (bool, error) {
	ctx := context.Background()
	val, err := database.RedisClient.Get(ctx, InsightCacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil // Cache miss, not an error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// InsightCacheSet stores an insight with the default TTL.
func InsightCacheSet(key string, value interface{}) error {
	return InsightCacheSetWithTTL(key, value, DefaultInsightTTL)
}

// InsightCacheSetWithTTL stores an insight with a custom TTL (clamped to 6-12 hours).
func InsightCacheSetWithTTL(key string, value interface{}, ttl time.Duration) error {
	if ttl < MinInsightTTL {
		ttl = MinInsightTTL
	}
	if ttl > MaxInsightTTL {
		ttl = MaxInsightTTL
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return database.RedisClient.Set(context.Background(), InsightCacheKeyPrefix+key, jsonData, ttl).Err()
}

// InvalidateUserInsights drops all cached insights for a user. Called on every
// entry mutation so insights never lag the journal.
func InvalidateUserInsights(userID string) error {
	ctx := context.Background()
	return database.RedisClient.Del(ctx,
		InsightCacheKeyPrefix+TriggerCacheKey(userID),
		InsightCacheKeyPrefix+RecommendationCacheKey(userID),
	).Err()
}
