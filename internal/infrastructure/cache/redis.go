package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/insightloop/insightloop/internal/domain/entities"
	"github.com/insightloop/insightloop/pkg/config"
)

// processedTTL bounds how long a recording id is remembered as handled.
const processedTTL = 30 * 24 * time.Hour

// RedisStore caches generated reports and remembers which recordings have
// already been processed, so restarting the monitor does not reprocess them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis store and verifies the connection.
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    cfg.Redis.TTL,
	}, nil
}

// CacheReport stores a report by id for the configured TTL.
func (r *RedisStore) CacheReport(ctx context.Context, report *entities.MeetingReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	key := "report:" + report.ID.String()
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// GetReport returns a cached report, or nil when absent.
func (r *RedisStore) GetReport(ctx context.Context, id string) (*entities.MeetingReport, error) {
	data, err := r.client.Get(ctx, "report:"+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}

	var report entities.MeetingReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached report: %w", err)
	}
	return &report, nil
}

// MarkProcessed records a recording id as handled. Returns false when the id
// was already marked by an earlier run.
func (r *RedisStore) MarkProcessed(ctx context.Context, recordingID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, "processed:"+recordingID, time.Now().UTC().Format(time.RFC3339), processedTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark recording: %w", err)
	}
	return ok, nil
}

// IsProcessed reports whether a recording id was already handled.
func (r *RedisStore) IsProcessed(ctx context.Context, recordingID string) (bool, error) {
	n, err := r.client.Exists(ctx, "processed:"+recordingID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check recording: %w", err)
	}
	return n > 0, nil
}

// Close releases the underlying connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
