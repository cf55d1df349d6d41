package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/seatlabs/library-layout-backend/internal/config"
	"github.com/seatlabs/library-layout-backend/internal/models"
)

// ErrSnapshotNotFound indicates no snapshot exists for the layout ID
var ErrSnapshotNotFound = errors.New("layout snapshot not found")

// RedisSnapshotStore mirrors saved layouts into Redis as JSON documents so
// collaborating services can read the current floor plan without touching
// the database. The database copy stays authoritative; entries here expire.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis using the configured address. The
// connection is verified with a short ping so a misconfigured address fails
// at startup rather than on the first save.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisSnapshotStore creates a snapshot store on an existing client
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		client: client,
		ttl:    ttl,
	}
}

func snapshotKey(id uuid.UUID) string {
	return fmt.Sprintf("layout:snapshot:%s", id)
}

// Put writes a layout snapshot, replacing any previous value
func (s *RedisSnapshotStore) Put(ctx context.Context, id uuid.UUID, snap models.LayoutSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	if err := s.client.Set(ctx, snapshotKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Get reads a layout snapshot
func (s *RedisSnapshotStore) Get(ctx context.Context, id uuid.UUID) (*models.LayoutSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap models.LayoutSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes a layout snapshot. Deleting a missing key is not an error.
func (s *RedisSnapshotStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, snapshotKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
