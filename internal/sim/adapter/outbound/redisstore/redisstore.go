package redisstore

import (
	"context"
	"fmt"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
	"github.com/redis/go-redis/v9"
)

// Store persists configuration blobs to Redis, one key per path. It is
// an alternative sink for harness deployments that run Redis but not
// ZooKeeper.
type Store struct {
	client *redis.Client
	ctx    context.Context
}

// Ensure Store implements port.ConfigStore.
var _ port.ConfigStore = (*Store)(nil)

// New wraps an existing Redis client.
func New(client *redis.Client) *Store {
	return &Store{
		client: client,
		ctx:    context.Background(),
	}
}

// SetData writes data under the path key without expiry. Redis offers
// no per-key version check, so any version argument behaves like -1.
func (s *Store) SetData(path string, data []byte, version int32) error {
	if err := s.client.Set(s.ctx, path, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", path, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
