// Package redis implements assignment record storage in Redis for
// deployments where several console instances share one cache
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vidwall/vidwall-console/internal/console/assignmentcache"
)

// Store implements assignmentcache.Store using Redis
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed assignment store
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// keyStr converts a group id to a Redis key
func (s *Store) keyStr(groupID string) string {
	return fmt.Sprintf("vidwall:assignments:%s", groupID)
}

// Get retrieves the record for a group
func (s *Store) Get(ctx context.Context, groupID string) (*assignmentcache.Record, error) {
	raw, err := s.client.Get(ctx, s.keyStr(groupID)).Result()
	if err == redis.Nil {
		return nil, assignmentcache.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading assignment record: %w", err)
	}

	var record assignmentcache.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, assignmentcache.ErrNotFound
	}
	return &record, nil
}

// Put writes the record for a group. Records do not expire; they are only
// replaced or deleted explicitly.
func (s *Store) Put(ctx context.Context, groupID string, record *assignmentcache.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error encoding assignment record: %w", err)
	}

	if err := s.client.Set(ctx, s.keyStr(groupID), raw, 0).Err(); err != nil {
		return fmt.Errorf("error writing assignment record: %w", err)
	}
	return nil
}

// Delete removes the record for a group
func (s *Store) Delete(ctx context.Context, groupID string) error {
	if err := s.client.Del(ctx, s.keyStr(groupID)).Err(); err != nil {
		return fmt.Errorf("error deleting assignment record: %w", err)
	}
	return nil
}
