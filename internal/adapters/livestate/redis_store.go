// Package livestate stores each session's last published snapshot in
// Redis so dashboards can resume without replaying the fix stream.
// Best-effort by design: the in-memory session is the source of truth.
package livestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"freight-tracking-service/internal/domain"
)

// ErrNoSnapshot is returned when no snapshot has been stored for a
// session yet (or its TTL lapsed).
var ErrNoSnapshot = errors.New("no stored snapshot")

type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotStore(addr string, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// NewRedisSnapshotStoreFromClient wires an existing client (tests).
func NewRedisSnapshotStoreFromClient(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func key(sessionID string) string { return "tracking:snapshot:" + sessionID }

// Put overwrites the session's stored snapshot.
func (s *RedisSnapshotStore) Put(ctx context.Context, snapshot domain.Snapshot) error {
	if snapshot.SessionID == "" {
		return errors.New("put snapshot: session id must not be empty")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, key(snapshot.SessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("put snapshot session=%q: %w", snapshot.SessionID, err)
	}
	return nil
}

// Get returns the last stored snapshot for a session.
func (s *RedisSnapshotStore) Get(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	payload, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Snapshot{}, fmt.Errorf("session %q: %w", sessionID, ErrNoSnapshot)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("get snapshot session=%q: %w", sessionID, err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot session=%q: %w", sessionID, err)
	}
	return snapshot, nil
}

func (s *RedisSnapshotStore) Close() error { return s.client.Close() }
