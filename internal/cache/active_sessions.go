// Package cache keeps a best-effort redis mirror of active sessions keyed
// by plate, giving the console cheap occupancy lookups without touching
// postgres. The database stays authoritative; cache failures are logged and
// ignored by callers.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ActiveSession is the cached projection of an active parking session.
type ActiveSession struct {
	SessionID  int64     `json:"session_id"`
	Plate      string    `json:"plate"`
	SlotID     int64     `json:"slot_id"`
	SlotNumber string    `json:"slot_number"`
	EntryTime  time.Time `json:"entry_time"`
}

// Store manages the active session cache.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns a redis-backed store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(plate string) string {
	return fmt.Sprintf("parking:active:%s", plate)
}

// Save caches an active session under its plate.
func (s *Store) Save(ctx context.Context, session ActiveSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.Plate), data, s.ttl).Err()
}

// Get returns the cached session for a plate.
func (s *Store) Get(ctx context.Context, plate string) (*ActiveSession, error) {
	result, err := s.client.Get(ctx, s.key(plate)).Result()
	if err != nil {
		return nil, err
	}
	var session ActiveSession
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete evicts the cached session for a plate.
func (s *Store) Delete(ctx context.Context, plate string) error {
	return s.client.Del(ctx, s.key(plate)).Err()
}
