// Package redis provides a Redis-backed audit store for deployments where
// multiple instances share one trail. Entries are stored as a JSON list, so
// RPUSH preserves append order and LRANGE reads a consistent prefix.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"guardian/internal/audit"
)

const entriesKey = "guardian:audit:entries"

type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	if err := s.client.RPush(ctx, entriesKey, payload).Err(); err != nil {
		return fmt.Errorf("rpush audit entry: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]audit.Entry, error) {
	raw, err := s.client.LRange(ctx, entriesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange audit entries: %w", err)
	}
	entries := make([]audit.Entry, 0, len(raw))
	for _, item := range raw {
		var entry audit.Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
