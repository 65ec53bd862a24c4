// Package postgres provides a durable audit store. An explicit sequence
// column fixes append order so readers always observe a consistent prefix.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"guardian/internal/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS audit_entries (
	seq           BIGSERIAL PRIMARY KEY,
	id            UUID        NOT NULL UNIQUE,
	kind          TEXT        NOT NULL,
	ts            TIMESTAMPTZ NOT NULL,
	data          JSONB       NOT NULL,
	manifest_hash TEXT        NOT NULL
)`

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the audit table when missing. Called once at startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	data, err := json.Marshal(entry.Data)
	if err != nil {
		return fmt.Errorf("marshal audit data: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO audit_entries (id, kind, ts, data, manifest_hash) VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, string(entry.Kind), entry.Timestamp, data, entry.ManifestHash,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]audit.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, kind, ts, data, manifest_hash FROM audit_entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			entry audit.Entry
			kind  string
			data  []byte
		)
		if err := rows.Scan(&entry.ID, &kind, &entry.Timestamp, &data, &entry.ManifestHash); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.Kind = audit.Kind(kind)
		if err := json.Unmarshal(data, &entry.Data); err != nil {
			return nil, fmt.Errorf("unmarshal audit data: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
