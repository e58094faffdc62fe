// Package sqlstore persists ledger snapshots in a key-value table. The
// SQL is shared between the sqlite and postgres backends.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/centavoapp/centavo/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing snapshot %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM snapshots WHERE key = $1`

	var value []byte

	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrNoSnapshot
	}

	if err != nil {
		return nil, fmt.Errorf("reading snapshot %q: %w", key, err)
	}

	return value, nil
}

func (s *Store) Wipe(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("wiping snapshots: %w", err)
	}

	return nil
}
