// Package rvmdb is a persistent complement to rvmhost.ResultCache: a
// sqlite-backed store for resolved Type IR results, keyed by a caller-
// supplied digest (typically a hash of the packed program plus its type
// arguments) rather than by pointer identity, so entries survive process
// restarts.
//
// Grounded on the database/sql usage idiom in the pack (QueryRow/Scan for
// point lookups, Exec for writes), adapted from a connection-pool-per-
// target-database shape down to the one case this package actually needs:
// a single local sqlite file.
package rvmdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/funvibe/rvm/internal/typeir"
)

const schema = `
CREATE TABLE IF NOT EXISTS resolved_types (
	digest     TEXT PRIMARY KEY,
	node_json  BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
`

// Store is a sqlite-backed cache of resolved Type IR, addressed by digest.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a sqlite database at path and ensures
// its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("rvmdb: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("rvmdb: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get looks up a previously stored result by digest. ok is false when no
// row matches.
func (s *Store) Get(ctx context.Context, digest string) (node *typeir.Node, ok bool, err error) {
	var raw []byte
	row := s.db.QueryRowContext(ctx, "SELECT node_json FROM resolved_types WHERE digest = ?", digest)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("rvmdb: querying %s: %w", digest, err)
	}
	var n typeir.Node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, false, fmt.Errorf("rvmdb: decoding stored node for %s: %w", digest, err)
	}
	return &n, true, nil
}

// Put stores (or replaces) the resolved node for digest, stamped with
// createdAtUnix (the caller's clock — this package never reads the system
// clock itself, keeping it deterministic to test against).
func (s *Store) Put(ctx context.Context, digest string, node *typeir.Node, createdAtUnix int64) error {
	raw, err := json.Marshal(node)
	if err != nil {
		return fmt.Errorf("rvmdb: encoding node for %s: %w", digest, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resolved_types (digest, node_json, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(digest) DO UPDATE SET node_json = excluded.node_json, created_at = excluded.created_at`,
		digest, raw, createdAtUnix)
	if err != nil {
		return fmt.Errorf("rvmdb: storing %s: %w", digest, err)
	}
	return nil
}

// Delete removes a stored entry, if present.
func (s *Store) Delete(ctx context.Context, digest string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM resolved_types WHERE digest = ?", digest)
	if err != nil {
		return fmt.Errorf("rvmdb: deleting %s: %w", digest, err)
	}
	return nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM resolved_types").Scan(&n); err != nil {
		return 0, fmt.Errorf("rvmdb: counting: %w", err)
	}
	return n, nil
}
