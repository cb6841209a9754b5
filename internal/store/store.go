// Package store persists dictionary pattern pairs to SQLite: component G,
// an additive backend the in-memory trie never depends on to function.
// Opening a store hydrates a dict.Dict via its BulkUpdate entry point;
// writes through the store go to both SQLite and the in-memory trie so
// reads never touch the database.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/trieplace/trieplace/internal/dict"
	"github.com/trieplace/trieplace/internal/token"
)

const schema = `
CREATE TABLE IF NOT EXISTS patterns (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store wraps a SQLite-backed table of pattern pairs and the in-memory
// dictionary hydrated from it.
type Store struct {
	db   *sql.DB
	dict *dict.Dict[string]
}

// ProgressFunc reports hydration progress every 50,000 rows, per the
// dictionary's BulkUpdate contract.
type ProgressFunc func(done int)

// Open connects to the SQLite database at dsn, creates the patterns table
// if absent, and hydrates an in-memory dictionary tokenized by tok from
// its contents.
func Open(dsn string, tok token.Tokenizer, progress ProgressFunc) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dsn, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create patterns table: %w", err)
	}

	s := &Store{db: db, dict: dict.New[string](tok)}
	if err := s.hydrate(progress); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) hydrate(progress func(int)) error {
	rows, err := s.db.Query(`SELECT key, value FROM patterns ORDER BY key`)
	if err != nil {
		return fmt.Errorf("query patterns: %w", err)
	}
	defer rows.Close()

	var pairs []dict.KV[string]
	for rows.Next() {
		var kv dict.KV[string]
		if err := rows.Scan(&kv.Key, &kv.Value); err != nil {
			return fmt.Errorf("scan pattern row: %w", err)
		}
		pairs = append(pairs, kv)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate pattern rows: %w", err)
	}

	return s.dict.BulkUpdate(pairs, progress)
}

// Dict exposes the hydrated in-memory dictionary callers use for
// translate/find/regex. Only Set and Delete write through to SQLite;
// changes made directly on the returned Dict stay in memory.
func (s *Store) Dict() *dict.Dict[string] {
	return s.dict
}

// Set inserts or overwrites key's replacement in both SQLite and the
// in-memory dictionary.
func (s *Store) Set(key, value string, updatedAt int64) error {
	if err := s.dict.Insert(key, value); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO patterns (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("persist pattern %q: %w", key, err)
	}
	return nil
}

// Delete removes key from both SQLite and the in-memory dictionary.
func (s *Store) Delete(key string) (string, error) {
	value, err := s.dict.Pop(key)
	if err != nil {
		return "", err
	}
	if _, err := s.db.Exec(`DELETE FROM patterns WHERE key = ?`, key); err != nil {
		return "", fmt.Errorf("delete pattern %q: %w", key, err)
	}
	return value, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
