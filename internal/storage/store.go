// Package storage persists the ledger as a single serialized record in
// a local key-value byte store backed by SQLite. It owns the on-disk
// schema: the record's JSON field names and the version tag.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"contas/internal/core"

	_ "modernc.org/sqlite"
)

// RecordKey is the fixed key the ledger record lives under, kept
// identical to the key the original web client used.
const RecordKey = "controle-financeiro-familiar"

// record is the persisted shape. Balances are never stored; they are
// recomputed from the transaction list on load.
type record struct {
	Transactions []core.Transaction `json:"transacoes"`
	Version      string             `json:"versao"`
}

type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dbPath and runs the
// schema migrations.
func Open(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the record at the fixed key. A missing row means a fresh
// household and returns ok=false with no error. A row that fails to
// decode is logged and also treated as absent: a malformed record must
// degrade to "no data", never crash the caller.
func (s *SQLiteStore) Load(ctx context.Context) ([]core.Transaction, bool, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE key = ?`, RecordKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read record: %w", err)
	}

	var rec record
	if err := json.Unmarshal(blob, &rec); err != nil {
		slog.WarnContext(ctx, "Stored record is malformed, starting empty",
			"key", RecordKey, "error", err)
		return nil, false, nil
	}

	return rec.Transactions, true, nil
}

// Save serializes the full transaction list and writes it in a single
// upsert, so the write is atomic from the caller's perspective.
func (s *SQLiteStore) Save(ctx context.Context, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	blob, err := json.Marshal(record{Transactions: txs, Version: core.Version})
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		RecordKey, blob)
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	slog.DebugContext(ctx, "Ledger record saved",
		"key", RecordKey, "transactions", len(txs), "bytes", len(blob))
	return nil
}

// Clear deletes the record entirely. Deleting an absent record is a
// no-op.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE key = ?`, RecordKey); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
