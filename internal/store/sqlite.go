package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	_ "modernc.org/sqlite"

	"kanban-cli/internal/model"
)

// Load reads the persisted board. A missing backlog slot means no board has
// ever been saved, and a corrupt slot is treated exactly like an absent one:
// both yield the seed defaults with no error. Errors are returned only for
// real storage-access failures, and callers are free to fall back to the
// defaults and continue in memory.
func (s Store) Load(ctx context.Context) (*model.Board, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	// Absence of the first key is the signal to seed defaults.
	if _, ok, err := readSlot(ctx, db, KeyBacklog); err != nil {
		return nil, err
	} else if !ok {
		return model.Default(), nil
	}

	out := model.New()
	keys := columnKeys()
	for _, c := range model.Columns() {
		raw, ok, err := readSlot(ctx, db, keys[c])
		if err != nil {
			return nil, err
		}
		if !ok {
			// Partial state: the remaining slots were never written.
			continue
		}
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			// Corrupt slot: swallow and fall back to the seed board.
			return model.Default(), nil
		}
		out.SetItems(c, items)
	}
	return out, nil
}

// Save serializes each column's sequence independently and writes all four
// slots in a single transaction. Empty items are filtered before writing.
func (s Store) Save(ctx context.Context, b *model.Board) error {
	if b == nil {
		return errors.New("nil board")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	keys := columnKeys()
	for _, c := range model.Columns() {
		items := make([]string, 0, len(b.Columns[c]))
		for _, it := range b.Columns[c] {
			if strings.TrimSpace(it) == "" {
				continue
			}
			items = append(items, it)
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v) VALUES(?, ?)`, keys[c], string(raw)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage: WAL enables one writer + many
	// readers; busy_timeout avoids "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`)
	return err
}

func readSlot(ctx context.Context, db *sql.DB, key string) (string, bool, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
