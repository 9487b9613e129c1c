// Package store persists the board in a local SQLite key-value table: four
// string keys, one per column, each holding a JSON-encoded array of strings.
package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"kanban-cli/internal/model"
)

const dbFileName = "board.sqlite"

// Key names of the persisted slots. These are the durable contract; the
// order matches model column indices.
const (
	KeyBacklog  = "backlogItems"
	KeyProgress = "progressItems"
	KeyComplete = "completeItems"
	KeyOnHold   = "onHoldItems"
)

func columnKeys() [model.NumColumns]string {
	return [model.NumColumns]string{KeyBacklog, KeyProgress, KeyComplete, KeyOnHold}
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for an existing .kanban dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".kanban")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the store dir: a discovered .kanban above the working
// directory, else cwd/.kanban.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".kanban"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// SaveQuiet persists the board, logging any failure instead of returning it.
// Loss of persistence is non-fatal: the in-memory session continues either
// way, so interactive callers use this after every mutation.
func (s Store) SaveQuiet(ctx context.Context, b *model.Board) {
	if err := s.Save(ctx, b); err != nil {
		logrus.WithError(err).WithField("dir", s.Dir).Warn("board save failed; continuing in memory")
	}
}
