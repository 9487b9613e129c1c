package store

import (
	"context"
	"database/sql"
	"testing"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
)

func TestLoadSeedsDefaultsWhenEmpty(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	b, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !b.Equal(model.Default()) {
		t.Fatalf("expected seed defaults on empty store, got %#v", b.Columns)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	b := model.Default()
	if err := board.Add(b, model.Progress, "Ship v2"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Save(ctx, b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Equal(b) {
		t.Fatalf("round-trip mismatch:\nsaved:  %#v\nloaded: %#v", b.Columns, got.Columns)
	}

	// Scenario from the board contract: Progress now holds exactly three
	// items in order.
	want := []string{"Work on projects", "Listen to music", "Ship v2"}
	items := got.Items(model.Progress)
	if len(items) != len(want) {
		t.Fatalf("expected %v, got %v", want, items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, items)
		}
	}
}

func TestSaveFiltersEmptyItems(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	b := model.New()
	b.SetItems(model.Backlog, []string{"keep", "", "  ", "also"})
	if err := s.Save(ctx, b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	items := got.Items(model.Backlog)
	if len(items) != 2 || items[0] != "keep" || items[1] != "also" {
		t.Fatalf("expected empty items filtered before persisting, got %#v", items)
	}
}

func TestLoadCorruptSlotFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}
	ctx := context.Background()

	if err := s.Save(ctx, model.New()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Corrupt one slot directly.
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v) VALUES(?, ?)`, KeyProgress, `{not json`); err != nil {
		t.Fatalf("corrupt slot: %v", err)
	}
	_ = db.Close()

	b, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load after corruption: %v", err)
	}
	if !b.Equal(model.Default()) {
		t.Fatalf("corrupt data should be treated as absent (seed defaults), got %#v", b.Columns)
	}
}

func TestLoadReachableBoardsRoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	// Drive the board through public ops only, saving after each mutation.
	b, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := board.Add(b, model.OnHold, "Waiting on review"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := board.Edit(b, model.Backlog, 0, "Release the course v2"); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if err := board.Edit(b, model.Complete, 1, ""); err != nil {
		t.Fatalf("Edit-to-empty: %v", err)
	}
	if err := s.Save(ctx, b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("fresh Load: %v", err)
	}
	if !got.Equal(b) {
		t.Fatalf("save(load()) then load() should round-trip:\nwant %#v\ngot  %#v", b.Columns, got.Columns)
	}
}

func TestSaveQuietSwallowsFailure(t *testing.T) {
	// A path that cannot be created as a directory: parent is a file.
	dir := t.TempDir()
	s := Store{Dir: dir}
	if err := s.Save(context.Background(), model.Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	bad := Store{Dir: s.dbPath() + "/nested"}
	// Must not panic or return; failure is logged only.
	bad.SaveQuiet(context.Background(), model.Default())
}

func TestDiscoverDirWalksUp(t *testing.T) {
	root := t.TempDir()
	s := Store{Dir: root + "/.kanban"}
	if err := s.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	nested := root + "/a/b"
	if err := (Store{Dir: nested}).Ensure(); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	found, ok := DiscoverDir(nested)
	if !ok {
		t.Fatalf("expected to discover .kanban above %s", nested)
	}
	if found != root+"/.kanban" {
		t.Fatalf("expected %s, got %s", root+"/.kanban", found)
	}

	if _, ok := DiscoverDir(t.TempDir()); ok {
		t.Fatalf("expected no discovery in a fresh tree")
	}
}
