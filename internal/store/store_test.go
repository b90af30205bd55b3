package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/appengine-ltd/wildlands/internal/game"
)

func testSnapshot(t *testing.T, seed int64) (*game.Simulation, game.Snapshot) {
	t.Helper()
	sim, err := game.NewSimulation(game.Config{Seed: seed})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	sim.UpdateVitals(game.VitalDelta{Health: -20})
	sim.SetGameTime(3000)
	return sim, sim.Snapshot()
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	_, snap := testSnapshot(t, 7)

	if _, err := s.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Save(ctx, "", snap); err != nil {
		t.Fatalf("save default slot: %v", err)
	}
	if err := s.Save(ctx, "Camp-1", snap); err != nil {
		t.Fatalf("save camp-1: %v", err)
	}

	data, err := s.Load(ctx, "camp-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	restored, err := game.NewSimulation(game.Config{Seed: 1})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	if err := restored.RestoreJSON(data); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := restored.Snapshot()
	if got.Health != 80 || got.Day != 2 || got.GameTime != 600 {
		t.Fatalf("unexpected restored snapshot: health=%.1f day=%d time=%.1f", got.Health, got.Day, got.GameTime)
	}
	if len(got.WorldResources.Trees) != len(snap.WorldResources.Trees) {
		t.Fatalf("expected world restored from save")
	}

	snap.Day = 5
	if err := s.Save(ctx, "camp-1", snap); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	slots, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 2 || slots[0].Slot != DefaultSlot || slots[1].Slot != "camp-1" {
		t.Fatalf("unexpected slots: %+v", slots)
	}
	if slots[1].Day != 5 || slots[1].FormatVersion != game.SnapshotFormatVersion {
		t.Fatalf("unexpected slot info: %+v", slots[1])
	}
	if slots[1].SavedAt.IsZero() || time.Since(slots[1].SavedAt) > time.Minute {
		t.Fatalf("expected a recent save time, got %v", slots[1].SavedAt)
	}

	if err := s.Save(ctx, "../escape", snap); err == nil {
		t.Fatalf("expected path-like slot rejected")
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "saves", "wild.db"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)

	ctx := context.Background()
	if err := s.Delete(ctx, "camp-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load(ctx, "camp-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted slot gone, got %v", err)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wild.db")
	s, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, snap := testSnapshot(t, 3)
	if err := s.Save(context.Background(), "keep", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.Load(context.Background(), "keep"); err != nil {
		t.Fatalf("expected slot to survive reopen: %v", err)
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	exerciseStore(t, s)

	info, err := os.Stat(filepath.Join(dir, "camp-1"+saveFileSuffix))
	if err != nil {
		t.Fatalf("stat save file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected private save file, got %v", info.Mode().Perm())
	}
}

func TestFileStoreLoadsBareSnapshot(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	bare := []byte(`{"health": 42, "day": 3}`)
	if err := os.WriteFile(filepath.Join(dir, "manual"+saveFileSuffix), bare, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := s.Load(context.Background(), "manual")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != string(bare) {
		t.Fatalf("expected bare snapshot returned as-is, got %s", data)
	}
}

func TestNormalizeSlot(t *testing.T) {
	if slot, _ := NormalizeSlot("  "); slot != DefaultSlot {
		t.Fatalf("expected default slot, got %q", slot)
	}
	if slot, err := NormalizeSlot("Day_3"); err != nil || slot != "day_3" {
		t.Fatalf("expected day_3, got %q %v", slot, err)
	}
	if _, err := NormalizeSlot("a b"); err == nil {
		t.Fatalf("expected space rejected")
	}
}
