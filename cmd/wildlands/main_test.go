package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/appengine-ltd/wildlands/internal/console"
	"github.com/appengine-ltd/wildlands/internal/game"
	"github.com/appengine-ltd/wildlands/internal/platform/logger"
	"github.com/appengine-ltd/wildlands/internal/store"
)

func newSim(t *testing.T) *game.Simulation {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sim, err := game.NewSimulation(game.Config{Seed: 9, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	return sim
}

func TestREPLRunsCommandsUntilQuit(t *testing.T) {
	sim := newSim(t)
	in := strings.NewReader("status\n\nzzqx vrrp\nquit\nstatus\n")
	var out bytes.Buffer
	if err := repl(context.Background(), console.New(sim, nil, nil), in, &out); err != nil {
		t.Fatalf("repl: %v", err)
	}
	text := out.String()
	if strings.Count(text, "1st day") != 1 {
		t.Fatalf("expected exactly one status reply before quit, got %q", text)
	}
	if !strings.Contains(text, "I don't understand") {
		t.Fatalf("expected unknown-input reply, got %q", text)
	}
}

func TestREPLStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	if err := repl(context.Background(), console.New(newSim(t), nil, nil), strings.NewReader(""), &out); err != nil {
		t.Fatalf("repl: %v", err)
	}
}

func TestOpenStoreChoosesBackend(t *testing.T) {
	log := logger.Discard()
	none, err := openStore(options{}, log)
	if err != nil || none != nil {
		t.Fatalf("expected no store, got %v, %v", none, err)
	}

	dir := t.TempDir()
	files, err := openStore(options{savesDir: dir, dbPath: filepath.Join(dir, "ignored.db")}, log)
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	defer files.Close()
	if _, ok := files.(*store.FileStore); !ok {
		t.Fatalf("expected file store, got %T", files)
	}

	db, err := openStore(options{dbPath: filepath.Join(dir, "saves.db")}, log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	if _, ok := db.(*store.SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", db)
	}
}

func TestResumeRestoresSavedSlot(t *testing.T) {
	ctx := context.Background()
	saves, err := store.NewFileStore(t.TempDir(), logger.Discard())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}

	fresh := newSim(t)
	resume(ctx, fresh, saves, "camp", nil)
	if fresh.Count(game.ItemWood) != 6 {
		t.Fatalf("missing slot should leave a new game")
	}

	saved := newSim(t)
	saved.AddItem(game.ItemWood, 4)
	if err := saves.Save(ctx, "camp", saved.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	resume(ctx, fresh, saves, "camp", nil)
	if got := fresh.Count(game.ItemWood); got != 10 {
		t.Fatalf("expected 10 wood after resume, got %d", got)
	}
}
