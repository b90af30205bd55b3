package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/appengine-ltd/wildlands/internal/game"
	"github.com/appengine-ltd/wildlands/internal/platform/logger"

	_ "modernc.org/sqlite"
)

// InitSQLite opens the save database, creating its directory and schema.
func InitSQLite(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}
	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			slot TEXT PRIMARY KEY,
			saved_at TEXT NOT NULL,
			format_version INTEGER NOT NULL,
			game_day INTEGER NOT NULL DEFAULT 1,
			payload TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_saved_at ON snapshots(saved_at);`,
	}
	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// SQLiteStore keeps one row per slot; saving to an existing slot replaces it.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
	now func() time.Time
}

func OpenSQLite(dbPath string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := InitSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	log.Infof("save database ready at %s", dbPath)
	return &SQLiteStore{db: db, log: log, now: time.Now}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, slot string, snap game.Snapshot) error {
	slot, err := NormalizeSlot(slot)
	if err != nil {
		return err
	}
	payload, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO snapshots (slot, saved_at, format_version, game_day, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			saved_at = excluded.saved_at,
			format_version = excluded.format_version,
			game_day = excluded.game_day,
			payload = excluded.payload
	`
	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, query, slot, savedAt, game.SnapshotFormatVersion, snap.Day, string(payload)); err != nil {
		return fmt.Errorf("failed to save slot %s: %w", slot, err)
	}
	s.log.Event("SAVE", slot, fmt.Sprintf("day %d, %d bytes", snap.Day, len(payload)))
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, slot string) ([]byte, error) {
	slot, err := NormalizeSlot(slot)
	if err != nil {
		return nil, err
	}
	var payload string
	err = s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE slot = ?`, slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}
	s.log.Event("LOAD", slot, fmt.Sprintf("%d bytes", len(payload)))
	return []byte(payload), nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]SlotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot, saved_at, format_version, game_day FROM snapshots ORDER BY slot ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var slots []SlotInfo
	for rows.Next() {
		var info SlotInfo
		var savedAt string
		if err := rows.Scan(&info.Slot, &savedAt, &info.FormatVersion, &info.Day); err != nil {
			return nil, err
		}
		if info.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
			s.log.Warnf("slot %s has unreadable timestamp %q", info.Slot, savedAt)
		}
		slots = append(slots, info)
	}
	return slots, rows.Err()
}

// Delete removes a slot. Deleting a missing slot is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, slot string) error {
	slot, err := NormalizeSlot(slot)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
