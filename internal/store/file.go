package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/appengine-ltd/wildlands/internal/game"
	"github.com/appengine-ltd/wildlands/internal/platform/logger"
)

const saveFileSuffix = ".wild.json"

type savedRun struct {
	FormatVersion int             `json:"format_version"`
	SavedAt       time.Time       `json:"saved_at"`
	Day           int             `json:"day"`
	Snapshot      json.RawMessage `json:"snapshot"`
}

// FileStore writes one JSON document per slot into a directory.
type FileStore struct {
	dir string
	log *logger.Logger
	now func() time.Time
}

func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("save directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &FileStore{dir: dir, log: log, now: time.Now}, nil
}

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.dir, slot+saveFileSuffix)
}

func (s *FileStore) Save(_ context.Context, slot string, snap game.Snapshot) error {
	slot, err := NormalizeSlot(slot)
	if err != nil {
		return err
	}
	payload, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(savedRun{
		FormatVersion: game.SnapshotFormatVersion,
		SavedAt:       s.now().UTC(),
		Day:           snap.Day,
		Snapshot:      payload,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save file: %w", err)
	}

	path := s.path(slot)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace save file: %w", err)
	}
	s.log.Event("SAVE", slot, path)
	return nil
}

// Load accepts both wrapped save files and bare snapshot documents.
func (s *FileStore) Load(_ context.Context, slot string) ([]byte, error) {
	slot, err := NormalizeSlot(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, slot)
		}
		return nil, err
	}
	var run savedRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decode save file %s: %w", slot, err)
	}
	s.log.Event("LOAD", slot, s.path(slot))
	if len(run.Snapshot) == 0 {
		return data, nil
	}
	return run.Snapshot, nil
}

func (s *FileStore) List(_ context.Context) ([]SlotInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var slots []SlotInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, saveFileSuffix) {
			continue
		}
		slot := strings.TrimSuffix(name, saveFileSuffix)
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		var run savedRun
		if err := json.Unmarshal(data, &run); err != nil {
			s.log.Warnf("skipping unreadable save %s: %v", name, err)
			continue
		}
		slots = append(slots, SlotInfo{Slot: slot, SavedAt: run.SavedAt, FormatVersion: run.FormatVersion, Day: run.Day})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	return slots, nil
}

func (s *FileStore) Close() error { return nil }
