// Package store persists simulation snapshots into named save slots.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/appengine-ltd/wildlands/internal/game"
)

// DefaultSlot is used when a save or load names no slot.
const DefaultSlot = "autosave"

var ErrNotFound = errors.New("save slot not found")

// SlotInfo describes a stored snapshot without decoding it.
type SlotInfo struct {
	Slot          string    `json:"slot"`
	SavedAt       time.Time `json:"saved_at"`
	FormatVersion int       `json:"format_version"`
	Day           int       `json:"day"`
}

// Store is implemented by SQLiteStore and FileStore. Load hands back the raw
// snapshot JSON so callers restore through the lenient decoder.
type Store interface {
	Save(ctx context.Context, slot string, snap game.Snapshot) error
	Load(ctx context.Context, slot string) ([]byte, error)
	List(ctx context.Context) ([]SlotInfo, error)
	Close() error
}

// NormalizeSlot lowercases a slot name and rejects anything that is not a
// plain identifier, so slots are safe as file names.
func NormalizeSlot(slot string) (string, error) {
	slot = strings.ToLower(strings.TrimSpace(slot))
	if slot == "" {
		return DefaultSlot, nil
	}
	if len(slot) > 64 {
		return "", fmt.Errorf("slot name too long: %d characters", len(slot))
	}
	for _, r := range slot {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			continue
		}
		return "", fmt.Errorf("invalid slot name %q", slot)
	}
	return slot, nil
}

func encodeSnapshot(snap game.Snapshot) ([]byte, error) {
	if snap.FormatVersion == 0 {
		snap.FormatVersion = game.SnapshotFormatVersion
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}
