package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteSchema(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema", "snapshot.json")
	if err := writeSchema(out, buildSchema()); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file renamed away, got %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if doc["title"] != "Wildlands Snapshot" {
		t.Fatalf("unexpected title %v", doc["title"])
	}
	text := string(data)
	for _, field := range []string{`"health"`, `"worldResources"`, `"playerPosition"`, `"shelters"`, `"sunny"`} {
		if !strings.Contains(text, field) {
			t.Fatalf("expected %s in schema", field)
		}
	}
}
