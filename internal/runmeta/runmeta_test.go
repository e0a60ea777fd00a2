package runmeta

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewIDIsUniqueAndSortable(t *testing.T) {
	gen := NewGenerator()

	first := gen.NewID()
	second := gen.NewID()

	if len(first) != 26 {
		t.Errorf("Expected a 26-character ULID, got %q", first)
	}
	if first == second {
		t.Error("Expected distinct ids")
	}
	// Monotonic entropy keeps ids ordered within one generator.
	if first >= second {
		t.Errorf("Expected %q < %q", first, second)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.meta.json")
	meta := Meta{
		RunID:     NewGenerator().NewID(),
		Tool:      "textmap-vectorize",
		StartedAt: time.Now().UTC(),
		Outputs: map[string]interface{}{
			"rows": 5,
			"cols": 7,
		},
	}

	if err := Write(path, meta); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read metadata: %v", err)
	}
	var got Meta
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Metadata is not valid JSON: %v", err)
	}
	if got.RunID != meta.RunID || got.Tool != meta.Tool {
		t.Errorf("Expected %q/%q, got %q/%q", meta.RunID, meta.Tool, got.RunID, got.Tool)
	}
	if got.Outputs["rows"] != float64(5) {
		t.Errorf("Expected rows 5, got %v", got.Outputs["rows"])
	}
}

func TestWriteBadPath(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "run.meta.json"), Meta{})

	if err == nil {
		t.Error("Expected an error for an unwritable path")
	}
}
