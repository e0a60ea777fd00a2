// Package runmeta stamps tool runs with a unique id and records run
// metadata alongside tool output.
package runmeta

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator issues unique, sortable run ids.
type Generator struct {
	entropy *ulid.MonotonicEntropy
}

// NewGenerator creates a run id generator.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewID returns a fresh ULID.
func (g *Generator) NewID() string {
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}

// Meta describes one tool run.
type Meta struct {
	RunID     string                 `json:"run_id"`
	Tool      string                 `json:"tool"`
	StartedAt time.Time              `json:"started_at"`
	Config    interface{}            `json:"config,omitempty"`
	Outputs   map[string]interface{} `json:"outputs,omitempty"`
}

// Write stores meta as indented JSON at path.
func Write(path string, meta Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run metadata: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write run metadata %s: %w", path, err)
	}
	return nil
}
