package mwe

import (
	"fmt"
	"math"

	"github.com/cjweir/TextMAP/pkg/textmap/internalerr"
)

// Default contraction policy values.
const (
	DefaultMinScore      = 12.0
	DefaultMaxIterations = 2
)

// Config controls the bigram contraction loop.
type Config struct {
	// MinScore is the log-likelihood-ratio threshold a bigram must reach
	// to be contracted. The comparison is inclusive.
	MinScore float64
	// MaxIterations caps the number of score/select/contract passes.
	// Zero disables contraction entirely.
	MaxIterations int
	// Separator joins the halves of a contracted token. Empty means
	// DefaultSeparator.
	Separator string
	// Workers shards pair counting across goroutines when greater than
	// one. Results are identical to a sequential count.
	Workers int
}

// DefaultConfig returns the standard contraction policy.
func DefaultConfig() Config {
	return Config{
		MinScore:      DefaultMinScore,
		MaxIterations: DefaultMaxIterations,
		Separator:     DefaultSeparator,
	}
}

// Validate checks the configuration for values the loop cannot run with.
func (c Config) Validate() error {
	if c.MaxIterations < 0 {
		return fmt.Errorf("mwe: max iterations %d is negative: %w", c.MaxIterations, internalerr.ErrInvalidConfig)
	}
	if math.IsNaN(c.MinScore) || math.IsInf(c.MinScore, 0) {
		return fmt.Errorf("mwe: min score %v is not finite: %w", c.MinScore, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Stats reports what the contraction loop did.
type Stats struct {
	// Iterations is the number of passes that contracted at least one pair.
	Iterations int `json:"iterations"`
	// Converged is true when a pass found no candidate above the
	// threshold, false when the loop exhausted its iteration budget.
	Converged bool `json:"converged"`
	// Sets holds the contraction set selected by each pass, in order.
	Sets []ContractionSet `json:"sets,omitempty"`
}

// TotalPairs returns the number of bigrams selected across all passes.
func (s Stats) TotalPairs() int {
	total := 0
	for _, set := range s.Sets {
		total += len(set)
	}
	return total
}

// Pipeline runs the iterative score/select/contract loop over a tokenized
// corpus until no bigram reaches the threshold or the iteration budget is
// exhausted.
type Pipeline struct {
	cfg Config
}

// NewPipeline creates a pipeline with a validated configuration.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}
	return &Pipeline{cfg: cfg}, nil
}

// Config returns the pipeline's contraction policy.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Run transforms the corpus through repeated contraction passes. Each pass
// scores every adjacent pair corpus-wide, selects those at or above the
// threshold, and rewrites the structure; an empty selection ends the loop
// early. With a zero iteration budget the input is returned untouched and
// no scoring work is done. Document and sentence counts never change;
// per-sentence token counts only shrink.
func (p *Pipeline) Run(docs [][][]string) ([][][]string, Stats) {
	var stats Stats
	current := docs
	for i := 0; i < p.cfg.MaxIterations; i++ {
		counter := CountCorpus(current, p.cfg.Workers)
		set := Select(counter.ScoreAll(), p.cfg.MinScore)
		if len(set) == 0 {
			stats.Converged = true
			break
		}
		contractor := NewContractor(set, p.cfg.Separator)
		current = contractor.Corpus(current)
		stats.Sets = append(stats.Sets, set)
		stats.Iterations++
	}
	return current, stats
}
