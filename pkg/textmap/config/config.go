// Package config holds the YAML configuration shared by the command-line
// tools: segmentation strategy, contraction policy and vectorizer layout.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cjweir/TextMAP/pkg/textmap/internalerr"
	"github.com/cjweir/TextMAP/pkg/textmap/mwe"
	"github.com/cjweir/TextMAP/pkg/textmap/tokenize"
	"github.com/cjweir/TextMAP/pkg/textmap/vectorize"
)

// ModeJoint selects the stacked word-document estimator in the vectorize
// tool, alongside the document modes (bow, bigram) and word modes (flat,
// flat_1_5).
const ModeJoint = "joint"

// TokenizerConfig configures segmentation. The JSON tags cover the config
// echo written into run metadata.
type TokenizerConfig struct {
	Strategy  string   `yaml:"strategy" json:"strategy"`
	LowerCase bool     `yaml:"lower_case" json:"lower_case"`
	StopWords []string `yaml:"stop_words" json:"stop_words,omitempty"`
}

// ContractionConfig configures the multiword-expression loop.
type ContractionConfig struct {
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
	MinScore      float64 `yaml:"min_score" json:"min_score"`
	Separator     string  `yaml:"separator" json:"separator"`
}

// VectorizerConfig configures matrix construction.
type VectorizerConfig struct {
	Mode         string   `yaml:"mode" json:"mode"`
	Normalize    bool     `yaml:"normalize" json:"normalize"`
	Components   int      `yaml:"components" json:"components"`
	WindowRadius int      `yaml:"window_radius" json:"window_radius"`
	Vocabulary   []string `yaml:"vocabulary" json:"vocabulary,omitempty"`
}

// Config is the full tool configuration.
type Config struct {
	Tokenizer   TokenizerConfig   `yaml:"tokenizer" json:"tokenizer"`
	Contraction ContractionConfig `yaml:"contraction" json:"contraction"`
	Vectorizer  VectorizerConfig  `yaml:"vectorizer" json:"vectorizer"`
}

// Default returns the configuration the tools start from.
func Default() Config {
	return Config{
		Tokenizer: TokenizerConfig{
			Strategy:  tokenize.StrategyProse,
			LowerCase: true,
		},
		Contraction: ContractionConfig{
			MaxIterations: mwe.DefaultMaxIterations,
			MinScore:      mwe.DefaultMinScore,
			Separator:     mwe.DefaultSeparator,
		},
		Vectorizer: VectorizerConfig{
			Mode:         vectorize.ModeBOW,
			WindowRadius: vectorize.DefaultWindowRadius,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks for values no component can run with. The segmentation
// strategy is not checked here; tokenize.NewSegmenter rejects unknown
// names when the tokenizer is built.
func (c Config) Validate() error {
	if c.Contraction.MaxIterations < 0 {
		return fmt.Errorf("config: max_iterations %d is negative: %w",
			c.Contraction.MaxIterations, internalerr.ErrInvalidConfig)
	}
	if math.IsNaN(c.Contraction.MinScore) || math.IsInf(c.Contraction.MinScore, 0) {
		return fmt.Errorf("config: min_score %v is not finite: %w",
			c.Contraction.MinScore, internalerr.ErrInvalidConfig)
	}
	if c.Vectorizer.Components < 0 {
		return fmt.Errorf("config: components %d is negative: %w",
			c.Vectorizer.Components, internalerr.ErrInvalidConfig)
	}
	if c.Vectorizer.WindowRadius < 1 {
		return fmt.Errorf("config: window_radius %d is below 1: %w",
			c.Vectorizer.WindowRadius, internalerr.ErrInvalidConfig)
	}
	switch c.Vectorizer.Mode {
	case vectorize.ModeBOW, vectorize.ModeBigram, vectorize.ModeFlat, vectorize.ModeFlat15, ModeJoint:
	default:
		return fmt.Errorf("config: mode %q: %w", c.Vectorizer.Mode, internalerr.ErrInvalidConfig)
	}
	return nil
}

// TokenizerOptions assembles the tokenizer options the configuration
// describes.
func (c Config) TokenizerOptions() tokenize.Options {
	return tokenize.Options{
		Strategy:  c.Tokenizer.Strategy,
		LowerCase: c.Tokenizer.LowerCase,
		StopWords: c.Tokenizer.StopWords,
		MWE: mwe.Config{
			MinScore:      c.Contraction.MinScore,
			MaxIterations: c.Contraction.MaxIterations,
			Separator:     c.Contraction.Separator,
		},
	}
}
