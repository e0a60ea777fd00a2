// Command textmap-tokenize segments a corpus into sentences and tokens,
// learns multiword expressions, and writes the contracted corpus as JSONL:
// one {"doc": i, "sentences": [[...]]} object per input document.
//
// The corpus is a JSONL file of {"text": ...} objects or a directory of
// .txt/.md/.html files. Flags passed explicitly override the config file.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/cjweir/TextMAP/internal/corpus"
	"github.com/cjweir/TextMAP/internal/runmeta"
	"github.com/cjweir/TextMAP/pkg/textmap/config"
	"github.com/cjweir/TextMAP/pkg/textmap/tokenize"
)

type docJSON struct {
	Doc       int        `json:"doc"`
	Sentences [][]string `json:"sentences"`
}

func main() {
	var (
		input         = flag.String("in", "", "Input corpus: JSONL file or document directory (required)")
		configPath    = flag.String("config", "", "YAML config file")
		strategy      = flag.String("strategy", "", "Segmentation strategy: prose, pattern or whitespace")
		lower         = flag.Bool("lower", true, "Fold tokens to lower case")
		maxIterations = flag.Int("max-iterations", 0, "Contraction passes (0 disables contraction)")
		minScore      = flag.Float64("min-score", 0, "Log-likelihood threshold for contraction")
		output        = flag.String("out", "", "Output JSONL file (default stdout)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--in required")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	// Only flags the user set override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strategy":
			cfg.Tokenizer.Strategy = *strategy
		case "lower":
			cfg.Tokenizer.LowerCase = *lower
		case "max-iterations":
			cfg.Contraction.MaxIterations = *maxIterations
		case "min-score":
			cfg.Contraction.MinScore = *minScore
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	docs, err := corpus.Load(*input)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}

	runID := runmeta.NewGenerator().NewID()
	log.Printf("run %s: tokenizing %d documents", runID, len(docs))

	tok, err := tokenize.New(cfg.TokenizerOptions())
	if err != nil {
		log.Fatalf("build tokenizer: %v", err)
	}
	tokenized, err := tok.FitTransform(corpus.Texts(docs))
	if err != nil {
		log.Fatalf("tokenize: %v", err)
	}
	stats, err := tok.Stats()
	if err != nil {
		log.Fatalf("contraction stats: %v", err)
	}
	log.Printf("run %s: %d contraction iterations, %d pairs merged, converged=%v",
		runID, stats.Iterations, stats.TotalPairs(), stats.Converged)

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("create %s: %v", *output, err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	for i, sentences := range tokenized {
		if err := enc.Encode(docJSON{Doc: i, Sentences: sentences}); err != nil {
			log.Fatalf("write document %d: %v", i, err)
		}
	}
}
