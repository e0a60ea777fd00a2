// Command textmap-vectorize fits a vectorizer on a corpus and writes the
// resulting matrix to disk. Sparse count matrices go to <out>.mtx in Matrix
// Market coordinate format with <out>.rows and <out>.cols label files;
// basis-converted joint output is dense and goes to <out>.csv. Every run
// also writes <out>.meta.json with a ULID run id, the effective config and
// the contraction statistics.
//
// The corpus is a JSONL file of {"text": ...} objects or a directory of
// .txt/.md/.html files. Flags passed explicitly override the config file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/cjweir/TextMAP/internal/corpus"
	"github.com/cjweir/TextMAP/internal/runmeta"
	"github.com/cjweir/TextMAP/pkg/textmap"
	"github.com/cjweir/TextMAP/pkg/textmap/config"
	"github.com/cjweir/TextMAP/pkg/textmap/mwe"
	"github.com/cjweir/TextMAP/pkg/textmap/vectorize"
)

func main() {
	var (
		input      = flag.String("in", "", "Input corpus: JSONL file or document directory (required)")
		configPath = flag.String("config", "", "YAML config file")
		mode       = flag.String("mode", "", "Matrix mode: bow, bigram, flat, flat_1_5 or joint")
		normalize  = flag.Bool("normalize", false, "L1-normalize matrix rows")
		components = flag.Int("components", 0, "Basis rank for joint mode (0 keeps raw counts)")
		output     = flag.String("out", "", "Output path prefix (required)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--in required")
	}
	if *output == "" {
		log.Fatal("--out required")
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
		case "mode":
			cfg.Vectorizer.Mode = *mode
		case "normalize":
			cfg.Vectorizer.Normalize = *normalize
		case "components":
			cfg.Vectorizer.Components = *components
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	docs, err := corpus.Load(*input)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}

	started := time.Now().UTC()
	runID := runmeta.NewGenerator().NewID()
	log.Printf("run %s: vectorizing %d documents, mode %s", runID, len(docs), cfg.Vectorizer.Mode)

	matrix, rowLabels, colLabels, stats, err := fit(cfg, corpus.Texts(docs), docLabels(docs))
	if err != nil {
		log.Fatalf("vectorize: %v", err)
	}

	rows, cols := matrix.Dims()
	outputs := map[string]interface{}{
		"rows":        rows,
		"cols":        cols,
		"contraction": stats,
	}

	if dense, ok := matrix.(*mat.Dense); ok {
		path := *output + ".csv"
		if err := writeCSVFile(path, dense, rowLabels, colLabels); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		outputs["csv"] = path
	} else {
		path := *output + ".mtx"
		if err := writeMatrixFile(path, matrix); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		if err := writeLabels(*output+".rows", rowLabels); err != nil {
			log.Fatalf("write row labels: %v", err)
		}
		if err := writeLabels(*output+".cols", colLabels); err != nil {
			log.Fatalf("write column labels: %v", err)
		}
		outputs["mtx"] = path
	}

	meta := runmeta.Meta{
		RunID:     runID,
		Tool:      "textmap-vectorize",
		StartedAt: started,
		Config:    cfg,
		Outputs:   outputs,
	}
	if err := runmeta.Write(*output+".meta.json", meta); err != nil {
		log.Fatalf("write metadata: %v", err)
	}
	log.Printf("run %s: wrote %d x %d matrix (%d contraction iterations, %d pairs merged)",
		runID, rows, cols, stats.Iterations, stats.TotalPairs())
}

// fit builds the estimator the config names, fits it on texts and returns
// the matrix with its row and column labels. Document rows are labeled by
// docLabels; word rows label themselves.
func fit(cfg config.Config, texts, docLabels []string) (mat.Matrix, []string, []string, mwe.Stats, error) {
	tokOpts := cfg.TokenizerOptions()

	switch cfg.Vectorizer.Mode {
	case vectorize.ModeBOW, vectorize.ModeBigram:
		v, err := textmap.NewDocVectorizer(textmap.DocOptions{
			Tokenizer:  tokOpts,
			Mode:       cfg.Vectorizer.Mode,
			Normalize:  cfg.Vectorizer.Normalize,
			Vocabulary: cfg.Vectorizer.Vocabulary,
		})
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		m, err := v.FitTransform(texts)
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		cols, err := v.ColumnLabels()
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		stats, err := v.Stats()
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		return m, docLabels, cols, stats, nil

	case vectorize.ModeFlat, vectorize.ModeFlat15:
		v, err := textmap.NewWordVectorizer(textmap.WordOptions{
			Tokenizer:    tokOpts,
			Mode:         cfg.Vectorizer.Mode,
			WindowRadius: cfg.Vectorizer.WindowRadius,
			Normalize:    cfg.Vectorizer.Normalize,
			Vocabulary:   cfg.Vectorizer.Vocabulary,
		})
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		m, err := v.FitTransform(texts)
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		rows, err := v.RowLabels()
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		cols, err := v.ColumnLabels()
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		stats, err := v.Stats()
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		return m, rows, cols, stats, nil

	case config.ModeJoint:
		v, err := textmap.NewJointWordDocVectorizer(textmap.JointOptions{
			Tokenizer:    tokOpts,
			WindowRadius: cfg.Vectorizer.WindowRadius,
			NComponents:  cfg.Vectorizer.Components,
			Vocabulary:   cfg.Vectorizer.Vocabulary,
		})
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		m, err := v.FitTransform(texts)
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		words, err := v.WordLabels()
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		stats, err := v.Stats()
		if err != nil {
			return nil, nil, nil, mwe.Stats{}, err
		}
		// Document rows stack above word rows.
		rows := make([]string, 0, len(docLabels)+len(words))
		rows = append(rows, docLabels...)
		rows = append(rows, words...)
		cols := words
		if cfg.Vectorizer.Components > 0 {
			_, k := m.Dims()
			cols = make([]string, k)
			for j := range cols {
				cols[j] = "c" + strconv.Itoa(j)
			}
		}
		return m, rows, cols, stats, nil
	}

	return nil, nil, nil, mwe.Stats{}, fmt.Errorf("unsupported mode %q", cfg.Vectorizer.Mode)
}

// docLabels labels document rows by their corpus ID, falling back to the
// document index.
func docLabels(docs []corpus.Document) []string {
	labels := make([]string, len(docs))
	for i, d := range docs {
		if d.ID != "" {
			labels[i] = d.ID
			continue
		}
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

func writeMatrixFile(path string, m mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return vectorize.WriteMatrixMarket(f, m)
}

func writeCSVFile(path string, m mat.Matrix, rowLabels, colLabels []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return vectorize.WriteCSV(f, m, rowLabels, colLabels)
}

func writeLabels(path string, labels []string) error {
	var b strings.Builder
	for _, label := range labels {
		b.WriteString(label)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
