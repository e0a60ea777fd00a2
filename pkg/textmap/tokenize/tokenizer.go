package tokenize

import (
	"fmt"
	"strings"

	"github.com/cjweir/TextMAP/pkg/textmap/internalerr"
	"github.com/cjweir/TextMAP/pkg/textmap/mwe"
)

// Options configures a Tokenizer.
type Options struct {
	// Strategy names the segmentation strategy (prose, pattern, whitespace).
	Strategy string
	// LowerCase folds every token to lower case after word segmentation.
	LowerCase bool
	// StopWords are dropped after case folding. Matching is case-insensitive.
	StopWords []string
	// MWE configures the multiword-expression contraction pass run by Fit.
	MWE mwe.Config
}

// DefaultOptions returns the standard setup: prose segmentation, case
// folding on, default contraction policy.
func DefaultOptions() Options {
	return Options{
		Strategy:  StrategyProse,
		LowerCase: true,
		MWE:       mwe.DefaultConfig(),
	}
}

// Tokenizer turns raw documents into document/sentence/token structure and
// learns multiword expressions while fitting. A fitted tokenizer replays the
// learned contractions on new text via Transform.
type Tokenizer struct {
	opts      Options
	seg       Segmenter
	stopwords map[string]struct{}
	pipeline  *mwe.Pipeline

	fitted bool
	docs   [][][]string
	stats  mwe.Stats
}

// New builds a Tokenizer from opts. The zero Strategy means prose.
func New(opts Options) (*Tokenizer, error) {
	if opts.Strategy == "" {
		opts.Strategy = StrategyProse
	}
	seg, err := NewSegmenter(opts.Strategy)
	if err != nil {
		return nil, err
	}
	pipeline, err := mwe.NewPipeline(opts.MWE)
	if err != nil {
		return nil, err
	}
	stops := make(map[string]struct{}, len(opts.StopWords))
	for _, w := range opts.StopWords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{
		opts:      opts,
		seg:       seg,
		stopwords: stops,
		pipeline:  pipeline,
	}, nil
}

// Options returns the options the tokenizer was built with.
func (t *Tokenizer) Options() Options { return t.opts }

// Fit segments texts, learns multiword expressions on the result and stores
// the contracted corpus. Documents that segment to nothing stay in place as
// empty documents so indexes line up with the input.
func (t *Tokenizer) Fit(texts []string) error {
	docs, err := t.segment(texts)
	if err != nil {
		return err
	}
	contracted, stats := t.pipeline.Run(docs)
	t.docs = contracted
	t.stats = stats
	t.fitted = true
	return nil
}

// Transform segments texts and replays the contractions learned by Fit,
// one learned pass after another, without updating them.
func (t *Tokenizer) Transform(texts []string) ([][][]string, error) {
	if !t.fitted {
		return nil, fmt.Errorf("tokenize: transform: %w", internalerr.ErrNotFitted)
	}
	docs, err := t.segment(texts)
	if err != nil {
		return nil, err
	}
	sep := t.opts.MWE.Separator
	for _, set := range t.stats.Sets {
		docs = mwe.NewContractor(set, sep).Corpus(docs)
	}
	return docs, nil
}

// FitTransform fits on texts and returns the contracted corpus.
func (t *Tokenizer) FitTransform(texts []string) ([][][]string, error) {
	if err := t.Fit(texts); err != nil {
		return nil, err
	}
	return t.docs, nil
}

// TokensBySentByDoc returns the fitted corpus as documents of sentences of
// tokens.
func (t *Tokenizer) TokensBySentByDoc() ([][][]string, error) {
	if !t.fitted {
		return nil, fmt.Errorf("tokenize: tokens by sentence by document: %w", internalerr.ErrNotFitted)
	}
	return t.docs, nil
}

// TokensBySent returns the fitted corpus as a flat list of sentences,
// document boundaries dropped.
func (t *Tokenizer) TokensBySent() ([][]string, error) {
	if !t.fitted {
		return nil, fmt.Errorf("tokenize: tokens by sentence: %w", internalerr.ErrNotFitted)
	}
	var sents [][]string
	for _, doc := range t.docs {
		sents = append(sents, doc...)
	}
	if sents == nil {
		sents = [][]string{}
	}
	return sents, nil
}

// TokensByDoc returns the fitted corpus as one token list per document,
// sentence boundaries dropped.
func (t *Tokenizer) TokensByDoc() ([][]string, error) {
	if !t.fitted {
		return nil, fmt.Errorf("tokenize: tokens by document: %w", internalerr.ErrNotFitted)
	}
	docs := make([][]string, len(t.docs))
	for i, doc := range t.docs {
		n := 0
		for _, sent := range doc {
			n += len(sent)
		}
		flat := make([]string, 0, n)
		for _, sent := range doc {
			flat = append(flat, sent...)
		}
		docs[i] = flat
	}
	return docs, nil
}

// Stats reports what the contraction pass did during Fit.
func (t *Tokenizer) Stats() (mwe.Stats, error) {
	if !t.fitted {
		return mwe.Stats{}, fmt.Errorf("tokenize: stats: %w", internalerr.ErrNotFitted)
	}
	return t.stats, nil
}

// ContractionSets returns the per-iteration contraction sets learned by Fit.
func (t *Tokenizer) ContractionSets() ([]mwe.ContractionSet, error) {
	if !t.fitted {
		return nil, fmt.Errorf("tokenize: contraction sets: %w", internalerr.ErrNotFitted)
	}
	return t.stats.Sets, nil
}

// segment maps raw documents to document/sentence/token structure, applying
// case folding and stopword removal per token. Sentences that filter down to
// nothing are kept as empty token lists so sentence counts stay honest.
func (t *Tokenizer) segment(texts []string) ([][][]string, error) {
	docs := make([][][]string, len(texts))
	for i, text := range texts {
		sents, err := t.seg.SplitSentences(text)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		doc := make([][]string, len(sents))
		for j, sent := range sents {
			words, err := t.seg.SplitWords(sent)
			if err != nil {
				return nil, fmt.Errorf("document %d sentence %d: %w", i, j, err)
			}
			tokens := make([]string, 0, len(words))
			for _, w := range words {
				if t.opts.LowerCase {
					w = strings.ToLower(w)
				}
				if t.isStopword(w) {
					continue
				}
				tokens = append(tokens, w)
			}
			doc[j] = tokens
		}
		docs[i] = doc
	}
	return docs, nil
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[strings.ToLower(word)]
	return ok
}
