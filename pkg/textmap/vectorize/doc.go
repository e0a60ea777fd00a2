package vectorize

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/cjweir/TextMAP/pkg/textmap/internalerr"
)

// Document vectorizer modes.
const (
	// ModeBOW counts individual tokens per document.
	ModeBOW = "bow"
	// ModeBigram counts adjacent within-sentence token pairs per document;
	// the column space is the bigram labels, not the terms.
	ModeBigram = "bigram"
)

// DocOptions configures a DocVectorizer.
type DocOptions struct {
	// Mode selects the column space (bow, bigram). Empty means bow.
	Mode string
	// Normalize applies L1 row normalization to every output matrix.
	Normalize bool
	// Vocabulary pins the column labels in the given order. Empty means
	// the labels are derived from the fit corpus, sorted.
	Vocabulary []string
}

// DocVectorizer turns tokenized documents into a documents-by-features
// count matrix. Fit establishes the column space; Transform reuses it,
// ignoring features it has not seen.
type DocVectorizer struct {
	opts   DocOptions
	fixed  *Vocabulary
	vocab  *Vocabulary
	fitted bool
}

// NewDocVectorizer validates opts and builds the vectorizer.
func NewDocVectorizer(opts DocOptions) (*DocVectorizer, error) {
	if opts.Mode == "" {
		opts.Mode = ModeBOW
	}
	if opts.Mode != ModeBOW && opts.Mode != ModeBigram {
		return nil, fmt.Errorf("vectorize: document mode %q: %w", opts.Mode, internalerr.ErrInvalidConfig)
	}
	d := &DocVectorizer{opts: opts}
	if len(opts.Vocabulary) > 0 {
		vocab, err := NewVocabulary(opts.Vocabulary)
		if err != nil {
			return nil, err
		}
		d.fixed = vocab
	}
	return d, nil
}

// Fit establishes the column space from docs, or from the pinned
// vocabulary when one was supplied.
func (d *DocVectorizer) Fit(docs [][][]string) error {
	if d.fixed != nil {
		d.vocab = d.fixed
	} else {
		groups := make([][]string, len(docs))
		for i, doc := range docs {
			groups[i] = d.features(doc)
		}
		d.vocab = VocabularyFromGroups(groups)
	}
	d.fitted = true
	return nil
}

// Transform counts each document's features into the fitted column space.
func (d *DocVectorizer) Transform(docs [][][]string) (*sparse.CSR, error) {
	if !d.fitted {
		return nil, fmt.Errorf("vectorize: document transform: %w", internalerr.ErrNotFitted)
	}
	out := newBuilder(len(docs), d.vocab.Size())
	for i, doc := range docs {
		for _, feat := range d.features(doc) {
			if j, ok := d.vocab.Index(feat); ok {
				out.add(i, j, 1)
			}
		}
	}
	matrix := out.build()
	if d.opts.Normalize {
		return NormalizeRowsL1(matrix), nil
	}
	return matrix, nil
}

// FitTransform fits on docs and returns their matrix.
func (d *DocVectorizer) FitTransform(docs [][][]string) (*sparse.CSR, error) {
	if err := d.Fit(docs); err != nil {
		return nil, err
	}
	return d.Transform(docs)
}

// ColumnLabels returns the fitted column labels in column order.
func (d *DocVectorizer) ColumnLabels() ([]string, error) {
	if !d.fitted {
		return nil, fmt.Errorf("vectorize: document column labels: %w", internalerr.ErrNotFitted)
	}
	return d.vocab.Labels(), nil
}

// Vocabulary returns the fitted column space.
func (d *DocVectorizer) Vocabulary() (*Vocabulary, error) {
	if !d.fitted {
		return nil, fmt.Errorf("vectorize: document vocabulary: %w", internalerr.ErrNotFitted)
	}
	return d.vocab, nil
}

// features projects one document onto the mode's feature space: tokens for
// bow, space-joined adjacent within-sentence pairs for bigram.
func (d *DocVectorizer) features(doc [][]string) []string {
	var feats []string
	switch d.opts.Mode {
	case ModeBigram:
		for _, sent := range doc {
			for i := 0; i+1 < len(sent); i++ {
				feats = append(feats, sent[i]+" "+sent[i+1])
			}
		}
	default:
		for _, sent := range doc {
			feats = append(feats, sent...)
		}
	}
	return feats
}

// WrapTokenDocs lifts pre-tokenized flat documents into the hierarchical
// structure, one sentence per document. Used when a corpus arrives already
// tokenized and sentence boundaries are unknown.
func WrapTokenDocs(tokenDocs [][]string) [][][]string {
	docs := make([][][]string, len(tokenDocs))
	for i, tokens := range tokenDocs {
		docs[i] = [][]string{tokens}
	}
	return docs
}
