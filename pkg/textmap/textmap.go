// Package textmap turns collections of raw documents into sparse count
// matrices. The estimators pair a hierarchical tokenizer (sentence and word
// segmentation plus multiword-expression contraction) with the count
// vectorizers from pkg/textmap/vectorize; pre-tokenized corpora can use
// those vectorizers directly.
package textmap

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/cjweir/TextMAP/pkg/textmap/basis"
	"github.com/cjweir/TextMAP/pkg/textmap/internalerr"
	"github.com/cjweir/TextMAP/pkg/textmap/mwe"
	"github.com/cjweir/TextMAP/pkg/textmap/tokenize"
	"github.com/cjweir/TextMAP/pkg/textmap/vectorize"
)

// DocOptions configures a document estimator.
type DocOptions struct {
	// Tokenizer configures segmentation and contraction. The zero value
	// segments with prose and performs no contraction; use
	// tokenize.DefaultOptions for the standard contraction policy.
	Tokenizer tokenize.Options
	// Mode selects the column space (vectorize.ModeBOW, ModeBigram).
	Mode string
	// Normalize applies L1 row normalization to output matrices.
	Normalize bool
	// FitUnique drops exact duplicate raw documents before fitting, so
	// repeated documents do not inflate the contraction statistics.
	// Transform still counts every input document.
	FitUnique bool
	// Vocabulary pins the columns in the given order.
	Vocabulary []string
}

// DocVectorizer is the end-to-end documents-by-features estimator: raw
// texts in, sparse count matrix out.
type DocVectorizer struct {
	opts DocOptions
	tok  *tokenize.Tokenizer
	vec  *vectorize.DocVectorizer
}

// NewDocVectorizer validates opts and builds the estimator.
func NewDocVectorizer(opts DocOptions) (*DocVectorizer, error) {
	tok, err := tokenize.New(opts.Tokenizer)
	if err != nil {
		return nil, err
	}
	vec, err := vectorize.NewDocVectorizer(vectorize.DocOptions{
		Mode:       opts.Mode,
		Normalize:  opts.Normalize,
		Vocabulary: opts.Vocabulary,
	})
	if err != nil {
		return nil, err
	}
	return &DocVectorizer{opts: opts, tok: tok, vec: vec}, nil
}

// Fit tokenizes texts, learns contractions and establishes the column
// space. With FitUnique set, fitting sees each distinct document once.
func (d *DocVectorizer) Fit(texts []string) error {
	fitTexts := texts
	if d.opts.FitUnique {
		fitTexts = uniqueTexts(texts)
	}
	if err := d.tok.Fit(fitTexts); err != nil {
		return err
	}
	docs, err := d.tok.TokensBySentByDoc()
	if err != nil {
		return err
	}
	return d.vec.Fit(docs)
}

// Transform tokenizes texts with the learned contractions and counts them
// in the fitted column space.
func (d *DocVectorizer) Transform(texts []string) (*sparse.CSR, error) {
	docs, err := d.tok.Transform(texts)
	if err != nil {
		return nil, err
	}
	return d.vec.Transform(docs)
}

// FitTransform fits on texts and returns their matrix.
func (d *DocVectorizer) FitTransform(texts []string) (*sparse.CSR, error) {
	if err := d.Fit(texts); err != nil {
		return nil, err
	}
	return d.Transform(texts)
}

// ColumnLabels returns the fitted column labels in column order.
func (d *DocVectorizer) ColumnLabels() ([]string, error) {
	return d.vec.ColumnLabels()
}

// Stats reports what the contraction loop did during Fit.
func (d *DocVectorizer) Stats() (mwe.Stats, error) {
	return d.tok.Stats()
}

// WordOptions configures a word estimator.
type WordOptions struct {
	// Tokenizer configures segmentation and contraction.
	Tokenizer tokenize.Options
	// Mode selects the context block layout (vectorize.ModeFlat,
	// ModeFlat15).
	Mode string
	// WindowRadius bounds the in-sentence context distance. Zero means
	// vectorize.DefaultWindowRadius.
	WindowRadius int
	// Normalize applies L1 row normalization.
	Normalize bool
	// DedupeSentences drops exact duplicate sentences before counting.
	DedupeSentences bool
	// Vocabulary pins the row words and context words.
	Vocabulary []string
}

// WordVectorizer is the end-to-end words-by-context estimator.
type WordVectorizer struct {
	opts WordOptions
	tok  *tokenize.Tokenizer
	vec  *vectorize.WordVectorizer
}

// NewWordVectorizer validates opts and builds the estimator.
func NewWordVectorizer(opts WordOptions) (*WordVectorizer, error) {
	tok, err := tokenize.New(opts.Tokenizer)
	if err != nil {
		return nil, err
	}
	vec, err := vectorize.NewWordVectorizer(vectorize.WordOptions{
		Mode:            opts.Mode,
		WindowRadius:    opts.WindowRadius,
		Normalize:       opts.Normalize,
		DedupeSentences: opts.DedupeSentences,
		Vocabulary:      opts.Vocabulary,
	})
	if err != nil {
		return nil, err
	}
	return &WordVectorizer{opts: opts, tok: tok, vec: vec}, nil
}

// Fit tokenizes texts, learns contractions and counts the word
// representation.
func (w *WordVectorizer) Fit(texts []string) error {
	if err := w.tok.Fit(texts); err != nil {
		return err
	}
	sents, err := w.tok.TokensBySent()
	if err != nil {
		return err
	}
	return w.vec.Fit(sents)
}

// Transform tokenizes texts with the learned contractions and counts them
// in the fitted vocabulary and block layout.
func (w *WordVectorizer) Transform(texts []string) (*sparse.CSR, error) {
	docs, err := w.tok.Transform(texts)
	if err != nil {
		return nil, err
	}
	return w.vec.Transform(flattenSentences(docs))
}

// FitTransform fits on texts and returns the word representation.
func (w *WordVectorizer) FitTransform(texts []string) (*sparse.CSR, error) {
	if err := w.Fit(texts); err != nil {
		return nil, err
	}
	return w.vec.Representation()
}

// Representation returns the matrix counted during Fit.
func (w *WordVectorizer) Representation() (*sparse.CSR, error) {
	return w.vec.Representation()
}

// RowLabels returns the vocabulary words in row order.
func (w *WordVectorizer) RowLabels() ([]string, error) {
	return w.vec.RowLabels()
}

// ColumnLabels returns one label per context column.
func (w *WordVectorizer) ColumnLabels() ([]string, error) {
	return w.vec.ColumnLabels()
}

// Stats reports what the contraction loop did during Fit.
func (w *WordVectorizer) Stats() (mwe.Stats, error) {
	return w.tok.Stats()
}

// JointOptions configures a joint word-document estimator.
type JointOptions struct {
	// Tokenizer configures segmentation and contraction.
	Tokenizer tokenize.Options
	// WindowRadius bounds the word co-occurrence window. Zero means
	// vectorize.DefaultWindowRadius.
	WindowRadius int
	// NComponents, when positive, projects the stacked matrix onto a
	// basis of that rank learned from the word block.
	NComponents int
	// Vocabulary pins the shared word space.
	Vocabulary []string
}

// JointWordDocVectorizer embeds documents and words in one space: the
// documents-by-words count matrix stacked on the symmetric words-by-words
// co-occurrence matrix. With NComponents set the stack is re-expressed in
// a low-rank word basis and the result is dense.
type JointWordDocVectorizer struct {
	opts   JointOptions
	tok    *tokenize.Tokenizer
	vocab  *vectorize.Vocabulary
	conv   *basis.Converter
	fitted bool
}

// NewJointWordDocVectorizer validates opts and builds the estimator.
func NewJointWordDocVectorizer(opts JointOptions) (*JointWordDocVectorizer, error) {
	if opts.WindowRadius == 0 {
		opts.WindowRadius = vectorize.DefaultWindowRadius
	}
	if opts.WindowRadius < 1 {
		return nil, fmt.Errorf("textmap: window radius %d: %w", opts.WindowRadius, internalerr.ErrInvalidConfig)
	}
	if opts.NComponents < 0 {
		return nil, fmt.Errorf("textmap: components %d: %w", opts.NComponents, internalerr.ErrInvalidConfig)
	}
	tok, err := tokenize.New(opts.Tokenizer)
	if err != nil {
		return nil, err
	}
	j := &JointWordDocVectorizer{opts: opts, tok: tok}
	if len(opts.Vocabulary) > 0 {
		vocab, err := vectorize.NewVocabulary(opts.Vocabulary)
		if err != nil {
			return nil, err
		}
		j.vocab = vocab
	}
	return j, nil
}

// Fit tokenizes texts, fixes the shared word space and, when NComponents
// is positive, learns the word basis from a flat context representation.
func (j *JointWordDocVectorizer) Fit(texts []string) error {
	if err := j.tok.Fit(texts); err != nil {
		return err
	}
	sents, err := j.tok.TokensBySent()
	if err != nil {
		return err
	}
	if len(j.opts.Vocabulary) == 0 {
		j.vocab = vectorize.VocabularyFromGroups(sents)
	}

	j.conv = nil
	if j.opts.NComponents > 0 {
		words, err := vectorize.NewWordVectorizer(vectorize.WordOptions{
			WindowRadius: j.opts.WindowRadius,
			Vocabulary:   j.vocab.Labels(),
		})
		if err != nil {
			return err
		}
		rep, err := words.FitTransform(sents)
		if err != nil {
			return err
		}
		conv, err := basis.NewConverter(j.opts.NComponents)
		if err != nil {
			return err
		}
		if err := conv.Fit(rep, j.vocab.Labels()); err != nil {
			return err
		}
		j.conv = conv
	}
	j.fitted = true
	return nil
}

// Transform tokenizes texts with the learned contractions and returns the
// stacked matrix: documents-by-words rows first, then one row per word.
// The result is a *sparse.CSR, or a *mat.Dense when NComponents is set.
func (j *JointWordDocVectorizer) Transform(texts []string) (mat.Matrix, error) {
	if !j.fitted {
		return nil, fmt.Errorf("textmap: joint transform: %w", internalerr.ErrNotFitted)
	}
	docs, err := j.tok.Transform(texts)
	if err != nil {
		return nil, err
	}
	sents := flattenSentences(docs)

	dv, err := vectorize.NewDocVectorizer(vectorize.DocOptions{Vocabulary: j.vocab.Labels()})
	if err != nil {
		return nil, err
	}
	docBlock, err := dv.FitTransform(docs)
	if err != nil {
		return nil, err
	}
	wordBlock := vectorize.WordCooccurrence(sents, j.vocab, j.opts.WindowRadius)

	stacked, err := vectorize.StackRows(docBlock, wordBlock)
	if err != nil {
		return nil, err
	}
	if j.conv == nil {
		return stacked, nil
	}
	return j.conv.ChangeBasis(stacked, j.vocab.Labels())
}

// FitTransform fits on texts and returns their stacked matrix.
func (j *JointWordDocVectorizer) FitTransform(texts []string) (mat.Matrix, error) {
	if err := j.Fit(texts); err != nil {
		return nil, err
	}
	return j.Transform(texts)
}

// NWords returns the size of the shared word space, which is also the
// number of word rows at the bottom of the stack.
func (j *JointWordDocVectorizer) NWords() (int, error) {
	if !j.fitted {
		return 0, fmt.Errorf("textmap: word count: %w", internalerr.ErrNotFitted)
	}
	return j.vocab.Size(), nil
}

// WordLabels returns the shared word space in row order.
func (j *JointWordDocVectorizer) WordLabels() ([]string, error) {
	if !j.fitted {
		return nil, fmt.Errorf("textmap: word labels: %w", internalerr.ErrNotFitted)
	}
	return j.vocab.Labels(), nil
}

// Stats reports what the contraction loop did during Fit.
func (j *JointWordDocVectorizer) Stats() (mwe.Stats, error) {
	return j.tok.Stats()
}

// uniqueTexts keeps the first occurrence of each distinct document.
func uniqueTexts(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	out := make([]string, 0, len(texts))
	for _, text := range texts {
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	return out
}

// flattenSentences projects the hierarchical structure onto its sentences.
func flattenSentences(docs [][][]string) [][]string {
	var sents [][]string
	for _, doc := range docs {
		sents = append(sents, doc...)
	}
	return sents
}
