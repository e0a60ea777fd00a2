package vectorize

import (
	"fmt"
	"strings"

	"github.com/james-bowman/sparse"

	"github.com/cjweir/TextMAP/pkg/textmap/internalerr"
)

// Word vectorizer modes.
const (
	// ModeFlat counts directional co-occurrence in two blocks per context
	// word: before and after, within the window radius.
	ModeFlat = "flat"
	// ModeFlat15 concatenates a radius-1 and a radius-WindowRadius pair of
	// blocks, separating immediate neighbours from wider context.
	ModeFlat15 = "flat_1_5"

	// DefaultWindowRadius is the context distance used when none is set.
	DefaultWindowRadius = 5
)

// WordOptions configures a WordVectorizer.
type WordOptions struct {
	// Mode selects the block layout (flat, flat_1_5). Empty means flat.
	Mode string
	// WindowRadius bounds the in-sentence context distance. Zero means
	// DefaultWindowRadius.
	WindowRadius int
	// Normalize applies L1 row normalization.
	Normalize bool
	// DedupeSentences drops exact duplicate sentences before counting, so
	// repeated boilerplate does not dominate the context statistics.
	DedupeSentences bool
	// Vocabulary pins both the row words and the context words, in the
	// given order. Empty means sorted corpus vocabulary.
	Vocabulary []string
}

// WordVectorizer builds a words-by-context count matrix from tokenized
// sentences. Rows are vocabulary words; columns are directional context
// blocks (each context word appears once per direction per radius).
type WordVectorizer struct {
	opts   WordOptions
	fixed  *Vocabulary
	vocab  *Vocabulary
	rep    *sparse.CSR
	fitted bool
}

// NewWordVectorizer validates opts and builds the vectorizer.
func NewWordVectorizer(opts WordOptions) (*WordVectorizer, error) {
	if opts.Mode == "" {
		opts.Mode = ModeFlat
	}
	if opts.Mode != ModeFlat && opts.Mode != ModeFlat15 {
		return nil, fmt.Errorf("vectorize: word mode %q: %w", opts.Mode, internalerr.ErrInvalidConfig)
	}
	if opts.WindowRadius == 0 {
		opts.WindowRadius = DefaultWindowRadius
	}
	if opts.WindowRadius < 1 {
		return nil, fmt.Errorf("vectorize: window radius %d: %w", opts.WindowRadius, internalerr.ErrInvalidConfig)
	}
	w := &WordVectorizer{opts: opts}
	if len(opts.Vocabulary) > 0 {
		vocab, err := NewVocabulary(opts.Vocabulary)
		if err != nil {
			return nil, err
		}
		w.fixed = vocab
	}
	return w, nil
}

// Fit derives the vocabulary from sents (or uses the pinned one) and counts
// the context matrix.
func (w *WordVectorizer) Fit(sents [][]string) error {
	if w.fixed != nil {
		w.vocab = w.fixed
	} else {
		w.vocab = VocabularyFromGroups(sents)
	}
	w.rep = w.count(sents)
	w.fitted = true
	return nil
}

// Transform counts new sentences in the fitted vocabulary and block layout.
func (w *WordVectorizer) Transform(sents [][]string) (*sparse.CSR, error) {
	if !w.fitted {
		return nil, fmt.Errorf("vectorize: word transform: %w", internalerr.ErrNotFitted)
	}
	return w.count(sents), nil
}

// FitTransform fits on sents and returns the representation.
func (w *WordVectorizer) FitTransform(sents [][]string) (*sparse.CSR, error) {
	if err := w.Fit(sents); err != nil {
		return nil, err
	}
	return w.rep, nil
}

// Representation returns the matrix counted during Fit.
func (w *WordVectorizer) Representation() (*sparse.CSR, error) {
	if !w.fitted {
		return nil, fmt.Errorf("vectorize: word representation: %w", internalerr.ErrNotFitted)
	}
	return w.rep, nil
}

// RowLabels returns the vocabulary words in row order.
func (w *WordVectorizer) RowLabels() ([]string, error) {
	if !w.fitted {
		return nil, fmt.Errorf("vectorize: word row labels: %w", internalerr.ErrNotFitted)
	}
	return w.vocab.Labels(), nil
}

// ColumnLabels returns one label per context column, block by block:
// <word>_before_<radius> and <word>_after_<radius>.
func (w *WordVectorizer) ColumnLabels() ([]string, error) {
	if !w.fitted {
		return nil, fmt.Errorf("vectorize: word column labels: %w", internalerr.ErrNotFitted)
	}
	words := w.vocab.Labels()
	labels := make([]string, 0, 2*len(w.radii())*len(words))
	for _, radius := range w.radii() {
		for _, dir := range []string{"before", "after"} {
			for _, word := range words {
				labels = append(labels, fmt.Sprintf("%s_%s_%d", word, dir, radius))
			}
		}
	}
	return labels, nil
}

// Vocabulary returns the fitted row space.
func (w *WordVectorizer) Vocabulary() (*Vocabulary, error) {
	if !w.fitted {
		return nil, fmt.Errorf("vectorize: word vocabulary: %w", internalerr.ErrNotFitted)
	}
	return w.vocab, nil
}

// radii returns the window radii in block order.
func (w *WordVectorizer) radii() []int {
	if w.opts.Mode == ModeFlat15 {
		return []int{1, w.opts.WindowRadius}
	}
	return []int{w.opts.WindowRadius}
}

// count builds the words-by-context matrix for the current vocabulary.
// Column layout: for each radius, a before block then an after block, each
// one vocabulary wide.
func (w *WordVectorizer) count(sents [][]string) *sparse.CSR {
	size := w.vocab.Size()
	radii := w.radii()
	out := newBuilder(size, 2*len(radii)*size)

	if w.opts.DedupeSentences {
		sents = dedupeSentences(sents)
	}

	for _, sent := range sents {
		for ri, radius := range radii {
			beforeBlock := (2 * ri) * size
			afterBlock := (2*ri + 1) * size
			for i := 0; i < len(sent); i++ {
				left, ok := w.vocab.Index(sent[i])
				if !ok {
					continue
				}
				for j := i + 1; j <= i+radius && j < len(sent); j++ {
					right, ok := w.vocab.Index(sent[j])
					if !ok {
						continue
					}
					// sent[j] sees sent[i] before it; sent[i] sees
					// sent[j] after it.
					out.add(right, beforeBlock+left, 1)
					out.add(left, afterBlock+right, 1)
				}
			}
		}
	}

	matrix := out.build()
	if w.opts.Normalize {
		return NormalizeRowsL1(matrix)
	}
	return matrix
}

// dedupeSentences keeps the first occurrence of each exact token sequence.
func dedupeSentences(sents [][]string) [][]string {
	seen := make(map[string]struct{}, len(sents))
	out := make([][]string, 0, len(sents))
	for _, sent := range sents {
		key := strings.Join(sent, "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, sent)
	}
	return out
}

// WordCooccurrence builds the symmetric words-by-words co-occurrence matrix
// over sents: both cells of each within-radius pair are incremented, so the
// result equals its transpose. A non-positive radius means
// DefaultWindowRadius.
func WordCooccurrence(sents [][]string, vocab *Vocabulary, radius int) *sparse.CSR {
	if radius < 1 {
		radius = DefaultWindowRadius
	}
	size := vocab.Size()
	out := newBuilder(size, size)
	for _, sent := range sents {
		for i := 0; i < len(sent); i++ {
			a, ok := vocab.Index(sent[i])
			if !ok {
				continue
			}
			for j := i + 1; j <= i+radius && j < len(sent); j++ {
				b, ok := vocab.Index(sent[j])
				if !ok {
					continue
				}
				out.add(a, b, 1)
				out.add(b, a, 1)
			}
		}
	}
	return out.build()
}
