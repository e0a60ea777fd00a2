package vectorize

import (
	"fmt"
	"sort"

	"github.com/cjweir/TextMAP/pkg/textmap/internalerr"
)

// Vocabulary is an ordered set of feature labels with reverse lookup.
// Construction fixes the label-to-column assignment for the lifetime of
// the vocabulary.
type Vocabulary struct {
	labels []string
	index  map[string]int
}

// NewVocabulary builds a vocabulary in the caller's label order, as when a
// user pins the feature space up front. Duplicate labels are rejected.
func NewVocabulary(labels []string) (*Vocabulary, error) {
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		if _, ok := index[label]; ok {
			return nil, fmt.Errorf("vectorize: duplicate vocabulary label %q: %w", label, internalerr.ErrInvalidInput)
		}
		index[label] = i
	}
	return &Vocabulary{labels: append([]string(nil), labels...), index: index}, nil
}

// VocabularyFromGroups collects every distinct token across the groups and
// orders them lexicographically. Group boundaries do not matter; only token
// identity does.
func VocabularyFromGroups(groups [][]string) *Vocabulary {
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, tok := range group {
			seen[tok] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for tok := range seen {
		labels = append(labels, tok)
	}
	sort.Strings(labels)

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	return &Vocabulary{labels: labels, index: index}
}

// Size returns the number of labels.
func (v *Vocabulary) Size() int { return len(v.labels) }

// Labels returns a copy of the labels in column order.
func (v *Vocabulary) Labels() []string {
	return append([]string(nil), v.labels...)
}

// Index returns the column of a label and whether it is present.
func (v *Vocabulary) Index(label string) (int, bool) {
	i, ok := v.index[label]
	return i, ok
}
