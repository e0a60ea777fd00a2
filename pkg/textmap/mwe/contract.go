package mwe

import "sort"

// DefaultSeparator joins the two halves of a contracted bigram. A literal
// separator inside ordinary tokens is indistinguishable from merged output;
// callers that tokenize underscore-bearing text should pick another one.
const DefaultSeparator = "_"

// Candidate is a bigram that met the selection threshold, with its score.
type Candidate struct {
	Pair  Bigram  `json:"pair"`
	Score float64 `json:"score"`
}

// ContractionSet holds the bigrams selected for one contraction pass,
// ordered by descending score, ties by pair.
type ContractionSet []Candidate

// Pairs returns the selected bigrams in set order.
func (s ContractionSet) Pairs() []Bigram {
	pairs := make([]Bigram, len(s))
	for i, cand := range s {
		pairs[i] = cand.Pair
	}
	return pairs
}

// Select filters scored bigrams to those whose score reaches minScore.
// The comparison is inclusive: a score exactly at the threshold selects.
// An empty result signals convergence to the contraction loop.
func Select(scores map[Bigram]float64, minScore float64) ContractionSet {
	var set ContractionSet
	for pair, score := range scores {
		if score >= minScore {
			set = append(set, Candidate{Pair: pair, Score: score})
		}
	}
	sort.Slice(set, func(i, j int) bool {
		if set[i].Score != set[j].Score {
			return set[i].Score > set[j].Score
		}
		if set[i].Pair.Left != set[j].Pair.Left {
			return set[i].Pair.Left < set[j].Pair.Left
		}
		return set[i].Pair.Right < set[j].Pair.Right
	})
	return set
}

// Contractor rewrites token sequences by merging selected adjacent bigrams
// into single joined tokens.
type Contractor struct {
	pairs     map[Bigram]struct{}
	separator string
}

// NewContractor creates a contractor for the given set. An empty separator
// falls back to DefaultSeparator.
func NewContractor(set ContractionSet, separator string) *Contractor {
	if separator == "" {
		separator = DefaultSeparator
	}
	pairs := make(map[Bigram]struct{}, len(set))
	for _, cand := range set {
		pairs[cand.Pair] = struct{}{}
	}
	return &Contractor{pairs: pairs, separator: separator}
}

// Sentence merges every selected adjacent pair in one token sequence.
// The scan runs left to right and advances past each merged pair, so a
// freshly merged token is never reconsidered within the same pass. The
// result is a new slice; the input is not modified.
func (c *Contractor) Sentence(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		if i+1 < len(tokens) {
			if _, ok := c.pairs[Bigram{Left: tokens[i], Right: tokens[i+1]}]; ok {
				result = append(result, tokens[i]+c.separator+tokens[i+1])
				i += 2
				continue
			}
		}
		result = append(result, tokens[i])
		i++
	}
	return result
}

// Document applies Sentence to every sentence of one document.
func (c *Contractor) Document(sentences [][]string) [][]string {
	result := make([][]string, len(sentences))
	for i, sent := range sentences {
		result[i] = c.Sentence(sent)
	}
	return result
}

// Corpus applies Document to every document, preserving document and
// sentence counts exactly.
func (c *Contractor) Corpus(docs [][][]string) [][][]string {
	result := make([][][]string, len(docs))
	for i, doc := range docs {
		result[i] = c.Document(doc)
	}
	return result
}
