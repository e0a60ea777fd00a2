package mwe

import "sync"

// Bigram is an ordered pair of tokens observed adjacent within a sentence.
type Bigram struct {
	Left  string
	Right string
}

// Counter maintains corpus-wide occurrence counts for bigram scoring.
// Marginals count every token occurrence; pair counts cover adjacent
// within-sentence positions only, so pairs never span sentence or
// document boundaries.
type Counter struct {
	total int64            // total token occurrences (N)
	words map[string]int64 // occurrence count per token
	pairs map[Bigram]int64 // adjacency count per ordered pair
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		words: make(map[string]int64),
		pairs: make(map[Bigram]int64),
	}
}

// AddSentence updates counts with one sentence's token sequence.
func (c *Counter) AddSentence(tokens []string) {
	for i, tok := range tokens {
		c.total++
		c.words[tok]++
		if i+1 < len(tokens) {
			c.pairs[Bigram{Left: tok, Right: tokens[i+1]}]++
		}
	}
}

// AddDocument updates counts with every sentence of one document.
func (c *Counter) AddDocument(sentences [][]string) {
	for _, sent := range sentences {
		c.AddSentence(sent)
	}
}

// Merge folds another counter's tallies into this one.
func (c *Counter) Merge(other *Counter) {
	c.total += other.total
	for tok, n := range other.words {
		c.words[tok] += n
	}
	for pair, n := range other.pairs {
		c.pairs[pair] += n
	}
}

// WordCount returns the corpus-wide occurrence count for a token.
func (c *Counter) WordCount(token string) int64 {
	return c.words[token]
}

// PairCount returns the adjacency count for an ordered pair.
func (c *Counter) PairCount(left, right string) int64 {
	return c.pairs[Bigram{Left: left, Right: right}]
}

// TotalTokens returns the total number of token occurrences.
func (c *Counter) TotalTokens() int64 {
	return c.total
}

// UniqueWords returns the number of distinct tokens.
func (c *Counter) UniqueWords() int {
	return len(c.words)
}

// UniquePairs returns the number of distinct adjacent pairs.
func (c *Counter) UniquePairs() int {
	return len(c.pairs)
}

// CountCorpus tallies a whole corpus of tokenized documents. When workers
// is greater than one, documents are sharded across that many goroutines
// and the per-shard counters merged by summation, which leaves the result
// identical to a sequential count.
func CountCorpus(docs [][][]string, workers int) *Counter {
	if workers <= 1 || len(docs) < 2 {
		counter := NewCounter()
		for _, doc := range docs {
			counter.AddDocument(doc)
		}
		return counter
	}

	if workers > len(docs) {
		workers = len(docs)
	}

	shards := make([]*Counter, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		shards[w] = NewCounter()
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(docs); i += workers {
				shards[w].AddDocument(docs[i])
			}
		}(w)
	}
	wg.Wait()

	counter := shards[0]
	for _, shard := range shards[1:] {
		counter.Merge(shard)
	}
	return counter
}
