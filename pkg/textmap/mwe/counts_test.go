package mwe

import (
	"reflect"
	"testing"
)

func TestCounterBasic(t *testing.T) {
	counter := NewCounter()

	counter.AddSentence([]string{"foo", "bar", "foo"})

	if counter.TotalTokens() != 3 {
		t.Errorf("Expected 3 total tokens, got %d", counter.TotalTokens())
	}
	if counter.WordCount("foo") != 2 {
		t.Errorf("Expected foo count 2, got %d", counter.WordCount("foo"))
	}
	if counter.WordCount("bar") != 1 {
		t.Errorf("Expected bar count 1, got %d", counter.WordCount("bar"))
	}
	if counter.PairCount("foo", "bar") != 1 {
		t.Errorf("Expected (foo,bar) count 1, got %d", counter.PairCount("foo", "bar"))
	}
	if counter.PairCount("bar", "foo") != 1 {
		t.Errorf("Expected (bar,foo) count 1, got %d", counter.PairCount("bar", "foo"))
	}
}

func TestCounterPairsAreDirectional(t *testing.T) {
	counter := NewCounter()

	counter.AddSentence([]string{"a", "b"})
	counter.AddSentence([]string{"a", "b"})
	counter.AddSentence([]string{"b", "a"})

	if counter.PairCount("a", "b") != 2 {
		t.Errorf("Expected (a,b) count 2, got %d", counter.PairCount("a", "b"))
	}
	if counter.PairCount("b", "a") != 1 {
		t.Errorf("Expected (b,a) count 1, got %d", counter.PairCount("b", "a"))
	}
}

func TestCounterPairsStopAtSentenceBoundary(t *testing.T) {
	counter := NewCounter()

	// "bar" ends the first sentence and "pok" starts the second; the pair
	// must not be counted across the boundary.
	counter.AddDocument([][]string{
		{"foo", "bar"},
		{"pok", "wer"},
	})

	if counter.PairCount("bar", "pok") != 0 {
		t.Errorf("Pair across sentence boundary should not count, got %d", counter.PairCount("bar", "pok"))
	}
	if counter.TotalTokens() != 4 {
		t.Errorf("Expected 4 total tokens, got %d", counter.TotalTokens())
	}
	if counter.UniquePairs() != 2 {
		t.Errorf("Expected 2 unique pairs, got %d", counter.UniquePairs())
	}
}

func TestCounterEmptySentences(t *testing.T) {
	counter := NewCounter()

	counter.AddSentence(nil)
	counter.AddSentence([]string{})
	counter.AddDocument([][]string{})
	counter.AddDocument([][]string{{}, {}})

	if counter.TotalTokens() != 0 {
		t.Errorf("Empty input should leave zero tokens, got %d", counter.TotalTokens())
	}
	if counter.UniqueWords() != 0 {
		t.Errorf("Empty input should leave zero words, got %d", counter.UniqueWords())
	}
	if counter.UniquePairs() != 0 {
		t.Errorf("Empty input should leave zero pairs, got %d", counter.UniquePairs())
	}
}

func TestCounterSingleTokenSentence(t *testing.T) {
	counter := NewCounter()

	counter.AddSentence([]string{"solo"})

	if counter.TotalTokens() != 1 {
		t.Errorf("Expected 1 token, got %d", counter.TotalTokens())
	}
	if counter.UniquePairs() != 0 {
		t.Errorf("Single-token sentence should produce no pairs, got %d", counter.UniquePairs())
	}
}

func TestCounterMerge(t *testing.T) {
	a := NewCounter()
	a.AddSentence([]string{"foo", "bar"})

	b := NewCounter()
	b.AddSentence([]string{"foo", "bar", "foo"})

	a.Merge(b)

	if a.TotalTokens() != 5 {
		t.Errorf("Expected 5 total tokens after merge, got %d", a.TotalTokens())
	}
	if a.WordCount("foo") != 3 {
		t.Errorf("Expected foo count 3 after merge, got %d", a.WordCount("foo"))
	}
	if a.PairCount("foo", "bar") != 2 {
		t.Errorf("Expected (foo,bar) count 2 after merge, got %d", a.PairCount("foo", "bar"))
	}
}

func TestCountCorpusSequential(t *testing.T) {
	docs := [][][]string{
		{{"foo", "bar", "pok"}},
		{},
		{{"bar", "foo"}, {"pok"}},
	}

	counter := CountCorpus(docs, 0)

	if counter.TotalTokens() != 6 {
		t.Errorf("Expected 6 total tokens, got %d", counter.TotalTokens())
	}
	if counter.WordCount("pok") != 2 {
		t.Errorf("Expected pok count 2, got %d", counter.WordCount("pok"))
	}
	if counter.PairCount("foo", "bar") != 1 {
		t.Errorf("Expected (foo,bar) count 1, got %d", counter.PairCount("foo", "bar"))
	}
}

func TestCountCorpusShardedMatchesSequential(t *testing.T) {
	docs := [][][]string{
		{{"foo", "bar", "pok", "wer"}, {"pok", "pok"}},
		{{"foo", "bar"}},
		{},
		{{"wer", "qwe", "pok"}, {"foo"}},
		{{"bar", "foo", "bar"}},
	}

	sequential := CountCorpus(docs, 1)
	sharded := CountCorpus(docs, 3)

	if !reflect.DeepEqual(sequential.ScoreAll(), sharded.ScoreAll()) {
		t.Error("Sharded counting should produce identical scores to sequential")
	}
	if sequential.TotalTokens() != sharded.TotalTokens() {
		t.Errorf("Total tokens differ: %d vs %d", sequential.TotalTokens(), sharded.TotalTokens())
	}
	if sequential.UniquePairs() != sharded.UniquePairs() {
		t.Errorf("Unique pairs differ: %d vs %d", sequential.UniquePairs(), sharded.UniquePairs())
	}
}

func TestCountCorpusMoreWorkersThanDocs(t *testing.T) {
	docs := [][][]string{
		{{"foo", "bar"}},
		{{"bar", "foo"}},
	}

	counter := CountCorpus(docs, 16)

	if counter.TotalTokens() != 4 {
		t.Errorf("Expected 4 total tokens, got %d", counter.TotalTokens())
	}
}
