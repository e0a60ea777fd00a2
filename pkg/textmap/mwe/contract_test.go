package mwe

import (
	"reflect"
	"testing"
)

func setOf(pairs ...Bigram) ContractionSet {
	set := make(ContractionSet, len(pairs))
	for i, pair := range pairs {
		set[i] = Candidate{Pair: pair}
	}
	return set
}

func TestSelectInclusiveThreshold(t *testing.T) {
	scores := map[Bigram]float64{
		{Left: "foo", Right: "bar"}: 12.0,
		{Left: "bar", Right: "pok"}: 11.999,
		{Left: "pok", Right: "wer"}: 30.0,
	}

	set := Select(scores, 12.0)

	if len(set) != 2 {
		t.Fatalf("Expected 2 selected pairs, got %d", len(set))
	}
	// A score exactly at the threshold is selected.
	pairs := set.Pairs()
	expected := []Bigram{
		{Left: "pok", Right: "wer"},
		{Left: "foo", Right: "bar"},
	}
	if !reflect.DeepEqual(pairs, expected) {
		t.Errorf("Expected %v, got %v", expected, pairs)
	}
}

func TestSelectEmptyWhenNothingReachesThreshold(t *testing.T) {
	scores := map[Bigram]float64{
		{Left: "foo", Right: "bar"}: 3.2,
	}

	set := Select(scores, 12.0)

	if len(set) != 0 {
		t.Errorf("Expected empty set, got %d pairs", len(set))
	}
}

func TestSelectOrdersByScoreThenPair(t *testing.T) {
	scores := map[Bigram]float64{
		{Left: "qwe", Right: "pok"}: 5.0,
		{Left: "asd", Right: "fgh"}: 5.0,
		{Left: "foo", Right: "bar"}: 9.0,
		{Left: "asd", Right: "bar"}: 5.0,
	}

	set := Select(scores, 1.0)

	expected := []Bigram{
		{Left: "foo", Right: "bar"},
		{Left: "asd", Right: "bar"},
		{Left: "asd", Right: "fgh"},
		{Left: "qwe", Right: "pok"},
	}
	if !reflect.DeepEqual(set.Pairs(), expected) {
		t.Errorf("Expected %v, got %v", expected, set.Pairs())
	}
}

func TestContractorMergesEveryOccurrence(t *testing.T) {
	contractor := NewContractor(setOf(Bigram{Left: "foo", Right: "bar"}), "_")

	result := contractor.Sentence([]string{"foo", "bar", "pok", "foo", "bar"})

	expected := []string{"foo_bar", "pok", "foo_bar"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestContractorLeftmostNonOverlapping(t *testing.T) {
	// Both (a,b) and (b,c) are selected, but the leftmost match consumes
	// "b", so (b,c) cannot apply within the same pass.
	contractor := NewContractor(setOf(
		Bigram{Left: "a", Right: "b"},
		Bigram{Left: "b", Right: "c"},
	), "_")

	result := contractor.Sentence([]string{"a", "b", "c"})

	expected := []string{"a_b", "c"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestContractorRepeatedTokenChain(t *testing.T) {
	// A run of the same token merges pairwise without triple-merging.
	contractor := NewContractor(setOf(Bigram{Left: "pok", Right: "pok"}), "_")

	result := contractor.Sentence([]string{"pok", "pok", "pok"})

	expected := []string{"pok_pok", "pok"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}

	result = contractor.Sentence([]string{"pok", "pok", "pok", "pok"})

	expected = []string{"pok_pok", "pok_pok"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestContractorMergedTokenNotRescanned(t *testing.T) {
	// Merging (a,b) produces "a_b"; the pair (a_b, c) is also selected but
	// must wait for the next pass.
	contractor := NewContractor(setOf(
		Bigram{Left: "a", Right: "b"},
		Bigram{Left: "a_b", Right: "c"},
	), "_")

	result := contractor.Sentence([]string{"a", "b", "c"})

	expected := []string{"a_b", "c"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}

	// The next pass over the rewritten sentence completes the chain.
	result = contractor.Sentence(result)

	expected = []string{"a_b_c"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestContractorDoesNotModifyInput(t *testing.T) {
	contractor := NewContractor(setOf(Bigram{Left: "foo", Right: "bar"}), "_")
	input := []string{"foo", "bar", "pok"}

	contractor.Sentence(input)

	if !reflect.DeepEqual(input, []string{"foo", "bar", "pok"}) {
		t.Errorf("Input should be untouched, got %v", input)
	}
}

func TestContractorEmptySentence(t *testing.T) {
	contractor := NewContractor(setOf(Bigram{Left: "foo", Right: "bar"}), "_")

	result := contractor.Sentence(nil)

	if len(result) != 0 {
		t.Errorf("Expected empty result, got %v", result)
	}
}

func TestContractorCustomSeparator(t *testing.T) {
	contractor := NewContractor(setOf(Bigram{Left: "foo", Right: "bar"}), "+")

	result := contractor.Sentence([]string{"foo", "bar"})

	if !reflect.DeepEqual(result, []string{"foo+bar"}) {
		t.Errorf("Expected [foo+bar], got %v", result)
	}
}

func TestContractorDefaultSeparator(t *testing.T) {
	contractor := NewContractor(setOf(Bigram{Left: "foo", Right: "bar"}), "")

	result := contractor.Sentence([]string{"foo", "bar"})

	if !reflect.DeepEqual(result, []string{"foo_bar"}) {
		t.Errorf("Expected [foo_bar], got %v", result)
	}
}

func TestContractorCorpusPreservesShape(t *testing.T) {
	contractor := NewContractor(setOf(Bigram{Left: "foo", Right: "bar"}), "_")
	docs := [][][]string{
		{{"foo", "bar", "pok"}, {"wer", "foo", "bar"}},
		{},
		{{}, {"foo", "bar"}},
	}

	result := contractor.Corpus(docs)

	if len(result) != len(docs) {
		t.Fatalf("Document count changed: %d vs %d", len(result), len(docs))
	}
	for i := range docs {
		if len(result[i]) != len(docs[i]) {
			t.Errorf("Sentence count changed in doc %d: %d vs %d", i, len(result[i]), len(docs[i]))
		}
		for j := range docs[i] {
			if len(result[i][j]) > len(docs[i][j]) {
				t.Errorf("Token count grew in doc %d sentence %d", i, j)
			}
		}
	}
	if !reflect.DeepEqual(result[0][0], []string{"foo_bar", "pok"}) {
		t.Errorf("Expected [foo_bar pok], got %v", result[0][0])
	}
	if !reflect.DeepEqual(result[2][1], []string{"foo_bar"}) {
		t.Errorf("Expected [foo_bar], got %v", result[2][1])
	}
}
