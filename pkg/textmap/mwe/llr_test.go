package mwe

import (
	"math"
	"reflect"
	"testing"
)

func TestLogLikelihoodPerfectPair(t *testing.T) {
	// Two sentences, each exactly ["foo", "bar"]: cxy=2, cx=cy=2, n=4.
	// Closed form: 2*(2*ln2 + 2*ln2) = 8*ln2.
	score := LogLikelihood(2, 2, 2, 4)

	expected := 8 * math.Log(2)
	if math.Abs(score-expected) > 1e-9 {
		t.Errorf("Expected %f, got %f", expected, score)
	}
}

func TestLogLikelihoodSingleOccurrence(t *testing.T) {
	// One sentence ["a", "b"]: cxy=1, cx=cy=1, n=2.
	// The n11 and n22 cells contribute ln2 each: 2*(ln2 + ln2) = 4*ln2.
	score := LogLikelihood(1, 1, 1, 2)

	expected := 4 * math.Log(2)
	if math.Abs(score-expected) > 1e-9 {
		t.Errorf("Expected %f, got %f", expected, score)
	}
}

func TestLogLikelihoodIndependentPair(t *testing.T) {
	// Co-occurrence at exactly the chance rate scores near zero.
	// cx=cy=10, n=100 gives an expected pair count of 1.
	score := LogLikelihood(1, 10, 10, 100)

	if math.Abs(score) > 0.1 {
		t.Errorf("Independent pair should score near zero, got %f", score)
	}
}

func TestLogLikelihoodStrongerAssociationScoresHigher(t *testing.T) {
	weak := LogLikelihood(2, 10, 10, 100)
	strong := LogLikelihood(8, 10, 10, 100)

	if strong <= weak {
		t.Errorf("Stronger association should score higher: strong=%f weak=%f", strong, weak)
	}
}

func TestLogLikelihoodZeroCases(t *testing.T) {
	if score := LogLikelihood(0, 5, 5, 100); score != 0 {
		t.Errorf("Zero pair count should score 0, got %f", score)
	}
	if score := LogLikelihood(0, 0, 0, 0); score != 0 {
		t.Errorf("Empty corpus should score 0, got %f", score)
	}
	if score := LogLikelihood(1, 1, 1, 0); score != 0 {
		t.Errorf("Zero total should score 0, got %f", score)
	}
}

// Edge case tests

func TestLogLikelihoodDegenerateCellsStayFinite(t *testing.T) {
	cases := []struct {
		name           string
		cxy, cx, cy, n int64
	}{
		{"pair exhausts left marginal", 3, 3, 10, 50},
		{"pair exhausts right marginal", 3, 10, 3, 50},
		{"pair exhausts both marginals", 3, 3, 3, 50},
		{"pair is the whole corpus", 1, 1, 1, 2},
		{"same-token chain drives n22 negative", 2, 3, 3, 3},
	}

	for _, tc := range cases {
		score := LogLikelihood(tc.cxy, tc.cx, tc.cy, tc.n)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			t.Errorf("%s: score should be finite, got %f", tc.name, score)
		}
	}
}

func TestLogLikelihoodLargeCorpus(t *testing.T) {
	score := LogLikelihood(10000, 100000, 100000, 10000000)

	if math.IsNaN(score) || math.IsInf(score, 0) {
		t.Errorf("Large corpus should not overflow, got %f", score)
	}
}

func TestScoreAllCoversEveryObservedPair(t *testing.T) {
	counter := NewCounter()
	counter.AddSentence([]string{"foo", "bar", "pok", "wer"})
	counter.AddSentence([]string{"foo", "bar"})

	scores := counter.ScoreAll()

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scored pairs, got %d", len(scores))
	}
	for pair, score := range scores {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			t.Errorf("Pair %v should have a finite score, got %f", pair, score)
		}
	}
	if _, ok := scores[Bigram{Left: "foo", Right: "bar"}]; !ok {
		t.Error("(foo,bar) should be scored")
	}
	if _, ok := scores[Bigram{Left: "bar", Right: "pok"}]; !ok {
		t.Error("(bar,pok) should be scored")
	}
}

func TestScoreAllDeterministic(t *testing.T) {
	build := func() map[Bigram]float64 {
		counter := NewCounter()
		counter.AddSentence([]string{"foo", "bar", "pok", "wer", "pok", "pok"})
		counter.AddSentence([]string{"qwe", "pok", "asd", "fgh"})
		counter.AddSentence([]string{"foo", "bar", "wer"})
		return counter.ScoreAll()
	}

	first := build()
	second := build()

	if !reflect.DeepEqual(first, second) {
		t.Error("Identical corpora should produce identical scores")
	}
}

func TestScoreAllEmptyCorpus(t *testing.T) {
	counter := NewCounter()

	scores := counter.ScoreAll()

	if len(scores) != 0 {
		t.Errorf("Empty corpus should score no pairs, got %d", len(scores))
	}
}
