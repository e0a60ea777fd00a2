package tokenize

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/jdkato/prose/v2"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"

	"github.com/cjweir/TextMAP/pkg/textmap/internalerr"
)

// Segmenter splits raw text into sentences and sentences into word tokens.
// Implementations must treat blank input as zero segments, never an error.
type Segmenter interface {
	SplitSentences(text string) ([]string, error)
	SplitWords(sentence string) ([]string, error)
}

// Segmentation strategy names accepted by NewSegmenter.
const (
	// StrategyProse uses the prose toolkit for both sentence and word
	// segmentation.
	StrategyProse = "prose"
	// StrategyPattern uses Punkt sentence segmentation and takes words
	// as lower-cased runs of letters, digits and underscores of length
	// at least two.
	StrategyPattern = "pattern"
	// StrategyWhitespace uses Punkt sentence segmentation and splits
	// words on Unicode whitespace.
	StrategyWhitespace = "whitespace"
)

// NewSegmenter returns the named segmentation strategy.
func NewSegmenter(name string) (Segmenter, error) {
	switch name {
	case StrategyProse:
		return proseSegmenter{}, nil
	case StrategyPattern:
		return patternSegmenter{}, nil
	case StrategyWhitespace:
		return whitespaceSegmenter{}, nil
	}
	return nil, fmt.Errorf("tokenize: segmenter %q: %w", name, internalerr.ErrUnknownStrategy)
}

// proseSegmenter backs both capabilities with the prose toolkit.
type proseSegmenter struct{}

func (proseSegmenter) SplitSentences(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tokenize: prose sentence split: %w", err)
	}
	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, sent := range sents {
		if text := strings.TrimSpace(sent.Text); text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}

func (proseSegmenter) SplitWords(sentence string) ([]string, error) {
	if strings.TrimSpace(sentence) == "" {
		return []string{}, nil
	}
	doc, err := prose.NewDocument(sentence,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tokenize: prose word split: %w", err)
	}
	toks := doc.Tokens()
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Text)
	}
	return out, nil
}

// Punkt sentence model shared by the pattern and whitespace strategies.
// Built once on first use; construction loads the embedded English
// training data and is safe to repeat but wasteful.
var (
	punktOnce sync.Once
	punktTok  *sentences.DefaultSentenceTokenizer
	punktErr  error
)

func punktSentences(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	punktOnce.Do(func() {
		punktTok, punktErr = english.NewSentenceTokenizer(nil)
	})
	if punktErr != nil {
		return nil, fmt.Errorf("tokenize: punkt init: %w", punktErr)
	}
	sents := punktTok.Tokenize(text)
	out := make([]string, 0, len(sents))
	for _, sent := range sents {
		if text := strings.TrimSpace(sent.Text); text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}

// patternSegmenter mirrors the classic count-vectorizer analyzer: words
// are lower-cased maximal runs of letters, digits and underscores, and
// single-rune tokens are dropped.
type patternSegmenter struct{}

func (patternSegmenter) SplitSentences(text string) ([]string, error) {
	return punktSentences(text)
}

func (patternSegmenter) SplitWords(sentence string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	runes := 0

	flush := func() {
		if runes >= 2 {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		runes = 0
	}

	for _, r := range sentence {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(unicode.ToLower(r))
			runes++
		} else {
			flush()
		}
	}
	flush()

	if tokens == nil {
		return []string{}, nil
	}
	return tokens, nil
}

// whitespaceSegmenter splits words on Unicode whitespace, keeping
// punctuation attached. Mostly useful for pre-cleaned corpora and tests.
type whitespaceSegmenter struct{}

func (whitespaceSegmenter) SplitSentences(text string) ([]string, error) {
	return punktSentences(text)
}

func (whitespaceSegmenter) SplitWords(sentence string) ([]string, error) {
	return strings.Fields(sentence), nil
}
