package sentimento

import (
	"sort"
	"strings"
	"sync"
)

// FeatureSet is a presence-only bag of words: every key maps to true.
type FeatureSet map[string]bool

// Keys returns the feature names in sorted order.
func (fs FeatureSet) Keys() []string {
	keys := make([]string, 0, len(fs))
	for k := range fs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LabeledExample pairs a FeatureSet with the label it was trained on.
type LabeledExample struct {
	Features FeatureSet
	Label    Label
}

// FeatureBuilder turns review text into a FeatureSet.
type FeatureBuilder struct {
	tokenizer Tokenizer
	stopWords *StopWordFilter
}

// FeatureOpt configures a FeatureBuilder.
type FeatureOpt func(*FeatureBuilder)

// UsingFeatureTokenizer replaces the tokenizer.
func UsingFeatureTokenizer(t Tokenizer) FeatureOpt {
	return func(fb *FeatureBuilder) {
		fb.tokenizer = t
	}
}

// UsingStopWords replaces the stop-word filter. A nil filter keeps every word.
func UsingStopWords(f *StopWordFilter) FeatureOpt {
	return func(fb *FeatureBuilder) {
		fb.stopWords = f
	}
}

// KeepingVocabulary exempts the one-word entries of v, and the common
// polarity words, from the Portuguese stop-word list.
func KeepingVocabulary(v Vocabulary) FeatureOpt {
	return func(fb *FeatureBuilder) {
		fb.stopWords = NewStopWordFilter(Portuguese, append(v.singleWords(), sentimentWords...)...)
	}
}

// NewFeatureBuilder creates a builder using punkt segmentation, edge
// punctuation splitting and Portuguese stop-words. Words of the default
// vocabulary are never dropped as stop-words.
func NewFeatureBuilder(opts ...FeatureOpt) *FeatureBuilder {
	fb := &FeatureBuilder{tokenizer: NewIterTokenizer()}
	KeepingVocabulary(DefaultVocabulary())(fb)
	for _, applyOpt := range opts {
		applyOpt(fb)
	}
	return fb
}

// Tokens returns the lowercased content tokens of text, in order, with
// punctuation and stop-words removed.
func (fb *FeatureBuilder) Tokens(text string) []string {
	var words []string
	for _, tok := range fb.tokenizer.Tokenize(strings.ToLower(text)) {
		if isPunctuation(tok.Text) {
			continue
		}
		if fb.stopWords != nil && fb.stopWords.IsStopWord(tok.Text) {
			continue
		}
		words = append(words, tok.Text)
	}
	return words
}

// Build returns the FeatureSet of text. Repeated tokens collapse to one entry.
func (fb *FeatureBuilder) Build(text string) FeatureSet {
	tokens := fb.Tokens(text)
	fs := make(FeatureSet, len(tokens))
	for _, tok := range tokens {
		fs[tok] = true
	}
	return fs
}

var (
	defaultFeatureBuilder     *FeatureBuilder
	defaultFeatureBuilderOnce sync.Once
)

// BuildFeatures builds a FeatureSet with the default FeatureBuilder.
func BuildFeatures(text string) FeatureSet {
	defaultFeatureBuilderOnce.Do(func() {
		defaultFeatureBuilder = NewFeatureBuilder()
	})
	return defaultFeatureBuilder.Build(text)
}
