package sentimento

import (
	"strings"
	"sync"
	"unicode"

	"github.com/bbalet/stopwords"
)

// Portuguese is the ISO 639-1 code of the review language.
const Portuguese = "pt"

// sentimentWords are listed as Portuguese stop-words by the stopwords library
// but carry polarity in reviews. "não", "mais" and "muito" stay stop-words.
var sentimentWords = []string{"bom", "bem", "mal"}

// StopWordFilter decides whether a token is a stop-word for one language.
type StopWordFilter struct {
	langCode string
	keep     map[string]struct{}

	mu    sync.RWMutex
	cache map[string]bool
}

// NewStopWordFilter creates a filter for the given ISO 639-1 language code.
// Words in keep are never stop-words.
func NewStopWordFilter(langCode string, keep ...string) *StopWordFilter {
	f := &StopWordFilter{
		langCode: langCode,
		keep:     make(map[string]struct{}, len(keep)),
		cache:    make(map[string]bool),
	}
	for _, w := range keep {
		if key := wordKey(w); key != "" {
			f.keep[key] = struct{}{}
		}
	}
	return f
}

// IsStopWord reports whether word is a stop-word. The stopwords library does
// not export its lists, so a word is tested by cleaning it on its own: stop
// words come back empty. Tokens without a letter are never stop-words, since
// the library also strips digits.
func (f *StopWordFilter) IsStopWord(word string) bool {
	if !hasLetter(word) {
		return false
	}
	if _, ok := f.keep[word]; ok {
		return false
	}

	f.mu.RLock()
	stop, ok := f.cache[word]
	f.mu.RUnlock()
	if ok {
		return stop
	}

	stop = strings.TrimSpace(stopwords.CleanString(word, f.langCode, false)) == ""

	f.mu.Lock()
	f.cache[word] = stop
	f.mu.Unlock()
	return stop
}

// Filter returns words without the stop-words, keeping order.
func (f *StopWordFilter) Filter(words []string) []string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !f.IsStopWord(w) {
			kept = append(kept, w)
		}
	}
	return kept
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
