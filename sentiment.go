package sentimento

import (
	"log/slog"
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Thresholds for the strong tiers of the lexicon classifier.
const strongTierMatches = 3

// AutoLabeler assigns a 3-way label to raw text.
type AutoLabeler interface {
	LabelAuto(text string) Label
}

// LexiconClassifier labels text by dictionary lookup against a Vocabulary.
type LexiconClassifier struct {
	vocab  Vocabulary
	logger *slog.Logger

	// Match mutates per-call bookkeeping inside the automaton, so calls are
	// serialized per matcher.
	mu       sync.Mutex
	positive *ahocorasick.Matcher
	negative *ahocorasick.Matcher
	neutral  *ahocorasick.Matcher
}

// LexiconOption configures a LexiconClassifier.
type LexiconOption func(*LexiconClassifier)

// WithLexiconLogger sets the logger used for debug output.
func WithLexiconLogger(logger *slog.Logger) LexiconOption {
	return func(lc *LexiconClassifier) {
		lc.logger = logger
	}
}

// NewLexiconClassifier creates a classifier over vocab.
func NewLexiconClassifier(vocab Vocabulary, opts ...LexiconOption) *LexiconClassifier {
	lc := &LexiconClassifier{
		vocab:  vocab,
		logger: slog.Default(),
	}
	for _, applyOpt := range opts {
		applyOpt(lc)
	}

	lc.positive = newMatcher(vocab.Positive)
	lc.negative = newMatcher(vocab.Negative)
	lc.neutral = newMatcher(vocab.Neutral)

	lc.logger.Debug("lexicon classifier initialized",
		slog.Int("positive", vocab.Positive.Len()),
		slog.Int("negative", vocab.Negative.Len()),
		slog.Int("neutral", vocab.Neutral.Len()),
		slog.Int("anger", vocab.Anger.Len()),
		slog.Int("fear", vocab.Fear.Len()))

	return lc
}

// Vocabulary returns the vocabulary the classifier was built with.
func (lc *LexiconClassifier) Vocabulary() Vocabulary {
	return lc.vocab
}

func newMatcher(ws WordSet) *ahocorasick.Matcher {
	if ws.Len() == 0 {
		return nil
	}
	return ahocorasick.NewStringMatcher(ws.Words())
}

// Classify applies the 5-tier decision procedure to text:
//
//	blank            -> Invalid
//	any anger match  -> Raiva
//	any fear match   -> Medo
//	pos >= 3         -> Muito Positivo
//	pos > neg        -> Positivo
//	neg >= 3         -> Muito Negativo
//	neg > pos        -> Negativo
//	otherwise        -> Neutro
func (lc *LexiconClassifier) Classify(text string) Result {
	if IsBlank(text) {
		return withPresentation(Result{Label: Invalid})
	}

	tokens := normalizedTokens(text)

	if matched := matchTokens(tokens, lc.vocab.Anger); len(matched) > 0 {
		return withPresentation(Result{Label: Anger, Valid: true, Matched: matched})
	}
	if matched := matchTokens(tokens, lc.vocab.Fear); len(matched) > 0 {
		return withPresentation(Result{Label: Fear, Valid: true, Matched: matched})
	}

	posMatched := matchTokens(tokens, lc.vocab.Positive)
	negMatched := matchTokens(tokens, lc.vocab.Negative)
	pos, neg := len(posMatched), len(negMatched)

	var label Label
	switch {
	case pos >= strongTierMatches:
		label = VeryPositive
	case pos > neg:
		label = Positive
	case neg >= strongTierMatches:
		label = VeryNegative
	case neg > pos:
		label = Negative
	default:
		label = Neutral
	}

	return withPresentation(Result{
		Label:    label,
		Valid:    true,
		Positive: pos,
		Negative: neg,
		Matched:  append(posMatched, negMatched...),
	})
}

// matchTokens returns every occurrence of a set entry in tokens. Single words
// match whole tokens; multi-word entries match consecutive tokens.
func matchTokens(tokens []string, ws WordSet) []string {
	var matched []string
	for i := range tokens {
		for n := 1; n <= ws.maxTokens && i+n <= len(tokens); n++ {
			candidate := strings.Join(tokens[i:i+n], " ")
			if ws.Has(candidate) {
				matched = append(matched, candidate)
			}
		}
	}
	return matched
}

// LabelAuto applies the 3-way rule used to label training data: any positive
// phrase contained in the normalized text wins, then any negative phrase;
// everything else, including an explicit neutral phrase, is neutro.
func (lc *LexiconClassifier) LabelAuto(text string) Label {
	clean := []byte(Normalize(text))

	lc.mu.Lock()
	defer lc.mu.Unlock()

	switch {
	case containsAny(lc.positive, clean):
		return AutoPositive
	case containsAny(lc.negative, clean):
		return AutoNegative
	case containsAny(lc.neutral, clean):
		return AutoNeutral
	default:
		return AutoNeutral
	}
}

func containsAny(m *ahocorasick.Matcher, text []byte) bool {
	if m == nil {
		return false
	}
	return len(m.Match(text)) > 0
}
