package sentimento

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// WordSet is an immutable, case-insensitive set of words or phrases.
type WordSet struct {
	words map[string]struct{}
	// longest entry measured in whitespace-separated tokens
	maxTokens int
}

// NewWordSet builds a WordSet. Entries are lowercased, NFC-composed and
// trimmed; blank entries are dropped.
func NewWordSet(words ...string) WordSet {
	ws := WordSet{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		key := wordKey(w)
		if key == "" {
			continue
		}
		ws.words[key] = struct{}{}
		if n := len(strings.Fields(key)); n > ws.maxTokens {
			ws.maxTokens = n
		}
	}
	return ws
}

func wordKey(w string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFC.String(w))), " ")
}

// Has reports whether word is a member of the set.
func (ws WordSet) Has(word string) bool {
	_, ok := ws.words[wordKey(word)]
	return ok
}

// Len returns the number of entries.
func (ws WordSet) Len() int {
	return len(ws.words)
}

// Words returns the entries in sorted order.
func (ws WordSet) Words() []string {
	out := make([]string, 0, len(ws.words))
	for w := range ws.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set holding the entries of both sets.
func (ws WordSet) Union(other WordSet) WordSet {
	return NewWordSet(append(ws.Words(), other.Words()...)...)
}

// Vocabulary holds the named word sets consulted by the classifiers. Sets need
// not be disjoint; the classifiers' priority order resolves overlap.
type Vocabulary struct {
	Positive WordSet
	Negative WordSet
	Neutral  WordSet
	Anger    WordSet
	Fear     WordSet
}

// singleWords returns the one-word entries of every set. Words that only
// appear inside phrases are not included.
func (v Vocabulary) singleWords() []string {
	var out []string
	for _, ws := range []WordSet{v.Positive, v.Negative, v.Neutral, v.Anger, v.Fear} {
		for _, w := range ws.Words() {
			if !strings.Contains(w, " ") {
				out = append(out, w)
			}
		}
	}
	return out
}

// DefaultVocabulary returns the built-in Portuguese vocabulary for product
// reviews.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Positive: NewWordSet(
			"ótimo", "excelente", "adorei", "bom", "maravilhoso", "superou",
			"perfeito", "gostei", "satisfatória", "qualidade", "resolução", "bonita",
		),
		Negative: NewWordSet(
			"ruim", "horrível", "péssimo", "não gostei", "esperava mais",
			"lento", "defeito", "problema",
		),
		Neutral: NewWordSet(
			"regular", "ok", "aceitável", "mediano", "normal", "cumpre",
		),
		Anger: NewWordSet(
			"ódio", "odeio", "odiei", "raiva", "furioso", "furiosa", "irritado",
			"irritada", "revoltado", "revoltante", "absurdo", "palhaçada",
		),
		Fear: NewWordSet(
			"medo", "receio", "assustador", "assustado", "assustada", "perigoso",
			"perigosa", "explodiu", "inseguro", "insegura", "preocupado", "preocupada",
		),
	}
}

// ExternalVocabulary is the YAML (or JSON) layout of a vocabulary file.
type ExternalVocabulary struct {
	Replace  bool     `yaml:"replace" json:"replace"`
	Positive []string `yaml:"positive" json:"positive"`
	Negative []string `yaml:"negative" json:"negative"`
	Neutral  []string `yaml:"neutral" json:"neutral"`
	Anger    []string `yaml:"anger" json:"anger"`
	Fear     []string `yaml:"fear" json:"fear"`
}

// LoadVocabulary reads a vocabulary file and merges it into base. When the
// file sets replace: true, the listed sets replace the base sets instead of
// extending them; sets the file leaves empty are kept from base.
func LoadVocabulary(path string, base Vocabulary) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("error reading vocabulary file: %w", err)
	}

	var external ExternalVocabulary
	if err := yaml.Unmarshal(data, &external); err != nil {
		return base, fmt.Errorf("error parsing vocabulary file %s: %w", path, err)
	}

	return MergeVocabulary(base, external), nil
}

// MergeVocabulary merges external word lists into base.
func MergeVocabulary(base Vocabulary, external ExternalVocabulary) Vocabulary {
	merge := func(current WordSet, words []string) WordSet {
		if len(words) == 0 {
			return current
		}
		if external.Replace {
			return NewWordSet(words...)
		}
		return current.Union(NewWordSet(words...))
	}

	return Vocabulary{
		Positive: merge(base.Positive, external.Positive),
		Negative: merge(base.Negative, external.Negative),
		Neutral:  merge(base.Neutral, external.Neutral),
		Anger:    merge(base.Anger, external.Anger),
		Fear:     merge(base.Fear, external.Fear),
	}
}
