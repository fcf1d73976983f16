package sentimento

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// Tokenizer splits text into word and punctuation tokens.
type Tokenizer interface {
	Tokenize(string) []*Token
}

// iterTokenizer splits a sentence into words by peeling punctuation off the
// edges of whitespace-separated spans.
type iterTokenizer struct {
	sanitizer *strings.Replacer
	suffixes  []string
	prefixes  []string
	segmenter Segmenter
}

// Segmenter splits text into sentences. The punkt tokenizers of
// gopkg.in/neurosnap/sentences.v1 satisfy it.
type Segmenter interface {
	Tokenize(text string) []*sentences.Sentence
}

// TokenizerOptFunc configures an iterTokenizer.
type TokenizerOptFunc func(*iterTokenizer)

// UsingSanitizer gives the replacer applied before splitting.
func UsingSanitizer(x *strings.Replacer) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.sanitizer = x
	}
}

// UsingSuffixes gives the characters split off the end of a span.
func UsingSuffixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.suffixes = x
	}
}

// UsingPrefixes gives the characters split off the start of a span.
func UsingPrefixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.prefixes = x
	}
}

// UsingSegmenter gives the sentence segmenter run before word splitting. A
// nil segmenter treats the whole input as one sentence.
func UsingSegmenter(x Segmenter) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.segmenter = x
	}
}

// NewIterTokenizer creates the default tokenizer: punkt sentence segmentation
// followed by edge-punctuation splitting.
func NewIterTokenizer(opts ...TokenizerOptFunc) *iterTokenizer {
	tok := new(iterTokenizer)

	tok.prefixes = prefixes
	tok.sanitizer = sanitizer
	tok.suffixes = suffixes
	if segmenter, err := english.NewSentenceTokenizer(nil); err == nil {
		tok.segmenter = segmenter
	}

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	return tok
}

// Segment splits text into sentences.
func (t *iterTokenizer) Segment(text string) []Sentence {
	if t.segmenter == nil {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []Sentence{{Text: text, Start: 0, End: len(text)}}
	}

	var out []Sentence
	for _, s := range t.segmenter.Tokenize(text) {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		out = append(out, Sentence{Text: s.Text, Start: s.Start, End: s.End})
	}
	return out
}

// Tokenize splits text into a slice of tokens. Offsets refer to the
// sanitized text.
func (t *iterTokenizer) Tokenize(text string) []*Token {
	var tokens []*Token
	for _, sent := range t.Segment(text) {
		tokens = append(tokens, t.tokenizeSentence(sent.Text, sent.Start)...)
	}
	return tokens
}

func (t *iterTokenizer) tokenizeSentence(text string, base int) []*Token {
	var tokens []*Token

	clean := t.sanitizer.Replace(text)
	start := -1
	for index, r := range clean {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, t.doSplit(clean[start:index], base+start)...)
				start = -1
			}
			continue
		}
		if start < 0 {
			start = index
		}
	}
	if start >= 0 {
		tokens = append(tokens, t.doSplit(clean[start:], base+start)...)
	}

	return tokens
}

func (t *iterTokenizer) doSplit(token string, offset int) []*Token {
	tokens := []*Token{}
	suffs := []*Token{}

	last := 0
	for token != "" && utf8.RuneCountInString(token) != last {
		last = utf8.RuneCountInString(token)
		if p := hasAnyPrefix(token, t.prefixes); p != "" {
			// Remove prefixes -- e.g., (ótimo -> [(, ótimo].
			tokens = append(tokens, &Token{Text: p, Start: offset, End: offset + len(p)})
			token = token[len(p):]
			offset += len(p)
		} else if s := hasAnySuffix(token, t.suffixes); s != "" {
			// Remove suffixes -- e.g., adorei! -> [adorei, !].
			end := offset + len(token)
			suffs = append([]*Token{{Text: s, Start: end - len(s), End: end}}, suffs...)
			token = token[:len(token)-len(s)]
		} else if i := infixIndex(token); i >= 0 {
			// Split inner separators -- e.g., ok,ok -> [ok, ",", ok] but 1,5 stays.
			tokens = append(tokens, t.doSplit(token[:i], offset)...)
			tokens = append(tokens, &Token{Text: token[i : i+1], Start: offset + i, End: offset + i + 1})
			tokens = append(tokens, t.doSplit(token[i+1:], offset+i+1)...)
			break
		} else {
			tokens = append(tokens, &Token{Text: token, Start: offset, End: offset + len(token)})
			break
		}
	}

	return append(tokens, suffs...)
}

// infixIndex returns the byte index of the first ',' or ':' followed by a
// non-digit, or -1.
func infixIndex(s string) int {
	for i := 0; i < len(s)-1; i++ {
		if (s[i] == ',' || s[i] == ':') && !unicode.IsDigit(rune(s[i+1])) {
			return i
		}
	}
	return -1
}

func hasAnyPrefix(s string, prefixes []string) string {
	for _, p := range prefixes {
		if len(s) > len(p) && strings.HasPrefix(s, p) {
			return p
		}
	}
	return ""
}

func hasAnySuffix(s string, suffixes []string) string {
	for _, suf := range suffixes {
		if len(s) > len(suf) && strings.HasSuffix(s, suf) {
			return suf
		}
	}
	return ""
}

// isPunctuation reports whether a token consists only of punctuation or
// symbol runes.
func isPunctuation(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"«", `"`,
	"»", `"`,
	"…", "...",
	"&rsquo;", "'")
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'", "}"}
var prefixes = []string{"$", "(", `"`, "[", "¿", "¡", "'", "{"}
