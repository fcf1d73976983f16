package sentimento

// A Token represents an individual token of text such as a word or punctuation
// symbol.
type Token struct {
	Text  string // The token's actual content.
	Start int    // Start position in the sentence it came from
	End   int    // End position in the sentence it came from
}

// A Sentence represents a segmented portion of text.
type Sentence struct {
	Text  string // The sentence's text.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// Label is a sentiment category. The 3-way labels and the 5-tier labels are
// separate label spaces and are never mixed in one result set.
type Label string

// 3-way labels produced by the auto-labeler and learned by the trained model.
const (
	AutoPositive Label = "positivo"
	AutoNegative Label = "negativo"
	AutoNeutral  Label = "neutro"
)

// 5-tier labels produced by the lexicon classifier.
const (
	VeryPositive Label = "Muito Positivo"
	Positive     Label = "Positivo"
	Neutral      Label = "Neutro"
	Negative     Label = "Negativo"
	VeryNegative Label = "Muito Negativo"
	Anger        Label = "Raiva"
	Fear         Label = "Medo"
)

// Invalid marks blank input. It is not a sentiment label.
const Invalid Label = ""

// AutoLabels lists the 3-way label space in display order.
var AutoLabels = []Label{AutoPositive, AutoNegative, AutoNeutral}

// TierLabels lists the 5-tier label space in display order.
var TierLabels = []Label{VeryPositive, Positive, Neutral, Negative, VeryNegative, Anger, Fear}

// String returns the label text, or "inválido" for the invalid marker.
func (l Label) String() string {
	if l == Invalid {
		return "inválido"
	}
	return string(l)
}

// Result is the outcome of a lexicon classification.
type Result struct {
	Label    Label    `json:"label"`
	Valid    bool     `json:"valid"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
	Positive int      `json:"positive"` // count of positive matches
	Negative int      `json:"negative"` // count of negative matches
	Matched  []string `json:"matched,omitempty"`
}

// TextLabel pairs raw text with the label it should be trained on.
type TextLabel struct {
	Text  string
	Label Label
}
