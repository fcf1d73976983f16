package sentimento

import (
	"sort"
)

// Display attributes for a label.
type presentation struct {
	icon  string
	card  string // card background
	chart string // bar color
}

var presentations = map[Label]presentation{
	AutoPositive: {icon: "🙂", card: "#DFF6DD", chart: "#28a745"},
	AutoNegative: {icon: "😞", card: "#F8D7DA", chart: "#dc3545"},
	AutoNeutral:  {icon: "😐", card: "#FFF3CD", chart: "#ffc107"},

	VeryPositive: {icon: "😄", card: "#C3E6CB", chart: "#1e7e34"},
	Positive:     {icon: "🙂", card: "#DFF6DD", chart: "#28a745"},
	Neutral:      {icon: "😐", card: "#FFF3CD", chart: "#ffc107"},
	Negative:     {icon: "😞", card: "#F8D7DA", chart: "#dc3545"},
	VeryNegative: {icon: "😫", card: "#F5C6CB", chart: "#bd2130"},
	Anger:        {icon: "😠", card: "#F1B0B7", chart: "#721c24"},
	Fear:         {icon: "😨", card: "#E2D9F3", chart: "#6f42c1"},
}

var unknownPresentation = presentation{icon: "❓", card: "#E2E3E5", chart: "#6c757d"}

// Presentation returns the icon and card color for label. Unknown labels and
// the Invalid marker get "❓" on grey.
func Presentation(label Label) (icon, color string) {
	p := lookupPresentation(label)
	return p.icon, p.card
}

// ChartColor returns the bar color used when charting label counts.
func ChartColor(label Label) string {
	return lookupPresentation(label).chart
}

func lookupPresentation(label Label) presentation {
	if p, ok := presentations[label]; ok {
		return p
	}
	return unknownPresentation
}

func withPresentation(r Result) Result {
	r.Icon, r.Color = Presentation(r.Label)
	return r
}

// Card is one rendered review: its label with display attributes and text.
type Card struct {
	Product string `json:"produto"`
	Text    string `json:"text"`
	Label   Label  `json:"label"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
}

// Cards labels every row with labeler and attaches display attributes. Rows
// without text are skipped.
func Cards(rows []Row, labeler AutoLabeler) []Card {
	return outcomeCards(AutoLabel(rows, labeler), "")
}

func outcomeCards(outcomes []LabelOutcome, product string) []Card {
	cards := make([]Card, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Skipped || (product != "" && o.Row.Product != product) {
			continue
		}
		icon, color := Presentation(o.Label)
		cards = append(cards, Card{
			Product: o.Row.Product,
			Text:    o.Row.Text,
			Label:   o.Label,
			Icon:    icon,
			Color:   color,
		})
	}
	return cards
}

// Frequencies counts how often each label occurs.
func Frequencies(labels []Label) map[Label]int {
	counts := make(map[Label]int)
	for _, l := range labels {
		counts[l]++
	}
	return counts
}

// LabelCount is one entry of a frequency table.
type LabelCount struct {
	Label Label  `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// SortedCounts orders a frequency mapping by descending count, then by label.
func SortedCounts(counts map[Label]int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, LabelCount{Label: label, Count: n, Color: ChartColor(label)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
