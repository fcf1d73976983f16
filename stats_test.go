package sentimento

import (
	"reflect"
	"testing"
)

func TestPresentation(t *testing.T) {
	tests := []struct {
		label       Label
		icon, color string
		chart       string
	}{
		{AutoPositive, "🙂", "#DFF6DD", "#28a745"},
		{AutoNegative, "😞", "#F8D7DA", "#dc3545"},
		{AutoNeutral, "😐", "#FFF3CD", "#ffc107"},
		{Anger, "😠", "#F1B0B7", "#721c24"},
		{Invalid, "❓", "#E2E3E5", "#6c757d"},
		{Label("desconhecido"), "❓", "#E2E3E5", "#6c757d"},
	}
	for _, tt := range tests {
		icon, color := Presentation(tt.label)
		if icon != tt.icon || color != tt.color {
			t.Errorf("Presentation(%q) = (%q, %q), want (%q, %q)", tt.label, icon, color, tt.icon, tt.color)
		}
		if chart := ChartColor(tt.label); chart != tt.chart {
			t.Errorf("ChartColor(%q) = %q, want %q", tt.label, chart, tt.chart)
		}
	}
}

func TestEveryLabelHasPresentation(t *testing.T) {
	for _, label := range append(append([]Label{}, AutoLabels...), TierLabels...) {
		if icon, _ := Presentation(label); icon == "❓" {
			t.Errorf("label %q has no icon", label)
		}
	}
}

func TestFrequencies(t *testing.T) {
	labels := []Label{AutoPositive, AutoNegative, AutoPositive, AutoNeutral, AutoPositive, AutoNegative}

	counts := Frequencies(labels)
	if want := map[Label]int{AutoPositive: 3, AutoNegative: 2, AutoNeutral: 1}; !reflect.DeepEqual(counts, want) {
		t.Errorf("Frequencies = %v, want %v", counts, want)
	}

	sorted := SortedCounts(counts)
	want := []LabelCount{
		{AutoPositive, 3, "#28a745"},
		{AutoNegative, 2, "#dc3545"},
		{AutoNeutral, 1, "#ffc107"},
	}
	if !reflect.DeepEqual(sorted, want) {
		t.Errorf("SortedCounts = %+v, want %+v", sorted, want)
	}
}

func TestSortedCountsTieBreak(t *testing.T) {
	sorted := SortedCounts(map[Label]int{AutoPositive: 1, AutoNegative: 1})
	if sorted[0].Label != AutoNegative {
		t.Errorf("tie order = %+v", sorted)
	}
}

func TestCards(t *testing.T) {
	rows := []Row{
		{Line: 2, Text: "bom", Product: "TV"},
		{Line: 3, Missing: true, Product: "TV"},
		{Line: 4, Text: "ruim", Product: "Fone"},
	}
	cards := Cards(rows, NewLexiconClassifier(DefaultVocabulary()))
	want := []Card{
		{Product: "TV", Text: "bom", Label: AutoPositive, Icon: "🙂", Color: "#DFF6DD"},
		{Product: "Fone", Text: "ruim", Label: AutoNegative, Icon: "😞", Color: "#F8D7DA"},
	}
	if !reflect.DeepEqual(cards, want) {
		t.Errorf("Cards = %+v, want %+v", cards, want)
	}
}

func TestLabelString(t *testing.T) {
	if Invalid.String() != "inválido" || VeryPositive.String() != "Muito Positivo" {
		t.Errorf("String() = %q, %q", Invalid.String(), VeryPositive.String())
	}
}
