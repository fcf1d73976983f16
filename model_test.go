package sentimento

import (
	"math"
	"path/filepath"
	"reflect"
	"testing"
)

func fs(words ...string) FeatureSet {
	out := make(FeatureSet, len(words))
	for _, w := range words {
		out[w] = true
	}
	return out
}

func sampleExamples() []LabeledExample {
	return []LabeledExample{
		{fs("ótimo", "adorei"), AutoPositive},
		{fs("bom", "adorei"), AutoPositive},
		{fs("excelente"), AutoPositive},
		{fs("ruim", "defeito"), AutoNegative},
		{fs("péssimo"), AutoNegative},
	}
}

func TestModelPriors(t *testing.T) {
	m := fitModel(sampleExamples())

	if want := []Label{AutoNegative, AutoPositive}; !reflect.DeepEqual(m.Labels(), want) {
		t.Fatalf("Labels = %v, want %v", m.Labels(), want)
	}

	// ELE: (c + 0.5) / (N + 0.5 * L)
	priors := m.Priors()
	if got, want := priors[AutoPositive], 3.5/6.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("P(positivo) = %v, want %v", got, want)
	}
	if got, want := priors[AutoNegative], 2.5/6.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("P(negativo) = %v, want %v", got, want)
	}
}

func TestModelLikelihood(t *testing.T) {
	m := fitModel(sampleExamples())

	// adorei appears in 2 of 3 positive examples and in some examples is
	// absent, so it has two observed values.
	if got, want := math.Exp(m.logLikelihood(AutoPositive, "adorei")), 2.5/4.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("P(adorei|positivo) = %v, want %v", got, want)
	}
	if got, want := math.Exp(m.logLikelihood(AutoNegative, "adorei")), 0.5/3.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("P(adorei|negativo) = %v, want %v", got, want)
	}
}

func TestModelClassify(t *testing.T) {
	m := fitModel(sampleExamples())

	tests := []struct {
		features FeatureSet
		want     Label
	}{
		{fs("adorei"), AutoPositive},
		{fs("defeito"), AutoNegative},
		{fs("ruim", "péssimo"), AutoNegative},
	}
	for _, tt := range tests {
		if got := m.Classify(tt.features); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.features.Keys(), got, tt.want)
		}
	}
}

func TestModelUnseenFallsBackToPrior(t *testing.T) {
	m := fitModel(sampleExamples())

	for _, features := range []FeatureSet{fs(), fs("geladeira", "entrega")} {
		if got := m.Classify(features); got != AutoPositive {
			t.Errorf("Classify(%v) = %q, want majority prior %q", features.Keys(), got, AutoPositive)
		}
		probs := m.ProbClassify(features)
		priors := m.Priors()
		for label, p := range probs {
			if math.Abs(p-priors[label]) > 1e-9 {
				t.Errorf("P(%s|unseen) = %v, want prior %v", label, p, priors[label])
			}
		}
	}
}

func TestModelTieBreaksBySortedLabel(t *testing.T) {
	m := fitModel([]LabeledExample{
		{fs("bom"), AutoPositive},
		{fs("ruim"), AutoNegative},
	})
	if got := m.Classify(fs()); got != AutoNegative {
		t.Errorf("tie resolved to %q, want %q", got, AutoNegative)
	}
}

func TestModelProbClassifySumsToOne(t *testing.T) {
	m := fitModel(sampleExamples())
	sum := 0.0
	for _, p := range m.ProbClassify(fs("adorei", "defeito", "novo")) {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("posteriors sum to %v", sum)
	}
}

func TestModelMostInformative(t *testing.T) {
	m := fitModel(sampleExamples())

	top := m.MostInformative(2)
	if len(top) != 2 {
		t.Fatalf("MostInformative(2) returned %d features", len(top))
	}
	if top[0].Ratio < top[1].Ratio {
		t.Errorf("features not sorted by ratio: %+v", top)
	}
	// ruim, defeito and péssimo tie at 4:1; names break the tie
	if top[0].Feature != "defeito" || top[0].Top != AutoNegative || math.Abs(top[0].Ratio-4) > 1e-9 {
		t.Errorf("most informative = %+v, want defeito 4:1 for negativo", top[0])
	}
	if all := m.MostInformative(-1); len(all) != m.FeatureCount() {
		t.Errorf("MostInformative(-1) returned %d of %d features", len(all), m.FeatureCount())
	}
}

func TestModelSnapshotRoundTrip(t *testing.T) {
	m := fitModel(sampleExamples())
	m.Name = "reviews"

	path := filepath.Join(t.TempDir(), "nested", "model.gob")
	if err := m.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	loaded, err := ModelFromDisk(path)
	if err != nil {
		t.Fatalf("ModelFromDisk: %v", err)
	}

	if loaded.Name != "reviews" {
		t.Errorf("Name = %q", loaded.Name)
	}
	probe := fs("adorei", "defeito")
	want := m.ProbClassify(probe)
	for label, p := range loaded.ProbClassify(probe) {
		if math.Abs(p-want[label]) > 1e-12 {
			t.Errorf("P(%s) = %v after reload, want %v", label, p, want[label])
		}
	}
}

func TestModelFromSnapshotRejectsSingleLabel(t *testing.T) {
	s := Snapshot{LabelCounts: map[Label]int{AutoPositive: 3}}
	if _, err := ModelFromSnapshot(s); err == nil {
		t.Error("expected an error for a single-label snapshot")
	}

	if _, err := UnmarshalModel([]byte("not gob")); err == nil {
		t.Error("expected a decode error")
	}
}
