package sentimento

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// eleGamma is the pseudo-count of the expected likelihood estimate.
const eleGamma = 0.5

// ErrNoModel is returned when an operation needs a trained model and none is
// available.
var ErrNoModel = errors.New("no trained model available")

// A Model is a trained Naive Bayes classifier over presence-only features. It
// is read-only once fitted and safe for concurrent use.
type Model struct {
	Name string

	labels        []Label // sorted; argmax ties go to the first
	labelCounts   map[Label]int
	total         int
	featureCounts map[Label]map[string]int // examples of label containing feature
	bins          map[string]int           // distinct values seen for feature: present, absent
}

// fitModel estimates label priors and feature likelihoods from examples.
func fitModel(examples []LabeledExample) *Model {
	m := &Model{
		labelCounts:   make(map[Label]int),
		featureCounts: make(map[Label]map[string]int),
		bins:          make(map[string]int),
	}

	fnames := make(map[string]struct{})
	for _, ex := range examples {
		m.total++
		m.labelCounts[ex.Label]++
		counts, ok := m.featureCounts[ex.Label]
		if !ok {
			counts = make(map[string]int)
			m.featureCounts[ex.Label] = counts
		}
		for fname := range ex.Features {
			counts[fname]++
			fnames[fname] = struct{}{}
		}
	}

	for label := range m.labelCounts {
		m.labels = append(m.labels, label)
	}
	sort.Slice(m.labels, func(i, j int) bool { return m.labels[i] < m.labels[j] })

	for fname := range fnames {
		bins := 1
		for _, label := range m.labels {
			if m.featureCounts[label][fname] < m.labelCounts[label] {
				// some example of label lacks the feature
				bins = 2
				break
			}
		}
		m.bins[fname] = bins
	}

	return m
}

// Labels returns the labels the model can predict, sorted.
func (m *Model) Labels() []Label {
	return append([]Label(nil), m.labels...)
}

// Priors returns the smoothed label priors.
func (m *Model) Priors() map[Label]float64 {
	out := make(map[Label]float64, len(m.labels))
	for _, label := range m.labels {
		out[label] = math.Exp(m.logPrior(label))
	}
	return out
}

// FeatureCount returns the number of distinct features seen in training.
func (m *Model) FeatureCount() int {
	return len(m.bins)
}

func (m *Model) logPrior(label Label) float64 {
	n := float64(m.labelCounts[label])
	return math.Log((n + eleGamma) / (float64(m.total) + eleGamma*float64(len(m.labels))))
}

func (m *Model) logLikelihood(label Label, fname string) float64 {
	c := float64(m.featureCounts[label][fname])
	n := float64(m.labelCounts[label])
	return math.Log((c + eleGamma) / (n + eleGamma*float64(m.bins[fname])))
}

func (m *Model) logScores(fs FeatureSet) []float64 {
	scores := make([]float64, len(m.labels))
	for i, label := range m.labels {
		scores[i] = m.logPrior(label)
	}
	for fname := range fs {
		if _, known := m.bins[fname]; !known {
			// never seen in training: carries no evidence
			continue
		}
		for i, label := range m.labels {
			scores[i] += m.logLikelihood(label, fname)
		}
	}
	return scores
}

// ProbClassify returns the posterior probability of every label for fs.
func (m *Model) ProbClassify(fs FeatureSet) map[Label]float64 {
	scores := m.logScores(fs)
	out := make(map[Label]float64, len(scores))
	if len(scores) == 0 {
		return out
	}
	norm := floats.LogSumExp(scores)
	for i, label := range m.labels {
		out[label] = math.Exp(scores[i] - norm)
	}
	return out
}

// Classify returns the most probable label for fs. Features never seen in
// training are ignored, so an entirely unseen input gets the most probable
// prior.
func (m *Model) Classify(fs FeatureSet) Label {
	scores := m.logScores(fs)
	if len(scores) == 0 {
		return Invalid
	}
	return m.labels[floats.MaxIdx(scores)]
}

// ClassifyText builds the features of text with fb and classifies them.
func (m *Model) ClassifyText(fb *FeatureBuilder, text string) Label {
	return m.Classify(fb.Build(text))
}

// InformativeFeature reports how strongly one feature separates two labels.
type InformativeFeature struct {
	Feature string
	Ratio   float64 // likelihood of Top over likelihood of Bottom
	Top     Label
	Bottom  Label
}

// MostInformative returns up to n features with the largest likelihood ratio
// between their most and least likely labels.
func (m *Model) MostInformative(n int) []InformativeFeature {
	out := make([]InformativeFeature, 0, len(m.bins))
	for fname := range m.bins {
		best := InformativeFeature{Feature: fname}
		maxLog, minLog := math.Inf(-1), math.Inf(1)
		for _, label := range m.labels {
			ll := m.logLikelihood(label, fname)
			if ll > maxLog {
				maxLog, best.Top = ll, label
			}
			if ll < minLog {
				minLog, best.Bottom = ll, label
			}
		}
		best.Ratio = math.Exp(maxLog - minLog)
		out = append(out, best)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ratio != out[j].Ratio {
			return out[i].Ratio > out[j].Ratio
		}
		return out[i].Feature < out[j].Feature
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Snapshot is a serializable copy of a Model.
type Snapshot struct {
	Name          string                   `json:"name"`
	LabelCounts   map[Label]int            `json:"label_counts"`
	FeatureCounts map[Label]map[string]int `json:"feature_counts"`
	Bins          map[string]int           `json:"bins"`
}

// Snapshot returns a deep copy of the model state.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		Name:          m.Name,
		LabelCounts:   make(map[Label]int, len(m.labelCounts)),
		FeatureCounts: make(map[Label]map[string]int, len(m.featureCounts)),
		Bins:          make(map[string]int, len(m.bins)),
	}
	for label, n := range m.labelCounts {
		s.LabelCounts[label] = n
	}
	for label, counts := range m.featureCounts {
		inner := make(map[string]int, len(counts))
		for f, n := range counts {
			inner[f] = n
		}
		s.FeatureCounts[label] = inner
	}
	for f, b := range m.bins {
		s.Bins[f] = b
	}
	return s
}

// ModelFromSnapshot rebuilds a Model. It rejects snapshots a fitted model
// could not have produced.
func ModelFromSnapshot(s Snapshot) (*Model, error) {
	if len(s.LabelCounts) < 2 {
		return nil, fmt.Errorf("snapshot with %d labels: %w", len(s.LabelCounts), ErrSingleLabel)
	}

	m := &Model{
		Name:          s.Name,
		labelCounts:   make(map[Label]int, len(s.LabelCounts)),
		featureCounts: make(map[Label]map[string]int, len(s.LabelCounts)),
		bins:          make(map[string]int, len(s.Bins)),
	}
	for label, n := range s.LabelCounts {
		if n <= 0 {
			return nil, fmt.Errorf("snapshot label %q has count %d", label, n)
		}
		m.labelCounts[label] = n
		m.total += n
		m.labels = append(m.labels, label)

		inner := make(map[string]int, len(s.FeatureCounts[label]))
		for f, c := range s.FeatureCounts[label] {
			inner[f] = c
		}
		m.featureCounts[label] = inner
	}
	sort.Slice(m.labels, func(i, j int) bool { return m.labels[i] < m.labels[j] })
	for f, b := range s.Bins {
		m.bins[f] = b
	}
	return m, nil
}

// MarshalBinary gob-encodes the model snapshot.
func (m *Model) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m.Snapshot()); err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalModel decodes a model produced by MarshalBinary.
func UnmarshalModel(data []byte) (*Model, error) {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return ModelFromSnapshot(s)
}

// Write saves the model to path, creating parent directories.
func (m *Model) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ModelFromDisk loads a model saved with Write.
func ModelFromDisk(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return UnmarshalModel(data)
}
