package sentimento

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

var (
	// ErrEmptyTrainingSet is returned when the training partition has no
	// examples.
	ErrEmptyTrainingSet = errors.New("training set is empty")
	// ErrSingleLabel is returned when the training partition has fewer than
	// two distinct labels.
	ErrSingleLabel = errors.New("training set needs at least two distinct labels")
)

// DefaultTrainRatio is the share of shuffled examples used for fitting.
const DefaultTrainRatio = 0.8

// TrainingConfig contains configuration for model training
type TrainingConfig struct {
	Seed       int64
	TrainRatio float64
	Features   *FeatureBuilder
	Logger     *slog.Logger
}

// DefaultTrainingConfig returns a default training configuration
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Seed:       1,
		TrainRatio: DefaultTrainRatio,
	}
}

// TrainingMetrics contains metrics from training
type TrainingMetrics struct {
	Examples        int           `json:"examples"`
	TrainSize       int           `json:"train_size"`
	HeldOutSize     int           `json:"held_out_size"`
	HeldOutAccuracy float64       `json:"held_out_accuracy"`
	Labels          []Label       `json:"labels"`
	Features        int           `json:"features"`
	Seed            int64         `json:"seed"`
	TrainingTime    time.Duration `json:"training_time"`
}

// Trainer fits Naive Bayes models from labeled review text.
type Trainer struct {
	config TrainingConfig
}

// NewTrainer creates a new trainer with the given configuration. Zero fields
// take their defaults.
func NewTrainer(config TrainingConfig) *Trainer {
	if config.TrainRatio == 0 {
		config.TrainRatio = DefaultTrainRatio
	}
	if config.Features == nil {
		config.Features = NewFeatureBuilder()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Trainer{config: config}
}

// Seed returns the shuffle seed of the trainer.
func (t *Trainer) Seed() int64 {
	return t.config.Seed
}

// Features returns the feature builder used for training and queries.
func (t *Trainer) Features() *FeatureBuilder {
	return t.config.Features
}

// SplitIndex returns floor(ratio*n), the size of the training partition.
func SplitIndex(n int, ratio float64) int {
	return int(math.Floor(ratio * float64(n)))
}

// Split partitions examples at SplitIndex without reordering them.
func Split(examples []LabeledExample, ratio float64) (train, heldOut []LabeledExample) {
	idx := SplitIndex(len(examples), ratio)
	return examples[:idx], examples[idx:]
}

// Train builds features for each pair, shuffles them with the configured seed,
// fits on the leading partition and reports accuracy on the rest.
func (t *Trainer) Train(ctx context.Context, pairs []TextLabel) (*Model, TrainingMetrics, error) {
	startTime := time.Now()
	metrics := TrainingMetrics{Examples: len(pairs), Seed: t.config.Seed}

	if t.config.TrainRatio < 0 || t.config.TrainRatio > 1 {
		return nil, metrics, fmt.Errorf("train ratio %v outside [0, 1]", t.config.TrainRatio)
	}

	examples := make([]LabeledExample, len(pairs))
	for i, p := range pairs {
		examples[i] = LabeledExample{Features: t.config.Features.Build(p.Text), Label: p.Label}
	}
	if err := ctx.Err(); err != nil {
		return nil, metrics, err
	}

	rng := rand.New(rand.NewSource(t.config.Seed))
	rng.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})

	train, heldOut := Split(examples, t.config.TrainRatio)
	metrics.TrainSize = len(train)
	metrics.HeldOutSize = len(heldOut)

	if len(train) == 0 {
		return nil, metrics, ErrEmptyTrainingSet
	}
	if n := distinctLabels(train); n < 2 {
		return nil, metrics, fmt.Errorf("%d distinct label in %d examples: %w", n, len(train), ErrSingleLabel)
	}
	if err := ctx.Err(); err != nil {
		return nil, metrics, err
	}

	model := fitModel(train)
	metrics.Labels = model.Labels()
	metrics.Features = model.FeatureCount()

	if err := ctx.Err(); err != nil {
		return nil, metrics, err
	}
	metrics.HeldOutAccuracy = Accuracy(model, heldOut)
	metrics.TrainingTime = time.Since(startTime)

	t.config.Logger.Info("model trained",
		slog.Int("examples", metrics.Examples),
		slog.Int("train", metrics.TrainSize),
		slog.Int("held_out", metrics.HeldOutSize),
		slog.Float64("accuracy", metrics.HeldOutAccuracy),
		slog.Duration("elapsed", metrics.TrainingTime))

	return model, metrics, nil
}

// TrainDataset auto-labels rows with labeler and trains on the labeled ones.
func (t *Trainer) TrainDataset(ctx context.Context, rows []Row, labeler AutoLabeler) (*Model, TrainingMetrics, []LabelOutcome, error) {
	outcomes := autoLabel(rows, labeler, t.config.Logger)
	if skipped := SkippedCount(outcomes); skipped > 0 {
		t.config.Logger.Warn("rows without review text skipped", slog.Int("skipped", skipped))
	}
	model, metrics, err := t.Train(ctx, LabeledRows(outcomes))
	return model, metrics, outcomes, err
}

// Accuracy returns the share of examples the model labels correctly. An empty
// slice yields 0.
func Accuracy(model *Model, examples []LabeledExample) float64 {
	if len(examples) == 0 {
		return 0
	}
	correct := 0
	for _, ex := range examples {
		if model.Classify(ex.Features) == ex.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(examples))
}

func distinctLabels(examples []LabeledExample) int {
	seen := make(map[Label]struct{})
	for _, ex := range examples {
		seen[ex.Label] = struct{}{}
	}
	return len(seen)
}
