package sentimento

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Strategy names a labeling approach.
type Strategy string

const (
	StrategyLexicon Strategy = "lexicon" // 5-tier lexicon classifier
	StrategyAuto    Strategy = "auto"    // 3-way auto-labeler
	StrategyModel   Strategy = "model"   // trained Naive Bayes model
)

var (
	// ErrNoDataset is returned when a session query needs a dataset and none
	// has been loaded.
	ErrNoDataset = errors.New("no dataset loaded")
	// ErrUnknownStrategy is returned for a strategy name other than lexicon,
	// auto or model.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// ParseStrategy maps a strategy name to a Strategy. The empty name selects the
// lexicon classifier.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyLexicon:
		return StrategyLexicon, nil
	case StrategyAuto:
		return StrategyAuto, nil
	case StrategyModel:
		return StrategyModel, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
}

// Classification is the answer to a single-text query.
type Classification struct {
	Strategy      Strategy          `json:"strategy"`
	Label         Label             `json:"label"`
	Valid         bool              `json:"valid"`
	Icon          string            `json:"icon"`
	Color         string            `json:"color"`
	Lexicon       *Result           `json:"lexicon,omitempty"`
	Probabilities map[Label]float64 `json:"probabilities,omitempty"`
}

// LoadReport summarizes a dataset load.
type LoadReport struct {
	Rows       int              `json:"rows"`
	Labeled    int              `json:"labeled"`
	Skipped    int              `json:"skipped"`
	Counts     []LabelCount     `json:"counts"`
	Trained    bool             `json:"trained"`
	Cached     bool             `json:"cached"`
	Metrics    *TrainingMetrics `json:"metrics,omitempty"`
	TrainError string           `json:"train_error,omitempty"`
}

// Stats is the aggregate view of the current dataset.
type Stats struct {
	Rows     int              `json:"rows"`
	Labeled  int              `json:"labeled"`
	Skipped  int              `json:"skipped"`
	Counts   []LabelCount     `json:"counts"`
	Products []string         `json:"products"`
	Metrics  *TrainingMetrics `json:"metrics,omitempty"`
}

// Session holds the current dataset, its auto-labels and the model trained on
// them. The most recent Load wins.
type Session struct {
	classifier *LexiconClassifier
	trainer    *Trainer
	cache      ModelCache
	logger     *slog.Logger

	mu         sync.RWMutex
	generation uint64
	dataset    *Dataset
	outcomes   []LabelOutcome
	model      *Model
	metrics    *TrainingMetrics
}

// SessionOpt configures a Session.
type SessionOpt func(*Session)

// WithCache gives the cache consulted before training.
func WithCache(c ModelCache) SessionOpt {
	return func(s *Session) {
		s.cache = c
	}
}

// WithSessionLogger sets the session logger.
func WithSessionLogger(logger *slog.Logger) SessionOpt {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates an empty session.
func NewSession(classifier *LexiconClassifier, trainer *Trainer, opts ...SessionOpt) *Session {
	s := &Session{
		classifier: classifier,
		trainer:    trainer,
		logger:     slog.Default(),
	}
	for _, applyOpt := range opts {
		applyOpt(s)
	}
	return s
}

// Load auto-labels ds, trains a model on it (or takes one from the cache) and
// makes it the current dataset. A training failure does not reject the
// dataset: it is reported in LoadReport.TrainError and the session is left
// without a model. Only context errors fail the load.
func (s *Session) Load(ctx context.Context, ds *Dataset) (LoadReport, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	outcomes := autoLabel(ds.Rows, s.classifier, s.logger)
	pairs := LabeledRows(outcomes)
	report := LoadReport{
		Rows:    len(ds.Rows),
		Labeled: len(pairs),
		Skipped: SkippedCount(outcomes),
		Counts:  SortedCounts(Frequencies(OutcomeLabels(outcomes))),
	}

	model, metrics, cached, err := s.trainOrFetch(ctx, pairs)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}
		s.logger.Warn("model not trained", slog.String("error", err.Error()))
		report.TrainError = err.Error()
	} else {
		report.Trained = true
		report.Cached = cached
		report.Metrics = &metrics
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// a newer upload replaced this one while it was training
		s.logger.Debug("stale dataset load dropped", slog.Uint64("generation", gen))
		return report, nil
	}
	s.dataset = ds
	s.outcomes = outcomes
	s.model = model
	s.metrics = report.Metrics
	return report, nil
}

func (s *Session) trainOrFetch(ctx context.Context, pairs []TextLabel) (*Model, TrainingMetrics, bool, error) {
	key := DatasetKey(pairs, s.trainer.Seed())
	if s.cache != nil {
		entry, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("model cache lookup failed", slog.String("key", key), slog.String("error", err.Error()))
		case ok:
			s.logger.Info("model cache hit", slog.String("key", key))
			return entry.Model, entry.Metrics, true, nil
		}
	}

	model, metrics, err := s.trainer.Train(ctx, pairs)
	if err != nil {
		return nil, metrics, false, err
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, key, CacheEntry{Model: model, Metrics: metrics}); err != nil {
			s.logger.Warn("model cache store failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return model, metrics, false, nil
}

// SetModel installs a model trained elsewhere, such as one loaded from disk.
func (s *Session) SetModel(model *Model, metrics *TrainingMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
	s.metrics = metrics
}

// Model returns the current model, or ErrNoModel.
func (s *Session) Model() (*Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.model == nil {
		return nil, ErrNoModel
	}
	return s.model, nil
}

// Stats returns label frequencies of the current dataset.
func (s *Session) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return Stats{}, ErrNoDataset
	}
	labels := OutcomeLabels(s.outcomes)
	return Stats{
		Rows:     len(s.dataset.Rows),
		Labeled:  len(labels),
		Skipped:  len(s.outcomes) - len(labels),
		Counts:   SortedCounts(Frequencies(labels)),
		Products: s.dataset.Products(),
		Metrics:  s.metrics,
	}, nil
}

// Products lists the products of the current dataset in first-seen order.
func (s *Session) Products() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, ErrNoDataset
	}
	return s.dataset.Products(), nil
}

// Reviews returns the labeled cards of the current dataset. A non-empty
// product restricts them to that product.
func (s *Session) Reviews(product string) ([]Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, ErrNoDataset
	}
	return outcomeCards(s.outcomes, product), nil
}

// Classify labels text with the chosen strategy. The model strategy fails
// with ErrNoModel until a dataset has been trained or a model installed.
func (s *Session) Classify(strategy Strategy, text string) (Classification, error) {
	c := Classification{Strategy: strategy}
	switch strategy {
	case StrategyLexicon:
		r := s.classifier.Classify(text)
		c.Label, c.Valid, c.Lexicon = r.Label, r.Valid, &r
	case StrategyAuto:
		if !IsBlank(text) {
			c.Label, c.Valid = s.classifier.LabelAuto(text), true
		}
	case StrategyModel:
		model, err := s.Model()
		if err != nil {
			return c, err
		}
		if !IsBlank(text) {
			fs := s.trainer.Features().Build(text)
			c.Label, c.Valid = model.Classify(fs), true
			c.Probabilities = model.ProbClassify(fs)
		}
	default:
		return c, fmt.Errorf("%q: %w", strategy, ErrUnknownStrategy)
	}
	c.Icon, c.Color = Presentation(c.Label)
	return c, nil
}
