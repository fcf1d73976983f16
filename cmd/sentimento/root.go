package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tsawler/sentimento"
	"github.com/tsawler/sentimento/internal/config"
	"github.com/tsawler/sentimento/internal/logging"
)

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	cfg        config.Config
	logger     *slog.Logger
	classifier *sentimento.LexiconClassifier
}

func newRootCommand() *cobra.Command {
	a := &app{}

	var (
		env        string
		vocabulary string
		logLevel   string
		seed       int64
	)

	rootCmd := &cobra.Command{
		Use:           "sentimento",
		Short:         "Sentiment labeling for product reviews",
		Long:          `Label Portuguese product reviews with a keyword lexicon or a Naive Bayes model trained on auto-labeled data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(env)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("vocabulary") {
				cfg.Vocabulary = vocabulary
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			return a.setup(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&env, "env", "", "environment name; loads config/envs/.env.<env> (default .env)")
	flags.StringVar(&vocabulary, "vocabulary", "", "YAML file extending or replacing the word lists")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.Int64Var(&seed, "seed", 1, "shuffle seed for training")

	rootCmd.AddCommand(
		newClassifyCommand(a),
		newStatsCommand(a),
		newReviewsCommand(a),
		newTrainCommand(a),
		newServeCommand(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, cfg config.Config) error {
	a.cfg = cfg
	a.logger = logging.InitLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	vocab := sentimento.DefaultVocabulary()
	if cfg.Vocabulary != "" {
		loaded, err := sentimento.LoadVocabulary(cfg.Vocabulary, vocab)
		if err != nil {
			return err
		}
		vocab = loaded
		a.logger.Debug("vocabulary loaded", slog.String("path", cfg.Vocabulary))
	}
	a.classifier = sentimento.NewLexiconClassifier(vocab, sentimento.WithLexiconLogger(a.logger))
	return nil
}

func (a *app) trainer() *sentimento.Trainer {
	return sentimento.NewTrainer(sentimento.TrainingConfig{
		Seed:     a.cfg.Seed,
		Features: sentimento.NewFeatureBuilder(sentimento.KeepingVocabulary(a.classifier.Vocabulary())),
		Logger:   a.logger,
	})
}

func (a *app) openDataset(path string) (*sentimento.Dataset, error) {
	ds, err := sentimento.OpenDataset(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if ds.Latin1 {
		a.logger.Info("dataset decoded as Latin-1", slog.String("path", path))
	}
	return ds, nil
}
