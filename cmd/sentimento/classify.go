package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tsawler/sentimento"
)

func newClassifyCommand(a *app) *cobra.Command {
	var (
		strategyName string
		modelPath    string
	)

	cmd := &cobra.Command{
		Use:   "classify TEXT...",
		Short: "Classify one or more review texts",
		Long: `Classify each argument as a separate review.

Strategies:
  lexicon  five-tier lexicon classifier (default)
  auto     three-way auto-labeler used to build training data
  model    Naive Bayes model saved by "sentimento train --save"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := sentimento.ParseStrategy(strategyName)
			if err != nil {
				return err
			}

			session := sentimento.NewSession(a.classifier, a.trainer(), sentimento.WithSessionLogger(a.logger))
			if path := firstNonEmpty(modelPath, a.cfg.ModelPath); path != "" {
				model, loadErr := sentimento.ModelFromDisk(path)
				if loadErr != nil {
					return loadErr
				}
				session.SetModel(model, nil)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Text", "Label", "Icon", "Detail"})

			for _, text := range args {
				result, classifyErr := session.Classify(strategy, text)
				if errors.Is(classifyErr, sentimento.ErrNoModel) {
					return fmt.Errorf("%w: pass --model with a file saved by train --save", classifyErr)
				}
				if classifyErr != nil {
					return classifyErr
				}
				t.AppendRow(table.Row{text, result.Label.String(), result.Icon, detail(result)})
			}

			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategyName, "strategy", "s", string(sentimento.StrategyLexicon), "lexicon, auto or model")
	cmd.Flags().StringVar(&modelPath, "model", "", "saved model for the model strategy")
	return cmd
}

func detail(c sentimento.Classification) string {
	switch {
	case c.Lexicon != nil && c.Lexicon.Valid:
		return fmt.Sprintf("pos=%d neg=%d %s", c.Lexicon.Positive, c.Lexicon.Negative, strings.Join(c.Lexicon.Matched, ","))
	case c.Probabilities != nil:
		return fmt.Sprintf("p=%.3f", c.Probabilities[c.Label])
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
