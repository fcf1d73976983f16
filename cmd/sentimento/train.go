package main

import (
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newTrainCommand(a *app) *cobra.Command {
	var (
		savePath string
		top      int
	)

	cmd := &cobra.Command{
		Use:   "train FILE",
		Short: "Auto-label a review CSV and train a Naive Bayes model on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.openDataset(args[0])
			if err != nil {
				return err
			}

			model, metrics, _, err := a.trainer().TrainDataset(cmd.Context(), ds.Rows, a.classifier)
			if err != nil {
				return fmt.Errorf("training failed: %w", err)
			}

			out := cmd.OutOrStdout()
			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendRows([]table.Row{
				{"Examples", metrics.Examples},
				{"Train", metrics.TrainSize},
				{"Held out", metrics.HeldOutSize},
				{"Held-out accuracy", fmt.Sprintf("%.3f", metrics.HeldOutAccuracy)},
				{"Labels", fmt.Sprint(metrics.Labels)},
				{"Features", metrics.Features},
				{"Seed", metrics.Seed},
			})
			t.Render()

			if top > 0 {
				ft := table.NewWriter()
				ft.SetOutputMirror(out)
				ft.SetStyle(table.StyleLight)
				ft.AppendHeader(table.Row{"Feature", "Label", "vs", "Ratio"})
				for _, f := range model.MostInformative(top) {
					ft.AppendRow(table.Row{f.Feature, f.Top, f.Bottom, fmt.Sprintf("%.1f : 1", f.Ratio)})
				}
				ft.Render()
			}

			if savePath != "" {
				model.Name = args[0]
				if err := model.Write(savePath); err != nil {
					return fmt.Errorf("failed to save model: %w", err)
				}
				a.logger.Info("model saved", slog.String("path", savePath))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&savePath, "save", "", "write the trained model to this file")
	cmd.Flags().IntVar(&top, "top", 10, "number of most informative features to print")
	return cmd
}
