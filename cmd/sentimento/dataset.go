package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tsawler/sentimento"
)

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE",
		Short: "Auto-label a review CSV and print label frequencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.openDataset(args[0])
			if err != nil {
				return err
			}

			outcomes := sentimento.AutoLabel(ds.Rows, a.classifier)
			labels := sentimento.OutcomeLabels(outcomes)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Label", "Icon", "Count", "Share", "Color"})
			for _, c := range sentimento.SortedCounts(sentimento.Frequencies(labels)) {
				icon, _ := sentimento.Presentation(c.Label)
				share := float64(c.Count) / float64(len(labels)) * 100
				t.AppendRow(table.Row{c.Label, icon, c.Count, fmt.Sprintf("%.1f%%", share), c.Color})
			}
			t.AppendFooter(table.Row{"Total", "", len(labels), "", fmt.Sprintf("%d skipped", sentimento.SkippedCount(outcomes))})
			t.Render()
			return nil
		},
	}
}

func newReviewsCommand(a *app) *cobra.Command {
	var product string

	cmd := &cobra.Command{
		Use:   "reviews FILE",
		Short: "Print every auto-labeled review, optionally for one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.openDataset(args[0])
			if err != nil {
				return err
			}

			rows := ds.Rows
			if product != "" {
				rows = ds.ByProduct(product)
				if len(rows) == 0 {
					return fmt.Errorf("no reviews for product %q (products: %v)", product, ds.Products())
				}
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Produto", "Icon", "Label", "Review"})
			for _, card := range sentimento.Cards(rows, a.classifier) {
				t.AppendRow(table.Row{card.Product, card.Icon, card.Label, card.Text})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&product, "produto", "", "only reviews of this product")
	return cmd
}
