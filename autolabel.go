package sentimento

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrMissingText is the skip reason of a row whose review cell is absent or empty.
var ErrMissingText = errors.New("row has no review text")

// LabelOutcome is the per-row result of auto-labeling: either a label or the
// reason the row was skipped.
type LabelOutcome struct {
	Row     Row
	Label   Label
	Skipped bool
	Reason  error
}

// AutoLabel labels every row independently. A row without text is reported as
// skipped and never aborts the batch.
func AutoLabel(rows []Row, labeler AutoLabeler) []LabelOutcome {
	return autoLabel(rows, labeler, nil)
}

func autoLabel(rows []Row, labeler AutoLabeler, logger *slog.Logger) []LabelOutcome {
	outcomes := make([]LabelOutcome, 0, len(rows))
	for _, row := range rows {
		if row.Missing {
			reason := fmt.Errorf("line %d: %w", row.Line, ErrMissingText)
			if logger != nil {
				logger.Debug("row skipped", slog.Int("line", row.Line), slog.String("reason", reason.Error()))
			}
			outcomes = append(outcomes, LabelOutcome{Row: row, Skipped: true, Reason: reason})
			continue
		}
		outcomes = append(outcomes, LabelOutcome{Row: row, Label: labeler.LabelAuto(row.Text)})
	}
	return outcomes
}

// LabeledRows returns the text/label pairs of the outcomes that were labeled.
func LabeledRows(outcomes []LabelOutcome) []TextLabel {
	pairs := make([]TextLabel, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Skipped {
			continue
		}
		pairs = append(pairs, TextLabel{Text: o.Row.Text, Label: o.Label})
	}
	return pairs
}

// OutcomeLabels returns the labels of the outcomes that were labeled.
func OutcomeLabels(outcomes []LabelOutcome) []Label {
	labels := make([]Label, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.Skipped {
			labels = append(labels, o.Label)
		}
	}
	return labels
}

// SkippedCount returns how many outcomes were skipped.
func SkippedCount(outcomes []LabelOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Skipped {
			n++
		}
	}
	return n
}
