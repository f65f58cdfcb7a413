// Package insights computes period-over-period deltas and the narrative
// lines derived from them.
package insights

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mkt-tools/ga-insight/pkg/models/domain"
)

// PercentChange returns the change from prev to cur as a percentage rounded
// to two decimals. A zero previous value is defined as 0 change; the
// zero-division policy is part of the report contract, not an approximation.
func PercentChange(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return math.Round((cur-prev)/prev*100*100) / 100
}

// Classify maps a percent change to its change kind. The boundary is strict:
// exactly zero counts as a drop.
func Classify(pct float64) domain.ChangeKind {
	if pct > 0 {
		return domain.Improvement
	}
	return domain.Drop
}

// Deltas compares the last two rows in sequence order and returns the percent
// change per metric, or nil when fewer than two rows exist. Rows must already
// be chronological; this function does not sort.
func Deltas(rows []domain.AggregateRow, metrics []domain.Metric) *domain.DeltaRow {
	if len(rows) < 2 {
		return nil
	}

	cur, prev := rows[len(rows)-1], rows[len(rows)-2]
	delta := &domain.DeltaRow{
		Key:           "% Difference",
		PercentChange: make(map[string]float64, len(metrics)),
	}
	for _, m := range metrics {
		delta.PercentChange[m.Name] = PercentChange(cur.Values[m.Name], prev.Values[m.Name])
	}
	return delta
}

// Narratives builds one insight sentence per metric from the last two rows,
// or nil when fewer than two rows exist.
func Narratives(rows []domain.AggregateRow, metrics []domain.Metric) []domain.Insight {
	if len(rows) < 2 {
		return nil
	}

	cur, prev := rows[len(rows)-1], rows[len(rows)-2]
	out := make([]domain.Insight, 0, len(metrics))
	for _, m := range metrics {
		pct := PercentChange(cur.Values[m.Name], prev.Values[m.Name])
		kind := Classify(pct)
		out = append(out, domain.Insight{
			Metric:  m.Name,
			Kind:    kind,
			Percent: pct,
			Text: fmt.Sprintf("We observed a %s of %s%% in %s in %s compared to %s.",
				kind, FormatPercent(math.Abs(pct)), m.Name, cur.Key, prev.Key),
		})
	}
	return out
}

// FormatPercent renders a rounded percentage without trailing zeros.
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64)
}
