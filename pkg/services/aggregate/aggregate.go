// Package aggregate reduces normalized query rows into the tabular records
// the renderer consumes.
package aggregate

import (
	"context"

	"github.com/mkt-tools/ga-insight/pkg/models/domain"
	"github.com/rs/zerolog"
)

// SumRows collapses a period's rows into a single record, summing each
// metric across every returned row. The sum is defensive: under an exact
// channel filter the API should return one row, but more are tolerated.
// Metrics absent from the response stay at 0.
func SumRows(result *domain.QueryResult, metrics []domain.Metric) domain.AggregateRow {
	values := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		values[m.Name] = 0
	}

	for _, row := range result.Rows {
		for i, m := range metrics {
			if i < len(row.Values) {
				values[m.Name] += row.Values[i]
			}
		}
	}

	return domain.AggregateRow{Key: result.Period.Label, Values: values}
}

// ByChannel keys a period's rows by channel, keeping integer counts for the
// channels in the caller's selection. Selected channels missing from the
// response stay all-zero. Duplicate channel rows are lossy: the last row
// wins, which is logged but not treated as an error.
func ByChannel(
	ctx context.Context,
	result *domain.QueryResult,
	metrics []domain.Metric,
	channels []string,
) map[string]map[string]int64 {
	selected := make(map[string]bool, len(channels))
	out := make(map[string]map[string]int64, len(channels))
	for _, ch := range channels {
		selected[ch] = true
		out[ch] = zeroValues(metrics)
	}

	seen := make(map[string]bool, len(channels))
	for _, row := range result.Rows {
		if !selected[row.Dimension] {
			continue
		}
		if seen[row.Dimension] {
			zerolog.Ctx(ctx).Debug().
				Str("channel", row.Dimension).
				Str("period", result.Period.Label).
				Msg("duplicate channel row, keeping the later one")
		}
		seen[row.Dimension] = true

		values := zeroValues(metrics)
		for i, m := range metrics {
			if i < len(row.Values) {
				values[m.Name] = int64(row.Values[i])
			}
		}
		out[row.Dimension] = values
	}

	return out
}

func zeroValues(metrics []domain.Metric) map[string]int64 {
	values := make(map[string]int64, len(metrics))
	for _, m := range metrics {
		values[m.Name] = 0
	}
	return values
}
