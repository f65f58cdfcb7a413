package adapters

import (
	"time"

	"github.com/mkt-tools/ga-insight/pkg/models/api"
	"github.com/mkt-tools/ga-insight/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// ParseDate parses a 2006-01-02 date from a named field. An empty or
// malformed value is a *domain.MissingInputError so callers can map it to a
// client error uniformly.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &domain.MissingInputError{Field: field}
	}
	return t, nil
}

// MapMetricNames resolves display names against the catalog, keeping the
// caller's order. Empty input falls back to the provided defaults; an
// unknown name is rejected rather than silently dropped.
func MapMetricNames(names []string, defaults []domain.Metric) ([]domain.Metric, error) {
	if len(names) == 0 {
		return defaults, nil
	}
	metrics := make([]domain.Metric, 0, len(names))
	for _, name := range names {
		m, ok := domain.MetricByName(name)
		if !ok {
			return nil, &domain.MissingInputError{Field: "metric " + name}
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

// MapMetricsDomainToApi exposes the catalog as API entries.
func MapMetricsDomainToApi(metrics []domain.Metric) []api.Metric {
	out := make([]api.Metric, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, api.Metric{Name: m.Name, Key: m.Key})
	}
	return out
}
