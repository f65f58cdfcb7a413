// Package report orchestrates the pipeline: periods -> queries -> aggregate
// rows -> deltas and insights. Queries run sequentially, one per period.
package report

import (
	"context"
	"time"

	"github.com/mkt-tools/ga-insight/pkg/models/domain"
	"github.com/mkt-tools/ga-insight/pkg/services/aggregate"
	"github.com/mkt-tools/ga-insight/pkg/services/insights"
	"github.com/mkt-tools/ga-insight/pkg/services/periods"
	"github.com/rs/zerolog"
)

// Querier is the analytics source the builder pulls from. An empty channel
// requests an unfiltered channel breakout.
type Querier interface {
	RunReport(ctx context.Context, period domain.Period, metrics []domain.Metric, channel string) (*domain.QueryResult, error)
}

// Builder runs report pipelines against a single property's querier.
type Builder struct {
	querier Querier
}

func NewBuilder(querier Querier) *Builder {
	return &Builder{querier: querier}
}

// MonthlyParams describes one monthly report run. Channel narrows every
// query to a single channel grouping; empty means totals across channels.
type MonthlyParams struct {
	Start   time.Time
	End     time.Time
	Metrics []domain.Metric
	Channel string
}

// WeeklyParams describes one weekly comparison run over two explicit windows.
type WeeklyParams struct {
	ThisWeek domain.Period
	PrevWeek domain.Period
	Metrics  []domain.Metric
	Channels []string
}

// Monthly fetches one summed row per calendar month in [Start, End] and
// derives the delta row and insight lines from the last two rows. A period
// that fails to fetch is logged, recorded on the report and skipped; the
// remaining periods still produce a report.
func (b *Builder) Monthly(ctx context.Context, params MonthlyParams) (*domain.MonthlyReport, error) {
	if len(params.Metrics) == 0 {
		return nil, &domain.MissingInputError{Field: "metrics"}
	}

	months, err := periods.Monthly(params.Start, params.End)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	rep := &domain.MonthlyReport{Periods: months, Metrics: params.Metrics}

	for _, period := range months {
		result, err := b.querier.RunReport(ctx, period, params.Metrics, params.Channel)
		if err != nil {
			logger.Warn().Err(err).Str("period", period.Label).Msg("skipping period")
			rep.FailedPeriods = append(rep.FailedPeriods, period.Label)
			continue
		}
		logger.Info().Str("period", period.Label).Int("rows", len(result.Rows)).Msg("period fetched")
		rep.Rows = append(rep.Rows, aggregate.SumRows(result, params.Metrics))
	}

	rep.Delta = insights.Deltas(rep.Rows, params.Metrics)
	rep.Insights = insights.Narratives(rep.Rows, params.Metrics)
	return rep, nil
}

// Weekly fetches a channel breakout for both windows and builds one
// comparison per selected channel, in selection order. A window that fails
// to fetch is logged, recorded and treated as all-zero so the comparison
// still renders.
func (b *Builder) Weekly(ctx context.Context, params WeeklyParams) (*domain.WeeklyReport, error) {
	if len(params.Metrics) == 0 {
		return nil, &domain.MissingInputError{Field: "metrics"}
	}
	if len(params.Channels) == 0 {
		return nil, &domain.MissingInputError{Field: "channels"}
	}
	for _, week := range []domain.Period{params.ThisWeek, params.PrevWeek} {
		if week.Start.After(week.End) {
			return nil, &domain.InvalidRangeError{Start: week.Start, End: week.End}
		}
	}

	logger := zerolog.Ctx(ctx)
	rep := &domain.WeeklyReport{
		ThisWeek: params.ThisWeek,
		PrevWeek: params.PrevWeek,
		Metrics:  params.Metrics,
	}

	byWeek := make(map[string]map[string]map[string]int64, 2)
	for _, week := range []domain.Period{params.ThisWeek, params.PrevWeek} {
		result, err := b.querier.RunReport(ctx, week, params.Metrics, "")
		if err != nil {
			logger.Warn().Err(err).Str("week", week.Label).Msg("week failed, zero-filling")
			rep.FailedWeeks = append(rep.FailedWeeks, week.Label)
			result = &domain.QueryResult{Period: week}
		}
		byWeek[week.Label] = aggregate.ByChannel(ctx, result, params.Metrics, params.Channels)
	}

	for _, channel := range params.Channels {
		this := byWeek[params.ThisWeek.Label][channel]
		prev := byWeek[params.PrevWeek.Label][channel]

		change := make(map[string]float64, len(params.Metrics))
		for _, m := range params.Metrics {
			change[m.Name] = insights.PercentChange(float64(this[m.Name]), float64(prev[m.Name]))
		}

		rep.Rows = append(rep.Rows, domain.ChannelComparison{
			Channel: channel,
			This:    this,
			Prev:    prev,
			Change:  change,
		})
	}

	return rep, nil
}
