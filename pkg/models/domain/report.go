package domain

// QueryRow is one row of an analytics response: an optional dimension value
// (the channel, when querying with a breakout dimension) and one parsed
// numeric value per requested metric, in request order.
type QueryRow struct {
	Dimension string
	Values    []float64
}

// QueryResult holds the normalized rows returned for a single period.
type QueryResult struct {
	Period Period
	Rows   []QueryRow
}

// AggregateRow is one reduced record: the period label (monthly flow) or the
// channel name (weekly flow) mapped to a value per selected metric. Every
// selected metric is present, defaulting to 0.
type AggregateRow struct {
	Key    string
	Values map[string]float64
}

// DeltaRow carries the percent change per metric between the two most recent
// aggregate rows. A zero previous value yields a 0 percent change by policy.
type DeltaRow struct {
	Key           string
	PercentChange map[string]float64
}

// ChangeKind classifies a period-over-period delta.
type ChangeKind string

const (
	Improvement ChangeKind = "improvement"
	Drop        ChangeKind = "drop"
)

// Insight is one narrative comparison line for a metric.
type Insight struct {
	Metric  string
	Kind    ChangeKind
	Percent float64
	Text    string
}

// MonthlyReport is the aggregate produced by the monthly flow, ready for
// rendering. Rows are chronological; Delta and Insights are nil/empty when
// fewer than two periods produced data.
type MonthlyReport struct {
	Periods       []Period
	Metrics       []Metric
	Rows          []AggregateRow
	Delta         *DeltaRow
	Insights      []Insight
	FailedPeriods []string
}

// ChannelComparison is one channel's weekly three-way record: this week's
// and the previous week's integer counts plus the percent change per metric.
type ChannelComparison struct {
	Channel string
	This    map[string]int64
	Prev    map[string]int64
	Change  map[string]float64
}

// WeeklyReport is the aggregate produced by the weekly comparison flow.
// Rows follow the caller's channel selection order. A week that failed to
// fetch is listed in FailedWeeks and contributes all-zero values.
type WeeklyReport struct {
	ThisWeek    Period
	PrevWeek    Period
	Metrics     []Metric
	Rows        []ChannelComparison
	FailedWeeks []string
}
