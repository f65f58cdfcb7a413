package excel

import (
	"bytes"
	"testing"

	"github.com/mkt-tools/ga-insight/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var metrics = []domain.Metric{{Name: "Sessions", Key: "sessions"}}

func monthlyFixture() *domain.MonthlyReport {
	rows := []domain.AggregateRow{
		{Key: "Jan", Values: map[string]float64{"Sessions": 100}},
		{Key: "Feb", Values: map[string]float64{"Sessions": 150}},
		{Key: "Mar", Values: map[string]float64{"Sessions": 120}},
	}
	return &domain.MonthlyReport{
		Metrics: metrics,
		Rows:    rows,
		Delta: &domain.DeltaRow{
			Key:           "% Difference",
			PercentChange: map[string]float64{"Sessions": -20},
		},
		Insights: []domain.Insight{{
			Metric:  "Sessions",
			Kind:    domain.Drop,
			Percent: -20,
			Text:    "We observed a drop of 20% in Sessions in Mar compared to Feb.",
		}},
	}
}

func reopen(t *testing.T, write func(*Reporter) error) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, write(NewReporter(&buf)))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestMonthlyRoundTrip(t *testing.T) {
	rep := monthlyFixture()
	f := reopen(t, func(r *Reporter) error { return r.HandleMonthly(rep) })

	assert.Equal(t, []string{monthlySheet, chartSheet}, f.GetSheetList())

	cell := func(ref string) string {
		v, err := f.GetCellValue(monthlySheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Month", cell("A1"))
	assert.Equal(t, "Sessions", cell("B1"))
	assert.Equal(t, "Jan", cell("A2"))
	assert.Equal(t, "Feb", cell("A3"))
	assert.Equal(t, "Mar", cell("A4"))
	assert.Equal(t, "100", cell("B2"))
	assert.Equal(t, "150", cell("B3"))
	assert.Equal(t, "120", cell("B4"))

	// Exactly one delta row, directly under the data, comparing Feb -> Mar.
	assert.Equal(t, "% Difference", cell("A5"))
	assert.Equal(t, "", cell("A6"))
	raw, err := f.GetCellValue(monthlySheet, "B5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "-0.2", raw)
}

func TestMonthlyHighlightsBlock(t *testing.T) {
	rep := monthlyFixture()
	f := reopen(t, func(r *Reporter) error { return r.HandleMonthly(rep) })

	// Title sits to the right of the table, below the delta row.
	title, err := f.GetCellValue(monthlySheet, "C6")
	require.NoError(t, err)
	assert.Equal(t, "Highlights - Mar vs Feb", title)

	sentence, err := f.GetCellValue(monthlySheet, "C7")
	require.NoError(t, err)
	assert.Equal(t, "We observed a drop of 20% in Sessions in Mar compared to Feb.", sentence)
}

func TestMonthlyWithoutDelta(t *testing.T) {
	rep := &domain.MonthlyReport{
		Metrics: metrics,
		Rows:    []domain.AggregateRow{{Key: "Jan", Values: map[string]float64{"Sessions": 100}}},
	}
	f := reopen(t, func(r *Reporter) error { return r.HandleMonthly(rep) })

	v, err := f.GetCellValue(monthlySheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestMonthlyEmptyStillRenders(t *testing.T) {
	rep := &domain.MonthlyReport{Metrics: metrics}
	f := reopen(t, func(r *Reporter) error { return r.HandleMonthly(rep) })

	// Header only, no chart sheet without data rows.
	v, err := f.GetCellValue(monthlySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Month", v)
	assert.Equal(t, []string{monthlySheet}, f.GetSheetList())
}

func TestWeeklyRoundTrip(t *testing.T) {
	weeklyMetrics := []domain.Metric{
		{Name: "Sessions", Key: "sessions"},
		{Name: "Users", Key: "totalUsers"},
		{Name: "Engaged Sessions", Key: "engagedSessions"},
	}
	rep := &domain.WeeklyReport{
		Metrics: weeklyMetrics,
		Rows: []domain.ChannelComparison{
			{
				Channel: "Paid Search",
				This:    map[string]int64{"Sessions": 200, "Users": 150, "Engaged Sessions": 90},
				Prev:    map[string]int64{"Sessions": 0, "Users": 0, "Engaged Sessions": 0},
				Change:  map[string]float64{"Sessions": 0, "Users": 0, "Engaged Sessions": 0},
			},
			{
				Channel: "Organic Search",
				This:    map[string]int64{"Sessions": 110, "Users": 100, "Engaged Sessions": 80},
				Prev:    map[string]int64{"Sessions": 100, "Users": 80, "Engaged Sessions": 60},
				Change:  map[string]float64{"Sessions": 10, "Users": 25, "Engaged Sessions": 33.33},
			},
		},
	}

	f := reopen(t, func(r *Reporter) error { return r.HandleWeekly(rep) })
	assert.Equal(t, []string{weeklySheet}, f.GetSheetList())

	cell := func(ref string) string {
		v, err := f.GetCellValue(weeklySheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Date", cell("B1"))
	assert.Equal(t, "Sessions", cell("C1"))
	assert.Equal(t, "Engaged Sessions", cell("E1"))

	// First channel block: rows 2-4 with the channel name merged down.
	assert.Equal(t, "Paid Search", cell("A2"))
	assert.Equal(t, domain.ThisWeekLabel, cell("B2"))
	assert.Equal(t, "200", cell("C2"))
	assert.Equal(t, domain.PrevWeekLabel, cell("B3"))
	assert.Equal(t, "0", cell("C3"))
	assert.Equal(t, "% Change", cell("B4"))
	assert.Equal(t, "0.00%", cell("C4"))

	merged, err := f.GetMergeCells(weeklySheet)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, "A2", merged[0].GetStartAxis())
	assert.Equal(t, "A4", merged[0].GetEndAxis())

	// Second channel block starts right below the first.
	assert.Equal(t, "Organic Search", cell("A5"))
	assert.Equal(t, "33.33%", cell("E7"))
}
