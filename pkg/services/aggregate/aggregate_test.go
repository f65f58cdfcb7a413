package aggregate

import (
	"context"
	"testing"

	"github.com/mkt-tools/ga-insight/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

var metrics = []domain.Metric{
	{Name: "Sessions", Key: "sessions"},
	{Name: "Users", Key: "totalUsers"},
}

func TestSumRows(t *testing.T) {
	tests := []struct {
		name     string
		rows     []domain.QueryRow
		expected map[string]float64
	}{
		{
			name:     "single row",
			rows:     []domain.QueryRow{{Dimension: "Organic Search", Values: []float64{1000, 800}}},
			expected: map[string]float64{"Sessions": 1000, "Users": 800},
		},
		{
			name: "multiple rows summed",
			rows: []domain.QueryRow{
				{Dimension: "Organic Search", Values: []float64{100, 80}},
				{Dimension: "Organic Search", Values: []float64{50.5, 20}},
			},
			expected: map[string]float64{"Sessions": 150.5, "Users": 100},
		},
		{
			name:     "no rows defaults to zero",
			rows:     nil,
			expected: map[string]float64{"Sessions": 0, "Users": 0},
		},
		{
			name:     "short row leaves trailing metrics at zero",
			rows:     []domain.QueryRow{{Values: []float64{42}}},
			expected: map[string]float64{"Sessions": 42, "Users": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &domain.QueryResult{
				Period: domain.Period{Label: "Jan"},
				Rows:   tt.rows,
			}
			row := SumRows(result, metrics)
			assert.Equal(t, "Jan", row.Key)
			assert.Equal(t, tt.expected, row.Values)
		})
	}
}

func TestByChannel(t *testing.T) {
	result := &domain.QueryResult{
		Period: domain.Period{Label: domain.ThisWeekLabel},
		Rows: []domain.QueryRow{
			{Dimension: "Paid Search", Values: []float64{200, 150}},
			{Dimension: "Direct", Values: []float64{999, 999}}, // not selected
		},
	}

	out := ByChannel(context.Background(), result, metrics, []string{"Organic Search", "Paid Search"})

	assert.Equal(t, map[string]int64{"Sessions": 200, "Users": 150}, out["Paid Search"])
	// Selected but absent from the response: zero-filled.
	assert.Equal(t, map[string]int64{"Sessions": 0, "Users": 0}, out["Organic Search"])
	// Unselected channels are not carried along.
	_, ok := out["Direct"]
	assert.False(t, ok)
}

func TestByChannelDuplicateLastWriteWins(t *testing.T) {
	result := &domain.QueryResult{
		Period: domain.Period{Label: domain.ThisWeekLabel},
		Rows: []domain.QueryRow{
			{Dimension: "Paid Search", Values: []float64{1, 1}},
			{Dimension: "Paid Search", Values: []float64{7, 8}},
		},
	}

	out := ByChannel(context.Background(), result, metrics, []string{"Paid Search"})
	assert.Equal(t, map[string]int64{"Sessions": 7, "Users": 8}, out["Paid Search"])
}

func TestByChannelTruncatesFractions(t *testing.T) {
	result := &domain.QueryResult{
		Period: domain.Period{Label: domain.PrevWeekLabel},
		Rows:   []domain.QueryRow{{Dimension: "Paid Search", Values: []float64{90.9, 10.1}}},
	}

	out := ByChannel(context.Background(), result, metrics, []string{"Paid Search"})
	assert.Equal(t, map[string]int64{"Sessions": 90, "Users": 10}, out["Paid Search"])
}
