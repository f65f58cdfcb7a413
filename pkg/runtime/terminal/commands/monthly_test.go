package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkt-tools/ga-insight/pkg/models/domain"
	"github.com/mkt-tools/ga-insight/pkg/services/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubQuerier struct {
	rows map[string][]domain.QueryRow
}

func (s *stubQuerier) RunReport(
	_ context.Context,
	period domain.Period,
	_ []domain.Metric,
	_ string,
) (*domain.QueryResult, error) {
	return &domain.QueryResult{Period: period, Rows: s.rows[period.Label]}, nil
}

func stubFactory(t *testing.T, q report.Querier) ServiceFactory {
	t.Helper()
	return func(ctx context.Context, propertyID string, credentials []byte) (*report.Builder, error) {
		assert.Equal(t, "123456", propertyID)
		assert.NotEmpty(t, credentials)
		return report.NewBuilder(q), nil
	}
}

func writeKeyFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "key.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))
	return path
}

func TestMonthlyCmd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.xlsx")
	querier := &stubQuerier{rows: map[string][]domain.QueryRow{
		"Jan": {{Dimension: "Organic Search", Values: []float64{1000, 800}}},
		"Feb": {{Dimension: "Organic Search", Values: []float64{1100, 750}}},
	}}

	var logs bytes.Buffer
	cmd := NewMonthlyCmd(stubFactory(t, querier), &logs)
	cmd.SetArgs([]string{
		"--property", "123456",
		"--key-file", writeKeyFile(t, dir),
		"--start", "2024-01-01",
		"--end", "2024-02-29",
		"--out", out,
	})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, logs.String(), "Report for 2 period(s) written to "+out)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("GA4 Data", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Feb", v)
}

func TestMonthlyCmdMissingKeyFile(t *testing.T) {
	cmd := NewMonthlyCmd(stubFactory(t, &stubQuerier{}), new(bytes.Buffer))
	cmd.SetArgs([]string{
		"--property", "123456",
		"--start", "2024-01-01",
		"--end", "2024-01-31",
	})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key-file")
}

func TestWeeklyCmd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "weekly.xlsx")
	querier := &stubQuerier{rows: map[string][]domain.QueryRow{
		domain.ThisWeekLabel: {{Dimension: "Paid Search", Values: []float64{200, 150, 90}}},
		domain.PrevWeekLabel: {{Dimension: "Paid Search", Values: []float64{100, 100, 45}}},
	}}

	var logs bytes.Buffer
	cmd := NewWeeklyCmd(stubFactory(t, querier), &logs)
	cmd.SetArgs([]string{
		"--property", "123456",
		"--key-file", writeKeyFile(t, dir),
		"--this-start", "2024-07-08", "--this-end", "2024-07-14",
		"--prev-start", "2024-07-01", "--prev-end", "2024-07-07",
		"--channels", "Paid Search",
		"--out", out,
	})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, logs.String(), "Comparison for 1 channel(s)")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Weekly Comparison", "C4")
	require.NoError(t, err)
	assert.Equal(t, "100.00%", v)
}
