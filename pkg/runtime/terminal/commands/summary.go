package commands

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/mkt-tools/ga-insight/pkg/models/domain"
)

// SummaryReporter prints a plain-text recap of a generated report to the
// console, next to the xlsx artifact.
type SummaryReporter struct {
	writer io.Writer
}

func NewSummaryReporter(writer io.Writer) *SummaryReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &SummaryReporter{writer: writer}
}

func (c *SummaryReporter) HandleMonthly(rep *domain.MonthlyReport) error {
	tmpl := `
{{len .Rows}} period(s), {{len .Metrics}} metric(s)
{{range $row := .Rows}}{{$row.Key}}:{{range $m := $.Metrics}} {{$m.Name}}={{index $row.Values $m.Name}}{{end}}
{{end}}{{if .Delta}}{{.Delta.Key}}:{{range $m := .Metrics}} {{$m.Name}}={{index $.Delta.PercentChange $m.Name}}%{{end}}
{{end}}{{range .Insights}}{{.Text}}
{{end}}`
	t, err := template.New("monthly").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, rep)
}

func (c *SummaryReporter) HandleWeekly(rep *domain.WeeklyReport) error {
	tmpl := `
{{len .Rows}} channel(s), {{len .Metrics}} metric(s)
{{range $row := .Rows}}=== {{$row.Channel}} ===
This Week:{{range $m := $.Metrics}} {{$m.Name}}={{index $row.This $m.Name}}{{end}}
Prev Week:{{range $m := $.Metrics}} {{$m.Name}}={{index $row.Prev $m.Name}}{{end}}
% Change:{{range $m := $.Metrics}} {{$m.Name}}={{printf "%.2f" (index $row.Change $m.Name)}}%{{end}}
{{end}}`
	t, err := template.New("weekly").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, rep)
}
