// Package excel renders monthly and weekly reports into xlsx workbooks.
package excel

import (
	"fmt"
	"io"
	"math"

	"github.com/mkt-tools/ga-insight/pkg/models/domain"
	"github.com/mkt-tools/ga-insight/pkg/services/insights"
	"github.com/xuri/excelize/v2"
)

const (
	monthlySheet = "GA4 Data"
	chartSheet   = "Graphs"
	weeklySheet  = "Weekly Comparison"

	// Rows between consecutive chart anchors on the chart sheet.
	chartRowStep = 15

	headerFill       = "1F4E78"
	weeklyHeaderFill = "2F75B5"
	improvementColor = "006400"
	dropColor        = "FF0000"
	chartBarColor    = "0000FF"
	scaleLowColor    = "#F8696B"
	scaleMidColor    = "#FFEB84"
	scaleHighColor   = "#63BE7B"
)

// Default artifact names, shared by the CLI and the web handlers.
const (
	MonthlyFileName = "GA4_Report_Insights.xlsx"
	WeeklyFileName  = "Weekly_Comparison_Report.xlsx"
)

// Reporter serializes finished reports to a writer as xlsx.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	return &Reporter{writer: writer}
}

func (r *Reporter) HandleMonthly(rep *domain.MonthlyReport) error {
	f, err := BuildMonthly(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(r.writer)
}

func (r *Reporter) HandleWeekly(rep *domain.WeeklyReport) error {
	f, err := BuildWeekly(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(r.writer)
}

type styleSet struct {
	header  int
	content int
	percent int
}

func newStyles(f *excelize.File, fill string) (styleSet, error) {
	var s styleSet
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return s, err
	}

	s.content, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return s, err
	}

	s.percent, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
		NumFmt:    10, // 0.00%
	})
	return s, err
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		borders = append(borders, excelize.Border{Type: side, Color: "000000", Style: 1})
	}
	return borders
}

// sheetWriter addresses cells by (column, row) coordinates and carries the
// first error forward, so the layout code stays free of address arithmetic.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) setCell(col, row int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = err
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
	}
}

func (w *sheetWriter) setRichText(col, row int, runs []excelize.RichTextRun, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellRichText(w.sheet, cell, runs); err != nil {
		w.err = err
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
	}
}

func (w *sheetWriter) mergeColumn(col, fromRow, toRow int) {
	if w.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(col, fromRow)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(col, toRow)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.MergeCell(w.sheet, from, to)
}

func (w *sheetWriter) columnRange(col, fromRow, toRow int) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	from, err := excelize.CoordinatesToCellName(col, fromRow)
	if err != nil {
		return "", err
	}
	to, err := excelize.CoordinatesToCellName(col, toRow)
	if err != nil {
		return "", err
	}
	return from + ":" + to, nil
}

// BuildMonthly lays out the data sheet (headers, rows, delta row, color
// scales, highlight sentences) and the chart sheet.
func BuildMonthly(rep *domain.MonthlyReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", monthlySheet); err != nil {
		return nil, err
	}

	styles, err := newStyles(f, headerFill)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: monthlySheet}

	headers := append([]string{"Month"}, metricNames(rep.Metrics)...)
	for i, h := range headers {
		w.setCell(i+1, 1, h, styles.header)
	}

	for i, row := range rep.Rows {
		w.setCell(1, i+2, row.Key, styles.content)
		for j, m := range rep.Metrics {
			w.setCell(j+2, i+2, row.Values[m.Name], styles.content)
		}
	}

	if rep.Delta != nil {
		deltaRow := len(rep.Rows) + 2
		w.setCell(1, deltaRow, rep.Delta.Key, styles.content)
		for j, m := range rep.Metrics {
			// The delta cell holds the rounded percentage scaled into a
			// 0.00%-formatted value; the narrative keeps the plain number.
			w.setCell(j+2, deltaRow, rep.Delta.PercentChange[m.Name]/100, styles.percent)
		}
	}

	if err := addColorScales(w, len(rep.Metrics), len(rep.Rows)); err != nil {
		return nil, err
	}
	addHighlights(w, rep, styles)

	if w.err != nil {
		return nil, w.err
	}

	if err := addCharts(f, rep); err != nil {
		return nil, err
	}
	return f, nil
}

// addColorScales puts a red/yellow/green scale over each metric column's
// data rows. Purely visual; the delta row is excluded.
func addColorScales(w *sheetWriter, metricCount, rowCount int) error {
	if rowCount == 0 {
		return nil
	}
	for col := 2; col <= metricCount+1; col++ {
		ref, err := w.columnRange(col, 2, rowCount+1)
		if err != nil {
			return err
		}
		err = w.f.SetConditionalFormat(w.sheet, ref, []excelize.ConditionalFormatOptions{{
			Type:     "3_color_scale",
			Criteria: "=",
			MinType:  "min",
			MidType:  "percentile",
			MidValue: "50",
			MaxType:  "max",
			MinColor: scaleLowColor,
			MidColor: scaleMidColor,
			MaxColor: scaleHighColor,
		}})
		if err != nil {
			return err
		}
	}
	return nil
}

// addHighlights writes the rich-text insight block to the right of the data
// table: a styled title plus one colored sentence per metric.
func addHighlights(w *sheetWriter, rep *domain.MonthlyReport, styles styleSet) {
	if len(rep.Insights) == 0 {
		return
	}

	cur := rep.Rows[len(rep.Rows)-1].Key
	prev := rep.Rows[len(rep.Rows)-2].Key
	col := len(rep.Metrics) + 2
	titleRow := len(rep.Rows) + 3

	w.setCell(col, titleRow, fmt.Sprintf("Highlights - %s vs %s", cur, prev), styles.header)

	for i, ins := range rep.Insights {
		color := improvementColor
		if ins.Kind == domain.Drop {
			color = dropColor
		}
		runs := []excelize.RichTextRun{
			{Text: "We observed a "},
			{
				Text: fmt.Sprintf("%s of %s%%", ins.Kind, insights.FormatPercent(math.Abs(ins.Percent))),
				Font: &excelize.Font{Bold: true, Color: color},
			},
			{Text: fmt.Sprintf(" in %s in %s compared to %s.", ins.Metric, cur, prev)},
		}
		w.setRichText(col, titleRow+i+1, runs, styles.content)
	}
}

// addCharts adds one column chart per metric, stacked down the chart sheet.
func addCharts(f *excelize.File, rep *domain.MonthlyReport) error {
	if len(rep.Rows) == 0 {
		return nil
	}
	if _, err := f.NewSheet(chartSheet); err != nil {
		return err
	}

	lastDataRow := len(rep.Rows) + 1
	for i, m := range rep.Metrics {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return err
		}
		anchor, err := excelize.CoordinatesToCellName(1, i*chartRowStep+1)
		if err != nil {
			return err
		}

		err = f.AddChart(chartSheet, anchor, &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s vs. Month", m.Name),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", monthlySheet, lastDataRow),
				Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", monthlySheet, col, col, lastDataRow),
				Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{chartBarColor}},
			}},
			Title:  []excelize.RichTextRun{{Text: fmt.Sprintf("%s per Month", m.Name)}},
			Legend: excelize.ChartLegend{Position: "none"},
			XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Month"}}},
			YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: m.Name}}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// BuildWeekly lays out the channel comparison sheet: three rows per channel
// (this week, previous week, percent change) with the channel name merged
// down the first column.
func BuildWeekly(rep *domain.WeeklyReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", weeklySheet); err != nil {
		return nil, err
	}

	styles, err := newStyles(f, weeklyHeaderFill)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: weeklySheet}

	w.setCell(1, 1, "", styles.header)
	w.setCell(2, 1, "Date", styles.header)
	for i, name := range metricNames(rep.Metrics) {
		w.setCell(i+3, 1, name, styles.header)
	}

	row := 2
	for _, cmp := range rep.Rows {
		w.mergeColumn(1, row, row+2)
		w.setCell(1, row, cmp.Channel, styles.header)

		w.setCell(2, row, domain.ThisWeekLabel, styles.content)
		w.setCell(2, row+1, domain.PrevWeekLabel, styles.content)
		w.setCell(2, row+2, "% Change", styles.content)

		for i, m := range rep.Metrics {
			col := i + 3
			w.setCell(col, row, cmp.This[m.Name], styles.content)
			w.setCell(col, row+1, cmp.Prev[m.Name], styles.content)
			w.setCell(col, row+2, fmt.Sprintf("%.2f%%", cmp.Change[m.Name]), styles.content)
		}
		row += 3
	}

	if w.err != nil {
		return nil, w.err
	}
	return f, nil
}

func metricNames(metrics []domain.Metric) []string {
	names := make([]string, 0, len(metrics))
	for _, m := range metrics {
		names = append(names, m.Name)
	}
	return names
}
