package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/mkt-tools/ga-insight/pkg/adapters"
	"github.com/mkt-tools/ga-insight/pkg/export/excel"
	"github.com/mkt-tools/ga-insight/pkg/models/domain"
	"github.com/mkt-tools/ga-insight/pkg/services/periods"
	"github.com/mkt-tools/ga-insight/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type WeeklyCmd struct {
	profilePath string
	property    string
	keyFile     string
	thisStart   string
	thisEnd     string
	prevStart   string
	prevEnd     string
	channels    []string
	metrics     []string
	out         string

	newService ServiceFactory
	output     io.Writer
}

func NewWeeklyCmd(factory ServiceFactory, output io.Writer) *cobra.Command {
	wc := &WeeklyCmd{newService: factory, output: output}
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Compare two weeks across channel groupings",
		RunE:  wc.run,
	}

	cmd.Flags().StringVar(&wc.profilePath, "profile", "", "Path to a YAML report profile")
	cmd.Flags().StringVar(&wc.property, "property", "", "GA4 property ID")
	cmd.Flags().StringVar(&wc.keyFile, "key-file", "", "Path to the service account key file")
	cmd.Flags().StringVar(&wc.thisStart, "this-start", "", "This week's start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&wc.thisEnd, "this-end", "", "This week's end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&wc.prevStart, "prev-start", "", "Previous week's start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&wc.prevEnd, "prev-end", "", "Previous week's end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&wc.channels, "channels", nil, "Channel groupings to compare (default Organic Search,Paid Search)")
	cmd.Flags().StringSliceVar(&wc.metrics, "metrics", nil, "Metrics to include (default Sessions,Users,Engaged Sessions)")
	cmd.Flags().StringVar(&wc.out, "out", "", "Output file path")

	_ = cmd.MarkFlagRequired("this-start")
	_ = cmd.MarkFlagRequired("this-end")
	_ = cmd.MarkFlagRequired("prev-start")
	_ = cmd.MarkFlagRequired("prev-end")

	return cmd
}

func (wc *WeeklyCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(wc.output).With().Timestamp().Logger()
	ctx, cancel := context.WithTimeout(logger.WithContext(cmd.Context()), queryTimeout)
	defer cancel()

	profile, err := loadProfile(wc.profilePath)
	if err != nil {
		return err
	}

	property := firstOf(wc.property, profile.PropertyID)
	key, err := readKey(firstOf(wc.keyFile, profile.KeyFile))
	if err != nil {
		return err
	}

	thisWeek, err := parseWindow(domain.ThisWeekLabel, "this-start", wc.thisStart, "this-end", wc.thisEnd)
	if err != nil {
		return err
	}
	prevWeek, err := parseWindow(domain.PrevWeekLabel, "prev-start", wc.prevStart, "prev-end", wc.prevEnd)
	if err != nil {
		return err
	}

	names := wc.metrics
	if len(names) == 0 {
		names = profile.Metrics
	}
	metrics, err := adapters.MapMetricNames(names, domain.DefaultWeeklyMetrics())
	if err != nil {
		return err
	}

	channels := wc.channels
	if len(channels) == 0 {
		channels = profile.Channels
	}
	if len(channels) == 0 {
		channels = domain.DefaultChannels()
	}

	svc, err := wc.newService(ctx, property, key)
	if err != nil {
		return err
	}

	rep, err := svc.Weekly(ctx, report.WeeklyParams{
		ThisWeek: thisWeek,
		PrevWeek: prevWeek,
		Metrics:  metrics,
		Channels: channels,
	})
	if err != nil {
		return err
	}

	path := outputPath(wc.out, profile.OutputDir, excel.WeeklyFileName)
	if err := writeWorkbook(path, func(r *excel.Reporter) error {
		return r.HandleWeekly(rep)
	}); err != nil {
		return err
	}

	for _, label := range rep.FailedWeeks {
		fmt.Fprintf(wc.output, "warning: no data for %s, values zero-filled\n", label)
	}
	if err := NewSummaryReporter(wc.output).HandleWeekly(rep); err != nil {
		return err
	}
	fmt.Fprintf(wc.output, "Comparison for %d channel(s) written to %s\n", len(rep.Rows), path)
	return nil
}

func parseWindow(label, startField, start, endField, end string) (domain.Period, error) {
	s, err := adapters.ParseDate(startField, start)
	if err != nil {
		return domain.Period{}, err
	}
	e, err := adapters.ParseDate(endField, end)
	if err != nil {
		return domain.Period{}, err
	}
	return periods.Window(label, s, e)
}
