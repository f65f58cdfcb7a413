package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mkt-tools/ga-insight/pkg/adapters"
	"github.com/mkt-tools/ga-insight/pkg/export/excel"
	"github.com/mkt-tools/ga-insight/pkg/models/domain"
	"github.com/mkt-tools/ga-insight/pkg/services/config"
	"github.com/mkt-tools/ga-insight/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const queryTimeout = 60 * time.Second

// ServiceFactory authenticates a service-account key and returns the report
// builder for one property.
type ServiceFactory func(ctx context.Context, propertyID string, credentials []byte) (*report.Builder, error)

type MonthlyCmd struct {
	profilePath string
	property    string
	keyFile     string
	startDate   string
	endDate     string
	channel     string
	metrics     []string
	out         string

	newService ServiceFactory
	output     io.Writer
}

func NewMonthlyCmd(factory ServiceFactory, output io.Writer) *cobra.Command {
	mc := &MonthlyCmd{newService: factory, output: output}
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Generate a month-over-month report for one channel",
		RunE:  mc.run,
	}

	cmd.Flags().StringVar(&mc.profilePath, "profile", "", "Path to a YAML report profile")
	cmd.Flags().StringVar(&mc.property, "property", "", "GA4 property ID")
	cmd.Flags().StringVar(&mc.keyFile, "key-file", "", "Path to the service account key file")
	cmd.Flags().StringVar(&mc.startDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mc.endDate, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mc.channel, "channel", "Organic Search", "Channel grouping to filter on (empty for totals)")
	cmd.Flags().StringSliceVar(&mc.metrics, "metrics", nil, "Metrics to include (default Sessions,Users)")
	cmd.Flags().StringVar(&mc.out, "out", "", "Output file path")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (mc *MonthlyCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(mc.output).With().Timestamp().Logger()
	ctx, cancel := context.WithTimeout(logger.WithContext(cmd.Context()), queryTimeout)
	defer cancel()

	profile, err := loadProfile(mc.profilePath)
	if err != nil {
		return err
	}

	property := firstOf(mc.property, profile.PropertyID)
	key, err := readKey(firstOf(mc.keyFile, profile.KeyFile))
	if err != nil {
		return err
	}

	start, err := adapters.ParseDate("start", mc.startDate)
	if err != nil {
		return err
	}
	end, err := adapters.ParseDate("end", mc.endDate)
	if err != nil {
		return err
	}

	names := mc.metrics
	if len(names) == 0 {
		names = profile.Metrics
	}
	metrics, err := adapters.MapMetricNames(names, domain.DefaultMetrics())
	if err != nil {
		return err
	}

	svc, err := mc.newService(ctx, property, key)
	if err != nil {
		return err
	}

	rep, err := svc.Monthly(ctx, report.MonthlyParams{
		Start:   start,
		End:     end,
		Metrics: metrics,
		Channel: mc.channel,
	})
	if err != nil {
		return err
	}

	path := outputPath(mc.out, profile.OutputDir, excel.MonthlyFileName)
	if err := writeWorkbook(path, func(r *excel.Reporter) error {
		return r.HandleMonthly(rep)
	}); err != nil {
		return err
	}

	for _, label := range rep.FailedPeriods {
		fmt.Fprintf(mc.output, "warning: no data for %s, period skipped\n", label)
	}
	if err := NewSummaryReporter(mc.output).HandleMonthly(rep); err != nil {
		return err
	}
	fmt.Fprintf(mc.output, "Report for %d period(s) written to %s\n", len(rep.Rows), path)
	return nil
}

func loadProfile(path string) (*config.Profile, error) {
	if path == "" {
		return &config.Profile{}, nil
	}
	return config.LoadProfile(path)
}

func readKey(path string) ([]byte, error) {
	if path == "" {
		return nil, &domain.MissingInputError{Field: "key-file"}
	}
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return key, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func outputPath(out, dir, defaultName string) string {
	if out != "" {
		return out
	}
	if dir != "" {
		return filepath.Join(dir, defaultName)
	}
	return defaultName
}

func writeWorkbook(path string, render func(*excel.Reporter) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := render(excel.NewReporter(f)); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
