package analytics

import (
	"context"

	"github.com/mkt-tools/ga-insight/pkg/services/report"
)

// NewReportBuilder authenticates against the Data API and returns a report
// builder bound to the property. This is the factory both the CLI and the
// web handlers plug in.
func NewReportBuilder(ctx context.Context, propertyID string, key []byte) (*report.Builder, error) {
	client, err := NewClient(ctx, propertyID, key)
	if err != nil {
		return nil, err
	}
	return report.NewBuilder(client), nil
}
