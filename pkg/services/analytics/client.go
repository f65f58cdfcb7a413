// Package analytics wraps the GA4 Data API behind the pipeline's query
// contract. All value parsing happens here; downstream stages only see
// numeric rows.
package analytics

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mkt-tools/ga-insight/pkg/models/domain"
	"golang.org/x/oauth2/google"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

const channelDimension = "sessionDefaultChannelGrouping"

// Client issues runReport calls for a single GA4 property.
type Client struct {
	svc      *analyticsdata.Service
	property string
}

// NewClient validates the service-account key and builds an authenticated
// Data API client scoped to one property. A bad key surfaces as
// *domain.CredentialError before any query is issued.
func NewClient(ctx context.Context, propertyID string, key []byte) (*Client, error) {
	if propertyID == "" {
		return nil, &domain.MissingInputError{Field: "property_id"}
	}
	if len(key) == 0 {
		return nil, &domain.MissingInputError{Field: "credentials"}
	}

	creds, err := google.CredentialsFromJSON(ctx, key, analyticsdata.AnalyticsReadonlyScope)
	if err != nil {
		return nil, &domain.CredentialError{Err: err}
	}

	svc, err := analyticsdata.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, &domain.CredentialError{Err: err}
	}

	return &Client{
		svc:      svc,
		property: "properties/" + propertyID,
	}, nil
}

// RunReport fetches the selected metrics for one period, grouped by channel.
// A non-empty channel restricts the report to that channel with an exact
// match; an empty channel leaves the breakout unfiltered. Transport and API
// failures come back as *domain.QueryFailedError carrying the period label.
func (c *Client) RunReport(
	ctx context.Context,
	period domain.Period,
	metrics []domain.Metric,
	channel string,
) (*domain.QueryResult, error) {
	resp, err := c.svc.Properties.RunReport(c.property, buildRequest(period, metrics, channel)).
		Context(ctx).Do()
	if err != nil {
		return nil, &domain.QueryFailedError{Label: period.Label, Err: err}
	}
	return parseResponse(period, metrics, resp)
}

func buildRequest(period domain.Period, metrics []domain.Metric, channel string) *analyticsdata.RunReportRequest {
	req := &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{{
			StartDate: period.Start.Format("2006-01-02"),
			EndDate:   period.End.Format("2006-01-02"),
		}},
		Dimensions: []*analyticsdata.Dimension{{Name: channelDimension}},
	}

	for _, m := range metrics {
		req.Metrics = append(req.Metrics, &analyticsdata.Metric{Name: m.Key})
	}

	if channel != "" {
		req.DimensionFilter = &analyticsdata.FilterExpression{
			Filter: &analyticsdata.Filter{
				FieldName: channelDimension,
				StringFilter: &analyticsdata.StringFilter{
					MatchType: "EXACT",
					Value:     channel,
				},
			},
		}
	}

	return req
}

// parseResponse converts the API's string-valued rows into numeric query
// rows. Metric values the API cannot represent as numbers fail the whole
// period rather than silently dropping to zero.
func parseResponse(
	period domain.Period,
	metrics []domain.Metric,
	resp *analyticsdata.RunReportResponse,
) (*domain.QueryResult, error) {
	result := &domain.QueryResult{Period: period}

	for _, row := range resp.Rows {
		qr := domain.QueryRow{Values: make([]float64, 0, len(metrics))}
		if len(row.DimensionValues) > 0 {
			qr.Dimension = row.DimensionValues[0].Value
		}
		for i := range metrics {
			if i >= len(row.MetricValues) {
				qr.Values = append(qr.Values, 0)
				continue
			}
			v, err := strconv.ParseFloat(row.MetricValues[i].Value, 64)
			if err != nil {
				return nil, &domain.QueryFailedError{
					Label: period.Label,
					Err:   fmt.Errorf("metric %s: unparseable value %q: %w", metrics[i].Key, row.MetricValues[i].Value, err),
				}
			}
			qr.Values = append(qr.Values, v)
		}
		result.Rows = append(result.Rows, qr)
	}

	return result, nil
}
