// Package periods turns caller-supplied dates into the reporting windows the
// rest of the pipeline consumes.
package periods

import (
	"time"

	"github.com/mkt-tools/ga-insight/pkg/models/domain"
)

// Monthly partitions [start, end] into one period per calendar month. Each
// period starts on the first of its month, ends on the earlier of the month's
// last day and end, and is labeled with the month's short name. Labels repeat
// when the span crosses the same month in different years; that collision is
// a known limitation of month-name labeling.
func Monthly(start, end time.Time) ([]domain.Period, error) {
	if start.After(end) {
		return nil, &domain.InvalidRangeError{Start: start, End: end}
	}

	var periods []domain.Period
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	for !cur.After(end) {
		next := cur.AddDate(0, 1, 0)
		monthEnd := next.AddDate(0, 0, -1)
		if monthEnd.After(end) {
			monthEnd = end
		}
		periods = append(periods, domain.Period{
			Label: cur.Format("Jan"),
			Start: cur,
			End:   monthEnd,
		})
		cur = next
	}
	return periods, nil
}

// Window validates a single explicit period, used by the weekly flow where
// the caller supplies both comparison windows directly.
func Window(label string, start, end time.Time) (domain.Period, error) {
	if start.After(end) {
		return domain.Period{}, &domain.InvalidRangeError{Start: start, End: end}
	}
	return domain.Period{Label: label, Start: start, End: end}, nil
}
