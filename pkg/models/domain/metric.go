package domain

// Metric pairs a display name (used for headers, insights and chart titles)
// with the GA4 Data API metric key it resolves to.
type Metric struct {
	Name string
	Key  string
}

// Metrics is the fixed catalog of supported metrics, in presentation order.
var Metrics = []Metric{
	{Name: "Sessions", Key: "sessions"},
	{Name: "Users", Key: "totalUsers"},
	{Name: "Engagement Rate", Key: "engagementRate"},
	{Name: "Bounce Rate", Key: "bounceRate"},
	{Name: "Transactions", Key: "transactions"},
	{Name: "Add to Carts", Key: "addToCarts"},
	{Name: "Revenue", Key: "purchaseRevenue"},
	{Name: "Pageviews", Key: "screenPageViews"},
	{Name: "Conversions", Key: "conversions"},
	{Name: "Engaged Sessions", Key: "engagedSessions"},
}

// Channels lists the GA4 default channel groupings accepted as filter or
// breakout values.
var Channels = []string{
	"Cross-network", "Direct", "Display", "Email", "Mobile Push Notifications",
	"Organic Search", "Organic Shopping", "Organic Social", "Organic Video",
	"Paid Other", "Paid Search", "Paid Shopping", "Paid Social", "Referral",
	"Unassigned",
}

// MetricByName resolves a display name against the catalog.
func MetricByName(name string) (Metric, bool) {
	for _, m := range Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// DefaultMetrics is the monthly selection used when the caller picks nothing.
func DefaultMetrics() []Metric {
	return selection("Sessions", "Users")
}

// DefaultWeeklyMetrics is the selection used by the weekly comparison flow
// when the caller picks nothing.
func DefaultWeeklyMetrics() []Metric {
	return selection("Sessions", "Users", "Engaged Sessions")
}

// DefaultChannels is the weekly channel selection used when the caller picks
// nothing.
func DefaultChannels() []string {
	return []string{"Organic Search", "Paid Search"}
}

func selection(names ...string) []Metric {
	metrics := make([]Metric, 0, len(names))
	for _, n := range names {
		if m, ok := MetricByName(n); ok {
			metrics = append(metrics, m)
		}
	}
	return metrics
}
