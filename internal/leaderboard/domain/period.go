// Package domain provides core definitions for the leaderboard bounded context.
package domain

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

var knownPeriods = map[string]struct{}{
	PeriodDaily:   {},
	PeriodWeekly:  {},
	PeriodMonthly: {},
	PeriodYearly:  {},
}

// IsKnownPeriod reports whether period is a recognized time bucket.
func IsKnownPeriod(period string) bool {
	_, ok := knownPeriods[period]
	return ok
}

// Trend describes an entry's rank movement versus the previous snapshot.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendSame = "same"
)
