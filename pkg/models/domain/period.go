package domain

import "time"

// Period is a labeled reporting window. Start and End are inclusive dates;
// the generator guarantees Start <= End.
type Period struct {
	Label string
	Start time.Time
	End   time.Time
}

// Week labels used by the weekly comparison flow.
const (
	ThisWeekLabel = "This Week"
	PrevWeekLabel = "Prev Week"
)
