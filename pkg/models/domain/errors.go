package domain

import (
	"fmt"
	"time"
)

// InvalidRangeError reports a reporting window whose start falls after its
// end. It is fatal and raised before any query is issued.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: start %s is after end %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// MissingInputError reports a required parameter that was not provided.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}

// CredentialError wraps a service-account key that could not be parsed or
// exchanged for an authenticated client.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("invalid analytics credentials: %v", e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// QueryFailedError wraps a transport or API failure for a single period.
// The monthly flow skips the period and continues; the weekly flow
// zero-fills it.
type QueryFailedError struct {
	Label string
	Err   error
}

func (e *QueryFailedError) Error() string {
	return fmt.Sprintf("query for %q failed: %v", e.Label, e.Err)
}

func (e *QueryFailedError) Unwrap() error { return e.Err }
