// Package statuslog defines the audit trail of order status updates issued
// from the storefront.
//
// Every attempt is recorded, including failed ones, so that a customer
// report of "I pressed Received and nothing happened" can be matched to the
// backend call and, through TraceID, to its distributed trace.
package statuslog

import "time"

// Outcome is the result of a status-update attempt.
type Outcome string

const (
	OutcomeSucceeded Outcome = "SUCCEEDED"
	OutcomeFailed    Outcome = "FAILED"
)

// Entry is a single row of the status_updates table.
type Entry struct {
	// OrderID is the backend order the update was issued for.
	OrderID string

	// RequestedStatus is the status the storefront asked the backend to set.
	RequestedStatus string

	Outcome Outcome

	// Error is the failure message; empty on success.
	Error string

	// TraceID and SpanID identify the OpenTelemetry span active when the
	// attempt was made. Both are empty when tracing is disabled.
	TraceID string
	SpanID  string

	RequestedAt time.Time
}
