package statuslog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active span from ctx. Without a valid span both
// fields are empty.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an Entry for an attempt that finished with err (nil on
// success), stamping it with the trace info found in ctx.
//
//	entry := statuslog.NewEntry(ctx, orderID, "Delivered", err)
//	_ = repo.Save(ctx, entry)
func NewEntry(ctx context.Context, orderID, requestedStatus string, err error) *Entry {
	ti := ExtractTraceInfo(ctx)

	e := &Entry{
		OrderID:         orderID,
		RequestedStatus: requestedStatus,
		Outcome:         OutcomeSucceeded,
		TraceID:         ti.TraceID,
		SpanID:          ti.SpanID,
		RequestedAt:     time.Now().UTC(),
	}
	if err != nil {
		e.Outcome = OutcomeFailed
		e.Error = err.Error()
	}
	return e
}
