package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// Outcomes recorded for every observed operation.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Operations instruments the calls into one bounded context of the twin.
//
// A rejected call is one the caller caused, such as an unknown id or an invalid
// payload. Rejections are logged at info and leave the span status unset.
// Anything else is a failure.
type Operations struct {
	scope    string
	tracer   trace.Tracer
	logger   *slog.Logger
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	rejected func(error) bool
}

// OperationsOption configures Operations.
type OperationsOption func(*Operations)

// WithOperationsLogger sets the logger. Nil keeps the silent default.
func WithOperationsLogger(logger *slog.Logger) OperationsOption {
	return func(o *Operations) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithOperationsTracer sets the tracer. Nil keeps the no-op default.
func WithOperationsTracer(tr trace.Tracer) OperationsOption {
	return func(o *Operations) {
		if tr != nil {
			o.tracer = tr
		}
	}
}

// WithOperationsMeter records <scope>.operations and <scope>.operation.duration.
func WithOperationsMeter(m metric.Meter) OperationsOption {
	return func(o *Operations) {
		if m == nil {
			return
		}
		o.calls, _ = m.Int64Counter(o.scope+".operations",
			metric.WithDescription("Operations handled, by operation and outcome"))
		o.duration, _ = m.Float64Histogram(o.scope+".operation.duration",
			metric.WithDescription("Operation latency"), metric.WithUnit("s"))
	}
}

// WithRejections marks errors for which isRejection returns true as rejected rather than failed.
func WithRejections(isRejection func(error) bool) OperationsOption {
	return func(o *Operations) {
		o.rejected = isRejection
	}
}

// NewOperations returns Operations for scope, e.g. "pets". Scope prefixes span,
// log and metric names.
func NewOperations(scope string, opts ...OperationsOption) *Operations {
	o := &Operations{
		scope:  scope,
		tracer: nooptrace.NewTracerProvider().Tracer(scope),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Outcome classifies err the way Observe records it.
func (o *Operations) Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case o.rejected != nil && o.rejected(err):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}

// Observe runs fn as operation name inside a span, then logs and counts the outcome.
func Observe[T any](ctx context.Context, o *Operations, name string, attrs []attribute.KeyValue, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := o.tracer.Start(ctx, o.scope+"."+name, trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	out, err := fn(ctx)
	elapsed := time.Since(start)

	outcome := o.Outcome(err)
	level := slog.LevelDebug
	switch outcome {
	case OutcomeRejected:
		level = slog.LevelInfo
		span.SetAttributes(attribute.String("operation.rejection", err.Error()))
	case OutcomeFailed:
		level = slog.LevelError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	logAttrs := make([]slog.Attr, 0, len(attrs)+3)
	for _, kv := range attrs {
		logAttrs = append(logAttrs, slog.Any(string(kv.Key), kv.Value.AsInterface()))
	}
	logAttrs = append(logAttrs, slog.String("outcome", outcome), slog.Duration("duration", elapsed))
	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", err.Error()))
	}
	o.logger.LogAttrs(ctx, level, o.scope+" "+name, logAttrs...)

	recorded := metric.WithAttributes(attribute.String("operation", name), attribute.String("outcome", outcome))
	if o.calls != nil {
		o.calls.Add(ctx, 1, recorded)
	}
	if o.duration != nil {
		o.duration.Record(ctx, elapsed.Seconds(), recorded)
	}
	return out, err
}

// Exec is Observe for operations without a result.
func Exec(ctx context.Context, o *Operations, name string, attrs []attribute.KeyValue, fn func(context.Context) error) error {
	_, err := Observe(ctx, o, name, attrs, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
