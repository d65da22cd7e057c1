// Package report records named steps and scenario outcomes as spans, log lines and a run summary.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/Apurer/petstore-contract-suite/internal/contract/report"

// StepResult captures one executed step.
type StepResult struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Recorder emits a span and log line for every step.
type Recorder struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics recorderMetrics

	mu    sync.Mutex
	steps []StepResult
}

// Option configures a Recorder.
type Option func(*Recorder)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(r *Recorder) {
		if tr != nil {
			r.tracer = tr
		}
	}
}

func WithMeter(m metric.Meter) Option {
	return func(r *Recorder) {
		r.metrics = newRecorderMetrics(m)
	}
}

// NewRecorder returns a Recorder that is silent unless options say otherwise.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		tracer: nooptrace.NewTracerProvider().Tracer(instrumentationName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Step runs fn inside a span named name. The error of fn is returned unchanged.
func (r *Recorder) Step(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := r.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("contract.step", name)))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	r.mu.Lock()
	r.steps = append(r.steps, StepResult{Name: name, Duration: elapsed, Err: err})
	r.mu.Unlock()
	r.metrics.recordStep(ctx, err == nil)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.LogAttrs(ctx, slog.LevelError, "step failed",
			slog.String("step", name),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()))
		return err
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "step passed",
		slog.String("step", name),
		slog.Duration("duration", elapsed))
	return nil
}

// Steps returns a copy of every recorded step.
func (r *Recorder) Steps() []StepResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]StepResult{}, r.steps...)
}

// Reset discards recorded steps.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.steps = nil
	r.mu.Unlock()
}

// Tracer exposes the tracer so scenario spans can parent step spans.
func (r *Recorder) Tracer() trace.Tracer {
	return r.tracer
}

// Logger exposes the configured logger.
func (r *Recorder) Logger() *slog.Logger {
	return r.logger
}

// ScenarioResult is the outcome of one scenario.
type ScenarioResult struct {
	ID       string
	Feature  string
	Title    string
	Duration time.Duration
	Steps    []StepResult
	Err      error
}

// Passed reports whether the scenario succeeded.
func (s ScenarioResult) Passed() bool {
	return s.Err == nil
}

// Summary aggregates a run.
type Summary struct {
	RunID    string
	Target   string
	Started  time.Time
	Duration time.Duration
	Results  []ScenarioResult
}

// Passed counts successful scenarios.
func (s Summary) Passed() int {
	n := 0
	for _, r := range s.Results {
		if r.Passed() {
			n++
		}
	}
	return n
}

// Failed counts failed scenarios.
func (s Summary) Failed() int {
	return len(s.Results) - s.Passed()
}

// OK reports whether every scenario passed.
func (s Summary) OK() bool {
	return s.Failed() == 0
}

// Failures returns the failed scenarios.
func (s Summary) Failures() []ScenarioResult {
	var out []ScenarioResult
	for _, r := range s.Results {
		if !r.Passed() {
			out = append(out, r)
		}
	}
	return out
}

// WriteText prints a human readable summary grouped by feature.
func (s Summary) WriteText(w io.Writer) error {
	byFeature := map[string][]ScenarioResult{}
	var features []string
	for _, r := range s.Results {
		if _, ok := byFeature[r.Feature]; !ok {
			features = append(features, r.Feature)
		}
		byFeature[r.Feature] = append(byFeature[r.Feature], r)
	}
	sort.Strings(features)

	var b strings.Builder
	fmt.Fprintf(&b, "contract run %s against %s\n", s.RunID, s.Target)
	for _, feature := range features {
		fmt.Fprintf(&b, "\n%s\n", feature)
		for _, r := range byFeature[feature] {
			mark := "PASS"
			if !r.Passed() {
				mark = "FAIL"
			}
			fmt.Fprintf(&b, "  %s  %-45s %s  (%s)\n", mark, r.ID, r.Title, r.Duration.Round(time.Millisecond))
			if r.Err != nil {
				for _, line := range strings.Split(r.Err.Error(), "\n") {
					fmt.Fprintf(&b, "        %s\n", line)
				}
			}
		}
	}
	fmt.Fprintf(&b, "\n%d passed, %d failed in %s\n", s.Passed(), s.Failed(), s.Duration.Round(time.Millisecond))
	_, err := io.WriteString(w, b.String())
	return err
}

type recorderMetrics struct {
	steps metric.Int64Counter
}

func newRecorderMetrics(m metric.Meter) recorderMetrics {
	if m == nil {
		return recorderMetrics{}
	}
	steps, _ := m.Int64Counter("contract.steps", metric.WithDescription("Number of contract steps executed"))
	return recorderMetrics{steps: steps}
}

func (m recorderMetrics) recordStep(ctx context.Context, passed bool) {
	if m.steps != nil {
		m.steps.Add(ctx, 1, metric.WithAttributes(attribute.Bool("contract.step.passed", passed)))
	}
}
