package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/petstore-contract-suite/internal/contract/fixture"
	"github.com/Apurer/petstore-contract-suite/internal/contract/invoker"
	"github.com/Apurer/petstore-contract-suite/internal/contract/openapi"
	"github.com/Apurer/petstore-contract-suite/internal/contract/report"
)

const tracerName = "github.com/Apurer/petstore-contract-suite/internal/contract/scenario"

// Runner executes scenarios one after another against a single target.
type Runner struct {
	client   invoker.Invoker
	target   string
	recorder *report.Recorder
	openapi  *openapi.Validator
	logger   *slog.Logger
	tracer   trace.Tracer
	cleanup  bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTarget labels the summary with the base URL under test.
func WithTarget(target string) RunnerOption {
	return func(r *Runner) { r.target = target }
}

// WithRecorder replaces the default silent recorder.
func WithRecorder(rec *report.Recorder) RunnerOption {
	return func(r *Runner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithOpenAPI checks every response against the OpenAPI document.
func WithOpenAPI(v *openapi.Validator) RunnerOption {
	return func(r *Runner) { r.openapi = v }
}

// WithRunnerLogger sets the logger for scenario progress.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracerProvider opens one span per scenario.
func WithTracerProvider(tp trace.TracerProvider) RunnerOption {
	return func(r *Runner) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithFixtureCleanup toggles deletion of fixtures after each scenario.
func WithFixtureCleanup(enabled bool) RunnerOption {
	return func(r *Runner) { r.cleanup = enabled }
}

// NewRunner returns a Runner that sends requests through client.
func NewRunner(client invoker.Invoker, opts ...RunnerOption) *Runner {
	r := &Runner{
		client:   client,
		recorder: report.NewRecorder(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   nooptrace.NewTracerProvider().Tracer(tracerName),
		cleanup:  true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run executes scenarios in order. A failing scenario never stops the run.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) report.Summary {
	summary := report.Summary{
		RunID:   uuid.NewString(),
		Target:  r.target,
		Started: time.Now(),
	}
	logger := r.logger.With(slog.String("run_id", summary.RunID))
	logger.InfoContext(ctx, "contract run started", slog.String("target", r.target), slog.Int("scenarios", len(scenarios)))

	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			summary.Results = append(summary.Results, report.ScenarioResult{ID: s.ID, Feature: s.Feature, Title: s.Title, Err: err})
			continue
		}
		summary.Results = append(summary.Results, r.runOne(ctx, logger, s))
	}

	summary.Duration = time.Since(summary.Started)
	logger.InfoContext(ctx, "contract run finished",
		slog.Int("passed", summary.Passed()),
		slog.Int("failed", summary.Failed()),
		slog.Duration("duration", summary.Duration),
	)
	return summary
}

func (r *Runner) runOne(ctx context.Context, logger *slog.Logger, s Scenario) report.ScenarioResult {
	ctx, span := r.tracer.Start(ctx, "scenario "+s.ID, trace.WithAttributes(
		attribute.String("contract.scenario", s.ID),
		attribute.String("contract.feature", s.Feature),
	))
	defer span.End()

	r.recorder.Reset()
	fixtures := fixture.New(r.client, fixture.WithLogger(logger), fixture.WithCleanup(r.cleanup))
	env := &Env{
		Client:   r.client,
		Fixtures: fixtures,
		Recorder: r.recorder,
		OpenAPI:  r.openapi,
		Logger:   logger,
	}

	start := time.Now()
	err := r.execute(ctx, env, s)
	duration := time.Since(start)

	if cleanupErr := fixtures.Cleanup(context.WithoutCancel(ctx)); cleanupErr != nil {
		logger.WarnContext(ctx, "fixture cleanup failed", slog.String("scenario", s.ID), slog.Any("error", cleanupErr))
	}

	result := report.ScenarioResult{
		ID:       s.ID,
		Feature:  s.Feature,
		Title:    s.Title,
		Duration: duration,
		Steps:    r.recorder.Steps(),
		Err:      err,
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "scenario failed", slog.String("scenario", s.ID), slog.Any("error", err))
	} else {
		span.SetStatus(codes.Ok, "")
		logger.InfoContext(ctx, "scenario passed", slog.String("scenario", s.ID), slog.Duration("duration", duration))
	}
	return result
}

func (r *Runner) execute(ctx context.Context, env *Env, s Scenario) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scenario %s panicked: %v", s.ID, p)
		}
	}()
	if s.Run == nil {
		return fmt.Errorf("scenario %s has no body", s.ID)
	}
	return s.Run(ctx, env)
}
