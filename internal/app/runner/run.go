// Package runner wires configuration, observability and the scenario catalog into one contract run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Apurer/petstore-contract-suite/internal/app/twin"
	"github.com/Apurer/petstore-contract-suite/internal/contract/invoker"
	"github.com/Apurer/petstore-contract-suite/internal/contract/openapi"
	"github.com/Apurer/petstore-contract-suite/internal/contract/report"
	"github.com/Apurer/petstore-contract-suite/internal/contract/scenario"
	"github.com/Apurer/petstore-contract-suite/internal/platform/httpclient"
	platformobservability "github.com/Apurer/petstore-contract-suite/internal/platform/observability"
)

const serviceName = "petstore-contract-runner"

// ErrNoScenarios is returned when the filters match nothing.
var ErrNoScenarios = errors.New("no scenarios match the given filters")

// Run executes the selected scenarios and writes a text summary to out.
// Logs go to logOut. A failing scenario is reported in the summary, not as an error.
func Run(ctx context.Context, cfg Config, out, logOut io.Writer) (report.Summary, error) {
	if err := cfg.Validate(); err != nil {
		return report.Summary{}, err
	}
	selected := scenario.Select(scenario.Catalog(), cfg.Features, cfg.Scenarios)
	if len(selected) == 0 {
		return report.Summary{}, ErrNoScenarios
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogFormat(cfg.LogFormat),
		platformobservability.WithLogLevel(platformobservability.ParseLevel(cfg.LogLevel)),
		platformobservability.WithLogWriter(logOut),
		platformobservability.WithTraceExporter(cfg.TraceExporter),
	)
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	baseURL := cfg.BaseURL
	if cfg.Twin {
		url, stop, err := startTwin(ctx, instruments)
		if err != nil {
			return report.Summary{}, err
		}
		defer stop()
		baseURL = url
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.RequestTimeout
	httpCfg.TracerProvider = instruments.TracerProvider
	client, err := invoker.New(baseURL,
		invoker.WithHTTPClient(httpclient.New(&httpCfg)),
		invoker.WithLogger(logger),
	)
	if err != nil {
		return report.Summary{}, err
	}

	opts := []scenario.RunnerOption{
		scenario.WithTarget(client.BaseURL()),
		scenario.WithRunnerLogger(logger),
		scenario.WithTracerProvider(instruments.TracerProvider),
		scenario.WithFixtureCleanup(cfg.FixtureCleanup),
		scenario.WithRecorder(report.NewRecorder(
			report.WithLogger(logger),
			report.WithTracer(instruments.Tracer("internal.contract.report")),
			report.WithMeter(instruments.Meter("internal.contract.report")),
		)),
	}
	if cfg.ValidateOpenAPI {
		validator, err := openapi.NewValidator(ctx)
		if err != nil {
			return report.Summary{}, err
		}
		opts = append(opts, scenario.WithOpenAPI(validator))
	}

	summary := scenario.NewRunner(client, opts...).Run(ctx, selected)
	if err := summary.WriteText(out); err != nil {
		return summary, fmt.Errorf("write summary: %w", err)
	}
	return summary, nil
}

// startTwin serves a fresh twin on a loopback port and returns its API root.
func startTwin(ctx context.Context, instruments *platformobservability.Instruments) (string, func(), error) {
	pg, err := twin.LoadPostgresConfig()
	if err != nil {
		return "", nil, fmt.Errorf("start twin: %w", err)
	}
	t, err := twin.New(ctx, twin.Config{ServiceName: "petstore-twin", Postgres: pg},
		twin.WithInstruments(instruments))
	if err != nil {
		return "", nil, fmt.Errorf("start twin: %w", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Close()
		return "", nil, fmt.Errorf("listen for twin: %w", err)
	}
	srv := &http.Server{Handler: t.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			instruments.Logger.Error("twin server exited", slog.String("error", err.Error()))
		}
	}()
	instruments.Logger.Info("twin started", slog.String("addr", ln.Addr().String()))

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		t.Close()
	}
	return twin.BaseURL("http://" + ln.Addr().String()), stop, nil
}

// ScenarioIDs lists the ids cfg selects, in execution order.
func ScenarioIDs(cfg Config) []string {
	selected := scenario.Select(scenario.Catalog(), cfg.Features, cfg.Scenarios)
	ids := make([]string, 0, len(selected))
	for _, s := range selected {
		ids = append(ids, s.ID)
	}
	return ids
}
