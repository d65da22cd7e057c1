package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Apurer/petstore-contract-suite/internal/app/runner"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("contract-runner", pflag.ContinueOnError)
	configPath := flags.String("config", "", "YAML config file (defaults to $CONTRACT_CONFIG)")
	baseURL := flags.String("base-url", "", "API root of the Petstore under test")
	features := flags.StringSlice("feature", nil, "run only these features (Pet, Store)")
	scenarios := flags.StringSlice("scenario", nil, "run only scenarios whose id starts with one of these")
	timeout := flags.Duration("timeout", 0, "per-request timeout")
	logFormat := flags.String("log-format", "", "log format: text or json")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn or error")
	noCleanup := flags.Bool("no-cleanup", false, "leave created pets and orders in place")
	noOpenAPI := flags.Bool("no-openapi", false, "skip OpenAPI response validation")
	useTwin := flags.Bool("twin", false, "run against an in-process Petstore twin")
	list := flags.Bool("list", false, "print scenario ids and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := runner.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = *baseURL
	}
	if flags.Changed("feature") {
		cfg.Features = *features
	}
	if flags.Changed("scenario") {
		cfg.Scenarios = *scenarios
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = *timeout
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = *logFormat
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if *noCleanup {
		cfg.FixtureCleanup = false
	}
	if *noOpenAPI {
		cfg.ValidateOpenAPI = false
	}
	if flags.Changed("twin") {
		cfg.Twin = *useTwin
	}

	if *list {
		for _, id := range runner.ScenarioIDs(cfg) {
			fmt.Println(id)
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, cfg, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if !summary.OK() {
		return 1
	}
	return 0
}
