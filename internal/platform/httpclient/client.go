// Package httpclient builds the outbound HTTP clients used to reach the service under test.
//
// Timeouts are an outer safety bound so a hung target cannot stall a run forever.
// Requests are never retried and checks never tune the timeout per call.
package httpclient

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// Config holds transport settings for contract clients.
type Config struct {
	// Timeout bounds a whole request including reading the body.
	Timeout time.Duration
	// DialTimeout bounds establishing the TCP connection.
	DialTimeout time.Duration
	// ResponseHeaderTimeout bounds waiting for the status line and headers.
	ResponseHeaderTimeout time.Duration
	IdleConnTimeout       time.Duration
	MaxIdleConnsPerHost   int
	// TracerProvider enables otelhttp client spans when set.
	TracerProvider trace.TracerProvider
}

// durationFromEnv accepts plain seconds or a Go duration string.
func durationFromEnv(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	return fallback
}

// DefaultConfig returns settings suited to a remote test endpoint.
// REQUEST_TIMEOUT and HTTP_RESPONSE_HEADER_TIMEOUT override the defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:               durationFromEnv("REQUEST_TIMEOUT", 30*time.Second),
		DialTimeout:           10 * time.Second,
		ResponseHeaderTimeout: durationFromEnv("HTTP_RESPONSE_HEADER_TIMEOUT", 30*time.Second),
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   4,
	}
}

// New creates an HTTP client from cfg. A nil cfg uses DefaultConfig.
func New(cfg *Config) *http.Client {
	if cfg == nil {
		defaults := DefaultConfig()
		cfg = &defaults
	}
	var transport http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
		ExpectContinueTimeout: time.Second,
	}
	if cfg.TracerProvider != nil {
		transport = otelhttp.NewTransport(transport, otelhttp.WithTracerProvider(cfg.TracerProvider))
	}
	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}
