package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestDefaultConfig_ReadsTimeoutFromEnv(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "7")
	t.Setenv("HTTP_RESPONSE_HEADER_TIMEOUT", "1500ms")

	cfg := DefaultConfig()
	assert.Equal(t, 7*time.Second, cfg.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.ResponseHeaderTimeout)
}

func TestDefaultConfig_IgnoresGarbage(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestNew_WrapsTransportWhenTracing(t *testing.T) {
	plain := New(&Config{Timeout: time.Second})
	require.NotNil(t, plain.Transport)
	assert.Equal(t, time.Second, plain.Timeout)

	traced := New(&Config{Timeout: time.Second, TracerProvider: tracenoop.NewTracerProvider()})
	assert.IsType(t, &http.Transport{}, plain.Transport)
	assert.IsType(t, &otelhttp.Transport{}, traced.Transport)
}
