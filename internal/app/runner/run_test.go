package runner

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twinConfig() Config {
	cfg := DefaultConfig()
	cfg.Twin = true
	cfg.LogFormat = "json"
	return cfg
}

func TestRun_AgainstTwin(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	var out, logs bytes.Buffer

	summary, err := Run(context.Background(), twinConfig(), &out, &logs)

	require.NoError(t, err)
	assert.True(t, summary.OK(), out.String())
	assert.Contains(t, out.String(), "PASS  pet/delete-nonexistent")
	assert.Contains(t, out.String(), "18 passed, 0 failed")
	assert.Contains(t, logs.String(), `"msg":"contract run finished"`)
}

func TestRun_SelectsByFeature(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	cfg := twinConfig()
	cfg.Features = []string{"store"}
	var out, logs bytes.Buffer

	summary, err := Run(context.Background(), cfg, &out, &logs)

	require.NoError(t, err)
	require.Len(t, summary.Results, 5)
	assert.NotContains(t, out.String(), "pet/")
}

func TestRun_NoScenarios(t *testing.T) {
	cfg := twinConfig()
	cfg.Scenarios = []string{"does-not-exist"}

	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoScenarios)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := twinConfig()
	cfg.LogFormat = "xml"

	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "log format")
}

func TestScenarioIDs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenarios = []string{"store/inventory", "pet/add"}

	assert.Equal(t, []string{"pet/add", "pet/add-full-data", "store/inventory"}, ScenarioIDs(cfg))
}
